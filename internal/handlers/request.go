package handlers

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/middleware"
	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
	"github.com/BruksfildServices01/ora-fixa/internal/validators"
)

// bindRaw reads the body as untrusted input for the validators. An empty
// body is an empty object; a body that is not JSON or a form is rejected.
func bindRaw(c *gin.Context) (validators.Raw, bool) {
	if c.ContentType() == binding.MIMEPOSTForm {
		if err := c.Request.ParseForm(); err != nil {
			httperr.BadRequest(c, "invalid_request", "Date invalide.")
			return nil, false
		}
		return validators.FromForm(c.Request.PostForm), true
	}

	raw := validators.Raw{}
	if err := c.ShouldBindJSON(&raw); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Date invalide.")
		return nil, false
	}
	return raw, true
}

func caller(c *gin.Context) actor.Actor {
	who, _ := middleware.ActorFrom(c)
	return who
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryDate parses ?key=YYYY-MM-DD in loc; today when absent.
func queryDate(c *gin.Context, key string, loc *time.Location) (time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return timezone.StartOfDay(time.Now(), loc), nil
	}
	return timezone.ParseDate(v, loc)
}

func fieldError(path, msg string) validators.FieldErrors {
	fe := validators.FieldErrors{}
	fe.Add(path, msg)
	return fe
}
