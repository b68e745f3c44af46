package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/ora-fixa/internal/domain/actor"
	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
	"github.com/BruksfildServices01/ora-fixa/internal/models"
)

const ContextActor = "actor"

// ProfileLookup resolves the caller's profile; admin rights live there, not
// in the token.
type ProfileLookup interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

func AuthMiddleware(secret string, profiles ProfileLookup, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autentificare necesară.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Autentificare necesară.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Sesiune invalidă.")
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_claims", "Sesiune invalidă.")
			c.Abort()
			return
		}

		id, err := uuid.Parse(sub)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Sesiune invalidă.")
			c.Abort()
			return
		}

		who := actor.Actor{ID: id}

		p, err := profiles.GetProfile(c.Request.Context(), id)
		switch {
		case err == nil:
			who.IsAdmin = p.IsAdmin
		case httperr.IsBusiness(err, httperr.CodeClientNotFound), errors.Is(err, httperr.ErrNotFound):
			// signed up but no profile row yet: a plain client
		default:
			log.Error("actor profile lookup failed", zap.String("user_id", id.String()), zap.Error(err))
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextActor, who)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		who, _ := ActorFrom(c)
		if err := who.RequireAdmin(); err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorFrom returns the authenticated caller; the zero Actor when absent.
func ActorFrom(c *gin.Context) (actor.Actor, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return actor.Actor{}, false
	}
	who, ok := v.(actor.Actor)
	return who, ok
}
