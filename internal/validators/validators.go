// Package validators turns untrusted input into typed, constrained values or
// FieldErrors. It has no side effects.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

type Kind string

const (
	KindLogin         Kind = "login"
	KindRegister      Kind = "register"
	KindBooking       Kind = "booking"
	KindWalkIn        Kind = "walk-in"
	KindProfile       Kind = "profile"
	KindAccount       Kind = "account"
	KindPassword      Kind = "password"
	KindPreferences   Kind = "preferences"
	KindAppointmentID Kind = "id"
	KindService       Kind = "service"
	KindWorkSchedules Kind = "work-schedules"
	KindOverride      Kind = "override"
)

// ErrUnknownKind is returned by Validate for kinds it does not know.
var ErrUnknownKind = errors.New("validators: unknown input kind")

// Validate dispatches on kind and returns the typed input (a value, not a
// pointer) or FieldErrors.
func Validate(kind Kind, raw Raw) (any, error) {
	switch kind {
	case KindLogin:
		return Login(raw)
	case KindRegister:
		return Register(raw)
	case KindBooking:
		return Booking(raw)
	case KindWalkIn:
		return WalkIn(raw)
	case KindProfile:
		return Profile(raw)
	case KindAccount:
		return Account(raw)
	case KindPassword:
		return Password(raw)
	case KindPreferences:
		return Preferences(raw)
	case KindAppointmentID:
		return AppointmentID(raw)
	case KindService:
		return Service(raw)
	case KindWorkSchedules:
		return WorkSchedules(raw)
	case KindOverride:
		return Override(raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := timezone.ParseClock(fl.Field().String())
		return err == nil
	})

	return v
}

var defaultMessages = map[string]string{
	"required": "Te rugăm să completezi acest câmp.",
	"email":    "Te rugam sa introduci o adresa de email valida.",
	"uuid":     "Identificator invalid.",
	"datetime": "Data nu este validă.",
	"clock":    "Ora nu este validă.",
}

// check runs the struct rules of v and records failures under prefix. Fields
// that already carry a type error keep only that error.
func check(v any, msgs map[string]string, errs FieldErrors, prefix string) {
	typed := make(map[string]bool, len(errs))
	for k := range errs {
		typed[k] = true
	}

	err := validate.Struct(v)
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return
	}

	for _, fe := range ves {
		path := prefix + fieldPath(fe)
		if typed[path] {
			continue
		}
		errs.Add(path, message(msgs, fe))
	}
}

// fieldPath drops the struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(msgs map[string]string, fe validator.FieldError) string {
	if m, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	if m, ok := defaultMessages[fe.Tag()]; ok {
		return m
	}

	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Trebuie să conțină cel puțin %s caractere.", fe.Param())
		}
		return fmt.Sprintf("Valoarea minimă este %s.", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Trebuie să conțină cel mult %s caractere.", fe.Param())
		}
		return fmt.Sprintf("Valoarea maximă este %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Valoarea trebuie să fie mai mare decât %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Valoarea trebuie să fie cel puțin %s.", fe.Param())
	}
	return "Valoare invalidă."
}
