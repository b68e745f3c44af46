package validators

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/ora-fixa/internal/timezone"
)

// =====================================================
// AUTH
// =====================================================

type LoginInput struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6"`
}

var loginMessages = map[string]string{
	"password.min": "Parola trebuie sa contina cel putin 6 caractere",
}

func Login(raw Raw) (LoginInput, error) {
	r := newReader(raw)
	in := LoginInput{
		Email:    r.str("email"),
		Password: r.str("password"),
	}
	check(in, loginMessages, r.errs, "")
	return in, r.errs.orNil()
}

type RegisterInput struct {
	Email           string `json:"email" validate:"email"`
	Password        string `json:"password" validate:"min=6"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func Register(raw Raw) (RegisterInput, error) {
	r := newReader(raw)
	in := RegisterInput{
		Email:           r.str("email"),
		Password:        r.str("password"),
		PasswordConfirm: r.str("passwordConfirm"),
	}
	check(in, loginMessages, r.errs, "")

	if in.Password != in.PasswordConfirm {
		r.errs.Add("passwordConfirm", "Parolele nu coincid.")
	}
	return in, r.errs.orNil()
}

// =====================================================
// BOOKING
// =====================================================

type BookingInput struct {
	ServiceID         string  `json:"serviceId" validate:"required"`
	StartTime         string  `json:"startTime" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	Duration          float64 `json:"duration" validate:"gt=0"`
	Time              string  `json:"time" validate:"required"`
	HasAgreedToPolicy bool    `json:"hasAgreedToPolicy"`
	ClientNotes       *string `json:"clientNotes,omitempty"`
}

var bookingMessages = map[string]string{
	"serviceId.required": "Te rugăm să alegi un serviciu.",
	"startTime.datetime": "Data și ora nu sunt valide.",
	"time.required":      "Te rugăm să alegi o oră.",
	"clientId.uuid":      "Selectează un client valid.",
	"clientId.required":  "Selectează un client valid.",
}

const msgPolicy = "Trebuie sa confirmi angajamentul pentru a continua."

func Booking(raw Raw) (BookingInput, error) {
	r := newReader(raw)
	in := BookingInput{
		ServiceID:         r.str("serviceId"),
		StartTime:         r.str("startTime"),
		Duration:          r.number("duration"),
		Time:              r.str("time"),
		HasAgreedToPolicy: r.boolean("hasAgreedToPolicy"),
		ClientNotes:       r.optStr("clientNotes"),
	}
	check(in, bookingMessages, r.errs, "")

	if !in.HasAgreedToPolicy && !r.failed("hasAgreedToPolicy") {
		r.errs.Add("hasAgreedToPolicy", msgPolicy)
	}
	return in, r.errs.orNil()
}

// Start is the parsed startTime. Only meaningful on a validated input.
func (in BookingInput) Start() time.Time {
	t, _ := time.Parse(time.RFC3339, in.StartTime)
	return t.UTC()
}

// Service returns the numeric service id, false when serviceId is not one.
func (in BookingInput) Service() (int64, bool) {
	return parseID(in.ServiceID)
}

type WalkInInput struct {
	ClientID    string  `json:"clientId" validate:"required,uuid"`
	ServiceID   string  `json:"serviceId" validate:"required"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
	Time        string  `json:"time" validate:"required"`
	ClientNotes *string `json:"clientNotes,omitempty"`
}

func WalkIn(raw Raw) (WalkInInput, error) {
	r := newReader(raw)
	in := WalkInInput{
		ClientID:    r.str("clientId"),
		ServiceID:   r.str("serviceId"),
		Duration:    r.number("duration"),
		Date:        r.str("date"),
		Time:        r.str("time"),
		ClientNotes: r.optStr("clientNotes"),
	}
	check(in, bookingMessages, r.errs, "")
	return in, r.errs.orNil()
}

func (in WalkInInput) Client() uuid.UUID {
	id, _ := uuid.Parse(in.ClientID)
	return id
}

func (in WalkInInput) Service() (int64, bool) {
	return parseID(in.ServiceID)
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// =====================================================
// PROFILE
// =====================================================

type ProfileInput struct {
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"min=10"`
}

var profileMessages = map[string]string{
	"fullName.required":  "Te rugăm să completezi acest câmp.",
	"full_name.required": "Te rugăm să completezi acest câmp.",
	"phoneNumber.min":    "Numărul de telefon trebuie să conțină cel puțin 10 cifre.",
	"phone.min":          "Numărul de telefon trebuie să conțină cel puțin 10 cifre.",
	"newPassword.min":    "Noua parola trebuie sa aiba minim 8 caractere.",
}

func Profile(raw Raw) (ProfileInput, error) {
	r := newReader(raw)
	in := ProfileInput{
		FullName:    r.str("fullName"),
		PhoneNumber: r.str("phoneNumber"),
	}
	check(in, profileMessages, r.errs, "")
	return in, r.errs.orNil()
}

type AccountInput struct {
	FullName string  `json:"full_name" validate:"required"`
	Phone    string  `json:"phone" validate:"min=10"`
	Notes    *string `json:"notes"`
}

func Account(raw Raw) (AccountInput, error) {
	r := newReader(raw)
	in := AccountInput{
		FullName: r.str("full_name"),
		Phone:    r.str("phone"),
		Notes:    r.optStr("notes"),
	}
	check(in, profileMessages, r.errs, "")
	return in, r.errs.orNil()
}

type PasswordInput struct {
	NewPassword     string `json:"newPassword" validate:"min=8"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func Password(raw Raw) (PasswordInput, error) {
	r := newReader(raw)
	in := PasswordInput{
		NewPassword:     r.str("newPassword"),
		PasswordConfirm: r.str("passwordConfirm"),
	}
	check(in, profileMessages, r.errs, "")

	if in.NewPassword != in.PasswordConfirm {
		r.errs.Add("passwordConfirm", "Parolele noi nu se potrivesc")
	}
	return in, r.errs.orNil()
}

type PreferencesInput struct {
	NotifyEmailConfirmation bool `json:"notify_email_confirmation"`
	NotifySMSReminder       bool `json:"notify_sms_reminder"`
	MarketingOptIn          bool `json:"marketing_opt_in"`
}

func Preferences(raw Raw) (PreferencesInput, error) {
	r := newReader(raw)
	in := PreferencesInput{
		NotifyEmailConfirmation: r.boolean("notify_email_confirmation"),
		NotifySMSReminder:       r.boolean("notify_sms_reminder"),
		MarketingOptIn:          r.boolean("marketing_opt_in"),
	}
	return in, r.errs.orNil()
}

type AppointmentIDInput struct {
	AppointmentID int64 `json:"appointmentId" validate:"gt=0"`
}

var idMessages = map[string]string{
	"appointmentId.gt": "ID-ul programării este invalid.",
}

func AppointmentID(raw Raw) (AppointmentIDInput, error) {
	r := newReader(raw)
	in := AppointmentIDInput{AppointmentID: r.integer("appointmentId")}
	check(in, idMessages, r.errs, "")
	return in, r.errs.orNil()
}

// =====================================================
// CATALOGUE & SCHEDULE
// =====================================================

type ServiceInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Description     *string `json:"description"`
	DurationMinutes int64   `json:"duration_minutes" validate:"gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

var serviceMessages = map[string]string{
	"name.required":       "Numele serviciului este obligatoriu.",
	"duration_minutes.gt": "Durata trebuie să fie mai mare decât 0 minute.",
	"price.gte":           "Prețul nu poate fi negativ.",
}

func Service(raw Raw) (ServiceInput, error) {
	r := newReader(raw)
	in := ServiceInput{
		Name:            strings.TrimSpace(r.str("name")),
		Description:     r.optStr("description"),
		DurationMinutes: r.integer("duration_minutes"),
		Price:           r.number("price"),
	}
	check(in, serviceMessages, r.errs, "")
	return in, r.errs.orNil()
}

type WorkScheduleDay struct {
	DayOfWeek int64  `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"clock"`
	EndTime   string `json:"end_time" validate:"clock"`
	IsActive  bool   `json:"is_active"`
}

type WorkSchedulesInput struct {
	Days []WorkScheduleDay `json:"days"`
}

const (
	msgEndBeforeStart = "Ora de final trebuie să fie după ora de început."
	msgDuplicateRow   = "Intervalul apare de mai multe ori."
)

var scheduleMessages = map[string]string{
	"day_of_week.gte": "Ziua săptămânii trebuie să fie între 0 și 6.",
	"day_of_week.lte": "Ziua săptămânii trebuie să fie între 0 și 6.",
	"date.datetime":   "Data trebuie să fie în formatul AAAA-LL-ZZ.",
}

func WorkSchedules(raw Raw) (WorkSchedulesInput, error) {
	r := newReader(raw)

	var in WorkSchedulesInput
	seen := map[WorkScheduleDay]bool{}

	for i, item := range r.list("days") {
		prefix := "days." + strconv.Itoa(i) + "."
		sr := r.sub(prefix, item)
		day := WorkScheduleDay{
			DayOfWeek: sr.integer("day_of_week"),
			StartTime: sr.str("start_time"),
			EndTime:   sr.str("end_time"),
			IsActive:  sr.boolean("is_active"),
		}
		check(day, scheduleMessages, r.errs, prefix)

		if day.IsActive && !r.errs.Has(prefix+"start_time") && !r.errs.Has(prefix+"end_time") {
			checkRange(day.StartTime, day.EndTime, prefix+"end_time", r.errs)
		}
		// several windows per day are fine; the same window twice is not
		if seen[day] && !r.errs.Has(prefix+"day_of_week") {
			r.errs.Add(prefix+"day_of_week", msgDuplicateRow)
		}
		seen[day] = true

		in.Days = append(in.Days, day)
	}
	return in, r.errs.orNil()
}

// OverrideInput replaces the weekly schedule for one date. Inactive overrides
// close the salon and need no hours.
type OverrideInput struct {
	Date      string `json:"date" validate:"datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"omitempty,clock"`
	EndTime   string `json:"end_time" validate:"omitempty,clock"`
	IsActive  bool   `json:"is_active"`
}

func Override(raw Raw) (OverrideInput, error) {
	r := newReader(raw)
	in := OverrideInput{
		Date:      r.str("date"),
		StartTime: r.str("start_time"),
		EndTime:   r.str("end_time"),
		IsActive:  r.boolean("is_active"),
	}
	check(in, scheduleMessages, r.errs, "")

	if in.IsActive {
		requireText(in.StartTime, "start_time", r.errs)
		requireText(in.EndTime, "end_time", r.errs)
		if !r.errs.Has("start_time") && !r.errs.Has("end_time") {
			checkRange(in.StartTime, in.EndTime, "end_time", r.errs)
		}
	}
	return in, r.errs.orNil()
}

func requireText(v, path string, errs FieldErrors) {
	if v == "" && !errs.Has(path) {
		errs.Add(path, defaultMessages["required"])
	}
}

func checkRange(start, end, path string, errs FieldErrors) {
	s, err1 := timezone.ParseClock(start)
	e, err2 := timezone.ParseClock(end)
	if err1 != nil || err2 != nil {
		return
	}
	if e <= s {
		errs.Add(path, msgEndBeforeStart)
	}
}
