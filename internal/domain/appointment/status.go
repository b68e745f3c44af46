package appointment

import (
	"strings"

	"github.com/BruksfildServices01/ora-fixa/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

// Status values are the labels already present in stored data.
type Status string

const (
	StatusConfirmed Status = "confirmata"
	StatusCompleted Status = "finalizata"
	StatusNoShow    Status = "neprezentat"
	StatusCancelled Status = "anulata"
)

var labels = map[Status]string{
	StatusConfirmed: "confirmată",
	StatusCompleted: "finalizată",
	StatusNoShow:    "neprezentat",
	StatusCancelled: "anulată",
}

// ParseStatus accepts both the stored and the diacritic spelling.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	for st, label := range labels {
		if s == string(st) || s == label {
			return st, true
		}
	}
	return "", false
}

// Label is the display form.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusNoShow || s == StatusCancelled
}

// Blocks reports whether an appointment in this status occupies its interval.
func (s Status) Blocks() bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Actions
// ===============================

type Action string

const (
	ActionComplete Action = "complete"
	ActionNoShow   Action = "no-show"
	ActionCancel   Action = "cancel"
)

var targets = map[Action]Status{
	ActionComplete: StatusCompleted,
	ActionNoShow:   StatusNoShow,
	ActionCancel:   StatusCancelled,
}

func ParseAction(s string) (Action, bool) {
	a := Action(strings.TrimSpace(strings.ToLower(s)))
	_, ok := targets[a]
	return a, ok
}

// Target returns the status an action moves to.
func (a Action) Target() (Status, error) {
	st, ok := targets[a]
	if !ok {
		return "", httperr.ErrBusiness(httperr.CodeUnknownAction)
	}
	return st, nil
}

// ===============================
// Validations
// ===============================

// CanTransition: every action starts from a confirmed appointment; terminal
// statuses never move again.
func CanTransition(current Status, action Action) (Status, error) {
	next, err := action.Target()
	if err != nil {
		return "", err
	}
	if current != StatusConfirmed {
		return "", httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return next, nil
}

func CanCancel(current Status) error {
	_, err := CanTransition(current, ActionCancel)
	return err
}

func CanComplete(current Status) error {
	_, err := CanTransition(current, ActionComplete)
	return err
}

func CanMarkNoShow(current Status) error {
	_, err := CanTransition(current, ActionNoShow)
	return err
}
