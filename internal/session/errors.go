package session

import (
	"errors"
	"fmt"
)

var (
	ErrNotEditing     = errors.New("not in edit mode")
	ErrNotLoaded      = errors.New("project not loaded")
	ErrSubmitInFlight = errors.New("an update is already in progress")
	ErrReadOnlyField  = errors.New("field is read-only")
	ErrSlotField      = errors.New("slot URLs cannot be edited; replace the file instead")
	ErrUnknownSlot    = errors.New("unknown slot")
	ErrMissingID      = errors.New("project has no id")
	ErrEmptySlot      = errors.New("slot has no file")
	ErrEmptyField     = errors.New("missing field name")
)

type FailureKind string

const (
	LoadFailure           FailureKind = "load"
	UpdateFailure         FailureKind = "update"
	UnsupportedCapability FailureKind = "unsupported"
)

// Failure wraps an operation error with what the session was doing.
type Failure struct {
	Kind      FailureKind
	ProjectID string
	Err       error
}

func (f *Failure) Error() string {
	if f.ProjectID == "" {
		return fmt.Sprintf("%s failed: %v", f.Kind, f.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", f.Kind, f.ProjectID, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// IsKind reports whether err is a *Failure of kind k.
func IsKind(err error, k FailureKind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == k
}
