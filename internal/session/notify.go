package session

import "fmt"

type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier shows a transient message to the operator.
type Notifier interface {
	Notify(sev Severity, msg string)
}

type NotifierFunc func(sev Severity, msg string)

func (f NotifierFunc) Notify(sev Severity, msg string) { f(sev, msg) }

type NopNotifier struct{}

func (NopNotifier) Notify(Severity, string) {}

const (
	MsgUpdated          = "Project updated successfully!"
	MsgUpdateFailed     = "Failed to update project. Please try again."
	MsgShareUnsupported = "Share feature not supported on this terminal."
	MsgLoadFailed       = "Failed to load project data. Please try again."
)

func msgEmptySlot(label string) string { return fmt.Sprintf("No file in %s.", label) }

func msgShared(label string) string { return fmt.Sprintf("Copied link for %s.", label) }

func msgOpenFailed(label string) string { return fmt.Sprintf("Could not open %s.", label) }

func msgShareFailed(label string) string { return fmt.Sprintf("Could not share %s.", label) }
