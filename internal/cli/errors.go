package cli

import (
	"errors"
	"fmt"

	"interior-cli/internal/session"
)

type usageError struct {
	flag  string
	value string
	want  string
}

func (e usageError) Error() string {
	return fmt.Sprintf("invalid %s %q (want %s)", e.flag, e.value, e.want)
}

type unknownSlotError struct{ name string }

func (e unknownSlotError) Error() string {
	return fmt.Sprintf("unknown slot: %s (run `interior slots`)", e.name)
}

// loadError maps a session load failure to the operator message plus its cause.
func loadError(err error) error {
	if err == nil {
		return nil
	}
	var f *session.Failure
	if errors.As(err, &f) {
		return fmt.Errorf("%s (%w)", session.MsgLoadFailed, f.Err)
	}
	return err
}
