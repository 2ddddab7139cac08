// Package platform reaches the desktop: the URL opener and the clipboard.
package platform

import (
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"
)

// ErrShareUnsupported is returned by Share when no clipboard tool is installed.
var ErrShareUnsupported = errors.New("share not supported")

type command struct {
	name string
	args []string
}

// Desktop shells out to the OS tools. The function fields are swapped in tests.
type Desktop struct {
	GOOS     string
	LookPath func(file string) (string, error)
	// Run starts name and waits for it, feeding stdin when non-empty.
	Run func(name string, args []string, stdin string) error
}

func New() *Desktop {
	return &Desktop{
		GOOS:     runtime.GOOS,
		LookPath: exec.LookPath,
		Run:      run,
	}
}

// OpenURL hands u to the system opener.
func (d *Desktop) OpenURL(u string) error {
	u = strings.TrimSpace(u)
	if u == "" {
		return errors.New("empty url")
	}
	var c command
	switch d.GOOS {
	case "darwin":
		c = command{"open", []string{u}}
	case "windows":
		c = command{"cmd", []string{"/c", "start", "", u}}
	default:
		c = command{"xdg-open", []string{u}}
	}
	if _, err := d.LookPath(c.name); err != nil {
		return errors.New(c.name + ": not found")
	}
	return d.Run(c.name, c.args, "")
}

// Share copies url to the clipboard. The title is not part of the copied text, so a
// paste yields a bare link.
func (d *Desktop) Share(title, url string) error {
	_ = title
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("empty url")
	}
	return d.copy(url)
}

func (d *Desktop) clipboardCommands() []command {
	switch d.GOOS {
	case "darwin":
		return []command{{"pbcopy", nil}}
	case "windows":
		return []command{
			{"cmd", []string{"/c", "clip"}},
			{"powershell", []string{"-NoProfile", "-Command", "Set-Clipboard"}},
		}
	default:
		// Wayland first, then X11.
		return []command{
			{"wl-copy", nil},
			{"xclip", []string{"-selection", "clipboard"}},
			{"xsel", []string{"--clipboard", "--input"}},
		}
	}
}

func (d *Desktop) copy(s string) error {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var lastErr error
	for _, c := range d.clipboardCommands() {
		if _, err := d.LookPath(c.name); err != nil {
			continue
		}
		if err := d.Run(c.name, c.args, s); err != nil {
			lastErr = errors.New(c.name + ": " + err.Error())
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return ErrShareUnsupported
}

func run(name string, args []string, stdin string) error {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Wait()
}
