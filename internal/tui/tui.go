// Package tui is the interactive project screen.
package tui

import (
	"context"

	"interior-cli/internal/model"
	"interior-cli/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	ProjectID      string
	Client         session.Client
	Opener         session.Opener
	Sharer         session.Sharer
	Logger         *zap.Logger
	MaxUploadBytes int64
	// StartDir is where the file picker opens; defaults to the home directory.
	StartDir string
}

func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ctx, opts)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (o Options) maxUpload() int64 {
	if o.MaxUploadBytes <= 0 {
		return model.DefaultMaxUploadBytes
	}
	return o.MaxUploadBytes
}
