package tui

import (
	"strings"

	"interior-cli/internal/model"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *appModel) openFilePicker(slot model.Slot) tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = nil
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = m.pickerHeight()
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	// Reopen where the last file came from.
	dir := strings.TrimSpace(m.lastPickDir)
	if dir == "" {
		dir = m.startDir
	}
	fp.CurrentDirectory = dir

	m.filePicker = fp
	m.modal = modalPickFile
	m.modalSlot = slot
	return fp.Init()
}

func (m appModel) pickerHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m appModel) modalBodyWidth() int {
	w := m.width - 8
	if w > 100 {
		w = 100
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) textareaHeight() int {
	h := m.height - 10
	if h > 20 {
		h = 20
	}
	if h < 3 {
		h = 3
	}
	return h
}
