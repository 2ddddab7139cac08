package tui

import (
	"errors"
	"path/filepath"

	"interior-cli/internal/model"
	"interior-cli/internal/session"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	mm, cmd := m.update(msg)
	if sync := mm.syncSession(); sync != nil {
		cmd = tea.Batch(cmd, sync)
	}
	return mm, cmd
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(m.modalBodyWidth())
		m.input.Width = m.modalBodyWidth() - 2
		if m.modal == modalPickFile {
			m.filePicker.Height = m.pickerHeight()
		}
		return m, nil

	case loadDoneMsg:
		_ = m.sess.CompleteLoad(msg.rec, msg.err)
		m.clampCursor()
		return m, nil

	case submitDoneMsg:
		_ = m.sess.CompleteSubmit(msg.sub, msg.resp, msg.err)
		return m, nil

	case actionDoneMsg:
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.sess.Status() != session.StatusLoading && !m.sess.Submitting() {
			// Let the tick chain end; startLoad/submit restart it.
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.modal {
		case modalEditField:
			return m.updateEditField(msg)
		case modalEditDescription:
			return m.updateEditDescription(msg)
		case modalPickFile:
			return m.updateFilePicker(msg)
		case modalHelp:
			switch msg.String() {
			case "esc", "q", "?":
				m.closeModal()
			}
			return m, nil
		}
		return m.updateMain(msg)
	}

	// Non-key messages the file picker needs (directory listings).
	if m.modal == modalPickFile {
		return m.updateFilePicker(msg)
	}
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (appModel, tea.Cmd) {
	status := m.sess.Status()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.modal = modalHelp
		return m, nil
	case "r":
		if status == session.StatusFailed || (status == session.StatusLoaded && !m.sess.Editing()) {
			return m, m.startLoad()
		}
		return m, nil
	}
	if status != session.StatusLoaded {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.rows()) - 1
	case "o":
		if r, ok := m.currentRow(); ok && r.isSlot() {
			return m, m.viewSlot(r.slot)
		}
	case "s":
		if r, ok := m.currentRow(); ok && r.isSlot() {
			return m, m.shareSlot(r.slot)
		}
	case "e":
		if err := m.sess.BeginEdit(); err != nil {
			next := m.showMinibuffer(session.Warning, err.Error())
			return m, next
		}
	case "enter":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if !m.sess.Editing() {
			if r.isSlot() {
				return m, m.viewSlot(r.slot)
			}
			return m, nil
		}
		if m.sess.Submitting() {
			next := m.showMinibuffer(session.Warning, session.ErrSubmitInFlight.Error())
			return m, next
		}
		if r.isSlot() {
			next := m.openFilePicker(r.slot)
			return m, next
		}
		next := m.openFieldEditor(r.field)
		return m, next
	case "x":
		if r, ok := m.currentRow(); ok && r.isSlot() && m.sess.Editing() {
			if err := m.sess.ClearFile(r.slot); err != nil {
				next := m.showMinibuffer(session.Warning, err.Error())
				return m, next
			}
		}
	case "ctrl+s":
		next := m.submit()
		return m, next
	}
	return m, nil
}

func (m appModel) updateEditField(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		field := m.modalField
		value := m.input.Value()
		m.closeModal()
		if err := m.sess.SetField(field, value); err != nil {
			next := m.showMinibuffer(session.Warning, err.Error())
			return m, next
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateEditDescription(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "ctrl+s":
		field := m.modalField
		value := m.textarea.Value()
		m.closeModal()
		if err := m.sess.SetField(field, value); err != nil {
			next := m.showMinibuffer(session.Warning, err.Error())
			return m, next
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m appModel) updateFilePicker(msg tea.Msg) (appModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.closeModal()
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		slot := m.modalSlot
		m.lastPickDir = filepath.Dir(path)
		m.closeModal()
		f, err := model.StatFile(path, m.maxUpload)
		if err != nil {
			next := m.showMinibuffer(session.Error, err.Error())
			return m, next
		}
		if err := m.sess.ReplaceFile(slot, f); err != nil {
			next := m.showMinibuffer(session.Warning, err.Error())
			return m, next
		}
		next := m.showMinibuffer(session.Info, "Staged "+f.Name+" for "+slot.Label()+".")
		return m, next
	}
	return m, cmd
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalField = ""
	m.modalSlot = ""
	m.input.Blur()
	m.textarea.Blur()
}

func (m *appModel) openFieldEditor(field string) tea.Cmd {
	draft := m.sess.Draft()
	m.modalField = field
	if field == model.FieldDescription {
		m.modal = modalEditDescription
		m.textarea.SetWidth(m.modalBodyWidth())
		m.textarea.SetHeight(m.textareaHeight())
		m.textarea.SetValue(draft.Get(field))
		return m.textarea.Focus()
	}
	m.modal = modalEditField
	m.input.Width = m.modalBodyWidth() - 2
	m.input.SetValue(draft.Get(field))
	m.input.CursorEnd()
	return m.input.Focus()
}

// startLoad begins a load and returns the command that fetches it. An empty project id
// resolves immediately to the empty state.
func (m appModel) startLoad() tea.Cmd {
	if !m.sess.BeginLoad(m.projectID) {
		return nil
	}
	sess, ctx := m.sess, m.ctx
	return tea.Batch(
		func() tea.Msg {
			rec, err := sess.Fetch(ctx)
			return loadDoneMsg{rec: rec, err: err}
		},
		m.spinner.Tick,
	)
}

func (m *appModel) submit() tea.Cmd {
	sub, err := m.sess.BeginSubmit()
	if err != nil {
		if errors.Is(err, session.ErrNotEditing) {
			return nil
		}
		return m.showMinibuffer(session.Warning, err.Error())
	}
	m.log.Debug("submit queued", zap.String("projectId", sub.ProjectID))
	sess, ctx := m.sess, m.ctx
	return tea.Batch(
		func() tea.Msg {
			resp, err := sess.Send(ctx, sub)
			return submitDoneMsg{sub: sub, resp: resp, err: err}
		},
		m.spinner.Tick,
	)
}

func (m appModel) viewSlot(slot model.Slot) tea.Cmd {
	sess := m.sess
	return func() tea.Msg { return actionDoneMsg{err: sess.View(slot)} }
}

func (m appModel) shareSlot(slot model.Slot) tea.Cmd {
	sess := m.sess
	return func() tea.Msg { return actionDoneMsg{err: sess.Share(slot)} }
}
