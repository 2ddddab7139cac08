package tui

import (
	"fmt"
	"strings"

	"interior-cli/internal/docs"
	"interior-cli/internal/model"
	"interior-cli/internal/session"
)

const labelWidth = 24

func (m appModel) View() string {
	bodyH := m.height - 2
	if bodyH < 1 {
		bodyH = 1
	}

	var body string
	switch m.modal {
	case modalEditField, modalEditDescription, modalPickFile:
		body = m.viewModal()
	case modalHelp:
		body = m.viewHelp(bodyH)
	default:
		body = m.viewMain(bodyH)
	}

	return normalizePane(body, m.width, bodyH) + "\n" +
		fitWidth(m.viewFooter(), m.width) + "\n" +
		fitWidth(m.viewMinibuffer(), m.width)
}

func (m appModel) viewMain(height int) string {
	switch m.sess.Status() {
	case session.StatusIdle, session.StatusLoading:
		return "\n  " + m.spinner.View() + " Loading project " + styleMuted().Render(m.projectID) + "…"
	case session.StatusEmpty:
		return "\n  " + styleMuted().Render("No project selected.")
	case session.StatusFailed:
		out := "\n  " + styleSeverity(session.Error).Render(session.MsgLoadFailed)
		if err := m.sess.LoadError(); err != nil {
			out += "\n  " + styleMuted().Render(err.Error())
		}
		return out
	}

	lines, focus := m.projectLines()
	return strings.Join(scrollWindow(lines, focus, height), "\n")
}

// projectLines renders the loaded project and reports the line index of the cursor.
func (m appModel) projectLines() ([]string, int) {
	editing := m.sess.Editing()
	p := m.sess.Record()
	if editing {
		p = m.sess.Draft()
	}
	pending := m.sess.Pending()
	contentW := m.width - 4
	if contentW < 20 {
		contentW = 20
	}

	var lines []string
	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}

	title := p.Title()
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}
	header := "  " + styleTitle().Render(title) + "  " + styleMuted().Render(p.ID)
	if editing {
		header += "  " + styleBadge().Render("EDIT")
	}
	if m.sess.Submitting() {
		header += "  " + m.spinner.View() + styleMuted().Render(" saving…")
	}
	add("")
	add(header)
	add("")

	focus := 0
	idx := 0

	if editing {
		for _, f := range model.FieldDefs() {
			if idx == m.cursor {
				focus = len(lines)
			}
			add(m.renderRow(idx == m.cursor, f.Label, oneLine(p.Get(f.Name)), ""))
			idx++
		}
	} else {
		if desc := renderMarkdown(p.Get(model.FieldDescription), contentW); desc != "" {
			for _, ln := range strings.Split(desc, "\n") {
				add("  " + ln)
			}
			add("")
		}
		for _, f := range model.FieldDefs() {
			if f.Name == model.FieldTitle || f.Name == model.FieldDescription {
				continue
			}
			add(m.renderRow(false, f.Label, oneLine(p.Get(f.Name)), ""))
		}
	}

	add("")
	add("  " + styleLabel().Render("Files"))
	for _, d := range model.SlotDefs() {
		if idx == m.cursor {
			focus = len(lines)
		}
		url := p.SlotURL(d.Slot)
		if url == "" {
			url = styleMuted().Render("-")
		}
		note := ""
		if f, ok := pending[d.Slot]; ok {
			note = stylePending().Render("● " + f.Name)
		}
		add(m.renderRow(idx == m.cursor, d.Label, url, note))
		idx++
	}
	return lines, focus
}

func (m appModel) renderRow(selected bool, label, value, note string) string {
	if value == "" {
		value = styleMuted().Render("-")
	}
	lbl := fmt.Sprintf("%-*s", labelWidth, label)
	if selected {
		lbl = styleSelected().Render(lbl)
	} else {
		lbl = styleLabel().Render(lbl)
	}
	ln := "  " + lbl + " " + value
	if note != "" {
		ln += "  " + note
	}
	return ln
}

func (m appModel) viewModal() string {
	bodyW := m.modalBodyWidth()
	var b strings.Builder
	b.WriteString("\n")
	switch m.modal {
	case modalEditField:
		b.WriteString("  " + styleTitle().Render("Edit "+fieldLabel(m.modalField)) + "\n\n")
		b.WriteString("  " + renderInputLine(bodyW, m.input.View()) + "\n\n")
		b.WriteString("  " + styleMuted().Render("enter: save  esc: cancel"))
	case modalEditDescription:
		b.WriteString("  " + styleTitle().Render("Edit "+fieldLabel(m.modalField)) + "\n\n")
		for _, ln := range strings.Split(m.textarea.View(), "\n") {
			b.WriteString("  " + ln + "\n")
		}
		b.WriteString("\n  " + styleMuted().Render("ctrl+s: save  esc: cancel"))
	case modalPickFile:
		b.WriteString("  " + styleTitle().Render("Replace "+m.modalSlot.Label()) + "  " +
			styleMuted().Render(m.filePicker.CurrentDirectory) + "\n\n")
		for _, ln := range strings.Split(m.filePicker.View(), "\n") {
			b.WriteString("  " + ln + "\n")
		}
		b.WriteString("\n  " + styleMuted().Render("enter: choose  h: up  esc: cancel"))
	}
	return b.String()
}

func (m appModel) viewHelp(height int) string {
	var md []string
	for _, topic := range []string{"editing", "sharing"} {
		if body, ok := docs.Get(topic); ok {
			md = append(md, body)
		}
	}
	out := renderMarkdown(strings.Join(md, "\n"), m.width-2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	return strings.Join(scrollWindow(lines, 0, height), "\n")
}

func (m appModel) viewFooter() string {
	var keys string
	switch {
	case m.modal == modalHelp:
		keys = "esc: close help"
	case m.modal != modalNone:
		return ""
	case m.sess.Status() == session.StatusFailed:
		keys = "r: retry  q: quit"
	case m.sess.Status() != session.StatusLoaded:
		keys = "q: quit"
	case m.sess.Editing():
		keys = "j/k: move  enter: edit  x: drop file  o: view  s: share  ctrl+s: save  ?: help  q: quit"
	default:
		keys = "j/k: move  o: view  s: share  e: edit  r: reload  ?: help  q: quit"
	}
	return " " + styleMuted().Render(keys)
}

func (m appModel) viewMinibuffer() string {
	if m.minibufferText == "" {
		return ""
	}
	return " " + styleSeverity(m.minibufferSev).Render(m.minibufferText)
}

func fieldLabel(name string) string {
	for _, f := range model.FieldDefs() {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
