package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"interior-cli/internal/model"
	"interior-cli/internal/session"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEditField
	modalEditDescription
	modalPickFile
	modalHelp
)

const minibufferAutoClearAfter = 4 * time.Second

// row is one selectable line: a scalar field (edit mode only) or a slot.
type row struct {
	field string
	slot  model.Slot
}

func (r row) isSlot() bool { return r.slot != "" }

type loadDoneMsg struct {
	rec model.Project
	err error
}

type submitDoneMsg struct {
	sub  session.Submission
	resp model.Project
	err  error
}

// actionDoneMsg ends a view/share command; its notifications are already queued.
type actionDoneMsg struct{ err error }

type minibufferClearMsg struct{ seq int }

type appModel struct {
	ctx  context.Context
	sess *session.Session
	log  *zap.Logger

	projectID string
	maxUpload int64
	startDir  string

	notices *noticeQueue
	changes *changeLog
	unsub   func()

	width  int
	height int

	cursor int

	modal       modalKind
	modalField  string
	modalSlot   model.Slot
	input       textinput.Model
	textarea    textarea.Model
	filePicker  filepicker.Model
	lastPickDir string

	spinner spinner.Model

	minibufferText string
	minibufferSev  session.Severity
	minibufferSeq  int
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("tui")

	notices := &noticeQueue{}
	changes := &changeLog{}
	sess := session.New(opts.Client,
		session.WithNotifier(notices),
		session.WithOpener(opts.Opener),
		session.WithSharer(opts.Sharer),
		session.WithLogger(log.Named("session")),
	)
	unsub := sess.Subscribe(changes.record)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleMuted()

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""

	startDir := strings.TrimSpace(opts.StartDir)
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		}
	}
	if startDir == "" {
		startDir = "."
	}

	return appModel{
		ctx:       ctx,
		sess:      sess,
		log:       log,
		projectID: strings.TrimSpace(opts.ProjectID),
		maxUpload: opts.maxUpload(),
		startDir:  startDir,
		notices:   notices,
		changes:   changes,
		unsub:     unsub,
		width:     80,
		height:    24,
		input:     ti,
		textarea:  ta,
		spinner:   sp,
	}
}

func (m appModel) close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.startLoad(), m.spinner.Tick)
}

// rows lists the selectable lines for the current mode.
func (m appModel) rows() []row {
	var out []row
	if m.sess.Editing() {
		for _, f := range model.FieldDefs() {
			out = append(out, row{field: f.Name})
		}
	}
	for _, s := range model.AllSlots() {
		out = append(out, row{slot: s})
	}
	return out
}

func (m appModel) currentRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *appModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) showMinibuffer(sev session.Severity, text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferSev = sev
	m.minibufferSeq++
	seq := m.minibufferSeq
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

// syncSession applies queued notifications and session changes after any update.
func (m *appModel) syncSession() tea.Cmd {
	if ch := m.changes.take(); ch[session.ChangeEditMode] {
		// Edit rows sit above the slots; keep the same slot selected across the switch.
		n := len(model.FieldDefs())
		if m.sess.Editing() {
			m.cursor += n
		} else {
			m.cursor -= n
		}
		m.clampCursor()
	}

	var cmd tea.Cmd
	for _, n := range m.notices.drain() {
		cmd = m.showMinibuffer(n.sev, n.msg)
	}
	return cmd
}
