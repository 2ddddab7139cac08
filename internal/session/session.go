// Package session holds the state of one interior project being viewed and edited:
// the confirmed record, the operator's draft and the files waiting to be uploaded.
//
// Surfaces (the TUI, the CLI) drive it through Load/BeginEdit/SetField/ReplaceFile/Submit
// and render from its accessors. Every mutation is reported to subscribers.
package session

import (
	"context"
	"sync"

	"interior-cli/internal/model"

	"go.uber.org/zap"
)

// Client is the remote project store.
type Client interface {
	Get(ctx context.Context, id string) (model.Project, error)
	Update(ctx context.Context, id string, draft model.Project, files map[model.Slot]model.PendingFile) (model.Project, error)
}

// Opener displays a resource URL (browser, image viewer).
type Opener interface {
	OpenURL(url string) error
}

// Sharer hands a titled link to the platform share capability.
type Sharer interface {
	Share(title, url string) error
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
	// StatusEmpty means no project id was given; nothing is fetched.
	StatusEmpty
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	case StatusEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

type Change int

const (
	ChangeStatus Change = iota
	ChangeRecord
	ChangeDraft
	ChangePending
	ChangeEditMode
	ChangeSubmitting
)

func (c Change) String() string {
	switch c {
	case ChangeStatus:
		return "status"
	case ChangeRecord:
		return "record"
	case ChangeDraft:
		return "draft"
	case ChangePending:
		return "pending"
	case ChangeEditMode:
		return "edit-mode"
	case ChangeSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

type Session struct {
	client   Client
	notifier Notifier
	opener   Opener
	sharer   Sharer
	log      *zap.Logger

	mu         sync.Mutex
	projectID  string
	record     model.Project
	draft      model.Project
	pending    map[model.Slot]model.PendingFile
	editing    bool
	status     Status
	submitting bool
	loadErr    error

	obsMu     sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

type Option func(*Session)

func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithOpener(o Opener) Option {
	return func(s *Session) { s.opener = o }
}

func WithSharer(sh Sharer) Option {
	return func(s *Session) { s.sharer = sh }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func New(client Client, opts ...Option) *Session {
	s := &Session{
		client:    client,
		notifier:  NopNotifier{},
		log:       zap.NewNop(),
		pending:   map[model.Slot]model.PendingFile{},
		observers: map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for every change and returns a function that removes it.
// fn runs on the goroutine that made the change, after the session lock is released.
func (s *Session) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *Session) emit(changes ...Change) {
	if len(changes) == 0 {
		return
	}
	s.obsMu.Lock()
	fns := make([]func(Change), 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.obsMu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

func (s *Session) ProjectID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectID
}

// Record returns a copy of the confirmed project.
func (s *Session) Record() model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Draft returns a copy of the edit draft.
func (s *Session) Draft() model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Pending returns a copy of the pending file replacements.
func (s *Session) Pending() map[model.Slot]model.PendingFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyPending(s.pending)
}

func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// LoadError returns the last load failure, or nil.
func (s *Session) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// DisplayURL returns the URL a slot currently shows: the draft's while editing, the
// record's otherwise. Both agree outside edit mode.
func (s *Session) DisplayURL(slot model.Slot) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing {
		return s.draft.SlotURL(slot)
	}
	return s.record.SlotURL(slot)
}

func copyPending(in map[model.Slot]model.PendingFile) map[model.Slot]model.PendingFile {
	out := make(map[model.Slot]model.PendingFile, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
