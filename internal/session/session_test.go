package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"interior-cli/internal/model"
	"interior-cli/internal/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type updateCall struct {
	id    string
	draft model.Project
	files map[model.Slot]model.PendingFile
}

type fakeClient struct {
	mu      sync.Mutex
	project model.Project
	getErr  error
	gets    []string

	patch     model.Project
	updateErr error
	updates   []updateCall
	// block, when set, holds Update until closed.
	block chan struct{}
}

func (c *fakeClient) Get(_ context.Context, id string) (model.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets = append(c.gets, id)
	if c.getErr != nil {
		return model.Project{}, c.getErr
	}
	return c.project.Clone(), nil
}

func (c *fakeClient) Update(_ context.Context, id string, draft model.Project, files map[model.Slot]model.PendingFile) (model.Project, error) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updates = append(c.updates, updateCall{id: id, draft: draft, files: files})
	if c.updateErr != nil {
		return model.Project{}, c.updateErr
	}
	return c.patch.Clone(), nil
}

type note struct {
	sev Severity
	msg string
}

type recorder struct {
	mu    sync.Mutex
	notes []note
}

func (r *recorder) Notify(sev Severity, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{sev, msg})
}

func (r *recorder) count(sev Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, x := range r.notes {
		if x.sev == sev {
			n++
		}
	}
	return n
}

type fakeSharer struct {
	err    error
	titles []string
	urls   []string
}

func (f *fakeSharer) Share(title, url string) error {
	f.titles = append(f.titles, title)
	f.urls = append(f.urls, url)
	return f.err
}

type fakeOpener struct {
	urls []string
	err  error
}

func (f *fakeOpener) OpenURL(u string) error {
	f.urls = append(f.urls, u)
	return f.err
}

func villa() model.Project {
	return model.Project{
		ID: "p1",
		Fields: map[string]string{
			model.FieldTitle:      "Villa A",
			model.FieldClientName: "Nora",
		},
		Slots: map[model.Slot]string{
			model.FloorPlan1: "https://cdn/old.png",
			model.Section1:   "",
		},
	}
}

func newLoaded(t *testing.T, c *fakeClient, opts ...Option) (*Session, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(c, append([]Option{WithNotifier(rec)}, opts...)...)
	require.NoError(t, s.Load(context.Background(), "p1"))
	require.Equal(t, StatusLoaded, s.Status())
	return s, rec
}

func pendingFile(name string) model.PendingFile {
	return model.PendingFile{Path: "/tmp/" + name, Name: name, Size: 3}
}

func TestLoad_SeedsRecordAndDraft(t *testing.T) {
	c := &fakeClient{project: villa()}
	s, _ := newLoaded(t, c)

	assert.Equal(t, []string{"p1"}, c.gets)
	assert.Equal(t, "Villa A", s.Record().Title())
	assert.Equal(t, "Villa A", s.Draft().Title())
	assert.False(t, s.Editing())
	assert.Empty(t, s.Pending())
	assert.Nil(t, s.LoadError())
}

func TestLoad_EmptyIDIssuesNoRequest(t *testing.T) {
	c := &fakeClient{project: villa()}
	s := New(c)

	require.NoError(t, s.Load(context.Background(), "   "))
	assert.Empty(t, c.gets)
	assert.Equal(t, StatusEmpty, s.Status())
	assert.True(t, s.Record().IsZero())
	assert.ErrorIs(t, s.BeginEdit(), ErrNotLoaded)
}

func TestLoad_FailureIsKeptWithoutToast(t *testing.T) {
	c := &fakeClient{getErr: errors.New("connection refused")}
	rec := &recorder{}
	s := New(c, WithNotifier(rec))

	err := s.Load(context.Background(), "p1")
	require.Error(t, err)
	assert.True(t, IsKind(err, LoadFailure))
	assert.Equal(t, StatusFailed, s.Status())
	assert.True(t, IsKind(s.LoadError(), LoadFailure))
	assert.Empty(t, rec.notes)
}

func TestCompleteLoad_IgnoredWhenNotLoading(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})
	require.NoError(t, s.CompleteLoad(model.Project{ID: "other"}, nil))
	assert.Equal(t, "p1", s.Record().ID)
}

func TestBeginEdit_ReseedsDraft(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldTitle, "scratch"))
	require.NoError(t, s.ReplaceFile(model.Section1, pendingFile("s1.png")))

	require.NoError(t, s.BeginEdit())
	assert.True(t, s.Draft().Equal(s.Record()))
	assert.Contains(t, s.Pending(), model.Section1, "staged files survive a re-seed")

	require.NoError(t, s.BeginEdit())
	assert.True(t, s.Draft().Equal(s.Record()))
}

func TestSetField_Guards(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})

	assert.ErrorIs(t, s.SetField(model.FieldTitle, "x"), ErrNotEditing)
	assert.Equal(t, "Villa A", s.Draft().Title())

	require.NoError(t, s.BeginEdit())
	assert.ErrorIs(t, s.SetField("_id", "p2"), ErrReadOnlyField)
	assert.ErrorIs(t, s.SetField("Floor_Plan_1", "https://evil"), ErrSlotField)
	assert.ErrorIs(t, s.SetField(" ", "x"), ErrEmptyField)

	d := s.Draft()
	assert.Equal(t, "p1", d.ID)
	assert.Equal(t, "https://cdn/old.png", d.SlotURL(model.FloorPlan1))

	require.NoError(t, s.SetField(model.FieldSiteAddress, "12 Hill Rd"))
	assert.Equal(t, "12 Hill Rd", s.Draft().Get(model.FieldSiteAddress))
	assert.Empty(t, s.Record().Get(model.FieldSiteAddress), "record untouched by edits")
}

func TestReplaceFile_Guards(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})

	assert.ErrorIs(t, s.ReplaceFile(model.FloorPlan1, pendingFile("a.png")), ErrNotEditing)
	require.NoError(t, s.BeginEdit())
	assert.ErrorIs(t, s.ReplaceFile(model.Slot("Roof_1"), pendingFile("a.png")), ErrUnknownSlot)

	require.NoError(t, s.ReplaceFile(model.FloorPlan1, pendingFile("a.png")))
	require.NoError(t, s.ReplaceFile(model.FloorPlan1, pendingFile("b.png")))
	assert.Equal(t, "b.png", s.Pending()[model.FloorPlan1].Name)
	assert.Equal(t, "https://cdn/old.png", s.Draft().SlotURL(model.FloorPlan1))

	require.NoError(t, s.ClearFile(model.FloorPlan1))
	assert.Empty(t, s.Pending())
}

func TestSubmit_MergesEchoedFields(t *testing.T) {
	c := &fakeClient{project: villa(), patch: model.Project{Fields: map[string]string{model.FieldTitle: "Villa A - Revised"}}}
	s, rec := newLoaded(t, c)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldTitle, "Villa A - Revised"))
	require.NoError(t, s.Submit(context.Background()))

	require.Len(t, c.updates, 1)
	assert.Equal(t, "p1", c.updates[0].id)
	assert.Equal(t, "Villa A - Revised", c.updates[0].draft.Title())

	assert.Equal(t, "Villa A - Revised", s.Record().Title())
	assert.Equal(t, "Nora", s.Record().Get(model.FieldClientName), "absent keys keep their value")
	assert.False(t, s.Editing())
	assert.False(t, s.Submitting())
	assert.Equal(t, []note{{Success, MsgUpdated}}, rec.notes)
}

func TestSubmit_FileReplacementTakesServerURL(t *testing.T) {
	c := &fakeClient{project: villa(), patch: model.Project{Slots: map[model.Slot]string{model.FloorPlan1: "https://cdn/x.png"}}}
	s, _ := newLoaded(t, c)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.ReplaceFile(model.FloorPlan1, pendingFile("plan.png")))
	require.NoError(t, s.Submit(context.Background()))

	require.Len(t, c.updates, 1)
	assert.Contains(t, c.updates[0].files, model.FloorPlan1)
	assert.Equal(t, "https://cdn/x.png", s.Draft().SlotURL(model.FloorPlan1))
	assert.Equal(t, "https://cdn/x.png", s.Record().SlotURL(model.FloorPlan1))
	assert.Empty(t, s.Pending())
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	c := &fakeClient{project: villa(), updateErr: errors.New("500 Internal Server Error")}
	s, rec := newLoaded(t, c)

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldTitle, "Unsaved Change"))
	require.NoError(t, s.ReplaceFile(model.Elevation1, pendingFile("e.png")))

	err := s.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, IsKind(err, UpdateFailure))

	assert.Equal(t, "Unsaved Change", s.Draft().Title())
	assert.Equal(t, "Villa A", s.Record().Title())
	assert.True(t, s.Editing())
	assert.False(t, s.Submitting())
	assert.Contains(t, s.Pending(), model.Elevation1)
	assert.Equal(t, 1, rec.count(Error))
	assert.Equal(t, MsgUpdateFailed, rec.notes[0].msg)
}

func TestSubmit_MergeCompleteness(t *testing.T) {
	c := &fakeClient{project: villa(), patch: model.Project{
		Fields: map[string]string{model.FieldDate: "2024-05-01", "status": "approved"},
		Slots:  map[model.Slot]string{model.Section1: "https://cdn/s1.png"},
	}}
	s, _ := newLoaded(t, c)
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldClientName, "Nora K"))
	require.NoError(t, s.Submit(context.Background()))

	for _, p := range []model.Project{s.Record(), s.Draft()} {
		assert.Equal(t, "2024-05-01", p.Get(model.FieldDate))
		assert.Equal(t, "approved", p.Get("status"))
		assert.Equal(t, "https://cdn/s1.png", p.SlotURL(model.Section1))
		assert.Equal(t, "https://cdn/old.png", p.SlotURL(model.FloorPlan1))
	}
	assert.Equal(t, "Nora", s.Record().Get(model.FieldClientName), "record only takes echoed keys")
	assert.Equal(t, "Nora K", s.Draft().Get(model.FieldClientName))
}

func TestSubmit_UnechoedEditNotVisibleAfterSubmit(t *testing.T) {
	c := &fakeClient{project: villa(), patch: model.Project{
		Fields: map[string]string{model.FieldDate: "2024-05-01"},
	}}
	s, _ := newLoaded(t, c)
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldClientName, "Nora K"))
	require.NoError(t, s.Submit(context.Background()))
	require.False(t, s.Editing())

	assert.Equal(t, s.Record().SlotURL(model.FloorPlan1), s.DisplayURL(model.FloorPlan1))

	require.NoError(t, s.BeginEdit())
	assert.True(t, s.Record().Equal(s.Draft()), "next edit starts from the confirmed record")
	assert.Equal(t, "Nora", s.Draft().Get(model.FieldClientName))
}

func TestSubmit_EmptyResponseIsNoop(t *testing.T) {
	c := &fakeClient{project: villa()}
	s, _ := newLoaded(t, c)
	before := s.Record()

	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.Submit(context.Background()))
	assert.True(t, before.Equal(s.Record()))
	assert.False(t, s.Editing())
}

func TestSubmit_Guards(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})
	assert.ErrorIs(t, s.Submit(context.Background()), ErrNotEditing)

	noID := villa()
	noID.ID = ""
	s2, _ := newLoaded(t, &fakeClient{project: noID})
	require.NoError(t, s2.BeginEdit())
	_, err := s2.BeginSubmit()
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestSubmit_SingleInFlight(t *testing.T) {
	c := &fakeClient{project: villa(), block: make(chan struct{})}
	s, _ := newLoaded(t, c)
	require.NoError(t, s.BeginEdit())

	done := make(chan error, 1)
	started := make(chan struct{})
	unsub := s.Subscribe(func(ch Change) {
		if ch == ChangeSubmitting && s.Submitting() {
			close(started)
		}
	})
	go func() { done <- s.Submit(context.Background()) }()
	<-started
	unsub()

	assert.ErrorIs(t, s.Submit(context.Background()), ErrSubmitInFlight)
	assert.ErrorIs(t, s.SetField(model.FieldTitle, "late"), ErrSubmitInFlight)
	assert.ErrorIs(t, s.BeginEdit(), ErrSubmitInFlight)

	close(c.block)
	require.NoError(t, <-done)
	assert.Len(t, c.updates, 1)
}

func TestSubmit_PayloadIsSnapshot(t *testing.T) {
	s, _ := newLoaded(t, &fakeClient{project: villa()})
	require.NoError(t, s.BeginEdit())
	require.NoError(t, s.SetField(model.FieldTitle, "one"))

	sub, err := s.BeginSubmit()
	require.NoError(t, err)
	sub.Draft.Fields[model.FieldTitle] = "mutated"
	assert.Equal(t, "one", s.Draft().Title())
	require.NoError(t, s.CompleteSubmit(sub, model.Project{}, nil))
}

func TestSubscribe_ReportsChanges(t *testing.T) {
	s := New(&fakeClient{project: villa()})
	var got []Change
	unsub := s.Subscribe(func(c Change) { got = append(got, c) })

	require.NoError(t, s.Load(context.Background(), "p1"))
	require.NoError(t, s.BeginEdit())
	assert.Contains(t, got, ChangeRecord)
	assert.Contains(t, got, ChangeEditMode)
	assert.Equal(t, ChangeEditMode, got[len(got)-1])

	unsub()
	unsub()
	n := len(got)
	require.NoError(t, s.SetField(model.FieldTitle, "x"))
	assert.Len(t, got, n)
}

func TestShare_Unsupported(t *testing.T) {
	sh := &fakeSharer{err: platform.ErrShareUnsupported}
	s, rec := newLoaded(t, &fakeClient{project: villa()}, WithSharer(sh))
	before := s.Record()

	err := s.Share(model.FloorPlan1)
	assert.True(t, IsKind(err, UnsupportedCapability))
	assert.Equal(t, []note{{Error, MsgShareUnsupported}}, rec.notes)
	assert.True(t, before.Equal(s.Record()))
	assert.False(t, s.Editing())
}

func TestShare_CopiesLink(t *testing.T) {
	sh := &fakeSharer{}
	s, rec := newLoaded(t, &fakeClient{project: villa()}, WithSharer(sh))

	require.NoError(t, s.Share(model.FloorPlan1))
	assert.Equal(t, []string{"Check out this Floor Plan 1"}, sh.titles)
	assert.Equal(t, []string{"https://cdn/old.png"}, sh.urls)
	assert.Equal(t, []note{{Info, "Copied link for Floor Plan 1."}}, rec.notes)
}

func TestViewAndShare_EmptySlotWarns(t *testing.T) {
	op := &fakeOpener{}
	sh := &fakeSharer{}
	s, rec := newLoaded(t, &fakeClient{project: villa()}, WithOpener(op), WithSharer(sh))

	assert.ErrorIs(t, s.View(model.Section1), ErrEmptySlot)
	assert.ErrorIs(t, s.Share(model.ThreeDModel1), ErrEmptySlot)
	assert.Empty(t, op.urls)
	assert.Empty(t, sh.urls)
	assert.Equal(t, 2, rec.count(Warning))
}

func TestView_OpensURL(t *testing.T) {
	op := &fakeOpener{}
	s, _ := newLoaded(t, &fakeClient{project: villa()}, WithOpener(op))
	require.NoError(t, s.View(model.FloorPlan1))
	assert.Equal(t, []string{"https://cdn/old.png"}, op.urls)

	op.err = errors.New("xdg-open: not found")
	rec := &recorder{}
	s.notifier = rec
	assert.Error(t, s.View(model.FloorPlan1))
	assert.Equal(t, 1, rec.count(Error))
}
