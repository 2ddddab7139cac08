package session

import (
	"context"
	"strings"

	"interior-cli/internal/model"

	"go.uber.org/zap"
)

// Load fetches project id and seeds record and draft from it. An empty id puts the
// session in StatusEmpty without a request. The returned error is also kept in
// LoadError.
func (s *Session) Load(ctx context.Context, id string) error {
	if !s.BeginLoad(id) {
		return nil
	}
	rec, err := s.Fetch(ctx)
	return s.CompleteLoad(rec, err)
}

// Fetch performs the request for a load started with BeginLoad. It does not touch
// session state; pass the result to CompleteLoad.
func (s *Session) Fetch(ctx context.Context) (model.Project, error) {
	return s.client.Get(ctx, s.ProjectID())
}

// BeginLoad records the id to fetch and reports whether a request should be made.
func (s *Session) BeginLoad(id string) bool {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	s.projectID = id
	s.loadErr = nil
	if id == "" {
		s.status = StatusEmpty
		s.mu.Unlock()
		s.emit(ChangeStatus)
		return false
	}
	s.status = StatusLoading
	s.mu.Unlock()

	s.log.Debug("load started", zap.String("projectId", id))
	s.emit(ChangeStatus)
	return true
}

// CompleteLoad applies the outcome of a fetch started with BeginLoad. Results that
// arrive when no load is pending are dropped.
func (s *Session) CompleteLoad(rec model.Project, err error) error {
	s.mu.Lock()
	if s.status != StatusLoading {
		s.mu.Unlock()
		return nil
	}
	id := s.projectID
	if err != nil {
		f := &Failure{Kind: LoadFailure, ProjectID: id, Err: err}
		s.status = StatusFailed
		s.loadErr = f
		s.mu.Unlock()

		s.log.Error("load failed", zap.String("projectId", id), zap.Error(err))
		s.emit(ChangeStatus)
		return f
	}

	s.record = rec.Clone()
	s.draft = rec.Clone()
	s.pending = map[model.Slot]model.PendingFile{}
	wasEditing := s.editing
	s.editing = false
	s.status = StatusLoaded
	s.mu.Unlock()

	s.log.Info("project loaded", zap.String("projectId", id), zap.String("title", rec.Title()))
	changes := []Change{ChangeRecord, ChangeDraft, ChangePending}
	if wasEditing {
		changes = append(changes, ChangeEditMode)
	}
	s.emit(append(changes, ChangeStatus)...)
	return nil
}
