package session

import (
	"context"
	"strings"

	"interior-cli/internal/model"

	"go.uber.org/zap"
)

// Submission is a snapshot of what is being sent.
type Submission struct {
	ProjectID string
	Draft     model.Project
	Files     map[model.Slot]model.PendingFile
}

// Submit sends the draft and pending files, then reconciles the response into the
// record and the draft. Failures are reported through the Notifier and returned.
func (s *Session) Submit(ctx context.Context) error {
	sub, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	resp, err := s.Send(ctx, sub)
	return s.CompleteSubmit(sub, resp, err)
}

// Send performs the request for sub without touching session state; pass the result
// to CompleteSubmit.
func (s *Session) Send(ctx context.Context, sub Submission) (model.Project, error) {
	return s.client.Update(ctx, sub.ProjectID, sub.Draft, sub.Files)
}

// BeginSubmit marks a submission in flight and snapshots its payload.
func (s *Session) BeginSubmit() (Submission, error) {
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		return Submission{}, ErrNotEditing
	}
	if s.submitting {
		s.mu.Unlock()
		return Submission{}, ErrSubmitInFlight
	}
	id := strings.TrimSpace(s.draft.ID)
	if id == "" {
		s.mu.Unlock()
		return Submission{}, ErrMissingID
	}
	sub := Submission{
		ProjectID: id,
		Draft:     s.draft.Clone(),
		Files:     copyPending(s.pending),
	}
	s.submitting = true
	s.mu.Unlock()

	s.log.Info("update started",
		zap.String("projectId", id),
		zap.Int("fields", len(sub.Draft.Fields)),
		zap.Int("files", len(sub.Files)),
	)
	s.emit(ChangeSubmitting)
	return sub, nil
}

// CompleteSubmit applies the outcome of sub. On failure the draft, the pending files
// and edit mode are kept so the operator can retry.
func (s *Session) CompleteSubmit(sub Submission, resp model.Project, err error) error {
	if err != nil {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()

		s.log.Error("update failed", zap.String("projectId", sub.ProjectID), zap.Error(err))
		s.emit(ChangeSubmitting)
		s.notifier.Notify(Error, MsgUpdateFailed)
		return &Failure{Kind: UpdateFailure, ProjectID: sub.ProjectID, Err: err}
	}

	s.mu.Lock()
	s.record = model.Merge(s.record, resp)
	s.draft = model.Merge(s.draft, resp)
	s.pending = map[model.Slot]model.PendingFile{}
	s.editing = false
	s.submitting = false
	s.mu.Unlock()

	s.log.Info("update done", zap.String("projectId", sub.ProjectID), zap.Int("files", len(sub.Files)))
	s.emit(ChangeRecord, ChangeDraft, ChangePending, ChangeEditMode, ChangeSubmitting)
	s.notifier.Notify(Success, MsgUpdated)
	return nil
}
