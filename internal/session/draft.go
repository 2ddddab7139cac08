package session

import (
	"strings"

	"interior-cli/internal/model"

	"go.uber.org/zap"
)

// BeginEdit enters edit mode with a fresh draft copied from the record. Unsaved field
// edits are discarded; pending files are kept.
func (s *Session) BeginEdit() error {
	s.mu.Lock()
	if s.status != StatusLoaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	wasEditing := s.editing
	s.draft = s.record.Clone()
	s.editing = true
	id := s.projectID
	s.mu.Unlock()

	s.log.Debug("edit started", zap.String("projectId", id))
	if wasEditing {
		s.emit(ChangeDraft)
		return nil
	}
	s.emit(ChangeDraft, ChangeEditMode)
	return nil
}

// SetField changes one scalar field of the draft.
func (s *Session) SetField(name, value string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return ErrEmptyField
	case model.IsReadOnlyField(name):
		return ErrReadOnlyField
	case model.IsSlotKey(name):
		return ErrSlotField
	}

	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.draft.Fields == nil {
		s.draft.Fields = map[string]string{}
	}
	s.draft.Fields[name] = value
	s.mu.Unlock()

	s.emit(ChangeDraft)
	return nil
}

// ReplaceFile stages f as the new content of slot. The draft URL is left alone until
// the server returns the new one.
func (s *Session) ReplaceFile(slot model.Slot, f model.PendingFile) error {
	if !slot.Valid() {
		return ErrUnknownSlot
	}

	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.pending[slot] = f
	s.mu.Unlock()

	s.log.Debug("file staged", zap.String("slot", string(slot)), zap.String("file", f.Name), zap.Int64("size", f.Size))
	s.emit(ChangePending)
	return nil
}

// ClearFile drops the staged file for slot, if any.
func (s *Session) ClearFile(slot model.Slot) error {
	s.mu.Lock()
	if err := s.editableLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	if _, ok := s.pending[slot]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.pending, slot)
	s.mu.Unlock()

	s.emit(ChangePending)
	return nil
}

func (s *Session) editableLocked() error {
	if !s.editing {
		return ErrNotEditing
	}
	if s.submitting {
		return ErrSubmitInFlight
	}
	return nil
}
