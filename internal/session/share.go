package session

import (
	"errors"
	"fmt"
	"strings"

	"interior-cli/internal/model"
	"interior-cli/internal/platform"

	"go.uber.org/zap"
)

// View opens the slot's current file.
func (s *Session) View(slot model.Slot) error {
	url, err := s.slotURL(slot)
	if err != nil {
		return err
	}
	if s.opener == nil {
		s.notifier.Notify(Error, msgOpenFailed(slot.Label()))
		return &Failure{Kind: UnsupportedCapability, ProjectID: s.ProjectID(), Err: errors.New("no viewer configured")}
	}
	if err := s.opener.OpenURL(url); err != nil {
		s.log.Error("open failed", zap.String("slot", string(slot)), zap.Error(err))
		s.notifier.Notify(Error, msgOpenFailed(slot.Label()))
		return err
	}
	return nil
}

// Share passes the slot's link to the platform share capability.
func (s *Session) Share(slot model.Slot) error {
	url, err := s.slotURL(slot)
	if err != nil {
		return err
	}
	if s.sharer == nil {
		return s.shareUnsupported(platform.ErrShareUnsupported)
	}
	title := fmt.Sprintf("Check out this %s", slot.Label())
	if err := s.sharer.Share(title, url); err != nil {
		if errors.Is(err, platform.ErrShareUnsupported) {
			return s.shareUnsupported(err)
		}
		s.log.Error("share failed", zap.String("slot", string(slot)), zap.Error(err))
		s.notifier.Notify(Error, msgShareFailed(slot.Label()))
		return err
	}
	s.notifier.Notify(Info, msgShared(slot.Label()))
	return nil
}

func (s *Session) slotURL(slot model.Slot) (string, error) {
	if !slot.Valid() {
		return "", ErrUnknownSlot
	}
	if s.Status() != StatusLoaded {
		return "", ErrNotLoaded
	}
	url := strings.TrimSpace(s.DisplayURL(slot))
	if url == "" {
		s.notifier.Notify(Warning, msgEmptySlot(slot.Label()))
		return "", ErrEmptySlot
	}
	return url, nil
}

func (s *Session) shareUnsupported(err error) error {
	s.log.Warn("share unavailable", zap.Error(err))
	s.notifier.Notify(Error, MsgShareUnsupported)
	return &Failure{Kind: UnsupportedCapability, ProjectID: s.ProjectID(), Err: err}
}
