package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/log"
)

// Send maps one canonical event onto the session's device.
//
// The returned error only explains why an event was discarded
// (device.ErrUnknownKey, device.ErrValueType, ErrClosed). Native write
// failures are logged and absorbed; the device stays open for the next
// event.
func (s *Session) Send(ev device.Event) error {
	t := s.ctrl.Resolve(ev.Key)
	if t.Kind == device.KindUnknown {
		s.logger.Warn("Unknown key, event discarded", "key", ev.Key, "value", ev.Value)
		return fmt.Errorf("%w: %q", device.ErrUnknownKey, ev.Key)
	}
	raw, err := s.ctrl.Emit(t, ev.Value)
	if err != nil {
		s.logger.Warn("Event discarded", "key", ev.Key, "value", ev.Value, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("Event after close discarded", "key", ev.Key)
		return ErrClosed
	}

	switch t.Kind {
	case device.KindButton:
		err = s.pad.WriteButton(t.Code, raw != 0)
	case device.KindAxis:
		err = s.pad.WriteAxis(t.Code, raw)
	case device.KindHat:
		err = s.pad.WriteHat(t.Code, raw)
	default:
		err = errors.ErrUnsupported
	}
	if err != nil {
		s.logger.Error("Native write failed", "key", ev.Key, "code", codeName(t), "error", err)
		return nil
	}
	s.events.Add(1)
	s.logger.Log(context.Background(), log.LevelTrace, "Input written", "key", ev.Key, "value", ev.Value, "code", codeName(t), "raw", raw)
	return nil
}

func codeName(t device.Target) string {
	if t.Kind == device.KindButton {
		return device.KeyName(t.Code)
	}
	return device.AbsName(t.Code)
}
