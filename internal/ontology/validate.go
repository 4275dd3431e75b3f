package ontology

import (
	"errors"
	"fmt"
)

// ErrMissingField is wrapped by every validation failure.
var ErrMissingField = errors.New("missing required field")

// Validator is implemented by records that have required fields.
type Validator interface {
	Validate() error
}

// Validate checks v when it implements Validator.
func Validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	return nil
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, field)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the site id is set.
func (m *SiteMessage) Validate() error {
	return required("siteId", m.SiteID)
}

// Validate checks the site and model ids.
func (m *HotwordDetectedMessage) Validate() error {
	return firstErr(required("siteId", m.SiteID), required("modelId", m.ModelID))
}

// Validate checks that the site id is set.
func (m *AsrStartListeningMessage) Validate() error {
	return required("siteId", m.SiteID)
}

// Validate checks that the site id is set.
func (m *TextCapturedMessage) Validate() error {
	return required("siteId", m.SiteID)
}

// Validate checks the text and site id.
func (m *SayMessage) Validate() error {
	return firstErr(required("text", m.Text), required("siteId", m.SiteID))
}

// Validate checks that the input is set.
func (m *NluQueryMessage) Validate() error {
	return required("input", m.Input)
}

// Validate checks the input, intent and slot names.
func (m *NluSlotQueryMessage) Validate() error {
	return firstErr(
		required("input", m.Input),
		required("intentName", m.IntentName),
		required("slotName", m.SlotName),
	)
}

// Validate checks the intent name.
func (m *NluIntentMessage) Validate() error {
	return required("intent.intentName", m.Intent.IntentName)
}

// Validate checks the id, payload and site.
func (m *PlayBytesMessage) Validate() error {
	if err := firstErr(required("id", m.ID), required("siteId", m.SiteID)); err != nil {
		return err
	}
	if len(m.WavBytes) == 0 {
		return fmt.Errorf("%w: wavBytes", ErrMissingField)
	}
	return nil
}

// Validate checks the id and site.
func (m *PlayFinishedMessage) Validate() error {
	return firstErr(required("id", m.ID), required("siteId", m.SiteID))
}

// Validate checks the frame and site.
func (m *AudioFrameMessage) Validate() error {
	if len(m.WavFrame) == 0 {
		return fmt.Errorf("%w: wavFrame", ErrMissingField)
	}
	return required("siteId", m.SiteID)
}

// Validate checks the session, site and intent.
func (m *IntentMessage) Validate() error {
	return firstErr(
		required("sessionId", m.SessionID),
		required("siteId", m.SiteID),
		required("intent.intentName", m.Intent.IntentName),
	)
}

// Validate checks the session and site.
func (m *IntentNotRecognizedMessage) Validate() error {
	return firstErr(required("sessionId", m.SessionID), required("siteId", m.SiteID))
}

// Validate checks the init type and the notification text.
func (s *SessionInit) Validate() error {
	switch s.Type {
	case SessionInitAction:
		return nil
	case SessionInitNotification:
		return required("init.text", s.Text)
	case "":
		return fmt.Errorf("%w: init.type", ErrMissingField)
	default:
		return fmt.Errorf("unknown session init type %q", s.Type)
	}
}

// Validate checks the session init.
func (m *StartSessionMessage) Validate() error {
	return m.Init.Validate()
}

// Validate checks the session id and text.
func (m *ContinueSessionMessage) Validate() error {
	return firstErr(required("sessionId", m.SessionID), required("text", m.Text))
}

// Validate checks the session id.
func (m *EndSessionMessage) Validate() error {
	return required("sessionId", m.SessionID)
}

// Validate checks the session and site.
func (m *SessionStartedMessage) Validate() error {
	return firstErr(required("sessionId", m.SessionID), required("siteId", m.SiteID))
}

// Validate checks the session and site.
func (m *SessionQueuedMessage) Validate() error {
	return firstErr(required("sessionId", m.SessionID), required("siteId", m.SiteID))
}

// Validate checks the session, site and termination reason.
func (m *SessionEndedMessage) Validate() error {
	if err := firstErr(required("sessionId", m.SessionID), required("siteId", m.SiteID)); err != nil {
		return err
	}
	switch m.Termination.Reason {
	case TerminationNominal, TerminationSiteUnavailable, TerminationAbortedByUser,
		TerminationIntentNotRecognized, TerminationTimeout, TerminationError:
		return nil
	case "":
		return fmt.Errorf("%w: termination.reason", ErrMissingField)
	default:
		return fmt.Errorf("unknown termination reason %q", m.Termination.Reason)
	}
}

// Validate checks that there is at least one known operation.
func (m *InjectionRequestMessage) Validate() error {
	if len(m.Operations) == 0 {
		return fmt.Errorf("%w: operations", ErrMissingField)
	}
	for i, op := range m.Operations {
		if op.Kind != InjectionAdd && op.Kind != InjectionAddFromVanilla {
			return fmt.Errorf("operations[%d]: unknown injection kind %q", i, op.Kind)
		}
	}
	return nil
}

// Validate checks the version string.
func (m *VersionMessage) Validate() error {
	return required("version", m.Version)
}

// Validate checks the error string.
func (m *ErrorMessage) Validate() error {
	return required("error", m.Error)
}
