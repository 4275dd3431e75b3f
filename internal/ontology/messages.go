package ontology

// SiteMessage targets a single site, optionally within a session.
type SiteMessage struct {
	SiteID    string `json:"siteId"`
	SessionID string `json:"sessionId,omitempty"`
}

// HotwordDetectedMessage is published when a wake word model fires.
type HotwordDetectedMessage struct {
	SiteID             string   `json:"siteId"`
	ModelID            string   `json:"modelId"`
	ModelVersion       string   `json:"modelVersion,omitempty"`
	ModelType          string   `json:"modelType,omitempty"`
	CurrentSensitivity *float32 `json:"currentSensitivity,omitempty"`
	DetectionSignalMs  *int64   `json:"detectionSignalMs,omitempty"`
	EndSignalMs        *int64   `json:"endSignalMs,omitempty"`
}

// AsrStartListeningMessage asks the speech recognizer to start capturing.
type AsrStartListeningMessage struct {
	SiteID        string `json:"siteId"`
	SessionID     string `json:"sessionId,omitempty"`
	StartSignalMs *int64 `json:"startSignalMs,omitempty"`
}

// AsrDecodingDuration is the time window of a token in seconds.
type AsrDecodingDuration struct {
	Start float32 `json:"start"`
	End   float32 `json:"end"`
}

// AsrToken is one recognized word with its confidence and position.
type AsrToken struct {
	Value      string              `json:"value"`
	Confidence float32             `json:"confidence"`
	RangeStart int                 `json:"rangeStart"`
	RangeEnd   int                 `json:"rangeEnd"`
	Time       AsrDecodingDuration `json:"time"`
}

// TextCapturedMessage carries a final or partial transcription.
type TextCapturedMessage struct {
	Text       string     `json:"text"`
	Likelihood float32    `json:"likelihood"`
	Tokens     []AsrToken `json:"tokens,omitempty"`
	Seconds    float32    `json:"seconds"`
	SiteID     string     `json:"siteId"`
	SessionID  string     `json:"sessionId,omitempty"`
}

// SayMessage asks the speech synthesizer to speak some text.
type SayMessage struct {
	Text      string `json:"text"`
	Lang      string `json:"lang,omitempty"`
	ID        string `json:"id,omitempty"`
	SiteID    string `json:"siteId"`
	SessionID string `json:"sessionId,omitempty"`
}

// SayFinishedMessage is published once a SayMessage has been spoken.
type SayFinishedMessage struct {
	ID        string `json:"id,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// NluQueryMessage asks the language understanding engine to parse an input.
type NluQueryMessage struct {
	Input        string     `json:"input"`
	AsrTokens    []AsrToken `json:"asrTokens,omitempty"`
	IntentFilter []string   `json:"intentFilter,omitempty"`
	ID           string     `json:"id,omitempty"`
	SessionID    string     `json:"sessionId,omitempty"`
}

// NluSlotQueryMessage asks for a single slot of a known intent.
type NluSlotQueryMessage struct {
	Input      string     `json:"input"`
	AsrTokens  []AsrToken `json:"asrTokens,omitempty"`
	IntentName string     `json:"intentName"`
	SlotName   string     `json:"slotName"`
	ID         string     `json:"id,omitempty"`
	SessionID  string     `json:"sessionId,omitempty"`
}

// SlotValue is the resolved value of a slot. Kind names the value family
// (custom, number, ordinal, instantTime, timeInterval, amountOfMoney,
// temperature, duration, percentage, musicAlbum, ...); the remaining fields
// are set depending on the kind.
type SlotValue struct {
	Kind      string   `json:"kind"`
	Value     any      `json:"value,omitempty"`
	Grain     string   `json:"grain,omitempty"`
	Precision string   `json:"precision,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	From      string   `json:"from,omitempty"`
	To        string   `json:"to,omitempty"`
	Years     *int64   `json:"years,omitempty"`
	Months    *int64   `json:"months,omitempty"`
	Days      *int64   `json:"days,omitempty"`
	Hours     *int64   `json:"hours,omitempty"`
	Minutes   *int64   `json:"minutes,omitempty"`
	Seconds   *float64 `json:"seconds,omitempty"`
}

// Range is a character range into the parsed input.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Slot is a parsed slot of an intent.
type Slot struct {
	RawValue        string    `json:"rawValue"`
	Value           SlotValue `json:"value"`
	Range           *Range    `json:"range,omitempty"`
	Entity          string    `json:"entity"`
	SlotName        string    `json:"slotName"`
	ConfidenceScore *float32  `json:"confidenceScore,omitempty"`
}

// IntentClassifierResult is the classified intent and its score.
type IntentClassifierResult struct {
	IntentName      string  `json:"intentName"`
	ConfidenceScore float32 `json:"confidenceScore"`
}

// NluSlotMessage answers an NluSlotQueryMessage.
type NluSlotMessage struct {
	ID         string `json:"id,omitempty"`
	Input      string `json:"input"`
	IntentName string `json:"intentName"`
	Slot       *Slot  `json:"slot,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
}

// NluIntentMessage answers an NluQueryMessage with a recognized intent.
type NluIntentMessage struct {
	ID        string                 `json:"id,omitempty"`
	Input     string                 `json:"input"`
	Intent    IntentClassifierResult `json:"intent"`
	Slots     []Slot                 `json:"slots,omitempty"`
	SessionID string                 `json:"sessionId,omitempty"`
}

// NluIntentNotRecognizedMessage answers an NluQueryMessage that matched nothing.
type NluIntentNotRecognizedMessage struct {
	ID              string  `json:"id,omitempty"`
	Input           string  `json:"input"`
	SessionID       string  `json:"sessionId,omitempty"`
	ConfidenceScore float32 `json:"confidenceScore"`
}

// PlayBytesMessage asks the audio server of a site to play a WAV buffer.
type PlayBytesMessage struct {
	ID       string `json:"id"`
	WavBytes []byte `json:"wavBytes"`
	SiteID   string `json:"siteId"`
}

// PlayFinishedMessage is published once a PlayBytesMessage has been played.
type PlayFinishedMessage struct {
	ID     string `json:"id"`
	SiteID string `json:"siteId"`
}

// AudioFrameMessage carries one captured WAV frame from a site.
type AudioFrameMessage struct {
	WavFrame []byte `json:"wavFrame"`
	SiteID   string `json:"siteId"`
}

// IntentMessage is an intent recognized inside a dialogue session.
type IntentMessage struct {
	SessionID     string                 `json:"sessionId"`
	CustomData    string                 `json:"customData,omitempty"`
	SiteID        string                 `json:"siteId"`
	Input         string                 `json:"input"`
	Intent        IntentClassifierResult `json:"intent"`
	Slots         []Slot                 `json:"slots,omitempty"`
	AsrTokens     [][]AsrToken           `json:"asrTokens,omitempty"`
	AsrConfidence *float32               `json:"asrConfidence,omitempty"`
}

// IntentNotRecognizedMessage is sent when a session input matched no intent.
type IntentNotRecognizedMessage struct {
	SessionID       string  `json:"sessionId"`
	CustomData      string  `json:"customData,omitempty"`
	SiteID          string  `json:"siteId"`
	Input           string  `json:"input,omitempty"`
	ConfidenceScore float32 `json:"confidenceScore"`
}

// SessionInitType selects how a session starts.
type SessionInitType string

// Session init types.
const (
	SessionInitAction       SessionInitType = "action"
	SessionInitNotification SessionInitType = "notification"
)

// SessionInit describes how a new session starts. Text is required for
// notifications; the other fields only apply to actions.
type SessionInit struct {
	Type                    SessionInitType `json:"type"`
	Text                    string          `json:"text,omitempty"`
	IntentFilter            []string        `json:"intentFilter,omitempty"`
	CanBeEnqueued           bool            `json:"canBeEnqueued,omitempty"`
	SendIntentNotRecognized bool            `json:"sendIntentNotRecognized,omitempty"`
}

// StartSessionMessage asks the dialogue manager to open a session.
type StartSessionMessage struct {
	Init       SessionInit `json:"init"`
	CustomData string      `json:"customData,omitempty"`
	SiteID     string      `json:"siteId,omitempty"`
}

// ContinueSessionMessage keeps a session open and waits for more input.
type ContinueSessionMessage struct {
	SessionID               string   `json:"sessionId"`
	Text                    string   `json:"text"`
	IntentFilter            []string `json:"intentFilter,omitempty"`
	CustomData              string   `json:"customData,omitempty"`
	Slot                    string   `json:"slot,omitempty"`
	SendIntentNotRecognized bool     `json:"sendIntentNotRecognized,omitempty"`
}

// EndSessionMessage closes a session, optionally speaking a last sentence.
type EndSessionMessage struct {
	SessionID string `json:"sessionId"`
	Text      string `json:"text,omitempty"`
}

// SessionStartedMessage is published when a session opens.
type SessionStartedMessage struct {
	SessionID                string `json:"sessionId"`
	CustomData               string `json:"customData,omitempty"`
	SiteID                   string `json:"siteId"`
	ReactivatedFromSessionID string `json:"reactivatedFromSessionId,omitempty"`
}

// SessionQueuedMessage is published when a session waits for a busy site.
type SessionQueuedMessage struct {
	SessionID  string `json:"sessionId"`
	CustomData string `json:"customData,omitempty"`
	SiteID     string `json:"siteId"`
}

// TerminationReason says why a session ended.
type TerminationReason string

// Termination reasons.
const (
	TerminationNominal             TerminationReason = "nominal"
	TerminationSiteUnavailable     TerminationReason = "siteUnavailable"
	TerminationAbortedByUser       TerminationReason = "abortedByUser"
	TerminationIntentNotRecognized TerminationReason = "intentNotRecognized"
	TerminationTimeout             TerminationReason = "timeout"
	TerminationError               TerminationReason = "error"
)

// SessionTermination carries the termination reason and, for errors, a detail.
type SessionTermination struct {
	Reason TerminationReason `json:"reason"`
	Error  string            `json:"error,omitempty"`
}

// SessionEndedMessage is published when a session closes.
type SessionEndedMessage struct {
	SessionID   string             `json:"sessionId"`
	CustomData  string             `json:"customData,omitempty"`
	Termination SessionTermination `json:"termination"`
	SiteID      string             `json:"siteId"`
}

// InjectionKind selects how injected values combine with the trained model.
type InjectionKind string

// Injection kinds.
const (
	InjectionAdd            InjectionKind = "add"
	InjectionAddFromVanilla InjectionKind = "addFromVanilla"
)

// InjectionOperation adds entity values to the recognizers.
type InjectionOperation struct {
	Kind   InjectionKind       `json:"kind"`
	Values map[string][]string `json:"values"`
}

// InjectionRequestMessage asks for new entity values to be injected.
type InjectionRequestMessage struct {
	Operations    []InjectionOperation `json:"operations"`
	Lexicon       map[string][]string  `json:"lexicon,omitempty"`
	CrossLanguage string               `json:"crossLanguage,omitempty"`
	ID            string               `json:"id,omitempty"`
}

// InjectionStatusMessage reports the date of the last completed injection.
type InjectionStatusMessage struct {
	LastInjectionDate string `json:"lastInjectionDate,omitempty"`
}

// VersionMessage answers a version request of a component.
type VersionMessage struct {
	Version string `json:"version"`
}

// ErrorMessage is published by a component that failed to handle a message.
type ErrorMessage struct {
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error"`
	Context   string `json:"context,omitempty"`
}
