package ontology

import (
	"errors"
	"strings"
)

// Component is a hermes component that answers version requests and
// reports errors on its own topic prefix.
type Component string

// Components.
const (
	ComponentHotword         Component = "hotword"
	ComponentAsr             Component = "asr"
	ComponentTts             Component = "tts"
	ComponentNlu             Component = "nlu"
	ComponentAudioServer     Component = "audioServer"
	ComponentDialogueManager Component = "dialogueManager"
	ComponentInjection       Component = "injection"
)

// Topic wildcards, MQTT style.
const (
	SingleLevelWildcard = "+"
	MultiLevelWildcard  = "#"
)

const root = "hermes"

// ErrInvalidTopicLevel is returned for an id that cannot stand as one level
// of a published topic.
var ErrInvalidTopicLevel = errors.New("must be non-empty and must not contain '/', '+' or '#'")

// CheckTopicLevel reports whether s names exactly one topic level.
func CheckTopicLevel(s string) error {
	if s == "" || strings.ContainsAny(s, "/+#") {
		return ErrInvalidTopicLevel
	}
	return nil
}

// Fixed topics.
const (
	TopicSoundFeedbackToggleOn  = "hermes/feedback/sound/toggleOn"
	TopicSoundFeedbackToggleOff = "hermes/feedback/sound/toggleOff"

	TopicAsrStartListening       = "hermes/asr/startListening"
	TopicAsrStopListening        = "hermes/asr/stopListening"
	TopicAsrTextCaptured         = "hermes/asr/textCaptured"
	TopicAsrPartialTextCaptured  = "hermes/asr/partialTextCaptured"
	TopicTtsSay                  = "hermes/tts/say"
	TopicTtsSayFinished          = "hermes/tts/sayFinished"
	TopicNluQuery                = "hermes/nlu/query"
	TopicNluPartialQuery         = "hermes/nlu/partialQuery"
	TopicNluSlotParsed           = "hermes/nlu/slotParsed"
	TopicNluIntentParsed         = "hermes/nlu/intentParsed"
	TopicNluIntentNotRecognized  = "hermes/nlu/intentNotRecognized"
	TopicDialogueStartSession    = "hermes/dialogueManager/startSession"
	TopicDialogueContinueSession = "hermes/dialogueManager/continueSession"
	TopicDialogueEndSession      = "hermes/dialogueManager/endSession"
	TopicDialogueSessionQueued   = "hermes/dialogueManager/sessionQueued"
	TopicDialogueSessionStarted  = "hermes/dialogueManager/sessionStarted"
	TopicDialogueSessionEnded    = "hermes/dialogueManager/sessionEnded"
	TopicDialogueNotRecognized   = "hermes/dialogueManager/intentNotRecognized"
	TopicInjectionPerform        = "hermes/injection/perform"
	TopicInjectionStatusRequest  = "hermes/injection/statusRequest"
	TopicInjectionStatus         = "hermes/injection/status"
)

func join(parts ...string) string {
	return strings.Join(append([]string{root}, parts...), "/")
}

// HotwordDetectedTopic is the detection topic of one hotword model. An empty
// id yields the single-level wildcard filter matching every hotword.
func HotwordDetectedTopic(hotwordID string) string {
	return join("hotword", orWildcard(hotwordID), "detected")
}

// IntentTopic is the topic of one intent. An empty name yields a filter
// matching every intent.
func IntentTopic(intentName string) string {
	if intentName == "" {
		return join("intent", MultiLevelWildcard)
	}
	return join("intent", intentName)
}

// PlayBytesTopic is the topic a PlayBytesMessage is published on. An empty
// site or id becomes a single-level wildcard.
func PlayBytesTopic(siteID, id string) string {
	return join("audioServer", orWildcard(siteID), "playBytes", orWildcard(id))
}

// PlayFinishedTopic is the play finished topic of a site.
func PlayFinishedTopic(siteID string) string {
	return join("audioServer", orWildcard(siteID), "playFinished")
}

// AudioFrameTopic is the audio frame topic of a site.
func AudioFrameTopic(siteID string) string {
	return join("audioServer", orWildcard(siteID), "audioFrame")
}

// VersionRequestTopic is where version requests for c are published.
func VersionRequestTopic(c Component) string {
	return join(string(c), "versionRequest")
}

// VersionTopic is where c publishes its version.
func VersionTopic(c Component) string {
	return join(string(c), "version")
}

// ErrorTopic is where c reports errors.
func ErrorTopic(c Component) string {
	return join(string(c), "error")
}

func orWildcard(s string) string {
	if s == "" {
		return SingleLevelWildcard
	}
	return s
}
