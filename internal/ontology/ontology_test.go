package ontology

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, "hermes/hotword/default/detected", HotwordDetectedTopic("default"))
	assert.Equal(t, "hermes/hotword/+/detected", HotwordDetectedTopic(""))
	assert.Equal(t, "hermes/intent/turnOn", IntentTopic("turnOn"))
	assert.Equal(t, "hermes/intent/#", IntentTopic(""))
	assert.Equal(t, "hermes/audioServer/kitchen/playBytes/7", PlayBytesTopic("kitchen", "7"))
	assert.Equal(t, "hermes/audioServer/+/playFinished", PlayFinishedTopic(""))
	assert.Equal(t, "hermes/dialogueManager/versionRequest", VersionRequestTopic(ComponentDialogueManager))
	assert.Equal(t, "hermes/audioServer/error", ErrorTopic(ComponentAudioServer))
	assert.Equal(t, "hermes/nlu/version", VersionTopic(ComponentNlu))
}

func TestCheckTopicLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"alexa", false},
		{"hey-snips_2", false},
		{"", true},
		{"a/b", true},
		{"+", true},
		{"#", true},
		{"kitchen+", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := CheckTopicLevel(tt.level)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTopicLevel)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		msg     any
		wantErr bool
	}{
		{"site ok", &SiteMessage{SiteID: "default"}, false},
		{"site missing", &SiteMessage{}, true},
		{"say missing text", &SayMessage{SiteID: "default"}, true},
		{"action session", &StartSessionMessage{Init: SessionInit{Type: SessionInitAction}}, false},
		{"notification without text", &StartSessionMessage{Init: SessionInit{Type: SessionInitNotification}}, true},
		{"unknown init", &StartSessionMessage{Init: SessionInit{Type: "bogus"}}, true},
		{"play bytes empty", &PlayBytesMessage{ID: "1", SiteID: "default"}, true},
		{"ended nominal", &SessionEndedMessage{SessionID: "s", SiteID: "d", Termination: SessionTermination{Reason: TerminationNominal}}, false},
		{"ended unknown", &SessionEndedMessage{SessionID: "s", SiteID: "d", Termination: SessionTermination{Reason: "later"}}, true},
		{"injection empty", &InjectionRequestMessage{}, true},
		{"injection ok", &InjectionRequestMessage{Operations: []InjectionOperation{{Kind: InjectionAdd}}}, false},
		{"no validator", &SayFinishedMessage{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidate_MissingFieldIsWrapped(t *testing.T) {
	err := (&EndSessionMessage{}).Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "sessionId")
}

func TestJSONFieldNames(t *testing.T) {
	msg := SessionStartedMessage{SessionID: "abc", SiteID: "default"}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionId":"abc","siteId":"default"}`, string(data))

	var play PlayBytesMessage
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","siteId":"s","wavBytes":"UklGRg=="}`), &play))
	assert.Equal(t, []byte("RIFF"), play.WavBytes)
}
