package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/config"
)

func TestResolveBusURL(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		expected   string
	}{
		{"flag_wins", []string{"redis://flag:6379/0", "mem://env", "mem://cfg"}, "redis://flag:6379/0"},
		{"env_over_config", []string{"", "mem://env", "mem://cfg"}, "mem://env"},
		{"config", []string{"", "", "mem://cfg"}, "mem://cfg"},
		{"default", []string{"", "", ""}, config.DefaultBusURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveBusURL(tt.candidates...))
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing_file_is_ignored", func(t *testing.T) {
		assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("sets_unset_variables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("HERMES_BUS_URL=mem://dotenv\n"), 0o600))

		t.Setenv(envBusURL, "")
		require.NoError(t, os.Unsetenv(envBusURL))

		require.NoError(t, loadDotEnv(path))
		assert.Equal(t, "mem://dotenv", os.Getenv(envBusURL))
	})
}

func TestReadPayload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "say.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"text":"hi"}`), 0o600))

	tests := []struct {
		name     string
		arg      string
		stdin    string
		expected string
		wantErr  bool
	}{
		{"empty", "", "", "", false},
		{"inline", `{"a":1}`, "", `{"a":1}`, false},
		{"file", "@" + file, "", `{"text":"hi"}`, false},
		{"stdin", "-", `{"b":2}`, `{"b":2}`, false},
		{"missing_file", "@" + file + ".nope", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(tt.arg, strings.NewReader(tt.stdin))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestFilterSymbols(t *testing.T) {
	all := boundary.Symbols()

	dialogue := filterSymbols(all, "dialogue", "")
	require.NotEmpty(t, dialogue)
	for _, s := range dialogue {
		assert.Equal(t, "dialogue", s.Domain)
	}

	admin := filterSymbols(all, "", string(boundary.KindAdmin))
	assert.Len(t, admin, 7)

	subs := filterSymbols(all, "tts", string(boundary.KindSubscribe))
	for _, s := range subs {
		assert.True(t, strings.HasPrefix(s.Name, "hermes_tts_subscribe_"), s.Name)
	}

	assert.Len(t, filterSymbols(all, "", ""), len(all))
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"symbols", "pub", "sub", "watch", "audio-server", "replay"} {
		assert.Contains(t, names, want)
	}
}

func TestFilterEnvelopes(t *testing.T) {
	envs := []bus.Envelope{
		{Topic: "hermes/intent/lights"},
		{Topic: "hermes/tts/say"},
		{Topic: "hermes/intent/weather"},
	}

	assert.Len(t, filterEnvelopes(envs, "#"), 3)
	assert.Len(t, filterEnvelopes(envs, ""), 3)

	got := filterEnvelopes(envs, "hermes/intent/+")
	require.Len(t, got, 2)
	assert.Equal(t, "hermes/intent/weather", got[1].Topic)
	assert.Equal(t, "hermes/tts/say", envs[1].Topic, "input is left alone")
}
