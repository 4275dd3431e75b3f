package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/audio"
	"github.com/jmylchreest/hermes/internal/hermes"
)

var audioServerOpts struct {
	siteID    string
	volume    float64
	queueSize int
}

var audioServerCmd = &cobra.Command{
	Use:   "audio-server",
	Short: "Play sounds published for a site",
	Long: `Run an audio server for one site.

WAV payloads published on hermes/audioServer/<site>/playBytes/<id> are
played one at a time through the default output device, each followed by
a playFinished message. Sound feedback toggles for the site mute and
unmute playback.

Examples:
  hermesctl audio-server --site kitchen --volume 0.6`,
	Args: cobra.NoArgs,
	RunE: runAudioServer,
}

func init() {
	rootCmd.AddCommand(audioServerCmd)

	audioServerCmd.Flags().StringVar(&audioServerOpts.siteID, "site", "default",
		"Site to play sounds for (empty = every site)")
	audioServerCmd.Flags().Float64Var(&audioServerOpts.volume, "volume", 1.0,
		"Playback volume (0.0 to 1.0)")
	audioServerCmd.Flags().IntVar(&audioServerOpts.queueSize, "queue", 16,
		"Sounds waiting to be played before new ones are rejected")
}

func runAudioServer(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	h, err := hermes.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(nil, logger)
	player.SetVolume(audioServerOpts.volume)

	server := audio.NewServer(h, player, audio.ServerOptions{
		SiteID:    audioServerOpts.siteID,
		Version:   version,
		QueueSize: audioServerOpts.queueSize,
	}, logger)
	if err := server.Start(); err != nil {
		_ = h.Close()
		player.Close()
		return err
	}

	logger.Info("listening", "site", audioServerOpts.siteID, "bus", cfg.Bus.URL)
	<-ctx.Done()
	logger.Info("audio server stopping")

	err = errors.Join(server.Close(), h.Close())
	player.Close()
	return err
}
