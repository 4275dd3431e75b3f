package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/store"
)

var replayOpts struct {
	speed  float64
	filter string
}

var replayCmd = &cobra.Command{
	Use:   "replay <capture.jsonl>",
	Short: "Publish the messages of a capture file again",
	Long: `Publish every message recorded with "hermesctl sub --record" again,
in the recorded order.

By default messages are spaced as they were recorded. --speed 2 replays
twice as fast; --speed 0 sends them back to back.

Examples:
  hermesctl replay session.jsonl
  hermesctl replay session.jsonl --filter 'hermes/intent/#' --speed 0`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Float64Var(&replayOpts.speed, "speed", 1,
		"Replay speed factor (0 = no delays)")
	replayCmd.Flags().StringVar(&replayOpts.filter, "filter", "#",
		"Only replay messages matching this topic filter")
}

func runReplay(cmd *cobra.Command, args []string) error {
	envs, skipped, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if skipped > 0 {
		logger.Warn("skipped malformed capture lines", "path", args[0], "count", skipped)
	}
	envs = filterEnvelopes(envs, replayOpts.filter)
	gaps := store.Gaps(envs, replayOpts.speed)

	ctx, cancel := signalContext()
	defer cancel()

	b, err := bus.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for i, env := range envs {
		if gaps[i] > 0 {
			timer.Reset(gaps[i])
			select {
			case <-ctx.Done():
				return nil
			case <-timer.C:
			}
		}
		if err := b.Publish(ctx, env.Topic, env.Payload); err != nil {
			return fmt.Errorf("publish %s: %w", env.Topic, err)
		}
		logger.Debug("replayed", "topic", env.Topic, "bytes", len(env.Payload))
	}

	logger.Info("replay finished", "messages", len(envs))
	return nil
}

func filterEnvelopes(envs []bus.Envelope, filter string) []bus.Envelope {
	if filter == "" || filter == "#" {
		return envs
	}
	out := envs[:0:0]
	for _, env := range envs {
		if bus.Match(filter, env.Topic) {
			out = append(out, env)
		}
	}
	return out
}
