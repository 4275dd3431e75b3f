package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/output"
	"github.com/jmylchreest/hermes/internal/store"
)

var subOpts struct {
	format   string
	template string
	count    int
	record   string
	quiet    bool
}

var subCmd = &cobra.Command{
	Use:   "sub [filter]",
	Short: "Stream bus messages matching a topic filter",
	Long: `Stream bus messages to stdout until interrupted.

The filter is a topic where "+" matches one level and a trailing "#"
matches the rest. It defaults to "#", every message.

Examples:
  # Everything the dialogue manager says
  hermesctl sub 'hermes/dialogueManager/#'

  # The next intent as JSON
  hermesctl sub 'hermes/intent/#' --count 1 --format json

  # Record a session for hermesctl replay
  hermesctl sub '#' --record session.jsonl --quiet

  # Custom line format
  hermesctl sub '#' --template '{{.Envelope.Topic}} {{truncate .Payload 40}}'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSub,
}

func init() {
	rootCmd.AddCommand(subCmd)

	subCmd.Flags().StringVarP(&subOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	subCmd.Flags().StringVar(&subOpts.template, "template", "",
		"Custom Go template for plain output")
	subCmd.Flags().IntVarP(&subOpts.count, "count", "n", 0,
		"Exit after this many messages (0=unlimited)")
	subCmd.Flags().StringVar(&subOpts.record, "record", "",
		"Append every message to this capture file")
	subCmd.Flags().BoolVarP(&subOpts.quiet, "quiet", "q", false,
		"Do not print messages")
}

func runSub(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(subOpts.format)
	if err != nil {
		return err
	}
	opts := output.DefaultFormatterOptions()
	opts.Template = subOpts.template
	formatter := output.NewFormatter(format, opts)

	filter := "#"
	if len(args) > 0 {
		filter = args[0]
	}

	var capture *store.Capture
	if subOpts.record != "" {
		capture, err = store.NewCapture(subOpts.record)
		if err != nil {
			return err
		}
		defer func() {
			if err := capture.Close(); err != nil {
				logger.Warn("failed to close capture", "path", capture.Path(), "error", err)
			}
			logger.Info("capture closed", "path", capture.Path(), "messages", capture.Count())
		}()
	}

	ctx, cancel := signalContext()
	defer cancel()

	b, err := bus.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	// Handlers run on several workers; printing happens here only.
	envs := make(chan bus.Envelope, 64)
	sub, err := b.Subscribe(filter, func(env bus.Envelope) {
		select {
		case envs <- env:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", filter, err)
	}
	defer sub.Unsubscribe()

	logger.Debug("subscribed", "filter", filter, "bus", cfg.Bus.URL)

	for n := 0; subOpts.count == 0 || n < subOpts.count; n++ {
		select {
		case <-ctx.Done():
			return nil
		case env := <-envs:
			if capture != nil {
				if err := capture.Append(env); err != nil {
					return err
				}
			}
			if subOpts.quiet {
				continue
			}
			if err := formatter.FormatEnvelopes(os.Stdout, []bus.Envelope{env}); err != nil {
				return err
			}
		}
	}
	return nil
}
