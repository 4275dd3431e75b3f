package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/bus"
)

var pubOpts struct {
	raw bool
}

var pubCmd = &cobra.Command{
	Use:   "pub <topic> [json | @file | -]",
	Short: "Publish a message on the bus",
	Long: `Publish one message on a bus topic.

The payload is given inline, read from a file with @path or from stdin
with -. It must be valid JSON unless --raw is set. Without a payload an
empty message is sent.

Examples:
  # Ask the NLU component for its version
  hermesctl pub hermes/nlu/versionRequest '{}'

  # Say something
  hermesctl pub hermes/tts/say '{"text":"hello","siteId":"default"}'

  # Payload from a file
  hermesctl pub hermes/injection/perform @injection.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPub,
}

func init() {
	rootCmd.AddCommand(pubCmd)

	pubCmd.Flags().BoolVar(&pubOpts.raw, "raw", false,
		"Send the payload as is, without JSON validation")
}

func runPub(cmd *cobra.Command, args []string) error {
	topic := args[0]
	if bus.IsFilter(topic) {
		return fmt.Errorf("cannot publish on wildcard topic %q", topic)
	}

	var arg string
	if len(args) > 1 {
		arg = args[1]
	}
	payload, err := readPayload(arg, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if !pubOpts.raw && len(payload) > 0 && !json.Valid(payload) {
		return fmt.Errorf("payload is not valid JSON (use --raw to send it anyway)")
	}

	ctx, cancel := signalContext()
	defer cancel()

	b, err := bus.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	if err := b.Publish(ctx, topic, payload); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	logger.Debug("published", "topic", topic, "bytes", len(payload), "bus", cfg.Bus.URL)
	return nil
}

// readPayload resolves a payload argument: inline text, @file or - for stdin.
func readPayload(arg string, stdin io.Reader) ([]byte, error) {
	switch {
	case arg == "":
		return nil, nil
	case arg == "-":
		return io.ReadAll(stdin)
	case strings.HasPrefix(arg, "@"):
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("failed to read payload: %w", err)
		}
		return data, nil
	default:
		return []byte(arg), nil
	}
}
