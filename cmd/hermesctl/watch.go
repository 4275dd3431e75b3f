package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/bus"
	"github.com/jmylchreest/hermes/internal/tui"
)

var watchOpts struct {
	maxItems int
}

var watchCmd = &cobra.Command{
	Use:   "watch [filter]",
	Short: "Monitor bus traffic interactively",
	Long: `Launch an interactive monitor of the messages matching a topic filter.

The monitor provides:
  - Live list of messages, newest first
  - Search by text or topic filter
  - Detail view with the decoded payload
  - Copy to clipboard support
  - Pause and clear

Key bindings:
  j/k, ↑/↓    Navigate list
  enter       View message details
  c           Copy payload to clipboard
  t           Copy topic to clipboard
  /           Search messages
  p           Pause / resume
  x           Clear
  ?           Show help
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntVar(&watchOpts.maxItems, "max", tui.DefaultMaxItems,
		"Number of messages kept")
}

func runWatch(cmd *cobra.Command, args []string) error {
	filter := "#"
	if len(args) > 0 {
		filter = args[0]
	}

	ctx, cancel := signalContext()
	defer cancel()

	b, err := bus.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	return tui.Run(ctx, tui.RunOptions{
		Bus:      b,
		Filter:   filter,
		MaxItems: watchOpts.maxItems,
	})
}
