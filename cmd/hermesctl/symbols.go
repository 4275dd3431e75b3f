package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/hermes/internal/boundary"
	"github.com/jmylchreest/hermes/internal/output"
)

var symbolsOpts struct {
	domain string
	kind   string
	format string
}

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the functions exported by libhermes",
	Long: `List the C functions exported by libhermes with their signatures.

Examples:
  # Every exported function as a C declaration
  hermesctl symbols

  # Only the dialogue facade
  hermesctl symbols --domain dialogue

  # Subscriptions as JSON
  hermesctl symbols --kind subscribe --format json`,
	Args: cobra.NoArgs,
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)

	symbolsCmd.Flags().StringVarP(&symbolsOpts.domain, "domain", "d", "",
		"Only symbols of this facade domain")
	symbolsCmd.Flags().StringVarP(&symbolsOpts.kind, "kind", "k", "",
		"Only symbols of this kind (admin, accessor, facade_drop, publish, subscribe, message_drop)")
	symbolsCmd.Flags().StringVarP(&symbolsOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(symbolsOpts.format)
	if err != nil {
		return err
	}

	if d := symbolsOpts.domain; d != "" && !slices.ContainsFunc(boundary.Domains(), func(dom boundary.Domain) bool {
		return dom.Name == d
	}) {
		return fmt.Errorf("unknown domain %q", d)
	}

	symbols := filterSymbols(boundary.Symbols(), symbolsOpts.domain, symbolsOpts.kind)
	return output.NewFormatter(format, output.DefaultFormatterOptions()).FormatSymbols(os.Stdout, symbols)
}

func filterSymbols(symbols []boundary.Symbol, domain, kind string) []boundary.Symbol {
	out := make([]boundary.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if domain != "" && s.Domain != domain {
			continue
		}
		if kind != "" && s.Kind != boundary.Kind(kind) {
			continue
		}
		out = append(out, s)
	}
	return out
}
