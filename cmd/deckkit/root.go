package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for deckkit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deckkit",
		Short: "Font toolkit for presentation files",
		Long: `deckkit works with the fonts of PowerPoint (.pptx) and Keynote (.key)
presentations. It copies embedded font files out of a deck, lists the
font families the slides reference, sorts them into system, commercial
and free fonts, and hunts down the free ones on Google Fonts.

It also converts PDF slides into an image-based .pptx deck (requires
pdftoppm from poppler-utils) and offers a small local web UI.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .deckkit.yaml in current or home directory)")

	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewHuntCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewInfoCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err.Error()))
		os.Exit(1)
	}
}
