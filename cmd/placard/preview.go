package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/placard/internal/tui"
)

type previewOptions struct {
	LayoutPath string
	Dark       bool
	CustomKey  string
	LogFile    string
}

var previewCmdRunner = runPreview

func newPreviewCmd(root *rootFlags) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <layout-file>",
		Short: "Interactively preview a layout in the terminal",
		Long: `Preview renders the layout at the terminal width and redraws it as the
terminal is resized. Keys change dark mode, the interaction state, the
carousel page and a custom state value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LayoutPath = args[0]
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("preview needs an interactive terminal; use eval instead")
			}
			return previewCmdRunner(root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Dark, "dark", false, "Start in dark mode")
	cmd.Flags().StringVar(&opts.CustomKey, "custom-key", "", "Custom state key changed by + and -")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file while the preview owns the screen")

	return cmd
}

func runPreview(root *rootFlags, opts previewOptions) error {
	doc, err := loadDocument(opts.LayoutPath)
	if err != nil {
		return err
	}

	// logs would corrupt the alternate screen
	var sink io.Writer = io.Discard
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		sink = f
	}
	log, err := root.newLogger(sink)
	if err != nil {
		return err
	}

	model := tui.NewModel(doc, tui.Options{
		Width:     terminalWidth(),
		DarkMode:  opts.Dark,
		CustomKey: opts.CustomKey,
		Logger:    log,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}
