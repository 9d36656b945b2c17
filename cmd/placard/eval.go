package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/tree"
	"github.com/alexisbeaulieu97/placard/internal/tui/components"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

const fallbackWidth = 80

type evalOptions struct {
	LayoutPath string
	Width      float64
	Dark       bool
	State      string
	Current    int
	Custom     []string
	JSON       bool
	Styled     bool
}

var evalCmdRunner = runEval

func newEvalCmd(root *rootFlags) *cobra.Command {
	opts := evalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <layout-file>",
		Short: "Resolve a layout once against a given UI state and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LayoutPath = args[0]
			if !cmd.Flags().Changed("width") {
				opts.Width = terminalWidth()
			}
			opts.Styled = !opts.JSON && isTerminal(cmd.OutOrStdout())

			log, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return evalCmdRunner(cmd.OutOrStdout(), opts, log)
		},
	}

	cmd.Flags().Float64Var(&opts.Width, "width", fallbackWidth, "Viewport width; defaults to the terminal width")
	cmd.Flags().BoolVar(&opts.Dark, "dark", false, "Evaluate in dark mode")
	cmd.Flags().StringVar(&opts.State, "state", "default", "Interaction state (default, hovered, pressed, disabled)")
	cmd.Flags().IntVar(&opts.Current, "current", 0, "Current carousel page")
	cmd.Flags().StringArrayVar(&opts.Custom, "custom", nil, "Custom state write [position:]key=value; repeatable")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the resolved frame in JSON format")

	return cmd
}

func runEval(out io.Writer, opts evalOptions, log *logger.Logger) error {
	doc, err := loadDocument(opts.LayoutPath)
	if err != nil {
		return err
	}

	step, err := evalStep(opts)
	if err != nil {
		return err
	}

	t := tree.Mount(doc, tree.Options{
		Width:     opts.Width,
		DarkMode:  opts.Dark,
		Scheduler: visibility.Immediate{},
		Logger:    log,
	})
	defer t.Unmount()

	t.Apply(step)
	frame := t.Frame()

	log.WithFields(map[string]any{
		"layout":   opts.LayoutPath,
		"width":    opts.Width,
		"elements": len(frame.Elements),
	}).Debug("layout evaluated")

	switch {
	case opts.JSON:
		return printFrameJSON(out, doc, frame)
	case opts.Styled:
		_, err := fmt.Fprintln(out, components.RenderFrame(frame))
		return err
	default:
		return printFramePlain(out, frame)
	}
}

// evalStep turns the state flags into a single scripted write.
func evalStep(opts evalOptions) (layout.Step, error) {
	state, err := uistate.ParseInteractionState(opts.State)
	if err != nil {
		return layout.Step{}, err
	}

	step := layout.Step{Interaction: &state}
	if opts.Current != 0 {
		current := opts.Current
		step.Current = &current
	}
	for _, raw := range opts.Custom {
		write, err := parseCustomWrite(raw)
		if err != nil {
			return layout.Step{}, err
		}
		step.Custom = append(step.Custom, write)
	}
	return step, nil
}

func printFramePlain(out io.Writer, frame tree.Frame) error {
	for _, e := range frame.Elements {
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", e.Depth), e.Kind, e.ID)
		if e.Position != nil {
			line += fmt.Sprintf(" #%d", *e.Position)
		}
		if e.Text != "" {
			line += fmt.Sprintf(" %q", e.Text)
		}
		if e.Conditional {
			line += fmt.Sprintf(" [%s]", e.Phase)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func renderPlain(frame tree.Frame) string {
	var b strings.Builder
	_ = printFramePlain(&b, frame)
	return b.String()
}

type jsonElement struct {
	ID       string         `json:"id"`
	Kind     string         `json:"kind"`
	Depth    int            `json:"depth"`
	Position *int           `json:"position,omitempty"`
	Phase    string         `json:"phase"`
	Text     string         `json:"text,omitempty"`
	Style    map[string]any `json:"style,omitempty"`
}

type jsonFrame struct {
	Layout     string        `json:"layout"`
	Width      float64       `json:"width"`
	Breakpoint string        `json:"breakpoint,omitempty"`
	State      string        `json:"state"`
	DarkMode   bool          `json:"dark_mode"`
	Page       int           `json:"page"`
	Elements   []jsonElement `json:"elements"`
}

func printFrameJSON(out io.Writer, doc *layout.Document, frame tree.Frame) error {
	ctx := frame.Context
	payload := jsonFrame{
		Layout:   doc.Name,
		Width:    ctx.Width,
		State:    ctx.Interaction.String(),
		DarkMode: ctx.DarkMode,
		Page:     ctx.Progress.Current,
		Elements: make([]jsonElement, 0, len(frame.Elements)),
	}
	if bp, ok := ctx.Breakpoints.At(ctx.BreakpointIndex); ok {
		payload.Breakpoint = bp.Name
	}

	for _, e := range frame.Elements {
		payload.Elements = append(payload.Elements, jsonElement{
			ID:       e.ID,
			Kind:     string(e.Kind),
			Depth:    e.Depth,
			Position: e.Position,
			Phase:    e.Phase.String(),
			Text:     e.Text,
			Style:    styleFields(e),
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

// styleFields lists the non-zero style attributes with colours resolved for
// the current scheme.
func styleFields(e tree.Element) map[string]any {
	s := e.Style
	fields := map[string]any{}
	if fg := s.Foreground.For(e.DarkMode); fg != "" {
		fields["foreground"] = fg
	}
	if bg := s.Background.For(e.DarkMode); bg != "" {
		fields["background"] = bg
	}
	if s.Border != "" {
		fields["border"] = string(s.Border)
	}
	if s.Padding != [4]int{} {
		fields["padding"] = s.Padding
	}
	if s.Margin != [4]int{} {
		fields["margin"] = s.Margin
	}
	if s.Width > 0 {
		fields["width"] = s.Width
	}
	if s.Align != "" {
		fields["align"] = string(s.Align)
	}
	for name, on := range map[string]bool{"bold": s.Bold, "italic": s.Italic, "underline": s.Underline, "faint": s.Faint} {
		if on {
			fields[name] = true
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func terminalWidth() float64 {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return float64(width)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
