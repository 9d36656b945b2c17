package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/tree"
	"github.com/alexisbeaulieu97/placard/internal/uiloop"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
	"github.com/alexisbeaulieu97/placard/pkg/diff"
)

type simulateOptions struct {
	LayoutPath string
	Width      float64
	Settle     time.Duration
	Diff       bool
}

var simulateCmdRunner = runSimulate

func newSimulateCmd(root *rootFlags) *cobra.Command {
	opts := simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate <layout-file>",
		Short: "Play the layout's scenario with real transition timing",
		Long: `Simulate mounts the layout on a single UI loop, applies each scenario
step after its delay and prints every visibility phase change as it
happens, followed by the elements present at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LayoutPath = args[0]

			log, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return simulateCmdRunner(ctx, cmd.OutOrStdout(), opts, log)
		},
	}

	cmd.Flags().Float64Var(&opts.Width, "width", fallbackWidth, "Initial viewport width")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print the rendered lines each step adds or removes")
	cmd.Flags().DurationVar(&opts.Settle, "settle", 0, "Time to wait after the last step; defaults to the longest transition")

	return cmd
}

func runSimulate(ctx context.Context, out io.Writer, opts simulateOptions, log *logger.Logger) error {
	doc, err := loadDocument(opts.LayoutPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := uiloop.New(64, log)
	runErr := make(chan error, 1)
	go func() { runErr <- loop.Run(ctx) }()

	start := time.Now()
	elapsed := func() time.Duration { return time.Since(start).Truncate(time.Millisecond) }

	var (
		t    *tree.Tree
		last string
	)
	showDiff := func() {
		if !opts.Diff {
			return
		}
		now := renderPlain(t.Frame())
		for _, line := range diff.Changed(last, now) {
			fmt.Fprintf(out, "%8s    %s\n", "", line)
		}
		last = now
	}

	err = loop.Do(ctx, func() {
		t = tree.Mount(doc, tree.Options{
			Width:     opts.Width,
			Scheduler: loop,
			Offloader: loop,
			Logger:    log,
			OnPhase: func(id string, phase visibility.Phase) {
				fmt.Fprintf(out, "%8s  %-20s %s\n", elapsed(), id, phase)
			},
		})
		if opts.Diff {
			last = renderPlain(t.Frame())
		}
	})
	if err != nil {
		return err
	}

	for i, step := range doc.Scenario {
		if err := sleep(ctx, step.After); err != nil {
			return err
		}
		err := loop.Do(ctx, func() {
			fmt.Fprintf(out, "%8s  step %d: %s\n", elapsed(), i+1, describeStep(step))
			t.Apply(step)
			showDiff()
		})
		if err != nil {
			return err
		}
	}

	settle := opts.Settle
	if settle <= 0 {
		settle = longestTransition(doc.Root) + 50*time.Millisecond
	}
	if err := sleep(ctx, settle); err != nil {
		return err
	}

	err = loop.Do(ctx, func() {
		showDiff()
		ids := t.Frame().IDs()
		fmt.Fprintf(out, "%8s  present: %s\n", elapsed(), strings.Join(ids, ", "))
		t.Unmount()
	})
	if err != nil {
		return err
	}

	cancel()
	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func longestTransition(root *layout.Node) time.Duration {
	var longest time.Duration
	layout.Walk(root, func(n *layout.Node, _ int) bool {
		longest = max(longest, n.Timing.Enter, n.Timing.Exit)
		return true
	})
	return longest
}

func describeStep(step layout.Step) string {
	var parts []string
	if step.Width != nil {
		parts = append(parts, fmt.Sprintf("width=%g", *step.Width))
	}
	if step.DarkMode != nil {
		parts = append(parts, fmt.Sprintf("dark=%t", *step.DarkMode))
	}
	if step.Interaction != nil {
		parts = append(parts, fmt.Sprintf("state=%s", *step.Interaction))
	}
	if step.Current != nil {
		parts = append(parts, fmt.Sprintf("current=%d", *step.Current))
	}
	for _, w := range step.Custom {
		if w.Position != nil {
			parts = append(parts, fmt.Sprintf("%d:%s=%d", *w.Position, w.Key, w.Value))
		} else {
			parts = append(parts, fmt.Sprintf("%s=%d", w.Key, w.Value))
		}
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, " ")
}
