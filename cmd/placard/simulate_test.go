package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/logger"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
	"github.com/alexisbeaulieu97/placard/internal/visibility"
)

func TestRunSimulatePlaysScenario(t *testing.T) {
	path := writeLayout(t, testLayout)
	buf := &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runSimulate(ctx, buf, simulateOptions{LayoutPath: path, Width: 320}, logger.Nop())
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "step 1: qty=3")
	require.Contains(t, out, "step 2: width=800")

	upsell := phasesOf(out, "upsell")
	require.Equal(t, []string{"enteringVisible", "hidden", "enteringVisible", "visible"}, upsell)

	wide := phasesOf(out, "wide")
	require.Equal(t, []string{"enteringVisible", "hidden", "enteringVisible", "visible"}, wide)

	require.Contains(t, out, "present: root, wide, upsell, offers, first")
}

func TestRunSimulateStopsOnCancel(t *testing.T) {
	path := writeLayout(t, strings.Replace(testLayout, "after: 40ms", "after: 1h", 1))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := runSimulate(ctx, &bytes.Buffer{}, simulateOptions{LayoutPath: path}, logger.Nop())
	require.ErrorIs(t, err, context.Canceled)
}

func TestDescribeStep(t *testing.T) {
	t.Parallel()

	width := 320.0
	dark := true
	state := uistate.Pressed
	current := 1
	pos := 0

	step := layout.Step{
		Width:       &width,
		DarkMode:    &dark,
		Interaction: &state,
		Current:     &current,
		Custom: []layout.CustomWrite{
			{Key: "qty", Value: 2},
			{Position: &pos, Key: "seen", Value: 1},
		},
	}
	require.Equal(t, "width=320 dark=true state=pressed current=1 qty=2 0:seen=1", describeStep(step))
	require.Equal(t, "no change", describeStep(layout.Step{}))
}

func TestLongestTransition(t *testing.T) {
	t.Parallel()

	root := &layout.Node{
		ID: "root",
		Children: []*layout.Node{
			{ID: "a", Timing: visibility.Timing{Enter: 10 * time.Millisecond}},
			{ID: "b", Timing: visibility.Timing{Exit: 30 * time.Millisecond}},
		},
	}
	require.Equal(t, 30*time.Millisecond, longestTransition(root))
}

// phasesOf extracts the phase column of the lines printed for id.
func phasesOf(out, id string) []string {
	var phases []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[1] == id {
			phases = append(phases, fields[2])
		}
	}
	return phases
}

func TestRunSimulatePrintsFrameChanges(t *testing.T) {
	path := writeLayout(t, testLayout)
	buf := &bytes.Buffer{}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := runSimulate(ctx, buf, simulateOptions{LayoutPath: path, Width: 320, Diff: true}, logger.Nop())
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, `+  text upsell "add one more" [enteringVisible]`)
	require.Contains(t, out, `+  text wide "only on wide screens" [visible]`)
}
