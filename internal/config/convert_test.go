package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/placard/internal/layout"
	"github.com/alexisbeaulieu97/placard/internal/predicate"
	"github.com/alexisbeaulieu97/placard/internal/style"
	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

func TestToDocument(t *testing.T) {
	t.Parallel()

	cfg, err := Parse("inline", []byte(validYAML))
	require.NoError(t, err)

	doc, err := ToDocument(cfg)
	require.NoError(t, err)

	assert.Equal(t, "checkout", doc.Name)
	assert.Equal(t, map[string]float64{"sm": 0, "md": 400}, doc.Breakpoints)
	require.Len(t, doc.Offers, 1)
	item, ok := doc.Offers[0].ActiveItem()
	require.True(t, ok)
	assert.Equal(t, "9.50", item.Price)

	root := doc.Root
	require.Len(t, root.Styles, 2)
	assert.Equal(t, "#333333", root.Styles[0].Default.Foreground.Light)
	require.NotNil(t, root.Styles[0].Hovered)
	assert.Equal(t, style.Color{Light: "#333333", Dark: "#ffffff"}, root.Styles[0].Hovered.Foreground,
		"hovered colours merge onto the default per variant")
	assert.True(t, root.Styles[0].Hovered.Bold)
	assert.Equal(t, style.Spacing{1, 1, 1, 1}, root.Styles[0].Hovered.Padding)
	assert.Nil(t, root.Styles[0].Pressed)
	assert.Equal(t, style.BorderRounded, root.Styles[1].Default.Border)

	banner := root.Children[0]
	assert.True(t, banner.Conditional())
	assert.Equal(t, 150*time.Millisecond, banner.Timing.Enter)
	assert.Equal(t, 300*time.Millisecond, banner.Timing.Exit)
	require.Len(t, banner.Predicates, 2)
	assert.Equal(t, predicate.DarkMode, banner.Predicates[0].Category)
	assert.Equal(t, predicate.IsTrue, banner.Predicates[0].Condition)
	assert.Equal(t, predicate.Predicate{
		Category:  predicate.CustomState,
		Condition: predicate.IsAbove,
		Key:       "qty",
		Value:     "2",
	}, banner.Predicates[1])

	carousel := layout.FirstCarousel(root)
	require.NotNil(t, carousel)
	assert.Equal(t, "offers", carousel.ID)
	assert.Equal(t, 1, carousel.ViewableItems)

	require.Len(t, doc.Scenario, 1)
	step := doc.Scenario[0]
	assert.Equal(t, time.Second, step.After)
	require.NotNil(t, step.Width)
	assert.InDelta(t, 900, *step.Width, 0)
	require.NotNil(t, step.Interaction)
	assert.Equal(t, uistate.Hovered, *step.Interaction)
	require.Len(t, step.Custom, 1)
	require.NotNil(t, step.Custom[0].Position)
	assert.Equal(t, 0, *step.Custom[0].Position)
	assert.Equal(t, 3, step.Custom[0].Value)
}

func TestToDocumentStyleKeywords(t *testing.T) {
	t.Parallel()

	none := "none"
	start := "start"
	cfg := &Config{
		Name: "keywords",
		Root: &Node{
			ID:   "root",
			Type: "text",
			Styles: []StyleBlock{{
				Default:  Style{Border: &none, Align: &start},
				Disabled: &Style{Faint: boolPtr(true)},
			}},
		},
	}

	doc, err := ToDocument(cfg)
	require.NoError(t, err)

	block := doc.Root.Styles[0]
	assert.Equal(t, style.BorderNone, block.Default.Border)
	assert.Equal(t, style.AlignStart, block.Default.Align)
	require.NotNil(t, block.Disabled)
	assert.True(t, block.Disabled.Faint)
	assert.False(t, block.Default.Faint)
}

func TestToDocumentNil(t *testing.T) {
	t.Parallel()

	_, err := ToDocument(nil)
	require.Error(t, err)
}

func boolPtr(v bool) *bool { return &v }
