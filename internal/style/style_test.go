package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/placard/internal/uistate"
)

func ptr[T any](v T) *T { return &v }

func TestResolveStateFallback(t *testing.T) {
	t.Parallel()

	blocks := []Block[string]{
		{Default: "sm", Pressed: ptr("sm-pressed")},
		{Default: "md", Hovered: ptr("md-hovered")},
	}

	tests := []struct {
		name  string
		index int
		state uistate.InteractionState
		want  string
	}{
		{"default", 0, uistate.Default, "sm"},
		{"missing hovered falls back to same block default", 0, uistate.Hovered, "sm"},
		{"pressed", 0, uistate.Pressed, "sm-pressed"},
		{"hovered on md", 1, uistate.Hovered, "md-hovered"},
		{"pressed does not borrow from another breakpoint", 1, uistate.Pressed, "md"},
		{"disabled falls back", 1, uistate.Disabled, "md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(blocks, tt.index, tt.state))
		})
	}
}

func TestResolveOutOfRangeUsesLastBlock(t *testing.T) {
	t.Parallel()

	blocks := []Block[int]{{Default: 1}, {Default: 2, Hovered: ptr(20)}}
	require.NotPanics(t, func() {
		require.Equal(t, 2, Resolve(blocks, 2, uistate.Default))
		require.Equal(t, 20, Resolve(blocks, 99, uistate.Hovered))
		require.Equal(t, 1, Resolve(blocks, -4, uistate.Default))
	})
}

func TestResolveEmptyYieldsZero(t *testing.T) {
	t.Parallel()

	require.Equal(t, Record{}, Resolve[Record](nil, 3, uistate.Pressed))
}

func TestMemoRecomputesOnKeyChange(t *testing.T) {
	t.Parallel()

	blocks := []Block[string]{
		{Default: "sm"},
		{Default: "md", Hovered: ptr("md-hovered")},
	}
	memo := NewMemo(blocks)

	require.Equal(t, "sm", memo.Resolve(0, uistate.Default))
	require.Equal(t, "md", memo.Resolve(1, uistate.Default), "breakpoint change invalidates")
	require.Equal(t, "md-hovered", memo.Resolve(1, uistate.Hovered), "state change invalidates")
	require.Equal(t, "md-hovered", memo.Resolve(5, uistate.Hovered), "clamped index hits the cache")

	memo.Invalidate()
	require.Equal(t, "md-hovered", memo.Resolve(1, uistate.Hovered))
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	c := Color{Light: "#000000", Dark: "#ffffff"}
	require.Equal(t, "#000000", c.For(false))
	require.Equal(t, "#ffffff", c.For(true))
	require.Equal(t, "#111111", Color{Light: "#111111"}.For(true))
	require.True(t, Color{}.IsZero())
}

func TestPartialMerge(t *testing.T) {
	t.Parallel()

	base := Record{
		Foreground: Color{Light: "black", Dark: "white"},
		Border:     BorderRounded,
		Padding:    Spacing{1, 2, 1, 2},
		Bold:       true,
	}
	over := Partial{
		Foreground: &Color{Dark: "yellow"},
		Bold:       ptr(false),
		Underline:  ptr(true),
	}

	got := over.Merge(base)
	require.Equal(t, Color{Light: "black", Dark: "yellow"}, got.Foreground)
	require.Equal(t, BorderRounded, got.Border)
	require.Equal(t, Spacing{1, 2, 1, 2}, got.Padding)
	require.False(t, got.Bold)
	require.True(t, got.Underline)

	require.Equal(t, base, Partial{}.Merge(base))
}
