package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testLayout = `version: "1.0"
name: checkout
breakpoints:
  sm: 0
  md: 400
offers:
  - id: o1
    creative_copy:
      title: Free shipping
  - id: o2
    creative_copy:
      title: Gift wrap
root:
  id: root
  type: column
  styles:
    - default:
        foreground: "#333333"
    - default:
        foreground:
          light: "#111111"
          dark: "#eeeeee"
        bold: true
  children:
    - id: wide
      type: text
      text: only on wide screens
      when:
        - type: breakpoint
          key: md
          condition: isAbove
    - id: upsell
      type: text
      text: add one more
      transition:
        enter: 20ms
        exit: 20ms
      when:
        - type: customState
          key: qty
          condition: isAbove
          value: 2
    - id: offers
      type: carousel
      children:
        - id: first
          type: text
          text: "%^creativeCopy.title^%"
        - id: second
          type: text
          text: "%^creativeCopy.title^%"
scenario:
  - after: 60ms
    custom:
      - key: qty
        value: 3
  - after: 40ms
    width: 800
`

func writeLayout(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func executeCommand(cmd *cobra.Command, args ...string) (string, error) {
	cmd.SetArgs(args)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	err := cmd.Execute()
	return buf.String(), err
}
