package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/placard/internal/layout"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <layout-file>",
		Short: "Parse and validate a layout document without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			nodes, conditional := 0, 0
			layout.Walk(doc.Root, func(n *layout.Node, _ int) bool {
				nodes++
				if n.Conditional() {
					conditional++
				}
				return true
			})

			log.WithFields(map[string]any{
				"layout": args[0],
				"nodes":  nodes,
			}).Debug("layout validated")

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d nodes, %d conditional, %d breakpoints, %d offers, %d scenario steps\n",
				doc.Name, nodes, conditional, len(doc.Breakpoints), len(doc.Offers), len(doc.Scenario))
			return nil
		},
	}

	return cmd
}
