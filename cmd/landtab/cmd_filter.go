package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"landtab/tabulate"
)

func newFilterCmd() *cobra.Command {
	var input string
	var output string
	var column string
	var tokens []string
	var exclude bool

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep (or drop) rows whose text mentions any of the given TRS tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(input)
			if err != nil {
				return err
			}
			mask, err := tabulate.FilterTRS(t, column, tokens, !exclude)
			if err != nil {
				return fmt.Errorf("filter: %w", err)
			}
			out, err := t.Select(mask)
			if err != nil {
				return err
			}
			return writeTable(out, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "input table (.csv or .xlsx, - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output CSV (- for stdout)")
	cmd.Flags().StringVarP(&column, "column", "c", "description", "column holding the description text")
	cmd.Flags().StringArrayVar(&tokens, "trs", nil, "TRS token to match (repeatable, e.g. 154n97w14)")
	cmd.Flags().BoolVar(&exclude, "exclude", false, "keep rows matching none of the tokens instead")

	return cmd
}
