package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"landtab/plss/parse"
	"landtab/tabulate"
)

func newTractsCmd() *cobra.Command {
	var input string
	var output string
	var column string
	var config string

	cmd := &cobra.Command{
		Use:   "tracts",
		Short: "Derive lot and quarter-quarter columns from isolated tract text",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(input)
			if err != nil {
				return err
			}
			if err := tabulate.ParseTracts(t, column, config, parse.New()); err != nil {
				return fmt.Errorf("parse tracts: %w", err)
			}
			return writeTable(t, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "input table (.csv or .xlsx, - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output CSV (- for stdout)")
	cmd.Flags().StringVarP(&column, "column", "c", "tract", "column holding isolated tract text")
	cmd.Flags().StringVar(&config, "config", "", "parser config string")

	return cmd
}
