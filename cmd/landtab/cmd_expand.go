package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"landtab/plss/parse"
	"landtab/tabulate"
)

func newExpandCmd() *cobra.Command {
	var input string
	var output string
	var column string
	var config string

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand a description column into one row per tract",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(input)
			if err != nil {
				return err
			}
			out, err := tabulate.ExpandDescriptions(t, column, config, parse.New())
			if err != nil {
				return fmt.Errorf("expand: %w", err)
			}
			return writeTable(out, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "input table (.csv or .xlsx, - for stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output CSV (- for stdout)")
	cmd.Flags().StringVarP(&column, "column", "c", "description", "column holding the legal description")
	cmd.Flags().StringVar(&config, "config", "", "parser config string (e.g. n,w or s,e,clean_qq)")

	return cmd
}
