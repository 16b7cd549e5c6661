package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"landtab/prodcheck"
	"landtab/table"
)

var log = commonlog.GetLogger("landtab.cli")

func newProdcheckCmd() *cobra.Command {
	var dir string
	var outDir string
	var dateCol, oilCol, gasCol, daysCol, statusCol string
	var shutinCodes []string
	var minGapDays int

	cmd := &cobra.Command{
		Use:   "prodcheck",
		Short: "Check a directory of monthly well production files for gaps",
		Long: "Reads every .csv and .xlsx file in a directory (one per well, in the\n" +
			"COGCC download layout), merges them, and reports stretches with no\n" +
			"qualifying production and periods covered only by shut-in wells.",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, sources, err := loadWellFiles(dir)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Join(dir, "prodcheck_results")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			checker, err := prodcheck.NewChecker(merged, dateCol,
				prodcheck.WithOil(oilCol, 0),
				prodcheck.WithGas(gasCol, 0),
				prodcheck.WithDaysProduced(daysCol),
				prodcheck.WithStatus(statusCol, shutinCodes...),
			)
			if err != nil {
				return fmt.Errorf("prodcheck: %w", err)
			}

			gapsRaw := checker.GapsByThreshold(false)
			gaps := checker.GapsByThreshold(true)
			shutins := checker.ShutinPeriods()

			outputs := map[string]*table.Table{
				"production_summary.csv":  checker.SummaryTable(),
				"production_gaps_raw.csv": prodcheck.GapsTable(gapsRaw),
				"production_gaps.csv":     prodcheck.GapsTable(gaps),
				"shutin_periods.csv":      prodcheck.GapsTable(shutins),
			}
			for name, t := range outputs {
				if err := writeTable(t, filepath.Join(outDir, name)); err != nil {
					return err
				}
			}

			months := checker.Months()
			report := strings.Join([]string{
				fmt.Sprintf("Production from %s through %s...",
					months[0].Date.Format("2006-01"),
					months[len(months)-1].Date.Format("2006-01")),
				prodcheck.FormatGaps(gapsRaw, "Gaps in production (raw):", minGapDays),
				prodcheck.FormatGaps(gaps, "Gaps in production (with shut-ins counting as production):", minGapDays),
				prodcheck.FormatGaps(shutins, "Periods of shut-in:", minGapDays),
				"Considering wells...\n" + strings.Join(sources, "\n"),
			}, "\n\n") + "\n"
			reportPath := filepath.Join(outDir, "production_gaps_summary.txt")
			if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Printf("Results saved to %s\n", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of per-well production files")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default <dir>/prodcheck_results)")
	cmd.Flags().StringVar(&dateCol, "date-col", "FirstOfMonth", "column with the month's date")
	cmd.Flags().StringVar(&oilCol, "oil-col", "OilProduced", "oil production column (BBLs)")
	cmd.Flags().StringVar(&gasCol, "gas-col", "GasProduced", "gas production column (MCF)")
	cmd.Flags().StringVar(&daysCol, "days-col", "DaysProduced", "days-produced column")
	cmd.Flags().StringVar(&statusCol, "status-col", "WellStatus", "well status column")
	cmd.Flags().StringArrayVar(&shutinCodes, "shutin-code", []string{"SI"}, "status code meaning shut-in (repeatable)")
	cmd.Flags().IntVar(&minGapDays, "min-gap-days", 0, "only report gaps at least this many days long")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

// loadWellFiles reads every .csv/.xlsx file in dir into one table,
// tagging each row with an api_num column derived from the filename the
// way COGCC downloads encode it.
func loadWellFiles(dir string) (*table.Table, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read dir: %w", err)
	}
	var merged *table.Table
	var sources []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		t, err := readTable(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, nil, err
		}
		apiNum := apiNumFromFilename(entry.Name())
		if merged == nil {
			merged = table.New(append(t.Columns(), "api_num")...)
		}
		for i := 0; i < t.Len(); i++ {
			row := t.Row(i)
			row["api_num"] = apiNum
			merged.Append(row)
		}
		log.Infof("loaded %s (%d records) as %s", entry.Name(), t.Len(), apiNum)
		sources = append(sources, fmt.Sprintf(" -- %s  <%s>", apiNum, entry.Name()))
	}
	if merged == nil {
		return nil, nil, fmt.Errorf("no .csv or .xlsx files in %s", dir)
	}
	sort.Strings(sources)
	return merged, sources, nil
}

// apiNumFromFilename recovers the well API number from a COGCC-style
// filename, which starts with the nine-digit county+sequence part.
func apiNumFromFilename(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if len(base) >= 9 {
		return "05-" + base[:9]
	}
	return base
}
