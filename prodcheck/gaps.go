package prodcheck

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"landtab/table"
)

// Gap is an inclusive stretch of non-production.
type Gap struct {
	Start  time.Time
	End    time.Time
	Months int // calendar months touched by the gap
	Days   int // calendar days from Start through End
}

func newGap(start, end time.Time) Gap {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
	days := int(end.Sub(start).Hours()/24) + 1
	return Gap{Start: start, End: end, Months: months, Days: days}
}

// GapsByThreshold finds runs of months in which production fell below
// the configured thresholds. With shutinAsProducing, months where any
// well was explicitly shut-in do not count toward a gap.
func (c *Checker) GapsByThreshold(shutinAsProducing bool) []Gap {
	var gaps []Gap
	var gapStart, prevLast time.Time
	for _, m := range c.months {
		producing := m.AnyActive
		if shutinAsProducing && c.ConfiguredShutin() && m.AnyShutin {
			producing = true
		}
		if !producing {
			if gapStart.IsZero() {
				gapStart = m.Date
			}
		} else if !gapStart.IsZero() {
			gaps = append(gaps, newGap(gapStart, prevLast))
			gapStart = time.Time{}
		}
		prevLast = lastOfMonth(m.Date)
	}
	if !gapStart.IsZero() {
		gaps = append(gaps, newGap(gapStart, prevLast))
	}
	return gaps
}

// GapsByProducingDays finds gaps using the reported days of production
// per month, at day granularity. It assumes the worst case: when a gap
// opens in a partially-producing month, the idle days sit at the end of
// that month; when a gap closes, they sit at the start.
//
// With shutinAsProducing, a shut-in month counts as producing the whole
// month. If production columns are configured, a month falling short of
// the threshold counts as zero days produced regardless of the reported
// day count.
func (c *Checker) GapsByProducingDays(shutinAsProducing bool) []Gap {
	var gaps []Gap
	var gapStart, prevLast time.Time
	for _, m := range c.months {
		total := daysInMonth(m.Date)
		producing := m.MaxDaysProducing
		idle := m.MinDaysNotProducing
		if shutinAsProducing && c.ConfiguredShutin() && m.AnyShutin {
			producing = total
			idle = 0
		} else if c.ConfiguredProduction() && !m.AnyActive {
			producing = 0
			idle = total
		}

		switch {
		case producing == 0:
			if gapStart.IsZero() {
				gapStart = m.Date
			}
		case idle > 0:
			// Partial month.
			if gapStart.IsZero() {
				gapStart = lastOfMonth(m.Date).AddDate(0, 0, -(idle - 1))
			} else {
				gaps = append(gaps, newGap(gapStart, m.Date.AddDate(0, 0, idle-1)))
				gapStart = time.Time{}
			}
		default:
			if !gapStart.IsZero() {
				gaps = append(gaps, newGap(gapStart, prevLast))
				gapStart = time.Time{}
			}
		}
		prevLast = lastOfMonth(m.Date)
	}
	if !gapStart.IsZero() {
		gaps = append(gaps, newGap(gapStart, prevLast))
	}
	return gaps
}

// ShutinPeriods finds runs of months with no qualifying production
// during which at least one well was explicitly shut-in.
func (c *Checker) ShutinPeriods() []Gap {
	var gaps []Gap
	var gapStart, prevLast time.Time
	for _, m := range c.months {
		if !m.AnyActive && m.AnyShutin {
			if gapStart.IsZero() {
				gapStart = m.Date
			}
		} else if !gapStart.IsZero() {
			gaps = append(gaps, newGap(gapStart, prevLast))
			gapStart = time.Time{}
		}
		prevLast = lastOfMonth(m.Date)
	}
	if !gapStart.IsZero() {
		gaps = append(gaps, newGap(gapStart, prevLast))
	}
	return gaps
}

// FormatGaps renders a gap report, keeping only gaps at least
// thresholdDays long:
//
//	Gaps in production:
//	[[at least 90 days in length]]
//	 -- 92 days (3 months)    ::  2019-04-01 -- 2019-07-01
func FormatGaps(gaps []Gap, header string, thresholdDays int) string {
	var lines []string
	for _, g := range gaps {
		if g.Days < thresholdDays {
			continue
		}
		s := fmt.Sprintf(" -- %d days (%d months)", g.Days, g.Months)
		for len(s) < 26 {
			s += " "
		}
		lines = append(lines, fmt.Sprintf("%s::  %s -- %s",
			s, g.Start.Format("2006-01-02"), g.End.Format("2006-01-02")))
	}
	if len(lines) == 0 {
		lines = []string{" -- None that meet the threshold."}
	}
	return fmt.Sprintf("%s\n[[at least %d days in length]]\n%s",
		header, thresholdDays, strings.Join(lines, "\n"))
}

// SummaryTable renders the aggregated months as a table for CSV output.
func (c *Checker) SummaryTable() *table.Table {
	cols := []string{"month"}
	if c.oilCol != "" {
		cols = append(cols, "oil")
	}
	if c.gasCol != "" {
		cols = append(cols, "gas")
	}
	cols = append(cols, "any_active", "any_shutin", "num_active", "num_shutin")
	if c.daysCol != "" {
		cols = append(cols, "max_days_producing", "min_days_not_producing")
	}
	t := table.New(cols...)
	for _, m := range c.months {
		row := table.Row{
			"month":      m.Date.Format("2006-01"),
			"any_active": strconv.FormatBool(m.AnyActive),
			"any_shutin": strconv.FormatBool(m.AnyShutin),
			"num_active": strconv.Itoa(m.NumActive),
			"num_shutin": strconv.Itoa(m.NumShutin),
		}
		if c.oilCol != "" {
			row["oil"] = strconv.FormatFloat(m.Oil, 'f', -1, 64)
		}
		if c.gasCol != "" {
			row["gas"] = strconv.FormatFloat(m.Gas, 'f', -1, 64)
		}
		if c.daysCol != "" {
			row["max_days_producing"] = strconv.Itoa(m.MaxDaysProducing)
			row["min_days_not_producing"] = strconv.Itoa(m.MinDaysNotProducing)
		}
		t.Append(row)
	}
	return t
}

// GapsTable renders gaps as a table for CSV output.
func GapsTable(gaps []Gap) *table.Table {
	t := table.New("start_date", "end_date", "total_months", "total_days")
	for _, g := range gaps {
		t.Append(table.Row{
			"start_date":   g.Start.Format("2006-01-02"),
			"end_date":     g.End.Format("2006-01-02"),
			"total_months": strconv.Itoa(g.Months),
			"total_days":   strconv.Itoa(g.Days),
		})
	}
	return t
}
