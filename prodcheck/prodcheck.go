// Package prodcheck checks tables of monthly oil and/or gas production
// records for gaps: stretches where no well met the production
// threshold, optionally treating explicitly shut-in months as
// producing.
package prodcheck

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"landtab/table"
)

// Month is the per-calendar-month aggregate over every record in that
// month (one record per well, normally).
type Month struct {
	Date                time.Time // first day of the month
	Oil                 float64
	Gas                 float64
	AnyActive           bool
	AnyShutin           bool
	NumActive           int
	NumShutin           int
	MaxDaysProducing    int
	MinDaysNotProducing int
}

type Option func(*Checker)

// WithOil configures the oil production column and the minimum BBLs
// for a record to count as producing.
func WithOil(col string, min float64) Option {
	return func(c *Checker) {
		c.oilCol = col
		c.oilMin = min
	}
}

// WithGas configures the gas production column and the minimum MCF for
// a record to count as producing.
func WithGas(col string, min float64) Option {
	return func(c *Checker) {
		c.gasCol = col
		c.gasMin = min
	}
}

// WithDaysProduced configures the column holding the number of days the
// well produced during the month.
func WithDaysProduced(col string) Option {
	return func(c *Checker) {
		c.daysCol = col
	}
}

// WithStatus configures the well status column and the codes that mean
// shut-in. Codes are case-sensitive.
func WithStatus(col string, shutinCodes ...string) Option {
	return func(c *Checker) {
		c.statusCol = col
		c.shutinCodes = shutinCodes
	}
}

// Checker aggregates a production table by calendar month and finds
// gaps. The input table is not modified.
type Checker struct {
	dateCol     string
	oilCol      string
	gasCol      string
	oilMin      float64
	gasMin      float64
	daysCol     string
	statusCol   string
	shutinCodes []string

	months []Month
}

// NewChecker aggregates the table by the month each date cell falls in,
// filling any months missing between the first and last. Every cell in
// dateCol must parse as a date; production cells that fail to parse
// read as zero.
func NewChecker(t *table.Table, dateCol string, opts ...Option) (*Checker, error) {
	c := &Checker{dateCol: dateCol}
	for _, opt := range opts {
		opt(c)
	}
	for _, col := range []string{dateCol, c.oilCol, c.gasCol, c.daysCol, c.statusCol} {
		if col == "" {
			continue
		}
		if err := t.CheckColumn(col); err != nil {
			return nil, err
		}
	}
	if err := c.aggregate(t); err != nil {
		return nil, err
	}
	return c, nil
}

// ConfiguredShutin reports whether shut-in checking is configured.
func (c *Checker) ConfiguredShutin() bool {
	return c.statusCol != "" && len(c.shutinCodes) > 0
}

// ConfiguredProduction reports whether production checking is
// configured.
func (c *Checker) ConfiguredProduction() bool {
	return c.oilCol != "" || c.gasCol != ""
}

// ConfiguredDaysProduced reports whether days-produced checking is
// configured.
func (c *Checker) ConfiguredDaysProduced() bool {
	return c.daysCol != ""
}

// Months returns the aggregated months in chronological order with no
// calendar gaps.
func (c *Checker) Months() []Month {
	return c.months
}

func (c *Checker) aggregate(t *table.Table) error {
	byMonth := map[time.Time]*Month{}
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		date, err := parseDate(row[c.dateCol])
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		first := firstOfMonth(date)
		m := byMonth[first]
		if m == nil {
			m = &Month{Date: first, MinDaysNotProducing: daysInMonth(first)}
			byMonth[first] = m
		}

		oil := cellFloat(row, c.oilCol)
		if oil < c.oilMin {
			oil = 0
		}
		gas := cellFloat(row, c.gasCol)
		if gas < c.gasMin {
			gas = 0
		}
		m.Oil += oil
		m.Gas += gas
		if c.ConfiguredProduction() && oil+gas > 0 {
			m.AnyActive = true
			m.NumActive++
		}
		if c.ConfiguredShutin() && c.isShutin(row[c.statusCol]) {
			m.AnyShutin = true
			m.NumShutin++
		}
		if c.ConfiguredDaysProduced() {
			days := int(cellFloat(row, c.daysCol))
			if days > m.MaxDaysProducing {
				m.MaxDaysProducing = days
			}
			if notProducing := daysInMonth(first) - days; notProducing < m.MinDaysNotProducing {
				m.MinDaysNotProducing = notProducing
			}
		}
	}
	if len(byMonth) == 0 {
		return fmt.Errorf("no records")
	}

	var first, last time.Time
	for date := range byMonth {
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if date.After(last) {
			last = date
		}
	}
	// Months missing from the records count as fully non-producing.
	for date := first; !date.After(last); date = date.AddDate(0, 1, 0) {
		m := byMonth[date]
		if m == nil {
			m = &Month{Date: date, MinDaysNotProducing: daysInMonth(date)}
			byMonth[date] = m
		}
		c.months = append(c.months, *m)
	}
	return nil
}

func (c *Checker) isShutin(status string) bool {
	for _, code := range c.shutinCodes {
		if status == code {
			return true
		}
	}
	return false
}

func cellFloat(row table.Row, col string) float64 {
	if col == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006",
	"01/2006",
	"1/2006",
	"2006-01",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func lastOfMonth(d time.Time) time.Time {
	return firstOfMonth(d).AddDate(0, 1, -1)
}

func daysInMonth(d time.Time) int {
	return lastOfMonth(d).Day()
}
