package tabulate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landtab/plss"
	"landtab/plss/parse"
	"landtab/table"
)

// stubParser returns canned tracts per input text, so the adapter logic
// is tested independently of the real grammar.
type stubParser struct {
	tracts map[string][]plss.Tract
}

func (s stubParser) Parse(text string, cfg plss.Config) ([]plss.Tract, error) {
	tracts, ok := s.tracts[text]
	if !ok || len(tracts) == 0 {
		return nil, errors.New("no parse")
	}
	return tracts, nil
}

func (s stubParser) ParseTract(text string, cfg plss.Config) (plss.Tract, error) {
	tracts, ok := s.tracts[text]
	if !ok {
		return plss.Tract{}, errors.New("no parse")
	}
	return tracts[0], nil
}

func descTable(descs ...string) *table.Table {
	t := table.New("id", "owner", "description")
	for i, d := range descs {
		t.Append(table.Row{
			"id":          fmt.Sprintf("%d", i+1),
			"owner":       "Smith",
			"description": d,
		})
	}
	return t
}

func TestExpandDescriptions(t *testing.T) {
	stub := stubParser{tracts: map[string][]plss.Tract{
		"one": {{
			TRS:         plss.NewTRS(154, 'n', 97, 'w', 1),
			Description: "NE/4",
			QQs:         []string{"NE"},
		}},
		"two": {
			{TRS: plss.NewTRS(154, 'n', 97, 'w', 13), Description: "N/2", QQs: []string{"N2"}},
			{TRS: plss.NewTRS(154, 'n', 97, 'w', 14), Description: "Lots 1, 2", Lots: []string{"L1", "L2"}},
		},
	}}

	in := descTable("one", "bad", "two")
	out, err := ExpandDescriptions(in, "description", "", stub)
	if err != nil {
		t.Fatalf("ExpandDescriptions: %v", err)
	}

	// One row with 1 tract + one dropped + one row with 2 tracts.
	if out.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", out.Len())
	}
	expectedCols := []string{"id", "owner", "description", ColTRS, ColTractDesc, ColLots, ColQQs}
	if diff := cmp.Diff(expectedCols, out.Columns()); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	// Original cells copy through to every expanded row.
	for i := 0; i < out.Len(); i++ {
		if got := out.Row(i)["owner"]; got != "Smith" {
			t.Errorf("row %d owner = %q, want Smith", i, got)
		}
	}
	if diff := cmp.Diff(table.Row{
		"id": "3", "owner": "Smith", "description": "two",
		ColTRS: "154n97w14", ColTractDesc: "Lots 1, 2", ColLots: "L1,L2", ColQQs: "",
	}, out.Row(2)); diff != "" {
		t.Errorf("row 2 mismatch (-want +got):\n%s", diff)
	}

	// Input is untouched.
	if in.Len() != 3 || in.HasColumn(ColTRS) {
		t.Error("input table was modified")
	}
}

func TestExpandDescriptions_Errors(t *testing.T) {
	stub := stubParser{}
	if _, err := ExpandDescriptions(descTable(), "nope", "", stub); !errors.Is(err, table.ErrNoColumn) {
		t.Errorf("missing column err = %v, want ErrNoColumn", err)
	}

	collides := descTable()
	if err := collides.AddColumn(ColTRS); err != nil {
		t.Fatal(err)
	}
	if _, err := ExpandDescriptions(collides, "description", "", stub); !errors.Is(err, table.ErrColumnExists) {
		t.Errorf("collision err = %v, want ErrColumnExists", err)
	}
}

func TestExpandDescriptions_RealParser(t *testing.T) {
	in := descTable("Lots 1, 2, 3, S/2NE/4 of Section 1, T154N-R97W")
	out, err := ExpandDescriptions(in, "description", "", parse.New())
	if err != nil {
		t.Fatalf("ExpandDescriptions: %v", err)
	}
	if out.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", out.Len())
	}
	row := out.Row(0)
	if row[ColTRS] != "154n97w01" {
		t.Errorf("trs = %q, want 154n97w01", row[ColTRS])
	}
	if row[ColLots] != "L1,L2,L3" {
		t.Errorf("lots = %q, want L1,L2,L3", row[ColLots])
	}
	if row[ColQQs] != "S2NE" {
		t.Errorf("qqs = %q, want S2NE", row[ColQQs])
	}
}

func TestParseTracts(t *testing.T) {
	in := table.New("id", "tract")
	in.Append(table.Row{"id": "1", "tract": "Lots 1 - 3"})
	in.Append(table.Row{"id": "2", "tract": "NE/4SE/4"})
	in.Append(table.Row{"id": "3", "tract": ""})

	if err := ParseTracts(in, "tract", "", parse.New()); err != nil {
		t.Fatalf("ParseTracts: %v", err)
	}
	// Row count and order never change.
	if in.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", in.Len())
	}
	if got := in.Row(0)[ColLots]; got != "L1,L2,L3" {
		t.Errorf("row 0 lots = %q, want L1,L2,L3", got)
	}
	if got := in.Row(1)[ColQQs]; got != "NESE" {
		t.Errorf("row 1 qqs = %q, want NESE", got)
	}
	// A cell with nothing to parse leaves empty derived cells.
	if got := in.Row(2)[ColLots]; got != "" {
		t.Errorf("row 2 lots = %q, want empty", got)
	}
}

func TestParseTracts_CollisionLeavesTableUntouched(t *testing.T) {
	in := table.New("tract", ColQQs)
	in.Append(table.Row{"tract": "NE/4", ColQQs: "kept"})

	err := ParseTracts(in, "tract", "", parse.New())
	if !errors.Is(err, table.ErrColumnExists) {
		t.Fatalf("err = %v, want ErrColumnExists", err)
	}
	// The failed call must not leave a half-added derived column.
	if in.HasColumn(ColLots) {
		t.Error("error branch added the lots column")
	}
	if got := in.Row(0)[ColQQs]; got != "kept" {
		t.Errorf("qqs = %q, want kept", got)
	}
}

func TestParseTracts_StubFailure(t *testing.T) {
	in := table.New("tract")
	in.Append(table.Row{"tract": "anything"})
	if err := ParseTracts(in, "tract", "", stubParser{}); err != nil {
		t.Fatalf("ParseTracts: %v", err)
	}
	if in.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", in.Len())
	}
	if got := in.Row(0)[ColQQs]; got != "" {
		t.Errorf("qqs = %q, want empty on parse failure", got)
	}
}

func TestFilterTRS(t *testing.T) {
	in := descTable(
		"NE/4 of Sec 14, 154n97w14",
		"SW/4 of Sec 1, 6s87e01",
		"unrelated land",
	)
	tokens := []string{"154n97w14", "6s87e01"}

	include, err := FilterTRS(in, "description", tokens, true)
	if err != nil {
		t.Fatalf("FilterTRS: %v", err)
	}
	if diff := cmp.Diff([]bool{true, true, false}, include); diff != "" {
		t.Errorf("include mask mismatch (-want +got):\n%s", diff)
	}

	exclude, err := FilterTRS(in, "description", tokens, false)
	if err != nil {
		t.Fatalf("FilterTRS: %v", err)
	}
	if diff := cmp.Diff([]bool{false, false, true}, exclude); diff != "" {
		t.Errorf("exclude mask mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterTRS_NormalizesTokens(t *testing.T) {
	in := descTable("contains 6s87e01 somewhere")
	mask, err := FilterTRS(in, "description", []string{"6S87E1"}, true)
	if err != nil {
		t.Fatalf("FilterTRS: %v", err)
	}
	if !mask[0] {
		t.Error("token 6S87E1 should normalize to 6s87e01 and match")
	}
}

func TestFilterTRS_SectionlessToken(t *testing.T) {
	// A token without a section selects every row in that township and
	// range; it must match as a raw substring, not gain a "00" section.
	in := descTable(
		"NE/4 of Sec 14, 154n97w14",
		"SW/4 of Sec 1, 154n97w01",
		"6s87e01",
	)
	mask, err := FilterTRS(in, "description", []string{"154n97w"}, true)
	if err != nil {
		t.Fatalf("FilterTRS: %v", err)
	}
	if diff := cmp.Diff([]bool{true, true, false}, mask); diff != "" {
		t.Errorf("mask mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterTRS_Properties(t *testing.T) {
	in := descTable(
		"154n97w14", "6s87e01", "154n97w14 and 6s87e01", "nothing", "",
	)
	tokens := []string{"154n97w14", "6s87e01"}

	first, err := FilterTRS(in, "description", tokens, true)
	if err != nil {
		t.Fatal(err)
	}
	// Idempotence: same call, same mask.
	second, err := FilterTRS(in, "description", tokens, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("filter is not idempotent (-first +second):\n%s", diff)
	}

	// Complementarity: include and exclude partition the rows.
	excluded, err := FilterTRS(in, "description", tokens, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i] == excluded[i] {
			t.Errorf("row %d selected by both or neither mode", i)
		}
	}
}

func TestFilterTRS_Errors(t *testing.T) {
	in := descTable("x")
	if _, err := FilterTRS(in, "missing", []string{"154n97w14"}, true); !errors.Is(err, table.ErrNoColumn) {
		t.Errorf("missing column err = %v, want ErrNoColumn", err)
	}
	if _, err := FilterTRS(in, "description", nil, true); err == nil {
		t.Error("zero tokens should be a configuration error")
	}
}
