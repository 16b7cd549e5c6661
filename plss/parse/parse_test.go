package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"landtab/plss"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		config   string
		expected []plss.Tract
	}{
		{
			name:  "desc first with lots and aliquot",
			input: "Lots 1, 2, 3, S/2NE/4 of Section 1, T154N-R97W",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 1),
				Description: "Lots 1, 2, 3, S/2NE/4",
				Lots:        []string{"L1", "L2", "L3"},
				QQs:         []string{"S2NE"},
			}},
		},
		{
			name:  "trs first",
			input: "T154N-R97W Sec 14: NE/4",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "NE/4",
				QQs:         []string{"NE"},
			}},
		},
		{
			name:  "trs first multiple sections share the description",
			input: "T154N-R97W Sections 13 and 14: N/2",
			expected: []plss.Tract{
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 13),
					Description: "N/2",
					QQs:         []string{"N2"},
				},
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
					Description: "N/2",
					QQs:         []string{"N2"},
				},
			},
		},
		{
			name:  "trs first multiple sections with own content",
			input: "T154N-R97W Sec 14: NE/4, Sec 1: Lots 1 - 3",
			expected: []plss.Tract{
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
					Description: "NE/4",
					QQs:         []string{"NE"},
				},
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 1),
					Description: "Lots 1 - 3",
					Lots:        []string{"L1", "L2", "L3"},
				},
			},
		},
		{
			name:  "compact token carries its section",
			input: "154n97w14: NE/4",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "NE/4",
				QQs:         []string{"NE"},
			}},
		},
		{
			name:  "desc first with two sections",
			input: "NE/4 of Sec 13 and SE/4 of Sec 14, T154N-R97W",
			expected: []plss.Tract{
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 13),
					Description: "NE/4",
					QQs:         []string{"NE"},
				},
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
					Description: "SE/4",
					QQs:         []string{"SE"},
				},
			},
		},
		{
			name:  "spelled out",
			input: "The Northeast Quarter of Section 14, T154N-R97W",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "NE/4",
				QQs:         []string{"NE"},
			}},
		},
		{
			name:  "township and range words with unicode fractions",
			input: "Township 154 North, Range 97 West, Section 14: W½",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "W/2",
				QQs:         []string{"W2"},
			}},
		},
		{
			name:   "directions fall back to config defaults",
			input:  "T154-R97, Sec 1: SW/4",
			config: "s,e",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 's', 97, 'e', 1),
				Description: "SW/4",
				QQs:         []string{"SW"},
			}},
		},
		{
			name:  "two township blocks",
			input: "T154N-R97W Sec 14: NE/4 T153N-R97W Sec 2: SW/4",
			expected: []plss.Tract{
				{
					TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
					Description: "NE/4",
					QQs:         []string{"NE"},
				},
				{
					TRS:         plss.NewTRS(153, 'n', 97, 'w', 2),
					Description: "SW/4",
					QQs:         []string{"SW"},
				},
			},
		},
		{
			name:  "aliquot chain joined by of-the",
			input: "T154N-R97W Sec 14: S/2 of the NE/4",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "S/2 of the NE/4",
				QQs:         []string{"S2NE"},
			}},
		},
		{
			name:  "comma separated quarter-quarters",
			input: "T154N-R97W Sec 14: NE/4NE/4, S/2NE/4",
			expected: []plss.Tract{{
				TRS:         plss.NewTRS(154, 'n', 97, 'w', 14),
				Description: "NE/4NE/4, S/2NE/4",
				QQs:         []string{"NENE", "S2NE"},
			}},
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracts, err := p.Parse(tt.input, plss.ParseConfig(tt.config))
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expected, tracts); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_NoTract(t *testing.T) {
	p := New()
	for _, input := range []string{"", "no legal description here", "Sec 14: NE/4"} {
		t.Run(input, func(t *testing.T) {
			tracts, err := p.Parse(input, plss.DefaultConfig())
			if !errors.Is(err, ErrNoTract) {
				t.Errorf("Parse(%q) err = %v, want ErrNoTract", input, err)
			}
			if len(tracts) != 0 {
				t.Errorf("Parse(%q) = %v, want none", input, tracts)
			}
		})
	}
}

func TestParse_CleanQQ(t *testing.T) {
	p := New()
	tracts, err := p.Parse("Lots 4, 5, NE/4SE/4", plss.ParseConfig("clean_qq"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	expected := []plss.Tract{{
		Description: "Lots 4, 5, NE/4SE/4",
		Lots:        []string{"L4", "L5"},
		QQs:         []string{"NESE"},
	}}
	if diff := cmp.Diff(expected, tracts); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !tracts[0].TRS.IsZero() {
		t.Errorf("TRS = %v, want zero", tracts[0].TRS)
	}
}

func TestParseTract(t *testing.T) {
	tests := []struct {
		input        string
		expectedLots []string
		expectedQQs  []string
	}{
		{"Lots 1, 2, 3, S/2NE/4", []string{"L1", "L2", "L3"}, []string{"S2NE"}},
		{"NE/4", nil, []string{"NE"}},
		{"Lot 7", []string{"L7"}, nil},
		{"Lots 1 - 3", []string{"L1", "L2", "L3"}, nil},
		{"S2NE4", nil, []string{"S2NE"}},
		{"Southeast Quarter of the Northeast Quarter", nil, []string{"SENE"}},
		{"N½SE¼", nil, []string{"N2SE"}},
		{"W/2 NE/4", nil, []string{"W2NE"}},
		{"", nil, nil},
		{"road easement only", nil, nil},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tract, err := p.ParseTract(tt.input, plss.DefaultConfig())
			if err != nil {
				t.Fatalf("ParseTract(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.expectedLots, tract.Lots); diff != "" {
				t.Errorf("lots mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.expectedQQs, tract.QQs); diff != "" {
				t.Errorf("qqs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
