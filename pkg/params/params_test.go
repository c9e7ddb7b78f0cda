package params

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

const paramsBoard = `(kicad_pcb
	(version 20240108)
	(generator "pcbnew")
	(footprint "Switch:SW_1u"
		(at 100 50)
		(property "Reference" "SW1"
			(at 0 0 0)
			(layer "F.SilkS")
			(uuid "aaaaaaaa-0000-0000-0000-000000000001")
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
	)
	(footprint "Switch:SW_1u"
		(at 119.05 50)
		(property "Reference" "SW2"
			(at 0 0 0)
			(layer "F.SilkS")
			(uuid "aaaaaaaa-0000-0000-0000-000000000002")
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
	)
	(footprint "Switch:SW_1u"
		(at 138.1 50)
		(property "Reference" "SW3"
			(at 0 0 0)
			(layer "F.SilkS")
			(uuid "aaaaaaaa-0000-0000-0000-000000000003")
			(effects
				(font
					(size 1.27 1.27)
				)
			)
		)
	)
)
`

func mustBoard(t *testing.T) *kicad.Board {
	t.Helper()
	board, err := kicad.Parse([]byte(paramsBoard))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return board
}

func mustFootprint(t *testing.T, board *kicad.Board, ref string) *kicad.Footprint {
	t.Helper()
	fp, ok := board.FindFootprint(ref)
	if !ok {
		t.Fatalf("footprint %s not found", ref)
	}
	return fp
}

func TestFromConfig(t *testing.T) {
	cfg := row.Config{
		SagMM:           20,
		EndFlat:         1,
		Profile:         row.ProfileCosine,
		AsymmetricCurve: true,
	}
	refs := []string{"SW1", "SW2", "SW3", "SW4", "SW5"}

	rec := FromConfig(cfg, refs)

	want := Record{
		SagMM:           20,
		EndFlat:         1,
		Profile:         row.ProfileCosine,
		AsymmetricCurve: true,
		Footprints:      refs,
		RowName:         "SW1〜SW5",
		Version:         SchemaVersion,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("FromConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromConfigNoRefs(t *testing.T) {
	rec := FromConfig(row.Config{SagMM: 5}, nil)
	if rec.RowName != "" {
		t.Errorf("RowName = %q, want empty", rec.RowName)
	}
}

func TestRecordLabel(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "named row",
			rec:  Record{RowName: "SW1〜SW5", Footprints: []string{"SW1", "SW2", "SW3", "SW4", "SW5"}},
			want: "SW1〜SW5 (5 keys)",
		},
		{
			name: "single key",
			rec:  Record{RowName: "SW9〜SW9", Footprints: []string{"SW9"}},
			want: "SW9〜SW9 (1 keys)",
		},
		{
			name: "missing name",
			rec:  Record{},
			want: "Unknown (0 keys)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecordConfig(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want row.Config
	}{
		{
			name: "passes valid values through",
			rec:  Record{SagMM: 12.5, EndFlat: 2, Profile: row.ProfileBezier, AsymmetricCurve: true},
			want: row.Config{SagMM: 12.5, EndFlat: 2, Profile: row.ProfileBezier, AsymmetricCurve: true},
		},
		{
			name: "clamps negative sag",
			rec:  Record{SagMM: -3, Profile: row.ProfileCosine},
			want: row.Config{SagMM: 0, Profile: row.ProfileCosine},
		},
		{
			name: "clamps end flat above range",
			rec:  Record{EndFlat: 5, Profile: row.ProfileCosine},
			want: row.Config{EndFlat: 2, Profile: row.ProfileCosine},
		},
		{
			name: "clamps negative end flat",
			rec:  Record{EndFlat: -1, Profile: row.ProfileCosine},
			want: row.Config{EndFlat: 0, Profile: row.ProfileCosine},
		},
		{
			name: "defaults missing profile to cosine",
			rec:  Record{SagMM: 20},
			want: row.Config{SagMM: 20, Profile: row.ProfileCosine},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.rec.Config()); diff != "" {
				t.Errorf("Config() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The JSON key set is an on-board contract: records written by older
// builds must keep loading, so the keys may never drift.
func TestRecordJSONKeys(t *testing.T) {
	rec := FromConfig(row.Config{SagMM: 20, EndFlat: 1, Profile: row.ProfileCosine}, []string{"SW1", "SW2"})
	text, err := rec.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := []string{
		`"sag"`,
		`"end_flat"`,
		`"profile"`,
		`"use_asymmetric_curve"`,
		`"footprints"`,
		`"row_name"`,
		`"version"`,
	}
	for _, key := range want {
		if !strings.Contains(text, key) {
			t.Errorf("Marshal() = %s, missing key %s", text, key)
		}
	}
	if strings.Contains(text, `\u`) {
		t.Errorf("Marshal() = %s, row name should stay literal UTF-8", text)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	board := mustBoard(t)
	first := mustFootprint(t, board, "SW1")

	rec := FromConfig(row.Config{
		SagMM:   18.5,
		EndFlat: 1,
		Profile: row.ProfileQuadratic,
	}, []string{"SW1", "SW2", "SW3"})
	if err := SaveRow(first, rec); err != nil {
		t.Fatalf("SaveRow() error = %v", err)
	}

	got, ok := Load(FootprintStore{FP: first})
	if !ok {
		t.Fatal("Load() found no record after SaveRow()")
	}
	if diff := cmp.Diff(rec, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	// Records live in hidden fields so they never show up in plots.
	text := string(board.Bytes())
	if !strings.Contains(text, FieldName) {
		t.Errorf("board text missing field %s", FieldName)
	}
	if !strings.Contains(text, "hide") {
		t.Error("saved field is not hidden")
	}

	// The record must survive a file round trip, not just live edits.
	reparsed, err := kicad.Parse(board.Bytes())
	if err != nil {
		t.Fatalf("Parse(Bytes()) error = %v", err)
	}
	rows := FindRows(reparsed)
	if len(rows) != 1 {
		t.Fatalf("FindRows() returned %d rows, want 1", len(rows))
	}
	if ref := rows[0].First.Reference(); ref != "SW1" {
		t.Errorf("row anchored at %s, want SW1", ref)
	}
	if diff := cmp.Diff(rec, rows[0].Record); diff != "" {
		t.Errorf("FindRows() record mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEmptyAndMissing(t *testing.T) {
	board := mustBoard(t)
	fp := mustFootprint(t, board, "SW2")

	if _, ok := Load(FootprintStore{FP: fp}); ok {
		t.Error("Load() = true for footprint without a record")
	}

	fp.SetProperty(FieldName, "", true)
	if _, ok := Load(FootprintStore{FP: fp}); ok {
		t.Error("Load() = true for empty field text")
	}
}

func TestFindRowsSkipsMalformed(t *testing.T) {
	board := mustBoard(t)

	good := FromConfig(row.Config{SagMM: 20, Profile: row.ProfileCosine}, []string{"SW1", "SW2"})
	if err := SaveRow(mustFootprint(t, board, "SW1"), good); err != nil {
		t.Fatalf("SaveRow() error = %v", err)
	}
	// A truncated payload on another footprint must not break the scan.
	mustFootprint(t, board, "SW3").SetProperty(FieldName, `{"sag": 20,`, true)

	rows := FindRows(board)
	if len(rows) != 1 {
		t.Fatalf("FindRows() returned %d rows, want 1", len(rows))
	}
	if ref := rows[0].First.Reference(); ref != "SW1" {
		t.Errorf("row anchored at %s, want SW1", ref)
	}
}

func TestFindRow(t *testing.T) {
	board := mustBoard(t)
	rec := FromConfig(row.Config{SagMM: 20, Profile: row.ProfileCosine}, []string{"SW1", "SW2", "SW3"})
	if err := SaveRow(mustFootprint(t, board, "SW1"), rec); err != nil {
		t.Fatalf("SaveRow() error = %v", err)
	}

	t.Run("by row name", func(t *testing.T) {
		saved, err := FindRow(board, "SW1〜SW3")
		if err != nil {
			t.Fatalf("FindRow() error = %v", err)
		}
		if saved.First.Reference() != "SW1" {
			t.Errorf("First = %s, want SW1", saved.First.Reference())
		}
	})

	t.Run("by first reference", func(t *testing.T) {
		if _, err := FindRow(board, "SW1"); err != nil {
			t.Errorf("FindRow() error = %v", err)
		}
	})

	t.Run("missing row", func(t *testing.T) {
		_, err := FindRow(board, "SW7〜SW9")
		if err == nil {
			t.Fatal("FindRow() error = nil, want row not found")
		}
		if !errors.Is(err, errors.ErrCodeRowNotFound) {
			t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeRowNotFound)
		}
	})
}
