// Package params persists row layout parameters inside the board itself.
//
// A solved row saves its configuration as a JSON record in a hidden field
// on the row's first footprint. Later runs find those records, list the
// saved rows, and re-solve them with tweaked parameters, so the board file
// stays the single source of truth and no sidecar files are needed.
package params

import (
	"encoding/json"
	"fmt"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/row"
)

const (
	// FieldName is the hidden footprint field carrying a saved row.
	FieldName = "grinner_params"
	// SchemaVersion tags new records so later readers can migrate old
	// payloads if the shape ever changes.
	SchemaVersion = "2025.10.2"
)

// rowNameSeparator joins the first and last reference into a display name.
// The wave dash reads as a range marker.
const rowNameSeparator = "〜"

// Record is the JSON payload of one saved row. Field names are part of
// the on-board format; changing them orphans previously saved rows.
type Record struct {
	SagMM           float64  `json:"sag"`
	EndFlat         int      `json:"end_flat"`
	Profile         string   `json:"profile"`
	AsymmetricCurve bool     `json:"use_asymmetric_curve"`
	Footprints      []string `json:"footprints"`
	RowName         string   `json:"row_name"`
	Version         string   `json:"version"`
}

// FromConfig builds a record for a solved row over the given references.
func FromConfig(cfg row.Config, refs []string) Record {
	rec := Record{
		SagMM:           cfg.SagMM,
		EndFlat:         cfg.EndFlat,
		Profile:         cfg.Profile,
		AsymmetricCurve: cfg.AsymmetricCurve,
		Footprints:      refs,
		Version:         SchemaVersion,
	}
	if len(refs) > 0 {
		rec.RowName = refs[0] + rowNameSeparator + refs[len(refs)-1]
	}
	return rec
}

// Config converts the record back into layout parameters, clamping
// whatever a stale or hand-edited payload may carry: sag is never
// negative, the flat count stays in range, and a missing profile falls
// back to cosine.
func (r Record) Config() row.Config {
	cfg := row.Config{
		SagMM:           r.SagMM,
		EndFlat:         r.EndFlat,
		Profile:         r.Profile,
		AsymmetricCurve: r.AsymmetricCurve,
	}
	if cfg.SagMM < 0 {
		cfg.SagMM = 0
	}
	if cfg.EndFlat < 0 {
		cfg.EndFlat = 0
	}
	if cfg.EndFlat > 2 {
		cfg.EndFlat = 2
	}
	if cfg.Profile == "" {
		cfg.Profile = row.ProfileCosine
	}
	return cfg
}

// Label renders the record for row listings, e.g. "SW1〜SW5 (5 keys)".
func (r Record) Label() string {
	name := r.RowName
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s (%d keys)", name, len(r.Footprints))
}

// Marshal renders the record as the JSON stored on the board.
func (r Record) Marshal() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encoding row record")
	}
	return string(data), nil
}
