package params

import (
	"encoding/json"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
)

// AttributeStore is the narrow surface persistence needs from a slot
// owner: named text attributes that survive a save/load round trip.
// Nothing outside this package needs to know records live in footprint
// fields.
type AttributeStore interface {
	// Attribute returns the named attribute's text, if present.
	Attribute(name string) (string, bool)
	// SetAttribute stores text under the given name. Stored attributes
	// are hidden from normal board rendering.
	SetAttribute(name, text string) error
}

// FootprintStore adapts a board footprint to AttributeStore, backing
// each attribute with a hidden footprint field.
type FootprintStore struct {
	FP *kicad.Footprint
}

// Attribute implements AttributeStore.
func (s FootprintStore) Attribute(name string) (string, bool) {
	return s.FP.PropertyText(name)
}

// SetAttribute implements AttributeStore.
func (s FootprintStore) SetAttribute(name, text string) error {
	s.FP.SetProperty(name, text, true)
	return nil
}

// Save writes the record to the store under FieldName.
func Save(store AttributeStore, rec Record) error {
	text, err := rec.Marshal()
	if err != nil {
		return err
	}
	return store.SetAttribute(FieldName, text)
}

// Load reads a record back from the store. The second return is false
// when no record is present or its payload does not parse; a corrupt
// field is treated as absent rather than fatal so it cannot block the
// rest of the board.
func Load(store AttributeStore) (Record, bool) {
	text, ok := store.Attribute(FieldName)
	if !ok || text == "" {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}

// SavedRow pairs a recovered record with the footprint that carries it.
type SavedRow struct {
	First  *kicad.Footprint
	Record Record
}

// SaveRow stores rec on the row's first footprint, which acts as the
// anchor for the whole row.
func SaveRow(first *kicad.Footprint, rec Record) error {
	return Save(FootprintStore{FP: first}, rec)
}

// FindRows scans every footprint on the board for saved records and
// returns them in board order.
func FindRows(board *kicad.Board) []SavedRow {
	var rows []SavedRow
	for _, fp := range board.Footprints() {
		rec, ok := Load(FootprintStore{FP: fp})
		if !ok {
			continue
		}
		rows = append(rows, SavedRow{First: fp, Record: rec})
	}
	return rows
}

// FindRow looks up a single saved row by name. The name matches either
// the stored row name or, as a convenience, the reference of the row's
// first footprint.
func FindRow(board *kicad.Board, name string) (SavedRow, error) {
	for _, saved := range FindRows(board) {
		if saved.Record.RowName == name || saved.First.Reference() == name {
			return saved, nil
		}
	}
	return SavedRow{}, errors.New(errors.ErrCodeRowNotFound, "no saved row named %q", name)
}
