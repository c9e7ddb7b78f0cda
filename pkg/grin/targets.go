package grin

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/errors"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
)

// GatherTargets returns the switch footprints one run should arrange, in
// natural reference order (SW2 sorts before SW10).
//
// With explicit refs, every named footprint must exist on the board and
// each ref must look like SW<number>; a missing footprint fails the whole
// run rather than silently shrinking the row. With no refs, every
// footprint whose reference matches the switch pattern is gathered.
func GatherTargets(board *kicad.Board, refs []string) ([]*kicad.Footprint, error) {
	var targets []*kicad.Footprint

	if len(refs) > 0 {
		seen := make(map[string]bool, len(refs))
		for _, ref := range refs {
			if err := errors.ValidateRef(ref); err != nil {
				return nil, err
			}
			if seen[ref] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate reference %s", ref)
			}
			seen[ref] = true
			fp, ok := board.FindFootprint(ref)
			if !ok {
				return nil, errors.New(errors.ErrCodeFootprintNotFound, "footprint %s not found on board", ref)
			}
			targets = append(targets, fp)
		}
	} else {
		for _, fp := range board.Footprints() {
			if errors.ValidateRef(fp.Reference()) == nil {
				targets = append(targets, fp)
			}
		}
	}

	sortByReference(targets)
	return targets, nil
}

// sortByReference orders footprints by reference with numeric runs
// compared as numbers, so SW2 comes before SW10.
func sortByReference(fps []*kicad.Footprint) {
	col := collate.New(language.Und, collate.Numeric)
	sort.SliceStable(fps, func(i, j int) bool {
		return col.CompareString(fps[i].Reference(), fps[j].Reference()) < 0
	})
}

// refsOf extracts the references of the gathered footprints, in order.
func refsOf(fps []*kicad.Footprint) []string {
	refs := make([]string, len(fps))
	for i, fp := range fps {
		refs[i] = fp.Reference()
	}
	return refs
}
