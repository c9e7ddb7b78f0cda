package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateSlotCount validates the number of slots in a row.
// A row needs at least two slots; a single slot has no neighbor to
// touch and nothing to arrange.
func ValidateSlotCount(n int) error {
	if n < 2 {
		return New(ErrCodeInsufficientSlots, "need at least 2 slots to form a row, got %d", n)
	}
	return nil
}

// ValidateDimension validates one slot dimension in millimeters.
// Dimensions must be finite and strictly positive; the layout engine never
// substitutes defaults, so upstream normalization has to hand it valid
// values.
func ValidateDimension(index int, name string, mm float64) error {
	if math.IsNaN(mm) {
		return New(ErrCodeInvalidDimension, "slot %d: %s is NaN", index, name)
	}
	if math.IsInf(mm, 0) {
		return New(ErrCodeInvalidDimension, "slot %d: %s is infinite", index, name)
	}
	if mm <= 0 {
		return New(ErrCodeInvalidDimension, "slot %d: %s must be positive, got %g", index, name, mm)
	}
	return nil
}

// refRegex matches switch footprint references like SW1 or SW42.
var refRegex = regexp.MustCompile(`^SW\d+$`)

// ValidateRef validates a switch footprint reference.
func ValidateRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidRef, "reference cannot be empty")
	}
	if !refRegex.MatchString(ref) {
		return New(ErrCodeInvalidRef, "reference must look like SW<number>: %q", ref)
	}
	return nil
}

// layerNameRegex matches KiCad layer names such as Edge.Cuts, F.SilkS or User.1.
var layerNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// ValidateLayer validates a KiCad layer name.
func ValidateLayer(name string) error {
	if name == "" {
		return New(ErrCodeInvalidLayer, "layer name cannot be empty")
	}
	if !layerNameRegex.MatchString(name) {
		return New(ErrCodeInvalidLayer, "invalid layer name: %q", name)
	}
	return nil
}

// ValidateBoardPath validates a board file path for basic safety.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 4096 characters
//   - Must end in .kicad_pcb
func ValidateBoardPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "board path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "board path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "board path contains invalid characters")
		}
	}

	if !strings.HasSuffix(path, ".kicad_pcb") {
		return New(ErrCodeInvalidPath, "board path must end in .kicad_pcb: %q", path)
	}

	return nil
}
