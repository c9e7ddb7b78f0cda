package grin

import (
	"math"
	"strings"

	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/kicad"
	"github.com/f4ah6o/kicad-keyboard-grinner/pkg/units"
)

// Field names checked for explicit key dimensions, in lookup order.
// Dedicated width and height fields win over combined size fields, which
// win over free-text metadata.
var (
	widthFields  = []string{"KEY_WIDTH", "KeyWidth"}
	heightFields = []string{"KEY_HEIGHT", "KeyHeight"}
	sizeFields   = []string{"KEY_SIZE", "KeySize", "KEY_DIM", "KeyDim", "SW_SIZE"}
)

// InferKeySize derives a footprint's key width and height in millimeters.
//
// Dimensions come from the first source that yields them: dedicated
// fields, combined size fields, the SW_WIDTH field, dimension text in the
// library item name, value or description, and finally the footprint's
// own bounding box quantized to standard keycap increments. Whatever the
// source, the result is always positive; anything unparseable falls back
// to one unit.
func InferKeySize(fp *kicad.Footprint) (w, h float64) {
	var width, height float64
	var haveW, haveH bool

	for _, name := range widthFields {
		if v, ok := parseField(fp, name); ok {
			width, haveW = v, true
			break
		}
	}
	for _, name := range heightFields {
		if v, ok := parseField(fp, name); ok {
			height, haveH = v, true
			break
		}
	}

	if !haveW || !haveH {
		for _, name := range sizeFields {
			text, ok := fp.PropertyText(name)
			if !ok {
				continue
			}
			pw, ph, ok := units.ParsePair(text)
			if !ok {
				continue
			}
			if !haveW {
				width, haveW = pw, true
			}
			if !haveH {
				height, haveH = ph, true
			}
			break
		}
	}

	if !haveW {
		if v, ok := parseField(fp, "SW_WIDTH"); ok {
			width, haveW = v, true
		}
	}

	// Free-text metadata often embeds the size, e.g. "SW_1.5u" library
	// names or "1.25u x 1u" descriptions.
	for _, text := range []string{libItemName(fp), fp.Value(), fp.Description()} {
		if haveW && haveH {
			break
		}
		pw, ph, ok := units.ParsePair(text)
		if !ok {
			continue
		}
		if !haveW {
			width, haveW = pw, true
		}
		if !haveH {
			height, haveH = ph, true
		}
	}

	if !haveW || !haveH {
		bw, bh := fp.BoundingBox()
		if !haveW {
			width = units.Quantize(bw)
		}
		if !haveH {
			height = units.Quantize(bh)
		}
	}

	if width <= 0 || math.IsNaN(width) {
		width = units.UnitMM
	}
	if height <= 0 || math.IsNaN(height) {
		height = units.UnitMM
	}
	return width, height
}

// parseField reads a footprint field and parses it as one dimension.
func parseField(fp *kicad.Footprint, name string) (float64, bool) {
	text, ok := fp.PropertyText(name)
	if !ok {
		return 0, false
	}
	return units.ParseValue(text)
}

// libItemName strips the library prefix from a footprint identifier, so
// "Switch:SW_1.5u" yields "SW_1.5u".
func libItemName(fp *kicad.Footprint) string {
	id := fp.LibID()
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		return id[i+1:]
	}
	return id
}
