// Package units converts keyboard dimension text into millimeters.
//
// Keyboard dimensions are commonly written in "units" where 1u is the
// standard key pitch of 19.05mm: a regular key is 1u wide, common modifier
// widths are 1.25u, 1.5u, 1.75u and 2u. Footprint metadata mixes this
// notation with plain millimeters ("1.5u", "19.05mm", "1.5u x 1u"), so the
// parsers here accept both and normalize everything to millimeters.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// UnitMM is the standard key pitch (1u) in millimeters.
const UnitMM = 19.05

// Quantization limits for raw measurements. Keycap sizes come in quarter
// unit steps and never below one unit.
const (
	minUnits  = 1.0
	stepUnits = 0.25
)

// tokenRe matches one dimension token: a decimal number with an optional
// unit suffix.
var tokenRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(mm|MM|u|U)?`)

// convertToken converts a matched number and unit to millimeters.
// defaultUnit applies when the token has no explicit unit; an empty
// defaultUnit makes unitless tokens unparseable.
func convertToken(num, unit, defaultUnit string) (float64, bool) {
	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	if unit == "" {
		unit = defaultUnit
	}
	switch strings.ToLower(unit) {
	case "mm":
		return value, true
	case "u":
		return value * UnitMM, true
	}
	return 0, false
}

// ParseValue parses a single dimension like "1.5u" or "19.05mm" and
// returns it in millimeters. A bare number is read as units. Returns false
// when the text holds no positive dimension.
func ParseValue(text string) (float64, bool) {
	m := tokenRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return 0, false
	}
	value, ok := convertToken(m[1], m[2], "u")
	if !ok || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParsePair parses a dimension pair like "1.5u x 1u" or a single width like
// "1.75u" and returns (width, height) in millimeters. A missing or invalid
// height falls back to one unit. Bare numbers only count when at least one
// token in the text carries an explicit unit; this keeps arbitrary digits in
// descriptions from reading as sizes.
func ParsePair(text string) (w, h float64, ok bool) {
	if text == "" {
		return 0, 0, false
	}
	normalized := strings.ReplaceAll(text, "×", "x")
	matches := tokenRe.FindAllStringSubmatch(normalized, -1)
	if matches == nil {
		return 0, 0, false
	}

	defaultUnit := ""
	for _, m := range matches {
		if m[2] != "" {
			defaultUnit = "u"
			break
		}
	}

	width, okW := convertToken(matches[0][1], matches[0][2], defaultUnit)
	if !okW || width <= 0 {
		return 0, 0, false
	}

	height := UnitMM
	if len(matches) > 1 {
		v, okH := convertToken(matches[1][1], matches[1][2], defaultUnit)
		if okH && v > 0 {
			height = v
		}
	}
	return width, height, true
}

// Quantize snaps a raw millimeter measurement to standard keycap
// increments: at least one unit, in quarter unit steps. Invalid input
// (NaN or non-positive) quantizes to one unit.
func Quantize(mm float64) float64 {
	if math.IsNaN(mm) || mm <= 0 {
		return minUnits * UnitMM
	}
	u := mm / UnitMM
	u = math.Max(minUnits, u)
	u = math.Round(u/stepUnits) * stepUnits
	if u < minUnits {
		u = minUnits
	}
	return u * UnitMM
}
