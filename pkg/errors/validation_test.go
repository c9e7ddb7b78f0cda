package errors

import (
	"math"
	"testing"
)

func TestValidateSlotCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"zero slots", 0, true},
		{"one slot", 1, true},
		{"two slots", 2, false},
		{"many slots", 12, false},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlotCount(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlotCount(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInsufficientSlots {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInsufficientSlots)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		mm      float64
		wantErr bool
	}{
		{"valid 1u", 19.05, false},
		{"valid small", 0.1, false},
		{"zero", 0, true},
		{"negative", -19.05, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension(0, "width", tt.mm)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(width=%v) error = %v, wantErr %v", tt.mm, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidDimension {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidDimension)
			}
		})
	}
}

func TestValidateRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantErr bool
	}{
		{"simple", "SW1", false},
		{"multi digit", "SW42", false},
		{"empty", "", true},
		{"lowercase", "sw1", true},
		{"no number", "SW", true},
		{"wrong prefix", "D1", true},
		{"trailing text", "SW1A", true},
		{"leading space", " SW1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRef(tt.ref)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLayer(t *testing.T) {
	tests := []struct {
		name    string
		layer   string
		wantErr bool
	}{
		{"edge cuts", "Edge.Cuts", false},
		{"silkscreen", "F.SilkS", false},
		{"user layer", "User.1", false},
		{"comments", "Cmts.User", false},
		{"empty", "", true},
		{"leading digit", "1User", true},
		{"spaces", "Edge Cuts", true},
		{"quotes", `Edge"Cuts`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayer(tt.layer)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLayer(%q) error = %v, wantErr %v", tt.layer, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBoardPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "keyboard.kicad_pcb", false},
		{"nested", "boards/rev2/keyboard.kicad_pcb", false},
		{"absolute", "/home/user/keyboard.kicad_pcb", false},
		{"empty", "", true},
		{"wrong extension", "keyboard.kicad_sch", true},
		{"no extension", "keyboard", true},
		{"null byte", "board\x00.kicad_pcb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoardPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoardPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
