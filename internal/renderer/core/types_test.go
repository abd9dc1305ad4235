package core

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"#77b6ea", 0x77, 0xb6, 0xea, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
		{"#12345", 0, 0, 0, true},
		{"", 0, 0, 0, true},
	}

	for _, tt := range tests {
		c, err := ColorFromHex(tt.hex)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ColorFromHex(%q) expected error, got nil", tt.hex)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b {
			t.Errorf("ColorFromHex(%q) = (%d,%d,%d), want (%d,%d,%d)",
				tt.hex, c.R, c.G, c.B, tt.r, tt.g, tt.b)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := ColorFromRGB(0x2b, 0x2b, 0x2b).String(); got != "#2B2B2B" {
		t.Errorf("String() = %q, want #2B2B2B", got)
	}
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("String() = %q, want default", got)
	}
}

func TestColorBlend(t *testing.T) {
	black, white := ColorBlack, ColorWhite

	if got := black.Blend(white, 0); !got.Equals(black) {
		t.Errorf("Blend(0) = %v, want black", got)
	}
	if got := black.Blend(white, 1); !got.Equals(white) {
		t.Errorf("Blend(1) = %v, want white", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R < 126 || mid.R > 129 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Blend(0.5) = %v, want mid gray", mid)
	}
	if got := black.Blend(white, 2); !got.Equals(white) {
		t.Errorf("Blend clamps amount, got %v", got)
	}
	if got := ColorDefault.Blend(white, 0.2); !got.IsDefault() {
		t.Errorf("Blend from default below half = %v, want default", got)
	}
}

func TestColorLighten(t *testing.T) {
	c := MustHex("#505050").Lighten(0.5)
	if c.R <= 0x50 || c.R == 255 {
		t.Errorf("Lighten(0.5) = %v", c)
	}
}

func TestColorEquals(t *testing.T) {
	if ColorDefault.Equals(ColorBlack) {
		t.Error("default should not equal black")
	}
	if !ColorDefault.Equals(Color{Default: true, R: 9}) {
		t.Error("default colors are equal regardless of components")
	}
}

func TestStyleBuilders(t *testing.T) {
	s := NewStyle(ColorWhite, ColorBlack).Bold().Dim()
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrDim) || s.Attributes.Has(AttrReverse) {
		t.Errorf("unexpected attributes %v", s.Attributes)
	}
	if !s.WithBackground(ColorGray).Background.Equals(ColorGray) {
		t.Error("WithBackground did not apply")
	}
	if s.Equals(DefaultStyle()) {
		t.Error("styled should differ from default")
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"123", 3},
		{"√x", 2},
		{"xʸ", 2},
		{"+/-", 3},
		{"日本", 4},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
	if RuneWidth('\t') != 0 {
		t.Error("control runes have zero width")
	}
	if RuneWidth('日') != 2 {
		t.Error("wide rune should have width 2")
	}
}

func TestTruncateLeft(t *testing.T) {
	if got := TruncateLeft("123456", 4); got != "3456" {
		t.Errorf("TruncateLeft = %q, want 3456", got)
	}
	if got := TruncateLeft("12", 4); got != "12" {
		t.Errorf("TruncateLeft = %q, want 12", got)
	}
	if got := TruncateLeft("12", 0); got != "" {
		t.Errorf("TruncateLeft = %q, want empty", got)
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Errorf("size = %dx%d, want 5x4", r.Width(), r.Height())
	}
	if !r.Contains(ScreenPos{Row: 2, Col: 3}) || r.Contains(ScreenPos{Row: 6, Col: 3}) || r.Contains(ScreenPos{Row: 2, Col: 8}) {
		t.Error("Contains is wrong at the edges")
	}
	if !(ScreenRect{Top: 5, Bottom: 5}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
}
