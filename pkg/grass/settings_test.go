package grass

import (
	"errors"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		want   error
	}{
		{"defaults", func(*Settings) {}, nil},
		{"zero brush", func(s *Settings) { s.BrushSize = 0 }, ErrInvalidBrush},
		{"density low", func(s *Settings) { s.Density = 0 }, ErrInvalidDensity},
		{"density high", func(s *Settings) { s.Density = 8 }, ErrInvalidDensity},
		{"limit low", func(s *Settings) { s.GrassLimit = 6 }, ErrInvalidLimit},
		{"limit high", func(s *Settings) { s.GrassLimit = 10001 }, ErrInvalidLimit},
		{"tilt", func(s *Settings) { s.NormalLimit = 1.5 }, ErrInvalidTilt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeAdd, ModeRemove, ModeEdit} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("smudge"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestNewPainterRejectsBadSettings(t *testing.T) {
	s := DefaultSettings()
	s.Density = 0
	if _, err := NewPainter(s, flatWorld()); !errors.Is(err, ErrInvalidDensity) {
		t.Errorf("NewPainter err = %v", err)
	}
}
