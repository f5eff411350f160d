package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if strings.TrimSpace(s.Row(y)) != "" {
			t.Errorf("row %d not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetGetCell(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(5, 5, 'X', ColorRed)

	c := s.GetCell(5, 5)
	if c.Rune != 'X' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected X/red", c)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextUnicode(t *testing.T) {
	s := NewScreen(12, 1)
	s.DrawText(0, 0, "♥♥♥ x3")
	if got := s.Row(0); got != "♥♥♥ x3      " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(0, 0, '#')
	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if s.Get(0, 0) != ' ' {
		t.Errorf("expected blank after resize, got %q", s.Get(0, 0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorDefault)
	expected := "╭───╮\n│   │\n╰───╯"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}
