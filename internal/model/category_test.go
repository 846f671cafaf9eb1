package model

import (
	"errors"
	"testing"
)

// TestCategoryString tests the String method of Category.
func TestCategoryString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		category Category
		expected string
	}{
		{CategorySystem, "system"},
		{CategoryCommercial, "commercial"},
		{CategoryFree, "free"},
		{Category(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.category.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.category.String(), tc.expected)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	t.Run("every category parses back from its name", func(t *testing.T) {
		t.Parallel()
		for _, c := range Categories {
			got, err := ParseCategory(c.String())
			if err != nil {
				t.Fatalf("ParseCategory(%q) error: %v", c.String(), err)
			}
			if got != c {
				t.Errorf("ParseCategory(%q) = %v, want %v", c.String(), got, c)
			}
		}
	})

	t.Run("input is case and space insensitive", func(t *testing.T) {
		t.Parallel()
		got, err := ParseCategory("  Commercial ")
		if err != nil || got != CategoryCommercial {
			t.Errorf("got %v, %v", got, err)
		}
	})

	t.Run("unknown name returns ErrUnknownCategory", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseCategory("premium"); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got %v", err)
		}
	})
}
