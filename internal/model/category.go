package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the classification bucket of a referenced font name.
type Category int

const (
	// CategorySystem marks fonts shipped with Windows, macOS, Linux or
	// generic CSS families. They need no action on the show machine.
	CategorySystem Category = iota

	// CategoryCommercial marks names carrying a commercial foundry marker.
	CategoryCommercial

	// CategoryFree marks every other name. It is an optimistic guess that
	// the family can be found on a free font site, not a verified fact.
	CategoryFree
)

// ErrUnknownCategory is returned by ParseCategory for unrecognised names.
var ErrUnknownCategory = errors.New("unknown font category")

// Categories lists every category in display order.
var Categories = []Category{CategorySystem, CategoryCommercial, CategoryFree}

// String returns the machine-readable name of the category.
func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "system"
	case CategoryCommercial:
		return "commercial"
	case CategoryFree:
		return "free"
	default:
		return "unknown"
	}
}

// Label returns the heading used for the category in reports.
func (c Category) Label() string {
	switch c {
	case CategorySystem:
		return "System fonts"
	case CategoryCommercial:
		return "Commercial fonts"
	case CategoryFree:
		return "Free candidates"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a category name back into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "system":
		return CategorySystem, nil
	case "commercial":
		return CategoryCommercial, nil
	case "free":
		return CategoryFree, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}
