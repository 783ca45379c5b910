package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidLicenseNumber   = errors.New("license number is incorrect")
	ErrInvalidLicenseCategory = errors.New("license category is incorrect")
)

// LicenseCategory is a bit set of driving categories.
type LicenseCategory uint8

const (
	LicenseNone LicenseCategory = 0
	LicenseA    LicenseCategory = 1 << 0
	LicenseB    LicenseCategory = 1 << 1
	LicenseAB                   = LicenseA | LicenseB
)

func ParseLicenseCategory(raw string) (LicenseCategory, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "NONE":
		return LicenseNone, nil
	case "A":
		return LicenseA, nil
	case "B":
		return LicenseB, nil
	case "AB", "A+B":
		return LicenseAB, nil
	default:
		return LicenseNone, fmt.Errorf("%w: %q", ErrInvalidLicenseCategory, raw)
	}
}

func (c LicenseCategory) Has(other LicenseCategory) bool {
	return other != LicenseNone && c&other == other
}

func (c LicenseCategory) String() string {
	switch c {
	case LicenseNone:
		return "None"
	case LicenseA:
		return "A"
	case LicenseB:
		return "B"
	case LicenseAB:
		return "AB"
	default:
		return fmt.Sprintf("LicenseCategory(%d)", uint8(c))
	}
}

// License is the CNH value object. The zero value is not a valid license;
// build one with NewLicense.
type License struct {
	number   string
	category LicenseCategory
}

func NewLicense(number, category string) (License, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return License{}, ErrInvalidLicenseNumber
	}
	parsed, err := ParseLicenseCategory(category)
	if err != nil {
		return License{}, err
	}
	return License{number: number, category: parsed}, nil
}

func (l License) Number() string {
	return l.number
}

func (l License) Category() LicenseCategory {
	return l.category
}

func (l License) PermitsMotorcycle() bool {
	return l.category.Has(LicenseA)
}

func (l License) Equal(other License) bool {
	return l == other
}

func (l License) String() string {
	return fmt.Sprintf("%s-%s", l.number, l.category)
}
