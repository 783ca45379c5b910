package model

import (
	"errors"
	"strings"
)

var ErrInvalidCNPJ = errors.New("invalid cnpj")

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// CNPJ is a Brazilian business tax id stored as its 14 digits.
type CNPJ struct {
	value string
}

func NewCNPJ(raw string) (CNPJ, error) {
	if strings.TrimSpace(raw) == "" {
		return CNPJ{}, ErrInvalidCNPJ
	}
	digits := make([]byte, 0, 14)
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if !validCNPJ(digits) {
		return CNPJ{}, ErrInvalidCNPJ
	}
	return CNPJ{value: string(digits)}, nil
}

func (c CNPJ) String() string {
	return c.value
}

func validCNPJ(digits []byte) bool {
	if len(digits) != 14 {
		return false
	}
	return checkDigit(digits, cnpjFirstWeights, 12) && checkDigit(digits, cnpjSecondWeights, 13)
}

func checkDigit(digits []byte, weights []int, position int) bool {
	sum := 0
	for i := 0; i < position; i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	expected := 0
	if rest := sum % 11; rest >= 2 {
		expected = 11 - rest
	}
	return int(digits[position]-'0') == expected
}
