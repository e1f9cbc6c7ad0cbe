// Package document validates Brazilian fiscal documents (CPF and CNPJ)
// using the standard check-digit algorithms.
package document

import (
	"fmt"
	"strings"

	"github.com/remessa/remessa/internal/shared"
)

// Type enumerates supported fiscal document kinds.
type Type string

const (
	TypeCPF  Type = "CPF"
	TypeCNPJ Type = "CNPJ"
)

var (
	ErrInvalidType = fmt.Errorf("%w: invalid document type", shared.ErrValidation)
	ErrInvalidCPF  = fmt.Errorf("%w: invalid CPF", shared.ErrValidation)
	ErrInvalidCNPJ = fmt.Errorf("%w: invalid CNPJ", shared.ErrValidation)
)

// ParseType normalises a document type string.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeCPF:
		return TypeCPF, nil
	case TypeCNPJ:
		return TypeCNPJ, nil
	default:
		return "", ErrInvalidType
	}
}

// Validate checks document against the check-digit algorithm for typ.
// Pure function; punctuation (dots, dashes, slashes) is tolerated.
func Validate(typ Type, doc string) error {
	switch typ {
	case TypeCPF:
		if !validCPF(doc) {
			return ErrInvalidCPF
		}
		return nil
	case TypeCNPJ:
		if !validCNPJ(doc) {
			return ErrInvalidCNPJ
		}
		return nil
	default:
		return ErrInvalidType
	}
}

// stripFormatting keeps decimal digits only. Returns false when any other
// character besides the usual CPF/CNPJ punctuation is present.
func stripFormatting(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '/':
		default:
			return "", false
		}
	}
	return b.String(), true
}

func allSame(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// checkDigit computes a weighted mod-11 check digit; weights are applied
// left to right.
func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func validCPF(doc string) bool {
	digits, ok := stripFormatting(doc)
	if !ok || len(digits) != 11 || allSame(digits) {
		return false
	}
	first := checkDigit(digits, []int{10, 9, 8, 7, 6, 5, 4, 3, 2})
	if first != int(digits[9]-'0') {
		return false
	}
	second := checkDigit(digits, []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
	return second == int(digits[10]-'0')
}

func validCNPJ(doc string) bool {
	digits, ok := stripFormatting(doc)
	if !ok || len(digits) != 14 || allSame(digits) {
		return false
	}
	first := checkDigit(digits, []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	if first != int(digits[12]-'0') {
		return false
	}
	second := checkDigit(digits, []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
	return second == int(digits[13]-'0')
}
