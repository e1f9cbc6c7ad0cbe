// Package bankrules holds the per-bank agency/account validation schemas
// and applies them to candidate bank details.
package bankrules

import "regexp"

// DigitRule validates an agency or account check digit. The pattern is
// only applied when Required is set; it accepts the empty string, so
// presence itself is enforced at the request layer.
type DigitRule struct {
	Required bool
	Pattern  *regexp.Regexp
}

// NumberRule validates an agency or account number.
type NumberRule struct {
	MaxLength int
	Required  bool
	Pattern   *regexp.Regexp
	Digit     DigitRule
}

// AccountTypeRule restricts which account-type tags a bank accepts.
type AccountTypeRule struct {
	Required     bool
	AllowedTypes []string
}

// Schema is the full validation schema for one bank.
type Schema struct {
	Agency      NumberRule
	Account     NumberRule
	AccountType AccountTypeRule
}

// The number patterns forbid all-zero values: leading zeros must be
// followed by at least one significant digit. Digit patterns accept a
// single character, some banks allowing the x/X placeholder.
var (
	agencyPattern       = regexp.MustCompile(`^(?:^0*)[1-9][0-9]{0,3}$`)
	accountPattern      = regexp.MustCompile(`^(?:^0*)[1-9][0-9]{0,10}$`)
	accountPatternShort = regexp.MustCompile(`^(?:^0*)[1-9][0-9]{0,7}$`)
	digitPattern        = regexp.MustCompile(`^[0-9]{0,1}$`)
	digitPatternWithX   = regexp.MustCompile(`^[xX0-9]{0,1}$`)
)

// BankBancoDoBrasil is the only bank with an override schema today.
const BankBancoDoBrasil = "BANCO_DO_BRASIL"

var defaultSchema = Schema{
	Agency: NumberRule{
		MaxLength: 4,
		Required:  true,
		Pattern:   agencyPattern,
		Digit:     DigitRule{Required: false, Pattern: digitPatternWithX},
	},
	Account: NumberRule{
		MaxLength: 11,
		Required:  true,
		Pattern:   accountPattern,
		Digit:     DigitRule{Required: true, Pattern: digitPattern},
	},
	AccountType: AccountTypeRule{
		Required:     true,
		AllowedTypes: []string{"CONTA_CORRENTE", "CONTA_POUPANCA"},
	},
}

// overrides maps bank identifiers to bank-specific schemas. Read-only
// after package init; safe for concurrent use. New bank rules are added
// here, not registered at runtime.
var overrides = map[string]Schema{
	BankBancoDoBrasil: {
		Agency: NumberRule{
			MaxLength: 4,
			Required:  true,
			Pattern:   agencyPattern,
			Digit:     DigitRule{Required: false, Pattern: digitPatternWithX},
		},
		Account: NumberRule{
			MaxLength: 8,
			Required:  true,
			Pattern:   accountPatternShort,
			Digit:     DigitRule{Required: true, Pattern: digitPatternWithX},
		},
		AccountType: AccountTypeRule{
			Required:     true,
			AllowedTypes: []string{"CONTA_CORRENTE", "CONTA_POUPANCA", "CONTA_FACIL"},
		},
	},
}

// SchemaFor returns the override schema registered for bankID, or the
// default schema.
func SchemaFor(bankID string) Schema {
	if s, ok := overrides[bankID]; ok {
		return s
	}
	return defaultSchema
}
