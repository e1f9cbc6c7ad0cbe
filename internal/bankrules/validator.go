package bankrules

import (
	"fmt"

	"github.com/remessa/remessa/internal/shared"
)

// Input is a candidate agency/account tuple to validate against the
// schema of the referenced bank.
type Input struct {
	BankID        string
	AgencyNumber  string
	AgencyDigit   string
	AccountNumber string
	AccountDigit  string
	AccountType   string
}

// Validate applies the bank's schema to the input, short-circuiting on
// the first failure. Every returned error wraps shared.ErrValidation and
// carries the user-visible reason.
func Validate(in Input) error {
	schema := SchemaFor(in.BankID)

	if schema.Agency.Required {
		if len(in.AgencyNumber) > schema.Agency.MaxLength {
			return reason("agency number has invalid length")
		}
		if !schema.Agency.Pattern.MatchString(in.AgencyNumber) {
			return reason("agency number is invalid")
		}
		if schema.Agency.Digit.Required && !schema.Agency.Digit.Pattern.MatchString(in.AgencyDigit) {
			return reason("agency digit is invalid")
		}
	}

	if schema.Account.Required {
		if len(in.AccountNumber) > schema.Account.MaxLength {
			return reason("account number has invalid length")
		}
		if !schema.Account.Pattern.MatchString(in.AccountNumber) {
			return reason("account number is invalid")
		}
		if schema.Account.Digit.Required && !schema.Account.Digit.Pattern.MatchString(in.AccountDigit) {
			return reason("account digit is invalid")
		}
	}

	if schema.AccountType.Required && !contains(schema.AccountType.AllowedTypes, in.AccountType) {
		return reason("account type is invalid")
	}

	return nil
}

func reason(msg string) error {
	return fmt.Errorf("%w: %s", shared.ErrValidation, msg)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
