package bankrules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remessa/remessa/internal/shared"
)

func validInput(bankID string) Input {
	return Input{
		BankID:        bankID,
		AgencyNumber:  "0001",
		AgencyDigit:   "",
		AccountNumber: "123456",
		AccountDigit:  "1",
		AccountType:   "CONTA_CORRENTE",
	}
}

func TestSchemaFor(t *testing.T) {
	bb := SchemaFor(BankBancoDoBrasil)
	require.Equal(t, 8, bb.Account.MaxLength)
	require.Contains(t, bb.AccountType.AllowedTypes, "CONTA_FACIL")

	def := SchemaFor("RANDOM_BANK")
	require.Equal(t, 11, def.Account.MaxLength)
	require.NotContains(t, def.AccountType.AllowedTypes, "CONTA_FACIL")
}

func TestValidateAccepts(t *testing.T) {
	for _, bankID := range []string{BankBancoDoBrasil, "RANDOM_BANK"} {
		require.NoError(t, Validate(validInput(bankID)), bankID)
	}
}

func TestValidateAgency(t *testing.T) {
	for _, bankID := range []string{BankBancoDoBrasil, "RANDOM_BANK"} {
		in := validInput(bankID)
		in.AgencyNumber = "1237126387216"
		err := Validate(in)
		require.ErrorIs(t, err, shared.ErrValidation)
		require.ErrorContains(t, err, "agency number has invalid length")

		in = validInput(bankID)
		in.AgencyNumber = "ab12"
		err = Validate(in)
		require.ErrorContains(t, err, "agency number is invalid")

		// All zeros never collapses to a valid agency.
		in = validInput(bankID)
		in.AgencyNumber = "0000"
		require.ErrorContains(t, Validate(in), "agency number is invalid")
	}
}

func TestValidateAgencyDigitNotRequired(t *testing.T) {
	// No bank requires an agency digit, so its pattern is never applied
	// and any submitted value passes.
	for _, bankID := range []string{BankBancoDoBrasil, "RANDOM_BANK"} {
		for _, digit := range []string{"", "1", "X", "Z9"} {
			in := validInput(bankID)
			in.AgencyDigit = digit
			require.NoError(t, Validate(in), "%s agency digit %q", bankID, digit)
		}
	}
}

func TestValidateAccount(t *testing.T) {
	for _, bankID := range []string{BankBancoDoBrasil, "RANDOM_BANK"} {
		in := validInput(bankID)
		in.AccountNumber = "1237126387216"
		require.ErrorContains(t, Validate(in), "account number has invalid length")

		in = validInput(bankID)
		in.AccountNumber = "12ab56"
		require.ErrorContains(t, Validate(in), "account number is invalid")

		in = validInput(bankID)
		in.AccountNumber = "000000"
		require.ErrorContains(t, Validate(in), "account number is invalid")

		in = validInput(bankID)
		in.AccountDigit = "123"
		require.ErrorContains(t, Validate(in), "account digit is invalid")
	}
}

func TestValidateAccountDigitPlaceholder(t *testing.T) {
	// Banco do Brasil accepts the x placeholder as an account digit; the
	// default schema does not.
	in := validInput(BankBancoDoBrasil)
	in.AccountDigit = "x"
	require.NoError(t, Validate(in))

	in = validInput("RANDOM_BANK")
	in.AccountDigit = "x"
	require.ErrorContains(t, Validate(in), "account digit is invalid")
}

func TestValidateAccountLengthPerBank(t *testing.T) {
	// Nine digits fit the default schema but exceed Banco do Brasil's.
	in := validInput("RANDOM_BANK")
	in.AccountNumber = "123456789"
	require.NoError(t, Validate(in))

	in = validInput(BankBancoDoBrasil)
	in.AccountNumber = "123456789"
	require.ErrorContains(t, Validate(in), "account number has invalid length")
}

func TestValidateAccountType(t *testing.T) {
	in := validInput(BankBancoDoBrasil)
	in.AccountType = "CONTA_FACIL"
	require.NoError(t, Validate(in))

	in = validInput("RANDOM_BANK")
	in.AccountType = "CONTA_FACIL"
	require.ErrorContains(t, Validate(in), "account type is invalid")

	in = validInput(BankBancoDoBrasil)
	in.AccountType = "CONTA_IMAGINARIA"
	require.ErrorContains(t, Validate(in), "account type is invalid")
}
