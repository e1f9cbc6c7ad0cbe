package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/remessa/remessa/internal/shared"
)

func TestParseType(t *testing.T) {
	typ, err := ParseType("cpf")
	require.NoError(t, err)
	require.Equal(t, TypeCPF, typ)

	typ, err = ParseType(" CNPJ ")
	require.NoError(t, err)
	require.Equal(t, TypeCNPJ, typ)

	_, err = ParseType("CNH")
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestValidateCPF(t *testing.T) {
	valid := []string{
		"53902371021",
		"11144477735",
		"111.444.777-35",
	}
	for _, doc := range valid {
		require.NoError(t, Validate(TypeCPF, doc), doc)
	}

	invalid := []string{
		"",
		"5390237102",       // too short
		"539023710211",     // too long
		"53902371022",      // wrong second check digit
		"53902371031",      // wrong first check digit
		"00000000000",      // repeated digits
		"11111111111",      // repeated digits
		"5390237102a",      // non-digit
		"129837129837219",  // garbage
	}
	for _, doc := range invalid {
		require.ErrorIs(t, Validate(TypeCPF, doc), ErrInvalidCPF, doc)
	}
}

func TestValidateCPFMutations(t *testing.T) {
	// Any single-digit mutation of the check digits must fail.
	const base = "111444777"
	for d1 := byte('0'); d1 <= '9'; d1++ {
		for d2 := byte('0'); d2 <= '9'; d2++ {
			doc := base + string(d1) + string(d2)
			err := Validate(TypeCPF, doc)
			if d1 == '3' && d2 == '5' {
				require.NoError(t, err, doc)
			} else {
				require.Error(t, err, doc)
			}
		}
	}
}

func TestValidateCNPJ(t *testing.T) {
	valid := []string{
		"11444777000161",
		"11.444.777/0001-61",
	}
	for _, doc := range valid {
		require.NoError(t, Validate(TypeCNPJ, doc), doc)
	}

	invalid := []string{
		"",
		"11444777000160", // wrong check digit
		"11444777000151", // wrong first check digit
		"1144477700016",  // too short
		"00000000000000", // repeated digits
		"53902371021",    // CPF length
	}
	for _, doc := range invalid {
		require.ErrorIs(t, Validate(TypeCNPJ, doc), ErrInvalidCNPJ, doc)
	}
}

func TestValidateTypeMismatch(t *testing.T) {
	// A valid CNPJ is not a valid CPF and vice versa.
	require.Error(t, Validate(TypeCPF, "11444777000161"))
	require.Error(t, Validate(TypeCNPJ, "53902371021"))
	require.ErrorIs(t, Validate(Type("CNH"), "53902371021"), ErrInvalidType)
}
