// Package refdata owns the bank and bank-account-type reference data and
// resolves lookups for the beneficiary lifecycle.
package refdata

// Bank is a financial institution, keyed by a stable slug such as
// BANCO_DO_BRASIL.
type Bank struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BankAccountType is a named account category scoped to one bank. Type is
// the tag matched against the bank schema's allowed types.
type BankAccountType struct {
	ID     string `json:"id"`
	BankID string `json:"bankId"`
	Type   string `json:"type"`
	Name   string `json:"name"`
}

// BankAccountTypeWithBank joins the owning bank for display.
type BankAccountTypeWithBank struct {
	BankAccountType
	BankName string `json:"bankName"`
}
