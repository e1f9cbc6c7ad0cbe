// Package beneficiary implements the beneficiary lifecycle: creation,
// status-gated mutation and paginated search of payees registered for
// bank transfers.
package beneficiary

import (
	"fmt"
	"time"

	"github.com/remessa/remessa/internal/document"
	"github.com/remessa/remessa/internal/shared"
)

// Status enumerates beneficiary lifecycle states.
type Status string

const (
	// StatusDraft is the initial state; every field is mutable subject to
	// validation.
	StatusDraft Status = "DRAFT"
	// StatusValidated marks a beneficiary usable by payment processing;
	// only email may change on direct update.
	StatusValidated Status = "VALIDATED"
)

// ParseStatus validates a submitted status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusValidated:
		return StatusValidated, nil
	default:
		return "", fmt.Errorf("%w: invalid status %q", shared.ErrValidation, s)
	}
}

// Beneficiary is a payee registered for future transfers.
type Beneficiary struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Document          string        `json:"document"`
	DocumentType      document.Type `json:"documentType"`
	Status            Status        `json:"status"`
	AgencyNumber      string        `json:"agencyNumber"`
	AgencyDigit       string        `json:"agencyDigit,omitempty"`
	AccountNumber     string        `json:"accountNumber"`
	AccountDigit      string        `json:"accountDigit"`
	BankID            string        `json:"bankId"`
	BankAccountTypeID string        `json:"bankAccountTypeId"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// WithRefs joins the bank and account-type names for display.
type WithRefs struct {
	Beneficiary
	BankName        string `json:"bankName"`
	AccountTypeName string `json:"accountTypeName"`
	AccountTypeTag  string `json:"accountTypeTag"`
}

// CreateInput carries the full field set required to register a
// beneficiary. AgencyDigit is the only optional field.
type CreateInput struct {
	Name              string
	Email             string
	Document          string
	DocumentType      string
	AgencyNumber      string
	AgencyDigit       string
	AccountNumber     string
	AccountDigit      string
	BankID            string
	BankAccountTypeID string
}

// UpdateInput is a field-level patch; nil means "not submitted".
type UpdateInput struct {
	Name              *string
	Email             *string
	Document          *string
	DocumentType      *string
	Status            *string
	AgencyNumber      *string
	AgencyDigit       *string
	AccountNumber     *string
	AccountDigit      *string
	BankID            *string
	BankAccountTypeID *string
}

// ListFilter narrows a beneficiary listing. Search matches name,
// document, agency number or account-type name as a substring.
type ListFilter struct {
	Search string
	Offset int
	Limit  int
}
