package beneficiary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/remessa/remessa/internal/bankrules"
	"github.com/remessa/remessa/internal/document"
	"github.com/remessa/remessa/internal/refdata"
	"github.com/remessa/remessa/internal/shared"
)

// ReferenceLookup resolves bank and account-type references.
type ReferenceLookup interface {
	GetBank(ctx context.Context, id string) (refdata.Bank, error)
	GetAccountType(ctx context.Context, id string) (refdata.BankAccountTypeWithBank, error)
}

// RepositoryPort defines data access for beneficiaries. Update applies
// an optimistic-lock check against the read snapshot so that racing
// updates are rejected, never silently merged.
type RepositoryPort interface {
	Create(ctx context.Context, b Beneficiary) error
	Get(ctx context.Context, id string) (Beneficiary, error)
	GetWithRefs(ctx context.Context, id string) (WithRefs, error)
	Update(ctx context.Context, b Beneficiary, readAt time.Time) error
	List(ctx context.Context, filter ListFilter) ([]WithRefs, int, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// Service is the beneficiary lifecycle engine.
type Service struct {
	repo   RepositoryPort
	lookup ReferenceLookup
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, lookup ReferenceLookup) *Service {
	return &Service{repo: repo, lookup: lookup}
}

// Create registers a new beneficiary in DRAFT status and returns its
// generated identifier.
func (s *Service) Create(ctx context.Context, in CreateInput) (string, error) {
	if err := requireFields(map[string]string{
		"name":              in.Name,
		"email":             in.Email,
		"document":          in.Document,
		"documentType":      in.DocumentType,
		"agencyNumber":      in.AgencyNumber,
		"accountNumber":     in.AccountNumber,
		"bankId":            in.BankID,
		"bankAccountTypeId": in.BankAccountTypeID,
	}); err != nil {
		return "", err
	}

	bank, err := s.lookup.GetBank(ctx, in.BankID)
	if err != nil {
		return "", err
	}
	accountType, err := s.lookup.GetAccountType(ctx, in.BankAccountTypeID)
	if err != nil {
		return "", err
	}
	if accountType.BankID != bank.ID {
		return "", fmt.Errorf("%w: account type does not belong to bank %s", shared.ErrValidation, bank.ID)
	}

	docType, err := document.ParseType(in.DocumentType)
	if err != nil {
		return "", err
	}
	if err := document.Validate(docType, in.Document); err != nil {
		return "", err
	}

	if err := bankrules.Validate(bankrules.Input{
		BankID:        bank.ID,
		AgencyNumber:  in.AgencyNumber,
		AgencyDigit:   in.AgencyDigit,
		AccountNumber: in.AccountNumber,
		AccountDigit:  in.AccountDigit,
		AccountType:   accountType.Type,
	}); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	b := Beneficiary{
		ID:                uuid.NewString(),
		Name:              in.Name,
		Email:             in.Email,
		Document:          in.Document,
		DocumentType:      docType,
		Status:            StatusDraft,
		AgencyNumber:      in.AgencyNumber,
		AgencyDigit:       in.AgencyDigit,
		AccountNumber:     in.AccountNumber,
		AccountDigit:      in.AccountDigit,
		BankID:            bank.ID,
		BankAccountTypeID: accountType.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

// Update applies a partial update under the lifecycle rules. A VALIDATED
// beneficiary accepts only an email change; anything else submitted is
// silently ignored. A DRAFT beneficiary has every staged mutation
// validated against the effective (merged) record before any of it is
// committed.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if current.Status == StatusValidated {
		if in.Email == nil || *in.Email == current.Email {
			return nil
		}
		next := current
		next.Email = *in.Email
		return s.repo.Update(ctx, next, current.UpdatedAt)
	}

	next := current

	if in.Name != nil {
		next.Name = *in.Name
	}
	if in.Email != nil {
		next.Email = *in.Email
	}

	if in.Status != nil {
		status, err := ParseStatus(*in.Status)
		if err != nil {
			return err
		}
		// Staged only; the remaining rules still run before a
		// DRAFT -> VALIDATED transition takes effect.
		next.Status = status
	}

	if in.DocumentType != nil {
		docType, err := document.ParseType(*in.DocumentType)
		if err != nil {
			return err
		}
		if docType != current.DocumentType && in.Document == nil {
			return fmt.Errorf("%w: document number required when changing document type", shared.ErrValidation)
		}
		next.DocumentType = docType
	}
	if in.Document != nil {
		if err := document.Validate(next.DocumentType, *in.Document); err != nil {
			return err
		}
		next.Document = *in.Document
	}

	if in.BankID != nil {
		bank, err := s.lookup.GetBank(ctx, *in.BankID)
		if err != nil {
			return err
		}
		next.BankID = bank.ID
	}

	// The effective account-type tag follows the newly staged account
	// type when one was submitted, else the currently stored one.
	var accountType refdata.BankAccountTypeWithBank
	if in.BankAccountTypeID != nil {
		accountType, err = s.lookup.GetAccountType(ctx, *in.BankAccountTypeID)
		if err != nil {
			return err
		}
		next.BankAccountTypeID = accountType.ID
	} else {
		accountType, err = s.lookup.GetAccountType(ctx, next.BankAccountTypeID)
		if err != nil {
			return err
		}
	}
	if accountType.BankID != next.BankID {
		return fmt.Errorf("%w: account type does not belong to bank %s", shared.ErrValidation, next.BankID)
	}

	if in.AgencyNumber != nil {
		next.AgencyNumber = *in.AgencyNumber
	}
	if in.AgencyDigit != nil {
		next.AgencyDigit = *in.AgencyDigit
	}
	if in.AccountNumber != nil {
		next.AccountNumber = *in.AccountNumber
	}
	if in.AccountDigit != nil {
		next.AccountDigit = *in.AccountDigit
	}

	// Validate the merged record, never the raw patch: account digit and
	// length rules depend jointly on bank identity and account type.
	if err := bankrules.Validate(bankrules.Input{
		BankID:        next.BankID,
		AgencyNumber:  next.AgencyNumber,
		AgencyDigit:   next.AgencyDigit,
		AccountNumber: next.AccountNumber,
		AccountDigit:  next.AccountDigit,
		AccountType:   accountType.Type,
	}); err != nil {
		return err
	}

	return s.repo.Update(ctx, next, current.UpdatedAt)
}

// Get returns a beneficiary joined with its bank and account type.
func (s *Service) Get(ctx context.Context, id string) (WithRefs, error) {
	return s.repo.GetWithRefs(ctx, id)
}

// List returns one page of beneficiaries, optionally narrowed by a
// substring search over name, document, agency number and account-type
// name. Page size is fixed at shared.PageSize.
func (s *Service) List(ctx context.Context, page int, search string) ([]WithRefs, shared.Pagination, error) {
	offset := (page - 1) * shared.PageSize
	if offset < 0 {
		return nil, shared.Pagination{}, fmt.Errorf("%w: invalid page %d", shared.ErrValidation, page)
	}
	items, total, err := s.repo.List(ctx, ListFilter{
		Search: search,
		Offset: offset,
		Limit:  shared.PageSize,
	})
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, shared.NewPagination(page, shared.PageSize, total), nil
}

// Delete removes beneficiaries in batch and reports how many rows went
// away.
func (s *Service) Delete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids are required", shared.ErrValidation)
	}
	return s.repo.Delete(ctx, ids)
}

func requireFields(fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: missing parameter %s", shared.ErrValidation, name)
		}
	}
	return nil
}
