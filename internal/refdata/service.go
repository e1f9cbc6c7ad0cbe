package refdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/remessa/remessa/internal/shared"
)

// Service handles reference data business logic and serves as the lookup
// collaborator for the beneficiary lifecycle.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// CreateBank registers a bank under its stable identifier.
func (s *Service) CreateBank(ctx context.Context, bank Bank) error {
	if strings.TrimSpace(bank.ID) == "" {
		return fmt.Errorf("%w: bank id is required", shared.ErrValidation)
	}
	if strings.TrimSpace(bank.Name) == "" {
		return fmt.Errorf("%w: bank name is required", shared.ErrValidation)
	}
	return s.repo.CreateBank(ctx, bank)
}

// GetBank resolves a bank by id through the cache.
func (s *Service) GetBank(ctx context.Context, id string) (Bank, error) {
	var bank Bank
	err := s.cache.fetchJSON(ctx, BankKey(id), &bank, func(ctx context.Context) (any, error) {
		return s.repo.GetBank(ctx, id)
	})
	return bank, err
}

// ListBanks returns all registered banks.
func (s *Service) ListBanks(ctx context.Context) ([]Bank, error) {
	return s.repo.ListBanks(ctx)
}

// UpdateBank renames a bank. Cached account types embed the bank name,
// so the bank's account-type entries are invalidated along with it.
func (s *Service) UpdateBank(ctx context.Context, bank Bank) error {
	if strings.TrimSpace(bank.Name) == "" {
		return fmt.Errorf("%w: bank name is required", shared.ErrValidation)
	}
	if err := s.repo.UpdateBank(ctx, bank); err != nil {
		return err
	}
	keys := []string{BankKey(bank.ID)}
	if types, err := s.repo.ListAccountTypesForBank(ctx, bank.ID); err == nil {
		for _, at := range types {
			keys = append(keys, AccountTypeKey(at.ID))
		}
	}
	s.cache.Invalidate(ctx, keys...)
	return nil
}

// DeleteBank removes a bank.
func (s *Service) DeleteBank(ctx context.Context, id string) error {
	if err := s.repo.DeleteBank(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, BankKey(id))
	return nil
}

// CreateAccountType registers an account type under an existing bank.
// The (bank, type) pair must be unique.
func (s *Service) CreateAccountType(ctx context.Context, at BankAccountType) (BankAccountType, error) {
	if strings.TrimSpace(at.Type) == "" {
		return BankAccountType{}, fmt.Errorf("%w: account type tag is required", shared.ErrValidation)
	}
	if strings.TrimSpace(at.Name) == "" {
		return BankAccountType{}, fmt.Errorf("%w: account type name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(at.BankID) == "" {
		return BankAccountType{}, fmt.Errorf("%w: bank id is required", shared.ErrValidation)
	}
	if _, err := s.repo.GetBank(ctx, at.BankID); err != nil {
		return BankAccountType{}, err
	}
	// Pre-insert duplicate lookup; the unique index still backstops races.
	_, err := s.repo.FindAccountTypeByBankAndType(ctx, at.BankID, at.Type)
	if err == nil {
		return BankAccountType{}, fmt.Errorf("%w: account type %s for bank %s", shared.ErrDuplicate, at.Type, at.BankID)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return BankAccountType{}, err
	}
	at.ID = uuid.NewString()
	if err := s.repo.CreateAccountType(ctx, at); err != nil {
		return BankAccountType{}, err
	}
	return at, nil
}

// GetAccountType resolves an account type by id through the cache.
func (s *Service) GetAccountType(ctx context.Context, id string) (BankAccountTypeWithBank, error) {
	var at BankAccountTypeWithBank
	err := s.cache.fetchJSON(ctx, AccountTypeKey(id), &at, func(ctx context.Context) (any, error) {
		return s.repo.GetAccountType(ctx, id)
	})
	return at, err
}

// ListAccountTypes returns all account types joined with their banks.
func (s *Service) ListAccountTypes(ctx context.Context) ([]BankAccountTypeWithBank, error) {
	return s.repo.ListAccountTypes(ctx)
}

// ListAccountTypesForBank returns the account types owned by one bank.
func (s *Service) ListAccountTypesForBank(ctx context.Context, bankID string) ([]BankAccountType, error) {
	if _, err := s.repo.GetBank(ctx, bankID); err != nil {
		return nil, err
	}
	return s.repo.ListAccountTypesForBank(ctx, bankID)
}

// UpdateAccountType applies a partial update; zero-valued fields keep the
// stored value. A changed bank must exist.
func (s *Service) UpdateAccountType(ctx context.Context, id string, patch BankAccountType) error {
	current, err := s.repo.GetAccountType(ctx, id)
	if err != nil {
		return err
	}
	next := current.BankAccountType
	if patch.BankID != "" {
		if _, err := s.repo.GetBank(ctx, patch.BankID); err != nil {
			return err
		}
		next.BankID = patch.BankID
	}
	if patch.Type != "" {
		next.Type = patch.Type
	}
	if patch.Name != "" {
		next.Name = patch.Name
	}
	if err := s.repo.UpdateAccountType(ctx, next); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, AccountTypeKey(id))
	return nil
}

// DeleteAccountType removes an account type.
func (s *Service) DeleteAccountType(ctx context.Context, id string) error {
	if err := s.repo.DeleteAccountType(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, AccountTypeKey(id))
	return nil
}

// WarmCache pre-populates bank and account-type entries. Used by the
// background warmup job; lookups stay correct without it.
func (s *Service) WarmCache(ctx context.Context, bankID string) error {
	if _, err := s.GetBank(ctx, bankID); err != nil {
		return err
	}
	types, err := s.repo.ListAccountTypesForBank(ctx, bankID)
	if err != nil {
		return err
	}
	for _, at := range types {
		if _, err := s.GetAccountType(ctx, at.ID); err != nil {
			return err
		}
	}
	return nil
}
