package services

import (
	"fmt"

	"github.com/DainoStore/dainostore-go/internal/domain/entities/billing"
	"github.com/DainoStore/dainostore-go/internal/infrastructure/tenant"
)

// CreditService meters paid platform operations against a store's
// credit balance. Spends fail closed: an operation that cannot afford
// its cost never runs.
type CreditService struct{}

// NewCreditService creates a new credit service.
func NewCreditService() *CreditService {
	return &CreditService{}
}

// GetBalance returns the store's current credit balance.
func (s *CreditService) GetBalance(storeCtx *tenant.Context) (*billing.CreditBalance, error) {
	balance, err := storeCtx.CreditRepo().FindBalance(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit balance: %w", err)
	}
	return balance, nil
}

// GetCosts returns the configured per-operation credit prices.
func (s *CreditService) GetCosts(storeCtx *tenant.Context) ([]*billing.CreditCost, error) {
	costs, err := storeCtx.CreditRepo().FindCosts(storeCtx.StoreID)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit costs: %w", err)
	}
	return costs, nil
}

// GetLedger returns recent credit movements, newest first.
func (s *CreditService) GetLedger(storeCtx *tenant.Context, limit int) ([]*billing.LedgerEntry, error) {
	entries, err := storeCtx.CreditRepo().FindLedger(storeCtx.StoreID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get credit ledger: %w", err)
	}
	return entries, nil
}

// Spend charges the configured cost of an operation. An operation
// missing from the cost table is free and records no ledger entry.
// Insufficient balance surfaces as an error from the ledger write.
func (s *CreditService) Spend(storeCtx *tenant.Context, operation, note string) (*billing.LedgerEntry, error) {
	cost, err := s.costOf(storeCtx, operation)
	if err != nil {
		return nil, err
	}
	if cost == 0 {
		return nil, nil
	}

	entry, err := storeCtx.CreditRepo().ApplyDelta(storeCtx.StoreID, operation, -cost, note)
	if err != nil {
		return nil, fmt.Errorf("failed to spend credits: %w", err)
	}
	return entry, nil
}

// CanAfford reports whether the store's balance covers one run of the
// operation. Callers still race against concurrent spends; the ledger
// write is the authority.
func (s *CreditService) CanAfford(storeCtx *tenant.Context, operation string) (bool, error) {
	cost, err := s.costOf(storeCtx, operation)
	if err != nil {
		return false, err
	}
	if cost == 0 {
		return true, nil
	}
	balance, err := s.GetBalance(storeCtx)
	if err != nil {
		return false, err
	}
	return balance.Credits >= cost, nil
}

// Grant adds credits to the store's balance.
func (s *CreditService) Grant(storeCtx *tenant.Context, credits int, note string) (*billing.LedgerEntry, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("credit grant must be positive, got %d", credits)
	}
	entry, err := storeCtx.CreditRepo().ApplyDelta(storeCtx.StoreID, "grant", credits, note)
	if err != nil {
		return nil, fmt.Errorf("failed to grant credits: %w", err)
	}
	return entry, nil
}

func (s *CreditService) costOf(storeCtx *tenant.Context, operation string) (int, error) {
	costs, err := storeCtx.CreditRepo().FindCosts(storeCtx.StoreID)
	if err != nil {
		return 0, fmt.Errorf("failed to get credit costs: %w", err)
	}
	for _, c := range costs {
		if c.Operation == operation {
			return c.Credits, nil
		}
	}
	return 0, nil
}
