package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is the per-client balance state.
type Account struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount returns a fresh unlocked account with zero balances.
func NewAccount(clientID uint16) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is always derived, never stored.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// ValidateNonNegative checks available >= 0 and held >= 0.
func (a *Account) ValidateNonNegative() error {
	if a.Available.IsNegative() {
		return fmt.Errorf("client %d has negative available balance: %s", a.ClientID, a.Available)
	}
	if a.Held.IsNegative() {
		return fmt.Errorf("client %d has negative held balance: %s", a.ClientID, a.Held)
	}
	return nil
}
