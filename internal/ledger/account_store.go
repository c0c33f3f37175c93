package ledger

// AccountStore maintains per-client accounts, created lazily.
// Accounts are never removed within a run.
type AccountStore struct {
	accounts map[uint16]*Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[uint16]*Account),
	}
}

// GetOrCreate returns the account for clientID, creating it with zero
// balances on first reference. The second return reports whether a new
// account was created.
func (s *AccountStore) GetOrCreate(clientID uint16) (*Account, bool) {
	if acct, ok := s.accounts[clientID]; ok {
		return acct, false
	}
	acct := NewAccount(clientID)
	s.accounts[clientID] = acct
	return acct, true
}

// Get returns the account for clientID if it exists.
func (s *AccountStore) Get(clientID uint16) (*Account, bool) {
	acct, ok := s.accounts[clientID]
	return acct, ok
}

// Len returns the number of accounts created so far.
func (s *AccountStore) Len() int {
	return len(s.accounts)
}

// Clients returns all known client ids in no particular order.
func (s *AccountStore) Clients() []uint16 {
	ids := make([]uint16, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	return ids
}
