package service

import (
	"sync"

	"wallet_aggregator/internal/domain/entity"
)

// AccountBook is the in-memory set of tracked accounts, kept in insertion order.
type AccountBook struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*entity.Account
}

// NewAccountBook creates an empty book.
func NewAccountBook(accounts ...*entity.Account) *AccountBook {
	b := &AccountBook{byID: make(map[string]*entity.Account)}
	for _, acc := range accounts {
		b.Put(acc)
	}
	return b
}

// Put adds the account or replaces one with the same id in place.
func (b *AccountBook) Put(account *entity.Account) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[account.ID]; !ok {
		b.order = append(b.order, account.ID)
	}
	b.byID[account.ID] = account
}

// Get returns the account with id.
func (b *AccountBook) Get(id string) (*entity.Account, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acc, ok := b.byID[id]
	return acc, ok
}

// Remove drops the account from the book.
func (b *AccountBook) Remove(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byID[id]; !ok {
		return false
	}
	delete(b.byID, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Active returns the active accounts in insertion order.
func (b *AccountBook) Active() []*entity.Account {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*entity.Account, 0, len(b.order))
	for _, id := range b.order {
		if acc := b.byID[id]; acc.Active() {
			out = append(out, acc)
		}
	}
	return out
}

// Len returns the number of accounts, active or not.
func (b *AccountBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
