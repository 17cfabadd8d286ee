package entity

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// AccountKind discriminates wallet accounts from exchange accounts.
type AccountKind string

const (
	AccountKindWallet   AccountKind = "wallet"
	AccountKindExchange AccountKind = "exchange"
)

// Chain identifies a blockchain a wallet lives on.
type Chain string

const (
	ChainEthereum Chain = "ethereum"
	ChainBitcoin  Chain = "bitcoin"
)

// ExchangeID identifies a centralized exchange.
type ExchangeID string

const (
	ExchangeBinance ExchangeID = "binance"
	ExchangeBybit   ExchangeID = "bybit"
)

// AccountState is derived from holdings freshness and credential presence.
type AccountState string

const (
	AccountStateCreated           AccountState = "created"
	AccountStatePopulated         AccountState = "populated"
	AccountStateStale             AccountState = "stale"
	AccountStateCredentialMissing AccountState = "credential_missing"
)

// Account is one tracked source of funds. Wallet accounts carry Chain and
// Address; exchange accounts carry ExchangeID. Secrets are never stored here.
type Account struct {
	ID         string
	StoreID    int64
	Name       string
	Kind       AccountKind
	Chain      Chain
	Address    string
	ExchangeID ExchangeID
	CreatedAt  time.Time

	mu          sync.RWMutex
	holdings    []Holding
	lastUpdated time.Time
	active      bool
}

// NewWalletAccount builds an active wallet account with a derived id.
func NewWalletAccount(name string, chain Chain, address string, now time.Time) *Account {
	return &Account{
		ID:        WalletAccountID(chain, address),
		Name:      name,
		Kind:      AccountKindWallet,
		Chain:     chain,
		Address:   address,
		CreatedAt: now,
		active:    true,
	}
}

// NewExchangeAccount builds an active exchange account with a derived id.
func NewExchangeAccount(name string, exchange ExchangeID, now time.Time) *Account {
	return &Account{
		ID:         ExchangeAccountID(exchange, name),
		Name:       name,
		Kind:       AccountKindExchange,
		ExchangeID: exchange,
		CreatedAt:  now,
		active:     true,
	}
}

// WalletAccountID returns wallet_<chain>_<first 8 chars of address>.
func WalletAccountID(chain Chain, address string) string {
	prefix := address
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("wallet_%s_%s", chain, strings.ToLower(prefix))
}

// ExchangeAccountID returns exchange_<exchange>_<name with spaces as underscores>.
func ExchangeAccountID(exchange ExchangeID, name string) string {
	return fmt.Sprintf("exchange_%s_%s", exchange, strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_"))
}

// Holdings returns a copy of the current holding set.
func (a *Account) Holdings() []Holding {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Holding, len(a.holdings))
	copy(out, a.holdings)
	return out
}

// LastUpdated is zero until the first successful refresh.
func (a *Account) LastUpdated() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastUpdated
}

// ReplaceHoldings swaps the whole holding set in one step.
func (a *Account) ReplaceHoldings(holdings []Holding, at time.Time) {
	next := make([]Holding, len(holdings))
	copy(next, holdings)

	a.mu.Lock()
	a.holdings = next
	a.lastUpdated = at
	a.mu.Unlock()
}

// Active reports whether the account has not been removed.
func (a *Account) Active() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.active
}

// Deactivate flags the account inactive and drops its holdings.
func (a *Account) Deactivate() {
	a.mu.Lock()
	a.active = false
	a.holdings = nil
	a.mu.Unlock()
}

// SetStoreID records the row id assigned by the account store.
func (a *Account) SetStoreID(id int64) {
	a.mu.Lock()
	a.StoreID = id
	a.mu.Unlock()
}

// Metadata returns the persistable part of the account.
func (a *Account) Metadata() AccountMetadata {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return AccountMetadata{
		ID:          a.ID,
		StoreID:     a.StoreID,
		Name:        a.Name,
		Kind:        a.Kind,
		Chain:       a.Chain,
		Address:     a.Address,
		ExchangeID:  a.ExchangeID,
		CreatedAt:   a.CreatedAt,
		LastUpdated: a.lastUpdated,
		Active:      a.active,
	}
}

// AccountFromMetadata rebuilds an account without holdings.
func AccountFromMetadata(m AccountMetadata) *Account {
	return &Account{
		ID:          m.ID,
		StoreID:     m.StoreID,
		Name:        m.Name,
		Kind:        m.Kind,
		Chain:       m.Chain,
		Address:     m.Address,
		ExchangeID:  m.ExchangeID,
		CreatedAt:   m.CreatedAt,
		lastUpdated: m.LastUpdated,
		active:      m.Active,
	}
}

// AccountMetadata is what the account store persists. It has no secret fields.
type AccountMetadata struct {
	ID          string      `json:"id"`
	StoreID     int64       `json:"storeId"`
	Name        string      `json:"name"`
	Kind        AccountKind `json:"kind"`
	Chain       Chain       `json:"chain,omitempty"`
	Address     string      `json:"address,omitempty"`
	ExchangeID  ExchangeID  `json:"exchangeId,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	LastUpdated time.Time   `json:"lastUpdated"`
	Active      bool        `json:"active"`
}
