package entity

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountIDs(t *testing.T) {
	assert.Equal(t, "wallet_ethereum_0xde0b29", WalletAccountID(ChainEthereum, "0xDE0B295669a9FD93d5F28D9Ec85E40f4cb697BAe"))
	assert.Equal(t, "exchange_binance_main_account", ExchangeAccountID(ExchangeBinance, " Main Account "))
}

func TestReplaceHoldingsIsAtomic(t *testing.T) {
	acc := NewWalletAccount("w", ChainBitcoin, "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa", time.Now())
	setA := []Holding{{Symbol: "A", Balance: decimal.NewFromInt(1)}, {Symbol: "A2", Balance: decimal.NewFromInt(1)}}
	setB := []Holding{{Symbol: "B", Balance: decimal.NewFromInt(2)}, {Symbol: "B2", Balance: decimal.NewFromInt(2)}}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				acc.ReplaceHoldings(setA, time.Now())
			} else {
				acc.ReplaceHoldings(setB, time.Now())
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			hs := acc.Holdings()
			if len(hs) == 0 {
				continue
			}
			assert.Len(t, hs, 2)
			assert.Equal(t, hs[0].Symbol[:1], hs[1].Symbol[:1])
		}
	}()
	wg.Wait()
}

func TestHoldingsReturnsCopy(t *testing.T) {
	acc := NewExchangeAccount("main", ExchangeBybit, time.Now())
	acc.ReplaceHoldings([]Holding{{Symbol: "BTC", Balance: decimal.NewFromInt(1)}}, time.Now())

	hs := acc.Holdings()
	hs[0].Symbol = "XXX"
	assert.Equal(t, "BTC", acc.Holdings()[0].Symbol)
}

func TestDeactivate(t *testing.T) {
	acc := NewExchangeAccount("main", ExchangeBybit, time.Now())
	acc.ReplaceHoldings([]Holding{{Symbol: "BTC", Balance: decimal.NewFromInt(1)}}, time.Now())
	acc.Deactivate()

	assert.False(t, acc.Active())
	assert.Empty(t, acc.Holdings())
	assert.False(t, acc.Metadata().Active)
}

func TestWalletDataHoldings(t *testing.T) {
	wd := WalletData{
		Native: Holding{Symbol: "ETH", Balance: decimal.Zero},
		Tokens: []Holding{{Symbol: "USDC", Balance: decimal.NewFromInt(5), TokenAddress: "0xa0b8"}},
	}
	hs := wd.Holdings()
	assert.Len(t, hs, 1)
	assert.Equal(t, "USDC", hs[0].Symbol)
}
