package service

import (
	"container/list"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	defaultPriceTTL      = 60 * time.Second
	defaultPriceCapacity = 100
)

// priceCacheImpl implements port.PriceCache. Entries are per symbol and
// currency, so differently shaped batch requests share them.
type priceCacheImpl struct {
	source   port.PriceSource
	ttl      time.Duration
	capacity int
	now      func() time.Time
	logger   port.Logger

	mu    sync.RWMutex
	store *cache.Cache
	lru   *list.List               // front is least recently used
	index map[string]*list.Element // key -> element holding the key
}

// PriceCacheOption configures the price cache.
type PriceCacheOption func(*priceCacheImpl)

// WithPriceClock injects the clock used for freshness checks.
func WithPriceClock(now func() time.Time) PriceCacheOption {
	return func(c *priceCacheImpl) {
		c.now = now
	}
}

// NewPriceCache creates a price cache over source. Non-positive ttl and
// capacity fall back to 60s and 100 entries.
func NewPriceCache(source port.PriceSource, ttl time.Duration, capacity int, logger port.Logger, opts ...PriceCacheOption) port.PriceCache {
	if ttl <= 0 {
		ttl = defaultPriceTTL
	}
	if capacity <= 0 {
		capacity = defaultPriceCapacity
	}
	c := &priceCacheImpl{
		source:   source,
		ttl:      ttl,
		capacity: capacity,
		now:      time.Now,
		logger:   logger,
		store:    cache.New(ttl, 2*ttl),
		lru:      list.New(),
		index:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	logger.Info("PriceCache успешно инициализирован.", "ttl", ttl, "capacity", capacity)
	return c
}

func priceKey(symbol, currency string) string {
	return symbol + "|" + currency
}

// GetPrices serves fresh entries from the cache and fetches the whole miss-set
// in one upstream call. On upstream failure the fresh subset, plus whatever
// the source priced before failing, is returned with the error.
func (c *priceCacheImpl) GetPrices(ctx context.Context, symbols []string, currencies []string) (map[string]map[string]decimal.Decimal, error) {
	syms := normalizeAll(symbols, strings.ToUpper)
	curs := normalizeAll(currencies, strings.ToLower)
	result := make(map[string]map[string]decimal.Decimal, len(syms))
	if len(syms) == 0 || len(curs) == 0 {
		return result, nil
	}

	symbolsByID := make(map[string][]string)
	missingIDs := make(map[string]struct{})
	missingCurs := make(map[string]struct{})

	now := c.now()
	c.mu.Lock()
	for _, sym := range syms {
		id, ok := c.source.CoinID(sym)
		if !ok {
			c.logger.Debug("No price mapping for symbol, skipping", "symbol", sym)
			continue
		}
		symbolsByID[id] = append(symbolsByID[id], sym)

		for _, cur := range curs {
			if price, ok := c.lookupLocked(sym, cur, now); ok {
				setPrice(result, sym, cur, price)
				metrics.PriceCacheLookups.WithLabelValues("hit").Inc()
				continue
			}
			metrics.PriceCacheLookups.WithLabelValues("miss").Inc()
			missingIDs[id] = struct{}{}
			missingCurs[cur] = struct{}{}
		}
	}
	c.mu.Unlock()

	if len(missingIDs) == 0 {
		return result, nil
	}

	ids := sortedKeys(missingIDs)
	fetched, err := c.source.FetchPrices(ctx, ids, sortedKeys(missingCurs))
	if err != nil {
		c.logger.Warn("Price fetch failed, serving cached subset", "coin_ids", len(ids), "partial", len(fetched), "error", err)
	}
	if len(fetched) == 0 {
		return result, err
	}

	fetchedAt := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		quotes, ok := fetched[id]
		if !ok {
			continue
		}
		for cur, price := range quotes {
			cur = strings.ToLower(cur)
			for _, sym := range symbolsByID[id] {
				c.putLocked(entity.CachedPrice{Symbol: sym, Currency: cur, Price: price, CreatedAt: fetchedAt})
				if _, requested := missingCurs[cur]; requested {
					setPrice(result, sym, cur, price)
				}
			}
		}
	}
	return result, err
}

// GetPrice returns zero when the price is unknown or cannot be fetched.
func (c *priceCacheImpl) GetPrice(ctx context.Context, symbol string, currency string) decimal.Decimal {
	sym, cur := strings.ToUpper(strings.TrimSpace(symbol)), strings.ToLower(strings.TrimSpace(currency))
	prices, err := c.GetPrices(ctx, []string{sym}, []string{cur})
	if err != nil {
		c.logger.Debug("Price unavailable", "symbol", sym, "currency", cur, "error", err)
	}
	if p, ok := prices[sym][cur]; ok {
		return p
	}
	return decimal.Zero
}

// Len reports the number of tracked entries.
func (c *priceCacheImpl) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

func (c *priceCacheImpl) lookupLocked(sym, cur string, now time.Time) (decimal.Decimal, bool) {
	key := priceKey(sym, cur)
	raw, found := c.store.Get(key)
	if !found {
		c.dropLocked(key)
		return decimal.Zero, false
	}
	entry := raw.(entity.CachedPrice)
	if !entry.Fresh(now, c.ttl) {
		c.store.Delete(key)
		c.dropLocked(key)
		return decimal.Zero, false
	}
	if el, ok := c.index[key]; ok {
		c.lru.MoveToBack(el)
	}
	return entry.Price, true
}

func (c *priceCacheImpl) putLocked(entry entity.CachedPrice) {
	key := priceKey(entry.Symbol, entry.Currency)
	c.store.SetDefault(key, entry)
	if el, ok := c.index[key]; ok {
		c.lru.MoveToBack(el)
		return
	}
	c.index[key] = c.lru.PushBack(key)
	for c.lru.Len() > c.capacity {
		oldest := c.lru.Front()
		oldKey := oldest.Value.(string)
		c.lru.Remove(oldest)
		delete(c.index, oldKey)
		c.store.Delete(oldKey)
	}
}

func (c *priceCacheImpl) dropLocked(key string) {
	if el, ok := c.index[key]; ok {
		c.lru.Remove(el)
		delete(c.index, key)
	}
}

func setPrice(m map[string]map[string]decimal.Decimal, sym, cur string, price decimal.Decimal) {
	if m[sym] == nil {
		m[sym] = make(map[string]decimal.Decimal)
	}
	m[sym][cur] = price
}

func normalizeAll(items []string, fn func(string) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		v := fn(strings.TrimSpace(it))
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
