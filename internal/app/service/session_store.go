package service

import (
	"bytes"
	"sync"
	"time"

	"wallet_aggregator/internal/app/port"
	"wallet_aggregator/internal/domain/apperr"
	"wallet_aggregator/internal/domain/entity"
	"wallet_aggregator/internal/pkg/metrics"

	"github.com/google/uuid"
)

const (
	defaultSessionTimeout = time.Hour
	secretFillerLength    = 64
	sessionIDPrefixLength = 8
)

type sessionCredential struct {
	key      []byte
	secret   []byte
	storedAt time.Time
}

// SessionStore holds exchange credentials in memory for one session. The
// session expires on a hard clock measured from Init, not from last access.
// Reading an expired session clears every credential in it.
type SessionStore struct {
	timeout time.Duration
	now     func() time.Time
	newID   func() string
	logger  port.Logger

	mu        sync.RWMutex
	sessionID string
	startedAt time.Time
	creds     map[string]*sessionCredential
}

// SessionOption configures the session store.
type SessionOption func(*SessionStore)

// WithSessionClock injects the clock used for expiry.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		s.now = now
	}
}

// WithSessionIDGenerator replaces the uuid session id generator.
func WithSessionIDGenerator(fn func() string) SessionOption {
	return func(s *SessionStore) {
		s.newID = fn
	}
}

// WithSessionLogger sets the logger.
func WithSessionLogger(l port.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = l
	}
}

// NewSessionStore creates an inactive store. Call Init to open a session.
func NewSessionStore(timeout time.Duration, opts ...SessionOption) *SessionStore {
	if timeout <= 0 {
		timeout = defaultSessionTimeout
	}
	s := &SessionStore{
		timeout: timeout,
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
		creds:   make(map[string]*sessionCredential),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ port.CredentialStore = (*SessionStore)(nil)

// Init erases any previous credentials and starts a fresh session.
func (s *SessionStore) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
	s.sessionID = s.newID()
	s.startedAt = s.now()
	s.log("Credential session started", "session", s.prefixLocked())
}

// StoreCredential fails with SessionExpired when no session is active.
func (s *SessionStore) StoreCredential(accountID, apiKey, apiSecret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.activeLocked() {
		if s.sessionID != "" {
			s.clearLocked("expired")
		}
		return apperr.SessionExpired("session.store")
	}

	if old, ok := s.creds[accountID]; ok {
		scrub(old)
	}
	s.creds[accountID] = &sessionCredential{
		key:      []byte(apiKey),
		secret:   []byte(apiSecret),
		storedAt: s.now(),
	}
	return nil
}

// GetCredential returns copies of the stored pair. After expiry it clears the
// whole store and reports absent.
func (s *SessionStore) GetCredential(accountID string) (entity.Credential, bool) {
	s.mu.RLock()
	if s.activeLocked() {
		c, ok := s.creds[accountID]
		var out entity.Credential
		if ok {
			out = entity.Credential{APIKey: string(c.key), APISecret: string(c.secret)}
		}
		s.mu.RUnlock()
		return out, ok
	}
	s.mu.RUnlock()

	s.expire()
	return entity.Credential{}, false
}

// HasCredential has the same fail-closed semantics as GetCredential.
func (s *SessionStore) HasCredential(accountID string) bool {
	s.mu.RLock()
	if s.activeLocked() {
		_, ok := s.creds[accountID]
		s.mu.RUnlock()
		return ok
	}
	s.mu.RUnlock()

	s.expire()
	return false
}

// RemoveCredential erases one entry.
func (s *SessionStore) RemoveCredential(accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.creds[accountID]; ok {
		scrub(c)
		delete(s.creds, accountID)
	}
}

// Clear overwrites every secret, drops them and resets the session.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked("manual")
}

// IsValid reports whether a session is open and within its timeout.
func (s *SessionStore) IsValid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

// Info summarises the session without exposing secrets.
func (s *SessionStore) Info() entity.SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.activeLocked() {
		return entity.SessionInfo{Active: false}
	}
	elapsed := s.now().Sub(s.startedAt)
	return entity.SessionInfo{
		Active:           true,
		SessionIDPrefix:  s.prefixLocked(),
		ElapsedMinutes:   elapsed.Minutes(),
		RemainingMinutes: (s.timeout - elapsed).Minutes(),
		CredentialCount:  len(s.creds),
	}
}

// expire re-checks under the write lock so a concurrent Init is not undone.
func (s *SessionStore) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID != "" && !s.activeLocked() {
		s.clearLocked("expired")
	}
}

func (s *SessionStore) activeLocked() bool {
	return s.sessionID != "" && s.now().Sub(s.startedAt) <= s.timeout
}

func (s *SessionStore) clearLocked(reason string) {
	count := len(s.creds)
	s.wipeLocked()
	s.sessionID = ""
	s.startedAt = time.Time{}
	metrics.SessionClears.WithLabelValues(reason).Inc()
	s.log("Credential session cleared", "reason", reason, "credentials", count)
}

func (s *SessionStore) wipeLocked() {
	for id, c := range s.creds {
		scrub(c)
		delete(s.creds, id)
	}
	s.creds = make(map[string]*sessionCredential)
}

func (s *SessionStore) prefixLocked() string {
	if len(s.sessionID) <= sessionIDPrefixLength {
		return s.sessionID
	}
	return s.sessionID[:sessionIDPrefixLength]
}

func (s *SessionStore) log(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// scrub zeroes the secret bytes in place, then swaps in fixed-length filler.
func scrub(c *sessionCredential) {
	for i := range c.key {
		c.key[i] = 0
	}
	for i := range c.secret {
		c.secret[i] = 0
	}
	c.key = bytes.Repeat([]byte{'0'}, secretFillerLength)
	c.secret = bytes.Repeat([]byte{'0'}, secretFillerLength)
}
