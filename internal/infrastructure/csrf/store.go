// Package csrf implements the double-submit token guard: a token is issued
// against a session cookie and must come back in the x-csrf-token header on
// every mutating request.
package csrf

import (
	"sync"
	"time"

	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/security"
)

// TokenStore issues and validates per-session CSRF tokens. Implementations
// must fail closed: an unknown session or expired token never validates.
type TokenStore interface {
	Issue(sessionID string) (string, error)
	Validate(sessionID, token string) bool
	Revoke(sessionID string)
	Sweep() int
	Len() int
}

type tokenEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore keeps session tokens in an in-process map with a TTL.
type MemoryStore struct {
	entries map[string]*tokenEntry
	ttl     time.Duration
	mu      sync.RWMutex
	logger  *logging.ChanneledLogger
}

// NewMemoryStore creates an in-memory token store with the given TTL.
func NewMemoryStore(ttl time.Duration, logger *logging.ChanneledLogger) *MemoryStore {
	if logger != nil {
		logger.CSRF().Info("Initializing CSRF token store", "ttl", ttl)
	}
	return &MemoryStore{
		entries: make(map[string]*tokenEntry),
		ttl:     ttl,
		logger:  logger,
	}
}

// Issue mints a fresh token for the session, replacing any previous one.
func (ms *MemoryStore) Issue(sessionID string) (string, error) {
	token, err := security.GenerateSecureToken(32)
	if err != nil {
		return "", err
	}

	ms.mu.Lock()
	ms.entries[sessionID] = &tokenEntry{
		token:     token,
		expiresAt: time.Now().UTC().Add(ms.ttl),
	}
	ms.mu.Unlock()

	if ms.logger != nil {
		ms.logger.CSRF().Debug("Issued CSRF token", "sessionId", sessionID, "ttl", ms.ttl)
	}
	return token, nil
}

// Validate checks the presented token against the session's stored token.
// Expired entries are removed lazily on the next lookup.
func (ms *MemoryStore) Validate(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}

	ms.mu.RLock()
	entry, exists := ms.entries[sessionID]
	ms.mu.RUnlock()

	if !exists {
		if ms.logger != nil {
			ms.logger.CSRF().Debug("CSRF validation miss", "sessionId", sessionID, "reason", "unknown_session")
		}
		return false
	}

	if time.Now().UTC().After(entry.expiresAt) {
		ms.mu.Lock()
		if current, ok := ms.entries[sessionID]; ok && current == entry {
			delete(ms.entries, sessionID)
		}
		ms.mu.Unlock()
		if ms.logger != nil {
			ms.logger.CSRF().Debug("CSRF validation miss", "sessionId", sessionID, "reason", "expired")
		}
		return false
	}

	if entry.token != token {
		if ms.logger != nil {
			ms.logger.CSRF().Debug("CSRF validation miss", "sessionId", sessionID, "reason", "token_mismatch")
		}
		return false
	}
	return true
}

// Revoke drops the session's token, if any.
func (ms *MemoryStore) Revoke(sessionID string) {
	ms.mu.Lock()
	delete(ms.entries, sessionID)
	ms.mu.Unlock()
}

// Sweep removes every expired entry and returns how many were dropped.
func (ms *MemoryStore) Sweep() int {
	now := time.Now().UTC()

	ms.mu.Lock()
	defer ms.mu.Unlock()

	removed := 0
	for sessionID, entry := range ms.entries {
		if now.After(entry.expiresAt) {
			delete(ms.entries, sessionID)
			removed++
		}
	}

	if removed > 0 && ms.logger != nil {
		ms.logger.CSRF().Info("Swept expired CSRF tokens", "removed", removed, "remaining", len(ms.entries))
	}
	return removed
}

// Len reports the number of live entries, expired ones included until swept.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.entries)
}
