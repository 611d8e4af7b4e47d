package services

import (
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/csrf"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/observability/logging"
	"github.com/socialpulse/socialpulse-go/internal/infrastructure/security"
)

// CsrfService pairs a session id cookie with a stored token so mutating
// requests can present both halves of the double-submit check.
type CsrfService struct {
	tokens csrf.TokenStore
	logger *logging.ChanneledLogger
}

// NewCsrfService creates a new CSRF service over the given token store.
func NewCsrfService(tokens csrf.TokenStore, logger *logging.ChanneledLogger) *CsrfService {
	return &CsrfService{tokens: tokens, logger: logger}
}

// IssueToken mints a token for the session, creating a session id when the
// request carried none. Both values go back to the client: the session id
// as a cookie, the token in the response body.
func (s *CsrfService) IssueToken(sessionID string) (newSessionID, token string, err error) {
	if sessionID == "" {
		sessionID = security.GenerateULID()
	}
	token, err = s.tokens.Issue(sessionID)
	if err != nil {
		s.logger.CSRF().Error("Failed to issue CSRF token", "error", err)
		return "", "", err
	}
	return sessionID, token, nil
}

// Validate checks the double-submit pair. Fails closed on any missing half.
func (s *CsrfService) Validate(sessionID, token string) bool {
	return s.tokens.Validate(sessionID, token)
}

// Revoke drops the session's token, used on logout.
func (s *CsrfService) Revoke(sessionID string) {
	if sessionID != "" {
		s.tokens.Revoke(sessionID)
	}
}

// Sweep removes expired tokens and returns how many were dropped.
func (s *CsrfService) Sweep() int {
	return s.tokens.Sweep()
}
