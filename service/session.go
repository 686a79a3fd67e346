package service

import (
	"sync"
	"time"

	"github.com/krex38/subgate/model"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tokenAlphabet = "0123456789abcdef"

// 64 hex characters, 256 bits of entropy
const tokenLength = 64

// SessionStore keeps the active verification sessions. It is deliberately
// memory-only: a restart invalidates every outstanding session and the user
// simply requests a new link.
type SessionStore struct {
	mu      sync.Mutex
	timeout time.Duration
	tokens  map[string]*model.VerificationSession
}

func NewSessionStore(timeout time.Duration) *SessionStore {
	return &SessionStore{
		timeout: timeout,
		tokens:  make(map[string]*model.VerificationSession),
	}
}

// Create issues a Pending session bound to userID and returns its token.
func (s *SessionStore) Create(userID string) (token string, err error) {
	token, err = gonanoid.Generate(tokenAlphabet, tokenLength)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = &model.VerificationSession{
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now(),
		State:     model.SessionPending,
	}
	return token, nil
}

// Validate returns the session unchanged. An expired session is evicted as a
// side effect, so a later call with the same token fails the same way.
func (s *SessionStore) Validate(token string, userID string) (*model.VerificationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return nil, model.TokenNotFoundErr
	}
	if sess.UserID != userID {
		return nil, model.UserMismatchErr
	}
	if time.Since(sess.CreatedAt) > s.timeout {
		sess.State = model.SessionExpired
		delete(s.tokens, token)
		return nil, model.TokenExpiredErr
	}
	return sess, nil
}

// Consume is terminal and one-shot: a second Consume or Validate on the same
// token fails with TokenNotFoundErr.
func (s *SessionStore) Consume(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return model.TokenNotFoundErr
	}
	sess.State = model.SessionConsumed
	delete(s.tokens, token)
	return nil
}

// SweepExpired evicts every session whose lifetime elapsed. Validation
// already expires lazily; this only bounds the table's growth.
func (s *SessionStore) SweepExpired() (n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.tokens {
		if time.Since(sess.CreatedAt) > s.timeout {
			sess.State = model.SessionExpired
			delete(s.tokens, token)
			n++
		}
	}
	return n
}
