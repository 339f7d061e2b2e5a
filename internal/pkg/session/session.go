package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// Auth failure taxonomy. Login must surface one of these specific conditions;
// only the not-found case is deliberately under-specific so the login form
// cannot be used to enumerate tenants or emails.
var (
	ErrNotFound           = errors.New("tenant or email not found")
	ErrTenantInactive     = errors.New("tenant is inactive")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongTenant        = errors.New("this email is registered to a different tenant")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session not found or expired")
)

const (
	adminKeyPrefix    = "tenantdesk:session:admin:"
	customerKeyPrefix = "tenantdesk:session:customer:"
)

// Session is the authenticated actor, persisted under its domain's own
// storage key. The admin and customer domains never share state.
type Session struct {
	Token     string         `json:"token"`
	ActorType string         `json:"actor_type"`
	User      models.User    `json:"user"`
	Tenant    *models.Tenant `json:"tenant,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// store persists sessions for one domain.
type store struct {
	kv     storage.KV
	prefix string
}

func (s *store) save(sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(s.prefix+sess.Token, raw)
}

func (s *store) load(token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}
	raw, ok, err := s.kv.Get(s.prefix + token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionExpired
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *store) drop(token string) error {
	return s.kv.Delete(s.prefix + token)
}

func newToken() string {
	return storage.NewID("")
}
