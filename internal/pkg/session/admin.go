package session

import (
	"crypto/subtle"
	"strings"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/env"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// AdminManager authenticates the single platform administrator against a
// configured credential pair. No password hash is persisted for this
// identity: it is a capability, not a stored account.
type AdminManager struct {
	sessions store
	audit    repository.AuditRepository

	email    string
	password string
}

// NewAdminManager creates the admin session domain.
func NewAdminManager(kv storage.KV, audit repository.AuditRepository, email, password string) *AdminManager {
	return &AdminManager{
		sessions: store{kv: kv, prefix: adminKeyPrefix},
		audit:    audit,
		email:    email,
		password: password,
	}
}

// NewAdminManagerFromEnv reads the credential pair from ADMIN_EMAIL and
// ADMIN_PASSWORD.
func NewAdminManagerFromEnv(kv storage.KV, audit repository.AuditRepository) *AdminManager {
	return NewAdminManager(kv, audit,
		env.GetEnv("ADMIN_EMAIL", "admin@tenantdesk.io"),
		env.GetEnv("ADMIN_PASSWORD", ""),
	)
}

// Login compares the supplied pair against the configured credential and, on
// success, synthesizes an ADMIN session user and writes the audit entry.
func (m *AdminManager) Login(email, password string) (*Session, error) {
	if m.password == "" {
		return nil, ErrInvalidCredentials
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), m.email)
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	if !emailOK || !passOK {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     newToken(),
		ActorType: models.ACTOR_ADMIN,
		User: models.User{
			UserID: "admin",
			Email:  m.email,
			Role:   models.ROLE_ADMIN,
			Status: models.USER_STATUS_ACTIVE,
		},
		CreatedAt: storage.Now(),
	}

	// No session is persisted unless the audit entry was written.
	if _, err := m.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: m.email,
		Action:     models.ACTION_LOGIN_SUCCESS,
	}); err != nil {
		return nil, err
	}
	if err := m.sessions.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Current resolves a token to its session.
func (m *AdminManager) Current(token string) (*Session, error) {
	return m.sessions.load(token)
}

// Logout discards the session.
func (m *AdminManager) Logout(token string) error {
	return m.sessions.drop(token)
}
