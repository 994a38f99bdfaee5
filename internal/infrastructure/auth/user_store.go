package auth

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appauth "github.com/dreamshub/backend/internal/application/auth"
	"github.com/dreamshub/backend/internal/domain/shared"
)

// User is one account in the static credential store
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Role         appauth.Role
	PasswordHash []byte
}

// StaticUserStore holds the fixed set of accounts the dashboard ships
// with. There is no self-service signup; accounts are seeded at startup.
type StaticUserStore struct {
	mu    sync.RWMutex
	users map[string]User // keyed by lowercase email
}

// NewStaticUserStore creates an empty user store
func NewStaticUserStore() *StaticUserStore {
	return &StaticUserStore{users: make(map[string]User)}
}

// Add registers an account. The password is stored as a bcrypt hash.
func (s *StaticUserStore) Add(name, email, password string, role appauth.Role) error {
	if strings.TrimSpace(email) == "" {
		return shared.NewDomainError(shared.CodeValidation, "Email cannot be empty")
	}
	if !role.IsValid() {
		return shared.NewDomainErrorf(shared.CodeValidation, "Invalid role: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	return nil
}

// Authenticate verifies credentials and returns the matching session.
// Unknown emails and wrong passwords both fail with the same error so
// the response does not leak which accounts exist.
func (s *StaticUserStore) Authenticate(email, password string) (appauth.Session, error) {
	s.mu.RLock()
	user, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()

	if !ok {
		return appauth.Session{}, shared.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return appauth.Session{}, shared.ErrUnauthorized
	}
	return appauth.NewSession(user.ID, user.Name, user.Role)
}

// SeedDefaults loads the demo accounts the original dashboard ships
// with. Intended for development; production deployments should seed
// their own accounts.
func (s *StaticUserStore) SeedDefaults() error {
	defaults := []struct {
		name, email, password string
		role                  appauth.Role
	}{
		{"Alice Johnson", "admin@dreamshub.com", "password", appauth.RoleAdmin},
		{"Bob Smith", "manager@dreamshub.com", "password", appauth.RoleManager},
		{"Carol Reyes", "cashier@dreamshub.com", "password", appauth.RoleCashier},
	}
	for _, d := range defaults {
		if err := s.Add(d.name, d.email, d.password, d.role); err != nil {
			return err
		}
	}
	return nil
}
