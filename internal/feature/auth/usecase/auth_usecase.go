package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"authgate/internal/feature/auth/domain/entity"
)

// dummyHash is compared against when the email is unknown so that a missing
// account costs the same bcrypt work as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserRepository abstracts the credential store.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user and fills in its ID.
	// It returns ErrEmailAlreadyExists on a unique violation and
	// ErrInsertNotAcknowledged when the store did not confirm the write.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves the user with the given email or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenSigner issues signed session tokens.
type TokenSigner interface {
	Sign(userID, email string) (string, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// authUsecase implements registration and login.
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	signer TokenSigner
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, signer TokenSigner) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		signer: signer,
	}
}

// Register creates an account and issues a session for it.
// The existence check and the insert are not atomic; a concurrent duplicate is
// caught by the store's unique index and reported as ErrEmailAlreadyExists.
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	existing, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{Name: name, Email: email, PasswordHash: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u.issue(user)
}

// Login authenticates email/password and issues a session.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			u.hasher.Verify(password, dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *authUsecase) issue(user *entity.User) (*Session, error) {
	token, err := u.signer.Sign(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	slog.Debug("session token issued", "user_id", user.ID, "token_prefix", prefix(token, 20))
	return &Session{Token: token, UserID: user.ID, Email: user.Email}, nil
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
