package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/AnshRaj112/secure-profile-hub/internal/models"
	"github.com/AnshRaj112/secure-profile-hub/internal/store"
)

var (
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, record string) bool
}

type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// RegisterInput carries the raw registration fields.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Aadhaar  string
}

// CredentialService implements register, login and profile reads on top of
// a UserStore. It holds no per-request state.
type CredentialService struct {
	users  store.UserStore
	hasher PasswordHasher
	cipher SecretCipher
	tokens TokenIssuer
	logger *slog.Logger

	// dummyRecord is verified against when the email is unknown so both
	// login failure paths pay for one hash.
	dummyRecord string
}

func NewCredentialService(
	users store.UserStore,
	hasher PasswordHasher,
	cipher SecretCipher,
	tokens TokenIssuer,
	logger *slog.Logger,
) (*CredentialService, error) {
	dummy, err := hasher.Hash("dummy-password-for-unknown-users")
	if err != nil {
		return nil, pkgerrors.Wrap(err, "prepare dummy hash")
	}

	return &CredentialService{
		users:       users,
		hasher:      hasher,
		cipher:      cipher,
		tokens:      tokens,
		logger:      logger,
		dummyRecord: dummy,
	}, nil
}

// NormalizeEmail trims and lower-cases an address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a token for it.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := NormalizeEmail(in.Email)

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return "", ErrDuplicateUser
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", pkgerrors.Wrap(err, "lookup user by email")
	}

	hashedPassword, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", pkgerrors.Wrap(err, "hash password")
	}

	encryptedAadhaar, err := s.cipher.Encrypt(in.Aadhaar)
	if err != nil {
		return "", pkgerrors.Wrap(err, "encrypt aadhaar")
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hashedPassword,
		Aadhaar:  encryptedAadhaar,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrDuplicateUser
		}
		return "", pkgerrors.Wrap(err, "create user")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "issue token")
	}
	return token, nil
}

// Login checks the credentials and returns a fresh token.
func (s *CredentialService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return "", pkgerrors.Wrap(err, "lookup user by email")
		}
		s.hasher.Verify(password, s.dummyRecord)
		return "", ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", pkgerrors.Wrap(err, "issue token")
	}
	return token, nil
}

// GetProfile returns the decrypted profile for an already authenticated user.
func (s *CredentialService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, pkgerrors.Wrap(err, "lookup user by id")
	}

	aadhaar, err := s.cipher.Decrypt(user.Aadhaar)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored aadhaar could not be decrypted", "user_id", user.ID)
		return nil, pkgerrors.Wrap(err, "decrypt aadhaar")
	}

	return &models.Profile{
		Name:    user.Name,
		Email:   user.Email,
		Aadhaar: aadhaar,
	}, nil
}
