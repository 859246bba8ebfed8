package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quran-api-nosql/internal/domain"
	jwtinfra "github.com/quran-api-nosql/internal/infrastructure/jwt"
	"github.com/quran-api-nosql/internal/pkg/id"
	"github.com/quran-api-nosql/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for stored hashes.
const PasswordCost = 10

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// errInvalidCredentials is returned for unknown emails and wrong passwords alike.
var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (string, error)
	VerifyToken(token string) (string, error)
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

type tokenProvider interface {
	Sign(userID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

type ServiceDeps struct {
	UserRepo    userStore
	JWTProvider tokenProvider
}

type service struct {
	repo   userStore
	tokens tokenProvider

	dummyOnce sync.Once
	dummyHash []byte
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:   deps.UserRepo,
		tokens: deps.JWTProvider,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	req.Email = normalizeEmail(req.Email)
	name := strings.TrimSpace(req.DisplayName())
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrBadRequest)
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, fmt.Errorf("password must be at most %d bytes: %w", MaxPasswordBytes, domain.ErrBadRequest)
	}

	if err := s.ensureUnused(ctx, req.Email, name); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("hash password: %v: %w", err, domain.ErrBadRequest)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &domain.User{
		UserID:       id.New(),
		Username:     name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ensureUnused gives a readable error for the common case. The index reads
// are eventually consistent; the store's Put is the authoritative check.
func (s *service) ensureUnused(ctx context.Context, email, username string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up email: %w", err)
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("look up username: %w", err)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return "", err
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("look up email: %w", err)
		}
		// Burn the same bcrypt cost as a real comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		return "", errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", errInvalidCredentials
	}
	token, err := s.tokens.Sign(u.UserID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *service) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token not provided: %w", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("invalid or expired token: %w", domain.ErrForbidden)
	}
	return claims.UserID, nil
}

func (s *service) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder-password"), PasswordCost)
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
