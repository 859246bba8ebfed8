package http

import (
	"context"

	"github.com/quran-api-nosql/internal/domain"
	jwtinfra "github.com/quran-api-nosql/internal/infrastructure/jwt"
	"github.com/quran-api-nosql/internal/infrastructure/quran"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// BookmarkRepository is the minimal interface the router requires from a bookmark store.
// Delete must report domain.ErrNotFound when the key is absent.
type BookmarkRepository interface {
	Put(ctx context.Context, b *domain.Bookmark) error
	ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

// TokenProvider signs and verifies bearer tokens.
type TokenProvider interface {
	Sign(userID string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
}

// RecitationSource is the upstream audio metadata API.
type RecitationSource interface {
	ChapterRecitation(ctx context.Context, chapterID, perPage int) ([]quran.AudioFile, error)
	VerseRecitation(ctx context.Context, verseKey string) ([]quran.AudioFile, error)
}
