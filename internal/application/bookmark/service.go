package bookmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quran-api-nosql/internal/domain"
	"github.com/quran-api-nosql/internal/pkg/id"
)

type Service interface {
	Add(ctx context.Context, userID string, req domain.AddBookmarkRequest) (*domain.Bookmark, error)
	List(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

type bookmarkStore interface {
	Put(ctx context.Context, b *domain.Bookmark) error
	ListByUser(ctx context.Context, userID string) ([]domain.Bookmark, error)
	Delete(ctx context.Context, userID, bookmarkID string) error
}

type ServiceDeps struct {
	BookmarkRepo bookmarkStore
}

type service struct {
	repo bookmarkStore
	now  func() time.Time
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.BookmarkRepo, now: time.Now}
}

func (s *service) Add(ctx context.Context, userID string, req domain.AddBookmarkRequest) (*domain.Bookmark, error) {
	loc, err := req.Locator()
	if err != nil {
		return nil, err
	}
	b := &domain.Bookmark{
		BookmarkID:  id.New(),
		UserID:      userID,
		VerseKey:    loc.Key(),
		Text:        req.Text,
		Translation: req.Translation,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Put(ctx, b); err != nil {
		return nil, fmt.Errorf("save bookmark: %w", err)
	}
	b.FillLocator()
	return b, nil
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Bookmark, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	if items == nil {
		items = []domain.Bookmark{}
	}
	return items, nil
}

// Delete removes one of the caller's bookmarks. A bookmark owned by someone
// else is indistinguishable from a missing one.
func (s *service) Delete(ctx context.Context, userID, bookmarkID string) error {
	if strings.TrimSpace(bookmarkID) == "" {
		return fmt.Errorf("bookmark id is required: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Delete(ctx, userID, bookmarkID); err != nil {
		return fmt.Errorf("delete bookmark %s: %w", bookmarkID, err)
	}
	return nil
}
