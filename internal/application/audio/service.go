package audio

import (
	"context"
	"fmt"

	"github.com/quran-api-nosql/internal/domain"
	"github.com/quran-api-nosql/internal/infrastructure/quran"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight upstream calls when none is configured.
const DefaultConcurrency = 8

type Service interface {
	ChapterAudio(ctx context.Context, chapterID, chapterLength int) ([]string, error)
	VerseAudio(ctx context.Context, verseKeys []string) ([]domain.VerseAudio, error)
}

type recitationSource interface {
	ChapterRecitation(ctx context.Context, chapterID, perPage int) ([]quran.AudioFile, error)
	VerseRecitation(ctx context.Context, verseKey string) ([]quran.AudioFile, error)
}

type ServiceDeps struct {
	Upstream     recitationSource
	AudioBaseURL string
	Concurrency  int
}

type service struct {
	upstream    recitationSource
	audioBase   string
	concurrency int
}

func NewService(deps ServiceDeps) Service {
	n := deps.Concurrency
	if n < 1 {
		n = DefaultConcurrency
	}
	return &service{
		upstream:    deps.Upstream,
		audioBase:   deps.AudioBaseURL,
		concurrency: n,
	}
}

// ChapterAudio returns the full audio URL of every verse in a chapter, in
// upstream order. A chapterLength of zero leaves paging to the upstream.
func (s *service) ChapterAudio(ctx context.Context, chapterID, chapterLength int) ([]string, error) {
	if chapterID < 1 || chapterID > domain.SurahCount {
		return nil, fmt.Errorf("chapter id must be between 1 and %d: %w", domain.SurahCount, domain.ErrBadRequest)
	}
	if chapterLength < 0 {
		return nil, fmt.Errorf("chapter_length must not be negative: %w", domain.ErrBadRequest)
	}

	files, err := s.upstream.ChapterRecitation(ctx, chapterID, chapterLength)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, s.audioBase+f.URL)
	}
	return urls, nil
}

// VerseAudio resolves each verse key to its audio URL. All upstream calls
// are joined before returning; the first failure cancels the rest and fails
// the batch. Results keep the order of verseKeys.
func (s *service) VerseAudio(ctx context.Context, verseKeys []string) ([]domain.VerseAudio, error) {
	if len(verseKeys) == 0 {
		return nil, fmt.Errorf("verse_keys is required: %w", domain.ErrBadRequest)
	}
	if len(verseKeys) > domain.MaxVerseKeys {
		return nil, fmt.Errorf("at most %d verse_keys per request: %w", domain.MaxVerseKeys, domain.ErrBadRequest)
	}
	keys := make([]string, len(verseKeys))
	for i, k := range verseKeys {
		loc, err := domain.ParseVerseKey(k)
		if err != nil {
			return nil, err
		}
		keys[i] = loc.Key()
	}

	out := make([]domain.VerseAudio, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			files, err := s.upstream.VerseRecitation(gctx, key)
			if err != nil {
				return fmt.Errorf("verse %s: %w", key, err)
			}
			if len(files) == 0 {
				return fmt.Errorf("verse %s: no audio files: %w", key, domain.ErrUpstream)
			}
			out[i] = domain.VerseAudio{VerseKey: key, AudioURL: s.audioBase + files[0].URL}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
