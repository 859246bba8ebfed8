// Package quran is a read-only client for the api.quran.com v4 content API.
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quran-api-nosql/internal/config"
	"github.com/quran-api-nosql/internal/domain"
	"golang.org/x/time/rate"
)

// AudioFile is one recitation entry as returned by the upstream API. URL is
// relative to the audio CDN.
type AudioFile struct {
	VerseKey string `json:"verse_key"`
	URL      string `json:"url"`
}

type audioFilesResponse struct {
	AudioFiles []AudioFile `json:"audio_files"`
}

// Client calls the upstream API. Every call is bounded by the configured
// timeout and paced by a shared token bucket.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	recitationID int
	limiter      *rate.Limiter
}

func NewClient(cfg config.QuranAPI) *Client {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Concurrency
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      cfg.BaseURL,
		recitationID: cfg.RecitationID,
		limiter:      rate.NewLimiter(limit, burst),
	}
}

// ChapterRecitation lists the audio files of a whole chapter.
func (c *Client) ChapterRecitation(ctx context.Context, chapterID, perPage int) ([]AudioFile, error) {
	q := url.Values{}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	u := fmt.Sprintf("%s/recitations/%d/by_chapter/%d", c.baseURL, c.recitationID, chapterID)
	return c.getAudioFiles(ctx, u, q)
}

// VerseRecitation lists the audio files of a single verse.
func (c *Client) VerseRecitation(ctx context.Context, verseKey string) ([]AudioFile, error) {
	q := url.Values{}
	q.Set("verse_key", verseKey)
	u := fmt.Sprintf("%s/quran/recitations/%d", c.baseURL, c.recitationID)
	return c.getAudioFiles(ctx, u, q)
}

func (c *Client) getAudioFiles(ctx context.Context, endpoint string, q url.Values) ([]AudioFile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for upstream slot: %v: %w", err, domain.ErrUpstream)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %v: %w", err, domain.ErrUpstream)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %v: %w", endpoint, err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("GET %s: status %d: %w", endpoint, resp.StatusCode, domain.ErrUpstream)
	}
	var body audioFilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %v: %w", endpoint, err, domain.ErrUpstream)
	}
	return body.AudioFiles, nil
}
