package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// BookMetadata contains book information fetched from an external source.
type BookMetadata struct {
	Title     string `json:"title,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	CoverURL  string `json:"cover_url,omitempty"`
	PageCount int    `json:"page_count,omitempty"`
}

// OpenLibraryClient fetches book metadata from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	coversURL   string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient() *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://openlibrary.org",
		coversURL:   "https://covers.openlibrary.org",
		rateLimiter: newRateLimiter(time.Second), // 1 request per second
	}
}

// SetBaseURLs overrides the API endpoints. Used by tests.
func (c *OpenLibraryClient) SetBaseURLs(baseURL, coversURL string) {
	c.baseURL = baseURL
	c.coversURL = coversURL
}

type openLibraryBook struct {
	Title         string `json:"title"`
	NumberOfPages int    `json:"number_of_pages"`
	Covers        []int  `json:"covers"`
}

// SearchByISBN looks up a book by its ISBN and returns metadata.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	c.rateLimiter.wait()

	url := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Tome/1.0 (https://github.com/masonfox/tome-sub001)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ISBN not found: %s", isbn)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var bookData openLibraryBook
	if err := json.NewDecoder(resp.Body).Decode(&bookData); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	metadata := &BookMetadata{
		Title:     bookData.Title,
		ISBN:      isbn,
		PageCount: bookData.NumberOfPages,
	}
	if len(bookData.Covers) > 0 {
		metadata.CoverURL = fmt.Sprintf("%s/b/id/%d-L.jpg", c.coversURL, bookData.Covers[0])
	}

	return metadata, nil
}

// normalizeISBN strips separators and validates the length.
func normalizeISBN(isbn string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, isbn)

	if len(cleaned) != 10 && len(cleaned) != 13 {
		return ""
	}
	return cleaned
}
