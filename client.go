package sitesearch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	DefaultIndexPath      = "/index.json"
	DefaultMaxResults     = 10
	DefaultMinQueryLength = 2
	DefaultSummaryLength  = 150
)

// Options is a struct for configuring a new Client.
type Options struct {
	BaseURL        string       // BaseURL is the site root. The index is fetched from BaseURL + DefaultIndexPath unless IndexURL is set.
	IndexURL       string       // IndexURL is the full URL of the index document.
	HTTPClient     *http.Client // HTTPClient is used for the fetch. Default is http.DefaultClient.
	Logger         *slog.Logger // Logger is the logger used by the client. Default is a debug logger to stderr.
	MaxResults     int          // MaxResults caps the number of hits. Default is 10.
	MinQueryLength int          // MinQueryLength is the shortest trimmed query that is searched. Default is 2.
	SummaryLength  int          // SummaryLength is the number of summary runes shown per hit. Default is 150.
}

// Client holds the search index of a site and answers queries against it in memory.
type Client struct {
	entries        []Entry
	httpClient     *http.Client
	indexURL       string
	logger         *slog.Logger
	maxResults     int
	minQueryLength int
	mu             sync.RWMutex
	summaryLength  int
}

// NewClient creates a new Client with the provided options. The index is empty until Load succeeds.
func NewClient(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}

	if opts.SummaryLength <= 0 {
		opts.SummaryLength = DefaultSummaryLength
	}

	indexURL := opts.IndexURL
	if indexURL == "" && opts.BaseURL != "" {
		indexURL = strings.TrimSuffix(opts.BaseURL, "/") + DefaultIndexPath
	}

	return &Client{
		httpClient:     opts.HTTPClient,
		indexURL:       indexURL,
		logger:         opts.Logger,
		maxResults:     opts.MaxResults,
		minQueryLength: opts.MinQueryLength,
		summaryLength:  opts.SummaryLength,
	}
}

// IndexURL returns the URL the index is fetched from.
func (c *Client) IndexURL() string {
	return c.indexURL
}

// Load fetches the index once. On failure the failure is logged, the index is left as it was (empty at
// startup) and the error is returned. Load never retries.
func (c *Client) Load(ctx context.Context) error {
	if c.indexURL == "" {
		c.logger.Error("Failed to load search index", slog.String("error", ErrIndexMissing.Error()))
		return ErrIndexMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.indexURL, nil)
	if err != nil {
		return c.loadFailed(fmt.Errorf("%w: %w", ErrIndexFetch, err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.loadFailed(fmt.Errorf("%w: %w", ErrIndexFetch, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.loadFailed(fmt.Errorf("%w: status %d", ErrIndexFetch, resp.StatusCode))
	}

	if err := c.LoadFrom(resp.Body); err != nil {
		return c.loadFailed(err)
	}

	c.logger.Debug("Loaded search index", slog.String("url", c.indexURL), slog.Int("entries", c.Len()))
	return nil
}

// LoadFrom replaces the index with the entries decoded from r.
func (c *Client) LoadFrom(r io.Reader) error {
	entries, err := DecodeEntries(r)
	if err != nil {
		return err
	}

	c.SetEntries(entries)
	return nil
}

// SetEntries replaces the index with entries.
func (c *Client) SetEntries(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
}

// Entries returns a copy of the loaded entries in index order.
func (c *Client) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of loaded entries.
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Search runs query against the loaded index. Queries shorter than the minimum length after trimming
// yield a cleared result. Matching is a case-insensitive substring test over title, summary, content and
// tags. Hits keep index order, are unique by permalink and capped at the max result count.
func (c *Client) Search(query string) Result {
	trimmed := strings.TrimSpace(query)
	if queryLength(trimmed) < c.minQueryLength {
		return Result{Query: query, State: StateCleared}
	}

	queryLower := strings.ToLower(trimmed)

	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	hits := make([]Hit, 0, c.maxResults)
	for i := range c.entries {
		entry := &c.entries[i]
		if entry.Permalink == "" {
			continue
		}

		// The first occurrence of a permalink decides, whether or not it matches.
		if seen[entry.Permalink] {
			continue
		}
		seen[entry.Permalink] = true

		if !entry.matches(queryLower) {
			continue
		}

		hits = append(hits, c.hit(entry, query))
		if len(hits) == c.maxResults {
			break
		}
	}

	if len(hits) == 0 {
		return Result{Query: query, State: StateNoResults}
	}

	return Result{Query: query, State: StateMatches, Hits: hits}
}

func (c *Client) hit(entry *Entry, query string) Hit {
	h := Hit{
		Entry: entry,
		Title: HighlightMatch(entry.Title, query),
	}

	if entry.HasSummary() {
		h.Summary = HighlightMatch(truncateRunes(entry.Summary, c.summaryLength), query) + "..."
	}

	if entry.HasDate() {
		h.Date = FormatDate(entry.Date)
	}

	return h
}

func (c *Client) loadFailed(err error) error {
	c.logger.Error("Failed to load search index",
		slog.String("url", c.indexURL),
		slog.String("error", err.Error()))
	return err
}

// queryLength counts UTF-16 code units, so a single character outside the basic plane is two long,
// the same as a browser input's value length.
func queryLength(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelDebug,
		}))
}
