package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ShayCichocki/vox/internal/api"
	"github.com/ShayCichocki/vox/internal/chatlog"
	"github.com/ShayCichocki/vox/internal/logging"
	"github.com/ShayCichocki/vox/pkg/models"
)

// NoResultsMessage is the answer when no search source returned anything.
const NoResultsMessage = "I couldn't find reliable web results for that query right now. Try rephrasing or a more specific topic."

const (
	// DefaultSearchEndpoint is the Google Custom Search JSON API.
	DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"
	// DefaultFallbackURL is an HTML results page queried when the API is
	// unavailable. The query is appended URL-escaped.
	DefaultFallbackURL = "https://html.duckduckgo.com/html/?q="

	maxResults = 5
	userAgent  = "Mozilla/5.0 (X11; Linux x86_64) vox"
)

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchOptions configures a SearchEngine.
type SearchOptions struct {
	Options

	APIKey      string
	EngineID    string
	Endpoint    string
	FallbackURL string
	CacheTTL    time.Duration
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// SearchEngine answers realtime questions by searching the web and having
// the model summarise the results.
type SearchEngine struct {
	completer api.Completer
	log       *chatlog.Store
	opts      SearchOptions
	client    *http.Client
	cache     *gocache.Cache
}

// NewSearchEngine creates a SearchEngine. A nil completer makes Answer
// return the top result verbatim.
func NewSearchEngine(completer api.Completer, log *chatlog.Store, opts SearchOptions) *SearchEngine {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2048
	}
	opts.Options = opts.Options.withDefaults()
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultSearchEndpoint
	}
	if opts.FallbackURL == "" {
		opts.FallbackURL = DefaultFallbackURL
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 8 * time.Second
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &SearchEngine{
		completer: completer,
		log:       log,
		opts:      opts,
		client:    client,
		cache:     gocache.New(opts.CacheTTL, 2*opts.CacheTTL),
	}
}

// Answer searches for query and returns a natural-language answer.
func (e *SearchEngine) Answer(ctx context.Context, query string) (string, error) {
	results := e.Lookup(ctx, query)
	if len(results) == 0 {
		return NoResultsMessage, nil
	}

	if e.completer == nil {
		return results[0].Title + ". " + results[0].Snippet, nil
	}

	history, err := e.log.Load()
	if err != nil && !errors.Is(err, chatlog.ErrCorrupt) {
		return "", fmt.Errorf("search: %w", err)
	}
	user := models.ChatMessage{Role: models.RoleUser, Content: query}

	raw, err := e.completer.Complete(ctx, api.CompletionRequest{
		System: []string{
			searchPrompt(e.opts.Username, e.opts.Assistant),
			FormatResults(query, results),
			RealtimeInformation(e.opts.Now()),
		},
		Messages:    append(history, user),
		MaxTokens:   e.opts.MaxTokens,
		Temperature: e.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("search: summarise: %w", err)
	}

	answer := cleanAnswer(raw)
	if err := e.log.Append(user, models.ChatMessage{Role: models.RoleAssistant, Content: answer}); err != nil {
		e.opts.Logger.Warn("search", "failed to record answer", logging.Fields{"error": err})
	}
	return AnswerModifier(answer), nil
}

// Lookup returns search results for query, from cache when fresh. The
// Custom Search API is tried first, then the HTML fallback.
func (e *SearchEngine) Lookup(ctx context.Context, query string) []Result {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return nil
	}
	if cached, ok := e.cache.Get(key); ok {
		return cached.([]Result)
	}

	var results []Result
	if e.opts.APIKey != "" && e.opts.EngineID != "" {
		var err error
		results, err = e.customSearch(ctx, query)
		if err != nil {
			e.opts.Logger.Warn("search", "custom search failed, using fallback", logging.Fields{
				"query": query,
				"error": err,
			})
		}
	} else {
		e.opts.Logger.Debug("search", "no custom search credentials, using fallback", nil)
	}

	if len(results) == 0 {
		var err error
		results, err = e.scrapeFallback(ctx, query)
		if err != nil {
			e.opts.Logger.Warn("search", "fallback search failed", logging.Fields{
				"query": query,
				"error": err,
			})
		}
	}

	if len(results) > 0 {
		e.cache.Set(key, results, gocache.DefaultExpiration)
	}
	return results
}

type customSearchResponse struct {
	Items []Result `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *SearchEngine) customSearch(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("key", e.opts.APIKey)
	params.Set("cx", e.opts.EngineID)
	params.Set("q", query)
	params.Set("num", fmt.Sprint(maxResults))

	body, err := e.get(ctx, e.opts.Endpoint+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp customSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode custom search response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("custom search API error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Title == "" {
			item.Title = "No Title"
		}
		if item.Snippet == "" {
			item.Snippet = "No Description"
		}
		results = append(results, Result{Title: cleanText(item.Title), Snippet: cleanText(item.Snippet)})
	}
	return results, nil
}

func (e *SearchEngine) scrapeFallback(ctx context.Context, query string) ([]Result, error) {
	body, err := e.get(ctx, e.opts.FallbackURL+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}
	return parseResultsPage(strings.NewReader(string(body)), maxResults)
}

func (e *SearchEngine) get(ctx context.Context, u string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return body, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return body, nil
}

// FormatResults renders results as the system block handed to the model.
func FormatResults(query string, results []Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The search results for '%s' are:\n[start]\n", query)
	for _, r := range results {
		fmt.Fprintf(&b, "Title: %s\nDescription: %s\n\n", r.Title, r.Snippet)
	}
	b.WriteString("[end]")
	return b.String()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
