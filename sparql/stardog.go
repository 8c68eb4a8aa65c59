package sparql

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// maxErrorBodySize limits the size of error response bodies.
	maxErrorBodySize = 4096

	// DefaultDatabase is the Stardog database holding the published SCKAN release.
	DefaultDatabase = "NPO"

	// DefaultTimeout bounds a single query round trip.
	DefaultTimeout = 5 * time.Minute

	resultsMediaType = "application/sparql-results+json"
)

// StardogOptions configures a StardogExecutor.
type StardogOptions struct {
	// URL is the Stardog server base URL, e.g. https://stardog.scicrunch.io:5821.
	URL string

	// Database defaults to DefaultDatabase.
	Database string

	// Username and Password are sent as HTTP basic auth when Username is set.
	Username string
	Password string

	// Timeout defaults to DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration

	// Reasoning enables Stardog's reasoner for every query.
	Reasoning bool

	// HTTPClient overrides the default client.
	HTTPClient *http.Client

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// StardogExecutor executes queries against a Stardog HTTP endpoint.
type StardogExecutor struct {
	endpoint   string
	username   string
	password   string
	reasoning  bool
	httpClient *http.Client
	logger     *slog.Logger
}

// NewStardogExecutor creates an executor for the configured endpoint.
func NewStardogExecutor(opts StardogOptions) (*StardogExecutor, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("stardog url is required")
	}
	base, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse stardog url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("stardog url must be http or https, got %q", opts.URL)
	}

	db := opts.Database
	if db == "" {
		db = DefaultDatabase
	}

	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &StardogExecutor{
		endpoint:   strings.TrimRight(opts.URL, "/") + "/" + url.PathEscape(db) + "/query",
		username:   opts.Username,
		password:   opts.Password,
		reasoning:  opts.Reasoning,
		httpClient: client,
		logger:     logger,
	}, nil
}

// Endpoint returns the query URL requests are posted to.
func (s *StardogExecutor) Endpoint() string {
	return s.endpoint
}

// Execute posts the query and decodes the JSON results.
func (s *StardogExecutor) Execute(ctx context.Context, q Query) ([]Row, error) {
	form := url.Values{}
	form.Set("query", q.Text)
	form.Set("reasoning", strconv.FormatBool(s.reasoning))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", resultsMediaType)
	if s.username != "" {
		req.SetBasicAuth(s.username, s.password)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &QueryError{Query: q.Name, StatusCode: resp.StatusCode, Body: string(body)}
	}

	rows, err := DecodeResults(resp.Body)
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}

	s.logger.Debug("Query executed",
		"query", q.Name,
		"rows", len(rows),
		"duration", time.Since(start))
	return rows, nil
}
