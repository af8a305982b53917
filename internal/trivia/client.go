// Package trivia is a client for the Open Trivia DB HTTP API.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"trivia-challenge/internal/domain"
)

const DefaultBaseURL = "https://opentdb.com"

// Open Trivia DB response codes.
const (
	codeSuccess       = 0
	codeNoResults     = 1
	codeInvalidParam  = 2
	codeTokenNotFound = 3
	codeTokenEmpty    = 4
	codeRateLimit     = 5
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the minimum spacing between requests; 0 disables limiting.
	RateLimit time.Duration
	// UseToken asks the API for a session token so rounds do not repeat questions.
	UseToken   bool
	HTTPClient *http.Client
}

// Client implements app.QuestionSource and memory.CategoryLoader.
type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	useToken bool
	log      *zap.Logger

	mu    sync.Mutex
	token string
}

func NewClient(opts Options, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.RateLimit), 1)
	}
	return &Client{
		baseURL:  base,
		http:     httpClient,
		limiter:  limiter,
		useToken: opts.UseToken,
		log:      log.Named("trivia"),
	}
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

type categoriesResponse struct {
	Categories []domain.Category `json:"trivia_categories"`
}

type tokenResponse struct {
	ResponseCode    int    `json:"response_code"`
	ResponseMessage string `json:"response_message"`
	Token           string `json:"token"`
}

// FetchQuestions retrieves one round of questions. Token problems are
// repaired and the request retried once.
func (c *Client) FetchQuestions(ctx context.Context, settings domain.Settings) ([]domain.Question, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if c.useToken {
		c.ensureToken(ctx)
	}

	resp, err := c.fetch(ctx, settings)
	if err != nil {
		return nil, err
	}

	switch resp.ResponseCode {
	case codeTokenNotFound:
		c.log.Info("session token expired, requesting a new one")
		c.setToken("")
		c.ensureToken(ctx)
		resp, err = c.fetch(ctx, settings)
	case codeTokenEmpty:
		c.log.Info("session token exhausted, resetting")
		if err := c.resetToken(ctx); err != nil {
			c.log.Warn("token reset failed", zap.Error(err))
			c.setToken("")
		}
		resp, err = c.fetch(ctx, settings)
	}
	if err != nil {
		return nil, err
	}

	if err := classify(resp.ResponseCode); err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(resp.Results))
	for _, q := range resp.Results {
		if q.Type == domain.Boolean {
			q.Distractors = nil
		}
		questions = append(questions, q)
	}
	c.log.Debug("questions fetched", zap.Int("count", len(questions)), zap.Int("category", settings.Category), zap.String("difficulty", settings.Difficulty))
	return questions, nil
}

func (c *Client) fetch(ctx context.Context, settings domain.Settings) (questionsResponse, error) {
	q := url.Values{}
	q.Set("amount", strconv.Itoa(settings.Amount))
	if settings.Category > 0 {
		q.Set("category", strconv.Itoa(settings.Category))
	}
	q.Set("difficulty", settings.Difficulty)
	if token := c.currentToken(); token != "" {
		q.Set("token", token)
	}

	var resp questionsResponse
	if err := c.get(ctx, "/api.php", q, &resp); err != nil {
		return questionsResponse{}, err
	}
	return resp, nil
}

// LoadCategories lists the categories the API serves.
func (c *Client) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/api_category.php", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Categories) == 0 {
		return nil, fmt.Errorf("%w: empty category list", domain.ErrDataSource)
	}
	return resp.Categories, nil
}

func (c *Client) ensureToken(ctx context.Context) {
	if c.currentToken() != "" {
		return
	}
	var resp tokenResponse
	err := c.get(ctx, "/api_token.php", url.Values{"command": {"request"}}, &resp)
	if err == nil && (resp.ResponseCode != codeSuccess || resp.Token == "") {
		err = fmt.Errorf("token request answered %d: %s", resp.ResponseCode, resp.ResponseMessage)
	}
	if err != nil {
		// questions can still be fetched without a token
		c.log.Warn("session token unavailable", zap.Error(err))
		return
	}
	c.setToken(resp.Token)
}

func (c *Client) resetToken(ctx context.Context) error {
	token := c.currentToken()
	if token == "" {
		return errors.New("no token to reset")
	}
	var resp tokenResponse
	if err := c.get(ctx, "/api_token.php", url.Values{"command": {"reset"}, "token": {token}}, &resp); err != nil {
		return err
	}
	if resp.ResponseCode != codeSuccess {
		return fmt.Errorf("token reset answered %d", resp.ResponseCode)
	}
	if resp.Token != "" {
		c.setToken(resp.Token)
	}
	return nil
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", domain.ErrDataSource, err)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrDataSource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s: %v", domain.ErrDataSource, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: rate limited", domain.ErrDataSource)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %s", domain.ErrDataSource, path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrDataSource, path, err)
	}
	return nil
}

func classify(code int) error {
	switch code {
	case codeSuccess:
		return nil
	case codeNoResults:
		return domain.ErrNoResults
	case codeInvalidParam:
		return fmt.Errorf("%w: invalid parameter", domain.ErrDataSource)
	case codeTokenNotFound, codeTokenEmpty:
		return fmt.Errorf("%w: session token rejected", domain.ErrDataSource)
	case codeRateLimit:
		return fmt.Errorf("%w: rate limited, try again in a few seconds", domain.ErrDataSource)
	default:
		return fmt.Errorf("%w: unexpected response code %d", domain.ErrDataSource, code)
	}
}
