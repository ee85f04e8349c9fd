package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/model"
)

// Endpoint paths relative to the server URL
const (
	DeckAPIPath        = "/index.php/apps/deck/api/v1.0"
	AppPasswordPath    = "/ocs/v2.php/core/apppassword"
	GetAppPasswordPath = "/ocs/v2.php/core/getapppassword"
)

// Header names
const (
	HeaderRequestID  = "X-Request-Id"
	HeaderOCSRequest = "OCS-APIREQUEST"
)

// DefaultTimeout bounds a single request when no other timeout is configured
const DefaultTimeout = 30 * time.Second

// Credentials identify the server and the Authorization header value
type Credentials struct {
	Server string
	Token  string
}

// CredentialSource is consulted on every request so that sign-in and
// sign-out take effect without rebuilding the client
type CredentialSource func() Credentials

// StaticCredentials returns a source that always yields the same credentials
func StaticCredentials(server, token string) CredentialSource {
	return func() Credentials {
		return Credentials{Server: server, Token: token}
	}
}

// Client talks to a Deck server over HTTP
type Client struct {
	httpClient  *http.Client
	credentials CredentialSource
	logger      *zap.Logger
	timeout     func() time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithTimeoutSource bounds each request by the duration returned at the time
// it is sent, so a changed setting applies to the next request
func WithTimeoutSource(timeout func() time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new Deck API client
func NewClient(credentials CredentialSource, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		credentials: credentials,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBoards returns every board the user can access, including archived and deleted ones
func (c *Client) ListBoards(ctx context.Context) ([]model.Board, error) {
	var boards []model.Board
	if err := c.doDeck(ctx, http.MethodGet, "/boards", nil, &boards); err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	return boards, nil
}

// CreateBoard creates a board with the given title and hex color
func (c *Client) CreateBoard(ctx context.Context, title, color string) (*model.Board, error) {
	payload := struct {
		Title string `json:"title"`
		Color string `json:"color"`
	}{title, color}

	var board model.Board
	if err := c.doDeck(ctx, http.MethodPost, "/boards", payload, &board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}
	return &board, nil
}

// ListStacks returns the stacks of a board with their cards
func (c *Client) ListStacks(ctx context.Context, boardID int) ([]model.Stack, error) {
	var stacks []model.Stack
	path := fmt.Sprintf("/boards/%d/stacks", boardID)
	if err := c.doDeck(ctx, http.MethodGet, path, nil, &stacks); err != nil {
		return nil, fmt.Errorf("list stacks of board %d: %w", boardID, err)
	}
	return stacks, nil
}

// CreateStack creates a stack on a board
func (c *Client) CreateStack(ctx context.Context, boardID int, title string, order int) (*model.Stack, error) {
	payload := struct {
		Title string `json:"title"`
		Order int    `json:"order"`
	}{title, order}

	var stack model.Stack
	path := fmt.Sprintf("/boards/%d/stacks", boardID)
	if err := c.doDeck(ctx, http.MethodPost, path, payload, &stack); err != nil {
		return nil, fmt.Errorf("create stack on board %d: %w", boardID, err)
	}
	return &stack, nil
}

// NewCard holds the fields sent when creating a card
type NewCard struct {
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	Order       int        `json:"order"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"duedate,omitempty"`
}

// CreateCard creates a card on a stack
func (c *Client) CreateCard(ctx context.Context, boardID, stackID int, card NewCard) (*model.Card, error) {
	if card.Type == "" {
		card.Type = model.CardTypePlain
	}

	var created model.Card
	path := fmt.Sprintf("/boards/%d/stacks/%d/cards", boardID, stackID)
	if err := c.doDeck(ctx, http.MethodPost, path, card, &created); err != nil {
		return nil, fmt.Errorf("create card on stack %d: %w", stackID, err)
	}
	return &created, nil
}

// ReorderCard moves a card within or across stacks
func (c *Client) ReorderCard(ctx context.Context, boardID, stackID, cardID, order, targetStackID int) error {
	payload := struct {
		Order   int `json:"order"`
		StackID int `json:"stackId"`
	}{order, targetStackID}

	path := fmt.Sprintf("/boards/%d/stacks/%d/cards/%d/reorder", boardID, stackID, cardID)
	if err := c.doDeck(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("reorder card %d: %w", cardID, err)
	}
	return nil
}

// DeleteAppPassword revokes the app-password of the current session
func (c *Client) DeleteAppPassword(ctx context.Context) error {
	creds, err := c.requireCredentials()
	if err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodDelete, creds.Server+AppPasswordPath, creds.Token, nil, nil, ocsHeader()); err != nil {
		return fmt.Errorf("delete app-password: %w", err)
	}
	return nil
}

// requireCredentials reads the current credentials
func (c *Client) requireCredentials() (Credentials, error) {
	if c.credentials == nil {
		return Credentials{}, ErrNotAuthenticated
	}
	creds := c.credentials()
	if creds.Server == "" || creds.Token == "" {
		return Credentials{}, ErrNotAuthenticated
	}
	return creds, nil
}

// doDeck performs an authenticated request against the Deck API
func (c *Client) doDeck(ctx context.Context, method, path string, body, out any) error {
	creds, err := c.requireCredentials()
	if err != nil {
		return err
	}
	return c.do(ctx, method, creds.Server+DeckAPIPath+path, creds.Token, body, out, nil)
}

// do sends a JSON request and decodes a JSON response into out (if not nil)
func (c *Client) do(ctx context.Context, method, url, authorization string, body, out any, extra http.Header) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	if c.timeout != nil {
		if timeout := c.timeout(); timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", authorization)
	req.Header.Set(HeaderRequestID, requestID)
	for key, values := range extra {
		req.Header[key] = values
	}

	logger := c.logger.With(
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	logger.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(data)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ocsHeader returns the header required by OCS endpoints
func ocsHeader() http.Header {
	h := http.Header{}
	h.Set(HeaderOCSRequest, "true")
	return h
}
