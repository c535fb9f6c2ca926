package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrNoToken is returned when the client has no bearer token.
	ErrNoToken = errors.New("scores: no api token")
	// ErrInvalidToken is returned when the token cannot be decoded.
	ErrInvalidToken = errors.New("scores: invalid api token")
	// ErrTokenExpired is returned when the token's exp claim has passed.
	ErrTokenExpired = errors.New("scores: api token expired")
)

// APIError is a non-2xx response from the score API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scores: api error %d: %s", e.StatusCode, e.Message)
}

// Claims is the payload of the API's access token.
type Claims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LeaderboardEntry is one row of the remote leaderboard.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	HighScore int    `json:"highScore"`
}

type submitRequest struct {
	Score int `json:"score"`
}

type submitResponse struct {
	Success      bool `json:"success"`
	NewHighScore bool `json:"newHighScore"`
	HighScore    int  `json:"highScore"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client talks to the remote score API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	now     func() time.Time
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// ParseToken decodes the token's claims without verifying the signature.
// The server verifies; the client only needs exp and the username.
func ParseToken(token string, now time.Time) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Username returns the username carried by the client's token.
func (c *Client) Username() (string, error) {
	claims, err := ParseToken(c.token, c.now())
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// CanSubmit reports whether the client holds a token that is neither
// malformed nor expired.
func (c *Client) CanSubmit() bool {
	_, err := ParseToken(c.token, c.now())
	return err == nil
}

// SubmitScore posts a final score. A negative score or an unusable token
// fails without any network traffic.
func (c *Client) SubmitScore(ctx context.Context, score int) (Result, error) {
	if err := Validate(score); err != nil {
		return Result{}, err
	}
	if _, err := ParseToken(c.token, c.now()); err != nil {
		return Result{}, err
	}

	body, err := json.Marshal(submitRequest{Score: score})
	if err != nil {
		return Result{}, fmt.Errorf("scores: encode request: %w", err)
	}

	var resp submitResponse
	if err := c.do(ctx, http.MethodPost, "/scores/submit", body, true, &resp); err != nil {
		return Result{}, err
	}
	return Result{NewHighScore: resp.NewHighScore, HighScore: resp.HighScore}, nil
}

// Leaderboard fetches the public leaderboard.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, "/scores/leaderboard", nil, false, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, auth bool, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("scores: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("scores: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("scores: read response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var er errorResponse
		if json.Unmarshal(data, &er) == nil && er.Message != "" {
			apiErr.Message = er.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("scores: decode response: %w", err)
	}
	return nil
}
