package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dotadrafter/draft-client/internal/draft"
	"github.com/dotadrafter/draft-client/internal/hero"
)

// FetchError is a transport failure or non-success status while talking to a
// collaborator. Recoverable: the caller keeps its previous state and retries
// manually.
type FetchError struct {
	Op     string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Rejection is the authority refusing a draft action. Message is the body
// text the authority returned and is shown to the user verbatim.
type Rejection struct {
	Status  int
	Message string
}

func (e *Rejection) Error() string { return e.Message }

// Client speaks HTTP to the draft authority and the roster source, which the
// original deployment serves from the same base URL.
type Client struct {
	base string
	http *http.Client
	log  *zap.Logger
}

func NewClient(base string, log *zap.Logger) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
		log:  log,
	}
}

func (c *Client) FetchRoster(ctx context.Context) ([]hero.Hero, error) {
	const op = "fetch roster"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/heroes", nil)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Op: op, Status: resp.StatusCode}
	}
	var heroes []hero.Hero
	if err := json.NewDecoder(resp.Body).Decode(&heroes); err != nil {
		return nil, &FetchError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	c.log.Info("roster fetched", zap.Int("heroes", len(heroes)))
	return heroes, nil
}

// SyncRoster asks the roster source to refresh its catalog from upstream and
// returns the human-readable status message it replied with. Failures are
// FetchErrors, not rejections: sync has no draft semantics to refuse.
func (c *Client) SyncRoster(ctx context.Context) (string, error) {
	const op = "sync roster"
	body, status, err := c.post(ctx, op, "/api/heroes/sync")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &FetchError{Op: op, Status: status}
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) StartDraft(ctx context.Context) (draft.Snapshot, error) {
	return c.draftCall(ctx, "start draft", "/api/draft/start")
}

func (c *Client) Pick(ctx context.Context, draftID, heroID int64) (draft.Snapshot, error) {
	return c.draftCall(ctx, "pick", fmt.Sprintf("/api/draft/%d/pick/%d", draftID, heroID))
}

func (c *Client) Ban(ctx context.Context, draftID, heroID int64) (draft.Snapshot, error) {
	return c.draftCall(ctx, "ban", fmt.Sprintf("/api/draft/%d/ban/%d", draftID, heroID))
}

// draftCall POSTs to a draft endpoint. A 2xx body is the new authoritative
// snapshot; any other status is a Rejection carrying the authority's message.
func (c *Client) draftCall(ctx context.Context, op, path string) (draft.Snapshot, error) {
	body, status, err := c.post(ctx, op, path)
	if err != nil {
		return draft.Snapshot{}, err
	}
	if status < 200 || status > 299 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("%s failed (status %d)", op, status)
		}
		c.log.Warn("authority rejected request",
			zap.String("op", op), zap.Int("status", status), zap.String("message", msg))
		return draft.Snapshot{}, &Rejection{Status: status, Message: msg}
	}
	var snap draft.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return draft.Snapshot{}, &FetchError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return snap, nil
}

func (c *Client) post(ctx context.Context, op, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, nil)
	if err != nil {
		return nil, 0, &FetchError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &FetchError{Op: op, Err: err}
	}
	return body, resp.StatusCode, nil
}
