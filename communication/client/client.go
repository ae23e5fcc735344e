package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"homeworlds/communication"
	"homeworlds/game"
	"homeworlds/gamemaster"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrRateLimited = errors.New("rate limited")

// Client talks to a game served by communication/server
type Client struct {
	serverURL string
	http      *http.Client
}

var _ communication.Communicator = (*Client)(nil)

// NewClient returns a client for the server at serverURL. A nil httpClient
// uses a default with a timeout.
func NewClient(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      httpClient,
	}
}

func (c *Client) State(ctx context.Context) (game.Snapshot, error) {
	var snap game.Snapshot
	err := c.do(ctx, http.MethodGet, "/state", nil, &snap)
	return snap, err
}

func (c *Client) Moves(ctx context.Context) (communication.MovesResponse, error) {
	var moves communication.MovesResponse
	err := c.do(ctx, http.MethodGet, "/moves", nil, &moves)
	return moves, err
}

func (c *Client) Probe(ctx context.Context, move string) error {
	return c.do(ctx, http.MethodPost, "/probe", communication.MoveRequest{Move: move}, nil)
}

func (c *Client) Play(ctx context.Context, seat game.Seat, move string) (game.Entry, error) {
	var entry game.Entry
	err := c.do(ctx, http.MethodPost, "/play", communication.MoveRequest{Seat: seat, Move: move}, &entry)
	return entry, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// decodeError maps an error response back to the error the game master returned
func decodeError(resp *http.Response) error {
	var body communication.ErrorResponse
	json.NewDecoder(resp.Body).Decode(&body)

	switch {
	case body.Code != "":
		return &game.RuleError{Code: body.Code, Context: body.Context}
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", body.Message, gamemaster.ErrNotYourTurn)
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	}
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.Message)
}
