package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fill-ledger-bot/internal/api"
	"fill-ledger-bot/internal/interfaces"
	"fill-ledger-bot/internal/logger"
	"fill-ledger-bot/internal/types"
)

// Client talks to the Telegram Bot API. Update delivery is long polling:
// FetchUpdates blocks server-side for up to the passed timeout, so the HTTP
// timeout is pinned above the longest poll the config allows.
type Client struct {
	token string
	http  *api.Client
}

// Compile-time interface check
var _ interfaces.Messenger = (*Client)(nil)

// Params configures the Telegram client.
type Params struct {
	Token       string
	BaseURL     string        // defaults to the public Bot API
	PollTimeout time.Duration // longest long-poll the caller will request
}

func New(p Params) (*Client, error) {
	if p.Token == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	base := p.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	return &Client{
		token: p.Token,
		http: api.NewClient(
			api.WithBaseURL(base),
			api.WithTimeout(p.PollTimeout+10*time.Second),
			// Request logging stays off: the method URLs embed the bot token.
			api.WithLogging(false),
		),
	}, nil
}

type updatesResponse struct {
	OK          bool           `json:"ok"`
	Result      []types.Update `json:"result"`
	Description string         `json:"description"`
}

// FetchUpdates long-polls getUpdates starting at offset. A zero timeout
// returns whatever is queued right now (used for the first-run warmup).
func (c *Client) FetchUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]types.Update, error) {
	q := url.Values{}
	q.Set("offset", strconv.FormatInt(offset, 10))
	q.Set("timeout", strconv.Itoa(int(timeout/time.Second)))

	resp, err := c.http.GET(ctx, c.methodPath("getUpdates")+"?"+q.Encode(), api.JSONHeaders())
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", err)
	}
	var body updatesResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", err)
	}
	if !body.OK {
		return nil, fmt.Errorf("telegram getUpdates rejected: %s", body.Description)
	}
	return body.Result, nil
}

// SendMessage posts a plain-text reply through the retry wrapper.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	req := api.NewRequest(http.MethodPost, c.methodPath("sendMessage")).
		WithContext(ctx).
		WithBody(map[string]any{"chat_id": chatID, "text": text})
	if _, err := c.http.DoWithRetry(req, nil); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	logger.Info(ctx, "Telegram reply sent", "chat_id", chatID)
	return nil
}

func (c *Client) methodPath(method string) string {
	return fmt.Sprintf("/bot%s/%s", c.token, method)
}
