// Package orderclient submits order drafts to the order endpoint over HTTP.
package orderclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-pizzaform/pkg/order"
	"github.com/goliatone/go-pizzaform/pkg/orderform"
	"github.com/goliatone/go-pizzaform/pkg/render"
)

// DefaultEndpoint is the local order API.
const DefaultEndpoint = "http://localhost:9009/api/order"

const maxResponseBytes = 1 << 20

// Client posts drafts as JSON. It implements orderform.Submitter.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger
	userAgent  string
}

var _ orderform.Submitter = (*Client)(nil)

// New constructs a client for DefaultEndpoint unless WithEndpoint is given.
func New(options ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
		timeout:    10 * time.Second,
		userAgent:  "go-pizzaform",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	return c
}

// Endpoint returns the URL orders are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type wireOrder struct {
	FullName string   `json:"full_name"`
	Size     string   `json:"size"`
	Toppings []string `json:"toppings"`
}

type wireReceipt struct {
	ID        any    `json:"id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type wireError struct {
	Error  string          `json:"error"`
	Code   string          `json:"code"`
	Fields json.RawMessage `json:"fields"`
}

// SubmitOrder posts the draft. Any transport failure, non-2xx status or body
// that is not a JSON object yields an *order.SubmissionError.
func (c *Client) SubmitOrder(ctx context.Context, draft order.Draft) (order.Receipt, error) {
	toppings := draft.Toppings
	if toppings == nil {
		toppings = []string{}
	}
	body, err := json.Marshal(wireOrder{
		FullName: draft.FullName,
		Size:     string(draft.Size),
		Toppings: toppings,
	})
	if err != nil {
		return order.Receipt{}, &order.SubmissionError{Err: fmt.Errorf("orderclient: encode draft: %w", err)}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return order.Receipt{}, &order.SubmissionError{Err: fmt.Errorf("orderclient: build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("orderclient: post %s: %v", c.endpoint, err)
		return order.Receipt{}, &order.SubmissionError{Err: fmt.Errorf("orderclient: post: %w", err)}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return order.Receipt{}, &order.SubmissionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("orderclient: read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := decodeError(resp.StatusCode, payload)
		c.logger.Printf("orderclient: order rejected: %v", serr)
		return order.Receipt{}, serr
	}

	receipt, err := decodeReceipt(payload)
	if err != nil {
		return order.Receipt{}, &order.SubmissionError{StatusCode: resp.StatusCode, Err: err}
	}
	return receipt, nil
}

func decodeReceipt(payload []byte) (order.Receipt, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return order.Receipt{}, errors.New("orderclient: response is not a JSON object")
	}
	var wire wireReceipt
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return order.Receipt{}, fmt.Errorf("orderclient: decode response: %w", err)
	}

	receipt := order.Receipt{Message: wire.Message}
	switch id := wire.ID.(type) {
	case nil:
	case string:
		receipt.ID = id
	case float64:
		receipt.ID = fmt.Sprintf("%.0f", id)
	default:
		receipt.ID = fmt.Sprint(id)
	}
	if wire.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, wire.CreatedAt); err == nil {
			receipt.CreatedAt = ts
		}
	}
	return receipt, nil
}

func decodeError(status int, payload []byte) *order.SubmissionError {
	serr := &order.SubmissionError{
		StatusCode: status,
		Err:        fmt.Errorf("orderclient: unexpected status %d", status),
	}

	var wire wireError
	if err := json.Unmarshal(payload, &wire); err != nil {
		return serr
	}
	serr.Code = wire.Code
	if msg := strings.TrimSpace(wire.Error); msg != "" {
		serr.Err = fmt.Errorf("orderclient: %s", msg)
	}

	fields := decodeFields(wire.Fields)
	if len(fields) == 0 {
		return serr
	}
	mapped := render.MapErrorPayload([]string{order.FieldFullName, order.FieldSize, order.FieldToppings}, fields)
	serr.Fields = mapped.Fields
	serr.Form = mapped.Form
	return serr
}

// decodeFields accepts both {"field": ["msg"]} and {"field": "msg"} entries.
func decodeFields(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}
	out := make(map[string][]string, len(entries))
	for key, value := range entries {
		var many []string
		if err := json.Unmarshal(value, &many); err == nil {
			out[key] = many
			continue
		}
		var single string
		if err := json.Unmarshal(value, &single); err == nil {
			out[key] = []string{single}
		}
	}
	return out
}
