package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/osse101/SnakeCrawl_Go/internal/domain"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// Gateway is an HTTP/JSON client for the wallet gateway in front of the chain
type Gateway struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries uint64
	RetryDelay time.Duration
}

// NewGateway creates a gateway client with the default timeout and retry policy
func NewGateway(baseURL, apiKey string) *Gateway {
	return &Gateway{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

type submitRequest struct {
	Sender string                `json:"sender"`
	Call   domain.SettlementCall `json:"call"`
}

type submitResponse struct {
	Digest string `json:"digest"`
}

type balanceResponse struct {
	Owner        string `json:"owner"`
	TotalBalance string `json:"total_balance"`
}

type eventsResponse struct {
	Data []domain.GameResultEvent `json:"data"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SignAndSubmit asks the gateway to sign call as player and execute it.
// Submissions are never retried: a timed out request may still have executed.
func (g *Gateway) SignAndSubmit(ctx context.Context, call domain.SettlementCall, player string) (string, error) {
	var resp submitResponse
	if err := g.do(ctx, http.MethodPost, PathTransactions, submitRequest{Sender: player, Call: call}, &resp); err != nil {
		return "", err
	}
	if resp.Digest == "" {
		return "", errors.New(ErrMsgMissingDigest)
	}
	logger.FromContext(ctx).Debug(LogMsgSubmitted, "tx_id", resp.Digest, "target", call.Target)
	return resp.Digest, nil
}

// Balance returns the owner's total balance in minor units
func (g *Gateway) Balance(ctx context.Context, owner string) (uint64, error) {
	var resp balanceResponse
	if err := g.doWithRetry(ctx, http.MethodGet, PathBalances+url.PathEscape(owner), &resp); err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(resp.TotalBalance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", ErrMsgInvalidBalance, resp.TotalBalance, err)
	}
	return v, nil
}

// QueryEvents returns up to limit events of eventType, newest first
func (g *Gateway) QueryEvents(ctx context.Context, eventType string, limit int) ([]domain.GameResultEvent, error) {
	q := url.Values{}
	q.Set("type", eventType)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "desc")

	var resp eventsResponse
	if err := g.doWithRetry(ctx, http.MethodGet, PathEvents+"?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// doWithRetry retries transport failures and 5xx replies with exponential backoff
func (g *Gateway) doWithRetry(ctx context.Context, method, path string, out interface{}) error {
	backoff := retry.WithMaxRetries(g.MaxRetries, retry.WithJitter(DefaultRetryJitter, retry.NewExponential(g.RetryDelay)))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if attempt > 0 {
			logger.FromContext(ctx).Info(LogMsgRetrying, "attempt", attempt, "path", path)
		}
		attempt++

		err := g.do(ctx, method, path, nil, out)
		var statusErr *StatusError
		switch {
		case err == nil:
			return nil
		case errors.As(err, &statusErr) && !statusErr.Retryable():
			return err
		case ctx.Err() != nil:
			return err
		default:
			return retry.RetryableError(err)
		}
	})
	if err != nil && attempt > 1 {
		return fmt.Errorf("%s: %w", ErrMsgRetriesExhausted, err)
	}
	return err
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgMarshalFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreateRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.APIKey != "" {
		req.Header.Set(HeaderAPIKey, g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readStatusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgDecodeFailed, err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	statusErr := &StatusError{Status: resp.StatusCode}

	var body errorResponse
	if err := json.Unmarshal(raw, &body); err == nil && (body.Code != "" || body.Message != "") {
		statusErr.Code = body.Code
		statusErr.Message = body.Message
	} else {
		statusErr.Message = strings.TrimSpace(string(raw))
	}
	return statusErr
}
