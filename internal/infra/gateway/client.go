package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"court-grid/internal/infra"
	"court-grid/internal/infra/metrics"
	"court-grid/internal/pkg/config"

	"golang.org/x/time/rate"
)

const maxErrorBody = 4 << 10

// Client talks to the booking backend's REST API. It implements the catalog,
// booking and account ports.
type Client struct {
	http     *http.Client
	baseURL  *url.URL
	token    string
	timeout  time.Duration
	pageSize int
	limiter  *rate.Limiter
	metrics  *metrics.Recorder
	logger   *slog.Logger
}

func NewClient(cfg config.BackendConfig, rec *metrics.Recorder, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Client{
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:  base,
		token:    cfg.Token,
		timeout:  cfg.Timeout,
		pageSize: pageSize,
		limiter:  rate.NewLimiter(limit, burst),
		metrics:  rec,
		logger:   logger,
	}, nil
}

type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do runs one call and decodes the JSON response into out. Every failure is
// an infra.GatewayError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindTimeout, 0, req.op+": rate limiter", err)
	}

	start := time.Now()
	defer c.metrics.ObserveGateway(req.op, start)

	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return infra.WrapGatewayErr(c.logger, infra.KindDecode, 0, req.op+": encode request", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, infra.KindTransport, 0, req.op+": build request", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return infra.WrapGatewayErr(c.logger, transportKind(err), 0, req.op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		return infra.WrapGatewayErr(c.logger, infra.KindForStatus(resp.StatusCode), resp.StatusCode,
			fmt.Sprintf("%s: %s", req.op, msg), nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return infra.WrapGatewayErr(c.logger, transportOrDecode(err), resp.StatusCode, req.op+": decode response", err)
	}
	return nil
}

func transportKind(err error) infra.GatewayErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return infra.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return infra.KindTimeout
	}
	return infra.KindTransport
}

func transportOrDecode(err error) infra.GatewayErrorKind {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return infra.KindDecode
	}
	return transportKind(err)
}

func readErrorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "empty response"
	}
	return text
}
