package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"comptoir/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	invokePath     = "/invoke/"
	defaultTimeout = 30 * time.Second
)

type Options struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Rate is the number of commands allowed per second, 0 disables throttling.
	Rate  float64
	Burst int
	// Transport overrides the underlying round tripper, mostly for tests.
	Transport http.RoundTripper
}

type httpInvoker struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPInvoker returns an Invoker posting every command to
// {BaseURL}/invoke/{command}.
func NewHTTPInvoker(opts Options) (Invoker, error) {
	if opts.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), burst)
	}

	if opts.Token == "" {
		logger.L().Debug("backend token is empty, commands are sent unauthenticated")
	}

	return &httpInvoker{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: logger.Transport(opts.Transport),
		},
		limiter: limiter,
	}, nil
}

func (c *httpInvoker) Invoke(ctx context.Context, command string, args any, out any) error {
	if command == "" {
		return ErrEmptyCommand
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "bridge"),
		zap.String("command", command),
	)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			log.Warn("command throttled past its deadline", zap.Error(err))
			return fmt.Errorf("invoke %s: %w", command, err)
		}
	}

	if args == nil {
		args = struct{}{}
	}
	jsonBody, err := json.Marshal(args)
	if err != nil {
		log.Error("failed to marshal command args", zap.Error(err))
		return fmt.Errorf("invoke %s: marshal args: %w", command, err)
	}

	endpoint := c.baseURL + invokePath + url.PathEscape(command)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return fmt.Errorf("invoke %s: %w", command, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("backend request failed", zap.Error(err))
		return fmt.Errorf("invoke %s: %w", command, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return fmt.Errorf("invoke %s: read response: %w", command, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decodeMessage(bodyBytes)
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		log.Warn("backend rejected command",
			zap.Int("status", resp.StatusCode),
			zap.String("reason", msg),
		)
		return &CommandError{Command: command, Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		log.Error("failed decoding command result", zap.Error(err))
		return fmt.Errorf("invoke %s: decode result: %w", command, err)
	}

	return nil
}

// decodeMessage extracts the backend's error text. The backend answers either
// with a bare JSON string, an {"error": "..."} object, or plain text.
func decodeMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var obj struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		if obj.Error != "" {
			return obj.Error
		}
		if obj.Message != "" {
			return obj.Message
		}
	}

	return string(trimmed)
}
