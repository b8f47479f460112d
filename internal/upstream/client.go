package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/config"
	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/pkg/breaker"
)

// maxResponseSize caps how much of an upstream body is read (10MB).
const maxResponseSize = 10 * 1024 * 1024

type guard interface {
	Allow() error
	Success()
	Failure()
}

// Client performs single, non-retrying calls to the order feed and the
// currency feed. Every failure is reported as domain.ErrNetwork or
// domain.ErrParse.
type Client struct {
	ordersURL   string
	ordersToken string
	ratesURL    string

	http          *http.Client
	ordersBreaker guard
	ratesBreaker  guard
	logger        *zap.Logger
}

func NewClient(orders config.Orders, rates config.Rates, brk config.Breaker, logger *zap.Logger) *Client {
	return &Client{
		ordersURL:     orders.BaseURL + "/orders",
		ordersToken:   orders.Token,
		ratesURL:      rates.URL,
		http:          &http.Client{},
		ordersBreaker: breaker.New(brk),
		ratesBreaker:  breaker.New(brk),
		logger:        logger,
	}
}

// FetchOrders loads the full order list.
func (c *Client) FetchOrders(ctx context.Context) ([]RawOrder, error) {
	var orders []RawOrder
	err := c.guarded(c.ordersBreaker, "orders", func() error {
		body, err := c.get(ctx, c.ordersURL, c.ordersToken)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &orders); err != nil {
			return fmt.Errorf("%w: orders payload: %v", domain.ErrParse, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

// FetchRate loads the daily feed and returns the entry for currency.
func (c *Client) FetchRate(ctx context.Context, currency string) (RawRate, error) {
	var rate RawRate
	err := c.guarded(c.ratesBreaker, "rates", func() error {
		body, err := c.get(ctx, c.ratesURL, "")
		if err != nil {
			return err
		}
		var daily rawDaily
		if err := json.Unmarshal(body, &daily); err != nil {
			return fmt.Errorf("%w: rates payload: %v", domain.ErrParse, err)
		}
		r, ok := daily.Valute[strings.ToUpper(currency)]
		if !ok {
			return fmt.Errorf("%w: currency %s missing from rates feed", domain.ErrParse, currency)
		}
		rate = r
		return nil
	})
	if err != nil {
		return RawRate{}, err
	}
	return rate, nil
}

// guarded runs fn behind a breaker. Only network failures count against it:
// a payload we cannot parse still proves the upstream is reachable.
func (c *Client) guarded(b guard, name string, fn func() error) error {
	if err := b.Allow(); err != nil {
		return fmt.Errorf("%w: %s upstream: %w", domain.ErrNetwork, name, err)
	}
	err := fn()
	if errors.Is(err, domain.ErrNetwork) {
		b.Failure()
		c.logger.Warn("upstream call failed", zap.String("upstream", name), zap.Error(err))
		return err
	}
	b.Success()
	return err
}

func (c *Client) get(ctx context.Context, url, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrNetwork, url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: status %d", domain.ErrNetwork, url, resp.StatusCode)
	}

	c.logger.Debug("upstream response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}
