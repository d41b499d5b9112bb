package rates

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"

	"quotewise/internal/config"
	"quotewise/pkg/contextx"
	"quotewise/pkg/httpx"
	"quotewise/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Client конвертирует денежные атрибуты в базовую валюту. Курсы берутся из
// внешнего API и кэшируются; при недоступности API используется статическая
// таблица, чтобы сравнение не падало из-за сети.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	baseCurrency string
	rateCache    *cache.Cache
	fallback     map[string]float64
}

func NewClient(cfg config.Rates) *Client {
	transport := http.RoundTripper(httpx.NewLoggingRoundTripper(
		http.DefaultTransport,
		httpx.WithLogFieldMaxLen(logFieldMaxLen),
	))

	if cfg.APIKey != "" {
		transport = httpx.NewAuthBearerRoundTripper(transport, staticTokenAuthenticator{token: cfg.APIKey})
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		baseCurrency: strings.ToUpper(cfg.BaseCurrency),
		rateCache:    cache.New(cfg.CacheTTL, cfg.CacheTTL),
		fallback:     fallbackRates,
	}
}

const logFieldMaxLen = 2048

// fallbackRates — курсы к USD на случай недоступности API.
var fallbackRates = map[string]float64{ //nolint:gochecknoglobals
	"USD": 1.0,
	"EUR": 1.09,
	"GBP": 1.27,
	"INR": 0.012,
	"RUB": 0.011,
}

// Supports сообщает, сможет ли клиент сконвертировать валюту хотя бы по
// статической таблице.
func (c *Client) Supports(currency string) bool {
	currency = strings.ToUpper(currency)

	if currency == c.baseCurrency {
		return true
	}

	_, ok := c.fallback[currency]

	return ok
}

// Convert переводит сумму из currency в базовую валюту клиента.
func (c *Client) Convert(ctx context.Context, amount float64, currency string) (float64, error) {
	currency = strings.ToUpper(currency)

	if currency == c.baseCurrency {
		return amount, nil
	}

	rate, err := c.rate(ctx, currency)
	if err != nil {
		return 0, err
	}

	return amount * rate, nil
}

func (c *Client) rate(ctx context.Context, currency string) (float64, error) {
	if cached, ok := c.rateCache.Get(currency); ok {
		return cached.(float64), nil //nolint:forcetypeassert
	}

	rate, err := c.fetchRate(ctx, currency)
	if err != nil {
		fallback, ok := c.fallback[currency]
		if !ok {
			return 0, fmt.Errorf("rates.fetchRate: %w", err)
		}

		logger(ctx).Warn(
			"rates api unavailable, using fallback rate",
			logx.Error(err),
			slog.String("currency", currency),
		)

		return fallback, nil
	}

	c.rateCache.Set(currency, rate, cache.DefaultExpiration)

	return rate, nil
}

func (c *Client) fetchRate(ctx context.Context, currency string) (float64, error) {
	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.baseURL, currency, c.baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rates api status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode rates response: %w", err)
	}

	rate, ok := payload.Rates[c.baseCurrency]
	if !ok {
		return 0, fmt.Errorf("rates api has no rate %s->%s", currency, c.baseCurrency)
	}

	return rate, nil
}

type staticTokenAuthenticator struct {
	token string
}

func (a staticTokenAuthenticator) Authenticate(context.Context) error { return nil }

func (a staticTokenAuthenticator) BearerToken() string { return a.token }
