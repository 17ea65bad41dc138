package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wonny/rebal/pkg/httputil"
	"github.com/wonny/rebal/pkg/logger"
)

// YahooClient fetches quotes from the Yahoo Finance chart API.
// ⭐ SSOT: 야후 차트 API 호출은 이 클라이언트에서만
type YahooClient struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *YahooClient {
	return &YahooClient{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// Intraday returns the 1-minute/5-day tier.
func (c *YahooClient) Intraday() Source {
	return &yahooSource{client: c, name: "yahoo_intraday", interval: "1m", dataRange: "5d"}
}

// Daily returns the 1-day/10-day tier.
func (c *YahooClient) Daily() Source {
	return &yahooSource{client: c, name: "yahoo_daily", interval: "1d", dataRange: "10d"}
}

type yahooSource struct {
	client    *YahooClient
	name      string
	interval  string
	dataRange string
}

func (s *yahooSource) Name() string { return s.name }

func (s *yahooSource) Fetch(ctx context.Context, ticker string) (Quote, error) {
	return s.client.fetchChart(ctx, ticker, s.interval, s.dataRange, s.name)
}

// fetchChart fetches a chart window and returns the last traded close.
func (c *YahooClient) fetchChart(ctx context.Context, ticker, interval, dataRange, source string) (Quote, error) {
	params := url.Values{}
	params.Set("interval", interval)
	params.Set("range", dataRange)

	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return Quote{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("read response body failed: %w", err)
	}

	price, ts, err := parseChartResponse(body)
	if err != nil {
		return Quote{}, fmt.Errorf("parse response failed: %w", err)
	}

	return Quote{Ticker: ticker, Price: price, Timestamp: ts, Source: source}, nil
}

// chartResponse mirrors the subset of the Yahoo chart payload we need.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				RegularMarketTime  int64   `json:"regularMarketTime"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChartResponse extracts the last non-null close with its timestamp.
// Falls back to the meta regular-market price when the series has no
// usable closes (휴장일 직후 1분봉이 비어있는 경우).
func parseChartResponse(body []byte) (float64, time.Time, error) {
	var cr chartResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return 0, time.Time{}, fmt.Errorf("decode chart JSON: %w", err)
	}

	if cr.Chart.Error != nil {
		return 0, time.Time{}, fmt.Errorf("chart API error: %s (%s)", cr.Chart.Error.Code, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return 0, time.Time{}, fmt.Errorf("chart API returned no result")
	}

	result := cr.Chart.Result[0]

	if len(result.Indicators.Quote) > 0 {
		closes := result.Indicators.Quote[0].Close
		for i := len(closes) - 1; i >= 0; i-- {
			if closes[i] == nil || *closes[i] <= 0 {
				continue
			}
			ts := time.Now().UTC()
			if i < len(result.Timestamp) {
				ts = time.Unix(result.Timestamp[i], 0).UTC()
			}
			return *closes[i], ts, nil
		}
	}

	if result.Meta.RegularMarketPrice > 0 {
		ts := time.Now().UTC()
		if result.Meta.RegularMarketTime > 0 {
			ts = time.Unix(result.Meta.RegularMarketTime, 0).UTC()
		}
		return result.Meta.RegularMarketPrice, ts, nil
	}

	return 0, time.Time{}, fmt.Errorf("chart response has no usable close")
}
