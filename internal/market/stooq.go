package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/rebal/pkg/httputil"
	"github.com/wonny/rebal/pkg/logger"
)

// StooqClient fetches quotes from stooq.com, the coarsest tiers of the
// cascade: a delayed CSV snapshot and, as a last resort, the quote page
// HTML.
// ⭐ SSOT: Stooq 호출은 이 클라이언트에서만
type StooqClient struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewStooqClient creates a new stooq.com client
func NewStooqClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *StooqClient {
	return &StooqClient{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// CSV returns the delayed CSV snapshot tier.
func (c *StooqClient) CSV() Source {
	return &stooqCSVSource{client: c}
}

// HTML returns the quote-page scrape tier.
func (c *StooqClient) HTML() Source {
	return &stooqHTMLSource{client: c}
}

// stooqSymbol maps a US ticker to stooq's notation (TQQQ → tqqq.us).
// Symbols that already carry a market suffix pass through unchanged.
func stooqSymbol(ticker string) string {
	s := strings.ToLower(strings.TrimSpace(ticker))
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".us"
}

type stooqCSVSource struct {
	client *StooqClient
}

func (s *stooqCSVSource) Name() string { return "stooq_csv" }

func (s *stooqCSVSource) Fetch(ctx context.Context, ticker string) (Quote, error) {
	c := s.client
	sym := stooqSymbol(ticker)

	// s=sym, f=sd2t2ohlcv: symbol, date, time, OHLC, volume
	fullURL := fmt.Sprintf("%s/q/l/?s=%s&f=sd2t2ohlcv&h&e=csv", c.baseURL, sym)

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

	price, ts, err := parseStooqCSV(string(body))
	if err != nil {
		return Quote{}, fmt.Errorf("parse response failed: %w", err)
	}

	return Quote{Ticker: ticker, Price: price, Timestamp: ts, Source: s.Name()}, nil
}

// parseStooqCSV parses the single-row snapshot CSV.
// Format: Symbol,Date,Time,Open,High,Low,Close,Volume
func parseStooqCSV(body string) (float64, time.Time, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(body)))
	records, err := r.ReadAll()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("decode CSV: %w", err)
	}
	if len(records) < 2 {
		return 0, time.Time{}, fmt.Errorf("CSV has no data row")
	}

	row := records[1]
	if len(row) < 8 {
		return 0, time.Time{}, fmt.Errorf("CSV row has %d columns, want 8", len(row))
	}

	// 상장폐지/미존재 심볼은 N/D로 내려온다
	closeStr := row[6]
	if closeStr == "" || closeStr == "N/D" {
		return 0, time.Time{}, fmt.Errorf("no close price for symbol %s", row[0])
	}

	price, err := strconv.ParseFloat(closeStr, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse close %q: %w", closeStr, err)
	}
	if price <= 0 {
		return 0, time.Time{}, fmt.Errorf("non-positive close price %v", price)
	}

	ts, err := time.Parse("2006-01-02 15:04:05", row[1]+" "+row[2])
	if err != nil {
		// 날짜만 있는 경우
		ts, err = time.Parse("2006-01-02", row[1])
		if err != nil {
			ts = time.Now().UTC()
		}
	}

	return price, ts, nil
}

type stooqHTMLSource struct {
	client *StooqClient
}

func (s *stooqHTMLSource) Name() string { return "stooq_html" }

func (s *stooqHTMLSource) Fetch(ctx context.Context, ticker string) (Quote, error) {
	c := s.client
	sym := stooqSymbol(ticker)

	fullURL := fmt.Sprintf("%s/q/?s=%s", c.baseURL, sym)

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

	price, err := parseStooqHTML(string(body), sym)
	if err != nil {
		return Quote{}, fmt.Errorf("parse quote page failed: %w", err)
	}

	// 페이지 스크랩은 체결 시각이 없으므로 현재 시각을 쓴다
	return Quote{Ticker: ticker, Price: price, Timestamp: time.Now().UTC(), Source: s.Name()}, nil
}

// parseStooqHTML extracts the current price from the quote page.
// Stooq renders live fields in spans with ids like "aq_tqqq.us_c2".
func parseStooqHTML(html, sym string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, fmt.Errorf("parse HTML: %w", err)
	}

	var price float64
	doc.Find(fmt.Sprintf("span[id^='aq_%s_c']", sym)).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(strings.ReplaceAll(sel.Text(), ",", ""))
		if text == "" {
			return true
		}

		p, err := strconv.ParseFloat(text, 64)
		if err != nil || p <= 0 {
			return true
		}

		price = p
		return false
	})

	if price == 0 {
		return 0, fmt.Errorf("no price span found for %s", sym)
	}

	return price, nil
}
