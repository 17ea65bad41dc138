package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStooqSymbol(t *testing.T) {
	tests := []struct {
		ticker string
		want   string
	}{
		{"TQQQ", "tqqq.us"},
		{"tqqq", "tqqq.us"},
		{" SOXL ", "soxl.us"},
		{"tqqq.us", "tqqq.us"},
		{"005930.ks", "005930.ks"},
	}

	for _, tt := range tests {
		if got := stooqSymbol(tt.ticker); got != tt.want {
			t.Errorf("stooqSymbol(%q) = %q, want %q", tt.ticker, got, tt.want)
		}
	}
}

func TestParseStooqCSV(t *testing.T) {
	body := "Symbol,Date,Time,Open,High,Low,Close,Volume\n" +
		"TQQQ.US,2026-08-24,22:00:13,49.81,50.66,49.52,50.31,31405621\n"

	price, ts, err := parseStooqCSV(body)
	require.NoError(t, err)
	assert.Equal(t, 50.31, price)
	assert.Equal(t, time.Date(2026, 8, 24, 22, 0, 13, 0, time.UTC), ts)
}

func TestParseStooqCSV_NoData(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown symbol", "Symbol,Date,Time,Open,High,Low,Close,Volume\nXXXX.US,N/D,N/D,N/D,N/D,N/D,N/D,N/D\n"},
		{"header only", "Symbol,Date,Time,Open,High,Low,Close,Volume\n"},
		{"empty body", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseStooqCSV(tt.body)
			require.Error(t, err)
		})
	}
}

func TestParseStooqHTML(t *testing.T) {
	html := `<html><body>
		<table><tr>
			<td><span id="aq_tqqq.us_c2">50.31</span></td>
			<td><span id="aq_tqqq.us_m1">+1.02</span></td>
		</tr></table>
	</body></html>`

	price, err := parseStooqHTML(html, "tqqq.us")
	require.NoError(t, err)
	assert.Equal(t, 50.31, price)
}

func TestParseStooqHTML_ThousandsSeparator(t *testing.T) {
	html := `<span id="aq_^spx_c1">6,412.45</span>`

	price, err := parseStooqHTML(html, "^spx")
	require.NoError(t, err)
	assert.Equal(t, 6412.45, price)
}

func TestParseStooqHTML_NoPriceSpan(t *testing.T) {
	html := `<html><body><span id="aq_other.us_c2">50.31</span></body></html>`

	_, err := parseStooqHTML(html, "tqqq.us")
	require.Error(t, err)
}
