package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartResponse(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "TQQQ", "regularMarketPrice": 50.31, "regularMarketTime": 1755612000},
				"timestamp": [1755608400, 1755608460, 1755608520],
				"indicators": {"quote": [{"close": [50.10, 50.25, 50.31]}]}
			}],
			"error": null
		}
	}`)

	price, ts, err := parseChartResponse(body)
	require.NoError(t, err)
	assert.Equal(t, 50.31, price)
	assert.Equal(t, time.Unix(1755608520, 0).UTC(), ts)
}

func TestParseChartResponse_SkipsNullCloses(t *testing.T) {
	// 장 마감 직후에는 마지막 분봉이 null로 내려오는 경우가 있다
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "TQQQ", "regularMarketPrice": 50.31},
				"timestamp": [1755608400, 1755608460, 1755608520],
				"indicators": {"quote": [{"close": [50.10, 50.25, null]}]}
			}],
			"error": null
		}
	}`)

	price, ts, err := parseChartResponse(body)
	require.NoError(t, err)
	assert.Equal(t, 50.25, price)
	assert.Equal(t, time.Unix(1755608460, 0).UTC(), ts)
}

func TestParseChartResponse_MetaFallback(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [{
				"meta": {"symbol": "TQQQ", "regularMarketPrice": 49.87, "regularMarketTime": 1755612000},
				"timestamp": [],
				"indicators": {"quote": [{"close": []}]}
			}],
			"error": null
		}
	}`)

	price, ts, err := parseChartResponse(body)
	require.NoError(t, err)
	assert.Equal(t, 49.87, price)
	assert.Equal(t, time.Unix(1755612000, 0).UTC(), ts)
}

func TestParseChartResponse_APIError(t *testing.T) {
	body := []byte(`{
		"chart": {
			"result": [],
			"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
		}
	}`)

	_, _, err := parseChartResponse(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestParseChartResponse_Garbage(t *testing.T) {
	_, _, err := parseChartResponse([]byte("<html>blocked</html>"))
	require.Error(t, err)
}
