package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartBody(closes ...float64) string {
	ts := make([]string, len(closes))
	cs := make([]string, len(closes))
	for i, c := range closes {
		ts[i] = fmt.Sprintf("%d", 1700000000+i*86400)
		cs[i] = fmt.Sprintf("%f", c)
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s]}]}}],"error":null}}`,
		strings.Join(ts, ","), strings.Join(cs, ","), strings.Join(cs, ","),
		strings.Join(cs, ","), strings.Join(cs, ","))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *YahooProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	p := NewYahooProvider("", 5*time.Second)
	p.BaseURL = srv.URL
	return p
}

func TestFetchQuote_PriceAndESG(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/v8/finance/chart/"):
			fmt.Fprint(w, chartBody(187.44))
		case strings.Contains(r.URL.Path, "/v10/finance/quoteSummary/"):
			fmt.Fprint(w, `{"quoteSummary":{"result":[{"esgScores":{
				"totalEsg":{"raw":16.8},"environmentScore":{"raw":0.5},
				"socialScore":{"raw":7.2},"governanceScore":{"raw":9.1}}}],"error":null}}`)
		default:
			http.NotFound(w, r)
		}
	})

	quote, err := p.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if quote.Price.StringFixed(2) != "187.44" {
		t.Errorf("expected price 187.44, got %s", quote.Price)
	}
	if quote.ESG == nil {
		t.Fatal("expected ESG scores")
	}
	if quote.ESG.Total.StringFixed(1) != "16.8" {
		t.Errorf("expected total ESG 16.8, got %s", quote.ESG.Total)
	}
}

func TestFetchQuote_NoESGCoverage(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/v8/finance/chart/") {
			fmt.Fprint(w, chartBody(42.0))
			return
		}
		// quoteSummary reports no esgScores module for this symbol
		fmt.Fprint(w, `{"quoteSummary":{"result":[],"error":{"code":"Not Found","description":"no fundamentals data"}}}`)
	})

	quote, err := p.FetchQuote(context.Background(), "OBSCURE")
	if err != nil {
		t.Fatal(err)
	}
	if quote.ESG != nil {
		t.Error("expected nil ESG when the provider has no coverage")
	}
}

func TestFetchQuote_NotFound(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	})

	_, err := p.FetchQuote(context.Background(), "NOPE")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFetchQuote_MalformedResponse(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>rate limited</html>`)
	})

	_, err := p.FetchQuote(context.Background(), "AAPL")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestFetchDailyHistory_SkipsNullBars(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// Middle bar is all nulls (market holiday).
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[1700000000,1700086400,1700172800],
			"indicators":{"quote":[{"open":[10,null,12],"high":[11,null,13],
			"low":[9,null,11],"close":[10.5,null,12.5]}]}}],"error":null}}`)
	})

	from := time.Unix(1700000000, 0)
	to := time.Unix(1700172800, 0)
	points, err := p.FetchDailyHistory(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 usable bars, got %d", len(points))
	}
	if !points[0].Date.Before(points[1].Date) {
		t.Error("bars should be sorted by date ascending")
	}
	if points[1].Close != 12.5 {
		t.Errorf("expected close 12.5, got %f", points[1].Close)
	}
}
