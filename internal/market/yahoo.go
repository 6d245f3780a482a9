package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"GreenVest/internal/model"
)

// YahooProvider implements Provider using the Yahoo Finance public API:
// the v8 chart endpoint for prices and history, and the v10 quoteSummary
// endpoint (esgScores module) for sustainability scores.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
}

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		BaseURL: defaultYahooBaseURL,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure of the chart endpoint.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []interface{} `json:"open"`
					High  []interface{} `json:"high"`
					Low   []interface{} `json:"low"`
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooESG is the response structure of the quoteSummary esgScores module.
// Yahoo wraps every number in a {raw, fmt} pair.
type yahooESG struct {
	QuoteSummary struct {
		Result []struct {
			ESGScores struct {
				TotalESG         rawValue `json:"totalEsg"`
				EnvironmentScore rawValue `json:"environmentScore"`
				SocialScore      rawValue `json:"socialScore"`
				GovernanceScore  rawValue `json:"governanceScore"`
			} `json:"esgScores"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw *float64 `json:"raw"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// classify maps transport-level failures onto the provider failure kinds.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrProvider, err)
}

func (p *YahooProvider) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: status 404", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d, body: %s", ErrProvider, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrProvider, err)
	}
	return nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol string, params string) (*yahooChart, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.BaseURL, url.PathEscape(symbol), params)
	var chart yahooChart
	if err := p.getJSON(ctx, endpoint, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, chart.Chart.Error.Description)
		}
		return nil, fmt.Errorf("%w: %s", ErrProvider, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: empty chart result", ErrProvider)
	}
	return &chart, nil
}

// FetchQuote returns the latest close as the current price, plus ESG
// sub-scores when Yahoo covers the symbol. An ESG lookup failure is not a
// quote failure: the quote is returned with nil scores.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (*model.TickerQuote, error) {
	chart, err := p.fetchChart(ctx, symbol, "interval=1d&range=1d")
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no price data for %s", ErrProvider, symbol)
	}
	closes := result.Indicators.Quote[0].Close
	var last float64
	for i := len(closes) - 1; i >= 0; i-- {
		if v := toFloat(closes[i]); v != 0 {
			last = v
			break
		}
	}
	if last == 0 {
		return nil, fmt.Errorf("%w: no usable close for %s", ErrProvider, symbol)
	}

	quote := &model.TickerQuote{
		Symbol: symbol,
		Price:  decimal.NewFromFloat(last),
		ESG:    p.fetchESG(ctx, symbol),
	}
	return quote, nil
}

// fetchESG returns nil when Yahoo has no sustainability data for the symbol.
func (p *YahooProvider) fetchESG(ctx context.Context, symbol string) *model.ESGScores {
	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=esgScores",
		p.BaseURL, url.PathEscape(symbol))
	var esg yahooESG
	if err := p.getJSON(ctx, endpoint, &esg); err != nil {
		return nil
	}
	if esg.QuoteSummary.Error != nil || len(esg.QuoteSummary.Result) == 0 {
		return nil
	}
	s := esg.QuoteSummary.Result[0].ESGScores
	if s.TotalESG.Raw == nil {
		return nil
	}
	scores := &model.ESGScores{Total: decimal.NewFromFloat(*s.TotalESG.Raw)}
	if s.EnvironmentScore.Raw != nil {
		scores.Environment = decimal.NewFromFloat(*s.EnvironmentScore.Raw)
	}
	if s.SocialScore.Raw != nil {
		scores.Social = decimal.NewFromFloat(*s.SocialScore.Raw)
	}
	if s.GovernanceScore.Raw != nil {
		scores.Governance = decimal.NewFromFloat(*s.GovernanceScore.Raw)
	}
	return scores
}

// FetchDailyHistory returns daily bars between from and to, sorted by date.
func (p *YahooProvider) FetchDailyHistory(ctx context.Context, symbol string, from, to time.Time) ([]model.PricePoint, error) {
	params := fmt.Sprintf("interval=1d&period1=%d&period2=%d", from.Unix(), to.Unix())
	chart, err := p.fetchChart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no history for %s", ErrProvider, symbol)
	}
	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bars on market holidays
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Open:  o,
			High:  h,
			Low:   l,
			Close: c,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}
