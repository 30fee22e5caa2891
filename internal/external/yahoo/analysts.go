package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/redis"
)

// Recommendations scrapes recent analyst actions from the quote analysis
// page. Cached for an hour alongside the headlines.
func (c *Client) Recommendations(ctx context.Context, ticker string) ([]contracts.AnalystRec, error) {
	ticker = strings.ToUpper(ticker)

	var recs []contracts.AnalystRec
	err := c.cache.GetOrSet(ctx, redis.RecommendationsKey(ticker), &recs, redis.TTLNews, func() (interface{}, error) {
		return c.fetchRecommendations(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) fetchRecommendations(ctx context.Context, ticker string) ([]contracts.AnalystRec, error) {
	url := fmt.Sprintf("%s/quote/%s/analysis", c.cfg.PageBaseURL, ticker)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch analysis page %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch analysis page %s: status %d", ticker, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse analysis page %s: %w", ticker, err)
	}

	recs := parseUpgradeTable(doc)

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(recs),
	}).Debug("Fetched analyst recommendations")

	return recs, nil
}

// parseUpgradeTable walks the upgrades & downgrades table. Row layout is
// firm | action text | date; rows that do not map onto the five-step action
// scale are dropped.
func parseUpgradeTable(doc *goquery.Document) []contracts.AnalystRec {
	var recs []contracts.AnalystRec

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		firm := strings.TrimSpace(cells.Eq(0).Text())
		actionText := strings.TrimSpace(cells.Eq(1).Text())
		dateText := strings.TrimSpace(cells.Eq(cells.Length() - 1).Text())

		action, ok := mapAction(actionText)
		if !ok {
			return
		}
		date, err := parseActionDate(dateText)
		if err != nil {
			return
		}

		recs = append(recs, contracts.AnalystRec{
			Firm:   firm,
			Date:   date,
			Action: action,
		})
	})

	return recs
}

// mapAction folds Yahoo's free-text rating vocabulary onto the five-step
// scale.
func mapAction(text string) (contracts.AnalystAction, bool) {
	switch strings.ToLower(text) {
	case "strong buy", "conviction buy":
		return contracts.ActionStrongBuy, true
	case "buy", "outperform", "overweight", "accumulate", "positive":
		return contracts.ActionBuy, true
	case "hold", "neutral", "market perform", "equal-weight", "sector perform":
		return contracts.ActionHold, true
	case "sell", "underperform", "underweight", "reduce", "negative":
		return contracts.ActionSell, true
	case "strong sell":
		return contracts.ActionStrongSell, true
	}
	return "", false
}

func parseActionDate(s string) (time.Time, error) {
	for _, layout := range []string{"1/2/2006", "Jan 2, 2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
