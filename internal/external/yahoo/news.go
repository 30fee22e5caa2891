package yahoo

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/redis"
)

const maxHeadlines = 20

// rssFeed is the Yahoo Finance headline RSS shape.
type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Source  string `xml:"source"`
	PubDate string `xml:"pubDate"`
}

// Headlines fetches recent headlines for a ticker and labels each one with
// the lexicon classifier. Cached for an hour.
func (c *Client) Headlines(ctx context.Context, ticker string) ([]contracts.HeadlineScore, error) {
	ticker = strings.ToUpper(ticker)

	var headlines []contracts.HeadlineScore
	err := c.cache.GetOrSet(ctx, redis.NewsKey(ticker), &headlines, redis.TTLNews, func() (interface{}, error) {
		return c.fetchHeadlines(ctx, ticker)
	})
	if err != nil {
		return nil, err
	}
	return headlines, nil
}

func (c *Client) fetchHeadlines(ctx context.Context, ticker string) ([]contracts.HeadlineScore, error) {
	url := fmt.Sprintf("%s/rss/2.0/headline?s=%s&region=US&lang=en-US", c.cfg.NewsBaseURL, ticker)

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch headlines %s: status %d", ticker, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read headlines %s: %w", ticker, err)
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse headlines %s: %w", ticker, err)
	}

	headlines := make([]contracts.HeadlineScore, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		if len(headlines) >= maxHeadlines {
			break
		}
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		publishedAt, err := parsePubDate(item.PubDate)
		if err != nil {
			continue
		}

		label, confidence := classifyHeadline(title)
		headlines = append(headlines, contracts.HeadlineScore{
			Title:       title,
			Source:      item.Source,
			PublishedAt: publishedAt,
			Label:       label,
			Confidence:  confidence,
		})
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  len(headlines),
	}).Debug("Fetched headlines")

	return headlines, nil
}

func parsePubDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable pubDate %q", s)
}
