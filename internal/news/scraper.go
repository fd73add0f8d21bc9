// Package news collects recent headlines for a symbol to give the report
// some market context around the earnings call. Failures never fail the
// report; the section just comes back empty.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"earnings-analyst/internal/interfaces"
	"earnings-analyst/internal/logger"
	"earnings-analyst/internal/types"
)

// Scraper scrapes Google News search results for a symbol
type Scraper struct {
	timeout time.Duration
}

var _ interfaces.HeadlineSource = (*Scraper)(nil)

// NewScraper creates a headline scraper with the given request timeout
func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scraper{timeout: timeout}
}

// Headlines fetches up to limit recent headlines mentioning the symbol
func (s *Scraper) Headlines(ctx context.Context, symbol string, limit int) ([]types.Headline, error) {
	headlines := []types.Headline{}

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com", "www.google.com"),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= limit {
			return
		}

		title := cleanTitle(e.DOM)
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		// Google News serves relative redirect URLs
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}

		headlines = append(headlines, types.Headline{
			Title:  title,
			URL:    link,
			Source: "GoogleNews",
		})
	})

	searchQuery := url.QueryEscape(symbol + " stock earnings")
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Info(ctx, "Headline scraping completed", "symbol", symbol, "headlines", len(headlines))
	return headlines, nil
}

// cleanTitle pulls the headline text out of the article node, preferring
// the heading element and stripping source/time chrome.
func cleanTitle(sel *goquery.Selection) string {
	title := strings.TrimSpace(sel.Find("h3, h4").First().Text())
	if title == "" {
		title = strings.TrimSpace(sel.Find("a").First().Text())
	}
	return strings.Join(strings.Fields(title), " ")
}
