// Package news scrapes recent forex headlines used as optional prompt
// context. Everything here is best-effort: a failed source is skipped,
// and the caller treats an empty result as "no headlines".
package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"fx-analysis-bot/internal/interfaces"
	"fx-analysis-bot/internal/logger"
)

var _ interfaces.HeadlineSource = (*Scraper)(nil)

// Source defines one headline source and the selectors to read it.
type Source struct {
	Name       string
	BaseURL    string
	SearchPath string // {symbol} is replaced with the query term
	Container  string // CSS selector for one article block
	Title      string // CSS selector for the headline inside a block
}

// Scraper collects headlines from a fixed list of sources.
type Scraper struct {
	sources []Source
	timeout time.Duration
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: defaultSources(),
		timeout: timeout,
	}
}

func defaultSources() []Source {
	return []Source{
		{
			Name:       "FXStreet",
			BaseURL:    "https://www.fxstreet.com",
			SearchPath: "/news?q={symbol}",
			Container:  "article",
			Title:      "h4 a, h3 a",
		},
		{
			Name:       "Investing",
			BaseURL:    "https://www.investing.com",
			SearchPath: "/search/?q={symbol}&tab=news",
			Container:  "div.articleItem",
			Title:      "a.title",
		},
	}
}

// Headlines returns up to max recent headlines mentioning the symbol.
func (s *Scraper) Headlines(ctx context.Context, symbol string, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	seen := map[string]bool{}
	headlines := []string{}

	for _, src := range s.sources {
		if len(headlines) >= max {
			break
		}
		found, err := s.scrapeSource(ctx, src, symbol, max-len(headlines))
		if err != nil {
			logger.Warn(ctx, "Headline source failed", "source", src.Name, "symbol", symbol, "error", err)
			continue
		}
		for _, h := range found {
			if !seen[h] {
				seen[h] = true
				headlines = append(headlines, h)
			}
		}
	}

	logger.Debug(ctx, "Headline scraping done", "symbol", symbol, "count", len(headlines))
	return headlines, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, symbol string, max int) ([]string, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.BaseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	headlines := []string{}
	c.OnHTML(src.Container, func(e *colly.HTMLElement) {
		if len(headlines) >= max {
			return
		}
		e.DOM.Find(src.Title).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			title := strings.TrimSpace(sel.Text())
			if title != "" {
				headlines = append(headlines, title)
				return false
			}
			return true
		})
	})

	target := src.BaseURL + strings.ReplaceAll(src.SearchPath, "{symbol}", url.QueryEscape(symbol))
	if err := c.Visit(target); err != nil {
		return nil, err
	}
	c.Wait()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return headlines, nil
}

// hostOf returns the bare hostname; colly matches allowed domains
// without the port.
func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return baseURL
	}
	return u.Hostname()
}
