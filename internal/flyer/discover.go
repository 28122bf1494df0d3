package flyer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"sjsage522/flyerworker/logger"
	"sjsage522/flyerworker/pkg/errors"
	"sjsage522/flyerworker/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// FetchFunc fetches a URL statically and returns its UTF-8 body
type FetchFunc func(url string) (io.Reader, error)

// CategoryShopDiscoverer extracts the shops listed in a category's
// dropdown menu from the statically-served category page
type CategoryShopDiscoverer struct {
	baseURL  string
	fetch    FetchFunc
	cacheSvc cache.CacheService
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewCategoryShopDiscoverer creates a discoverer for the given site.
// cacheSvc may be nil to disable page caching.
func NewCategoryShopDiscoverer(baseURL string, fetch FetchFunc, cacheSvc cache.CacheService, cacheTTL time.Duration) *CategoryShopDiscoverer {
	return &CategoryShopDiscoverer{
		baseURL:  baseURL,
		fetch:    fetch,
		cacheSvc: cacheSvc,
		cacheTTL: cacheTTL,
		log:      logger.ForDiscoverer(),
	}
}

// Discover fetches the category page and returns the shops of that
// category's dropdown, in page order. The dropdown is the sibling
// container immediately following the anchor whose href equals the
// category path; a fetch failure or a page without that structure is
// fatal to the whole run.
func (d *CategoryShopDiscoverer) Discover(category string) ([]Shop, error) {
	pageURL := d.baseURL + category

	body, err := d.fetchPage(pageURL)
	if err != nil {
		return nil, errors.NewTransport("", "failed to fetch category page "+pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewDiscovery("", "failed to parse category page", err)
	}

	anchor := doc.Find(fmt.Sprintf("a[href=%q]", category)).First()
	if anchor.Length() == 0 {
		return nil, errors.NewDiscovery("", "category anchor "+category+" not found", nil)
	}

	dropdown := anchor.Next()
	if dropdown.Length() == 0 {
		return nil, errors.NewDiscovery("", "category dropdown for "+category+" not found", nil)
	}

	var shops []Shop
	dropdown.Find("li > a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		shops = append(shops, Shop{
			Path: href,
			Name: strings.TrimSpace(a.Text()),
		})
	})

	d.log.Debug().Str("category", category).Int("shops", len(shops)).Msg("Category page parsed")
	return shops, nil
}

// fetchPage fetches a URL through the page cache when one is configured
func (d *CategoryShopDiscoverer) fetchPage(url string) (io.Reader, error) {
	cacheKey := "page:" + url

	if d.cacheSvc != nil {
		if cached, err := d.cacheSvc.Get(cacheKey); err == nil {
			d.log.Debug().Str("url", url).Msg("Page cache hit")
			return bytes.NewReader(cached), nil
		}
	}

	body, err := d.fetch(url)
	if err != nil {
		return nil, err
	}
	if d.cacheSvc == nil {
		return body, nil
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if err := d.cacheSvc.Set(cacheKey, data, d.cacheTTL); err != nil {
		d.log.Debug().Err(err).Str("url", url).Msg("Page cache set failed")
	}
	return bytes.NewReader(data), nil
}
