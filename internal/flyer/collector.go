package flyer

import (
	"time"

	"sjsage522/flyerworker/logger"
	"sjsage522/flyerworker/pkg/errors"
	"sjsage522/flyerworker/services/render"

	"github.com/PuerkitoBio/goquery"
)

// FlyerSelector matches the flyer containers rendered into a shop
// page: elements under the shop brochure list, identified by the
// "shop-*-brochures-prepend" id pattern.
const FlyerSelector = "div[id^='shop-'][id$='-brochures-prepend'] figure"

// ShopFlyerCollector renders one shop page at a time and parses its
// flyers. A shop that fails to render or times out contributes nothing
// and never aborts the run.
type ShopFlyerCollector struct {
	renderer    render.Renderer
	baseURL     string
	waitTimeout time.Duration
	now         func() time.Time
	log         *logger.Logger
}

// NewShopFlyerCollector creates a collector over the shared renderer
func NewShopFlyerCollector(renderer render.Renderer, baseURL string, waitTimeout time.Duration) *ShopFlyerCollector {
	return &ShopFlyerCollector{
		renderer:    renderer,
		baseURL:     baseURL,
		waitTimeout: waitTimeout,
		now:         time.Now,
		log:         logger.ForCollector(),
	}
}

// Collect renders the shop's page, waits for its flyer elements and
// builds a record per element, preserving DOM order. A wait timeout is
// a normal "shop currently has no flyers" outcome.
func (c *ShopFlyerCollector) Collect(shop Shop) []FlyerRecord {
	c.renderer.Navigate(c.baseURL + shop.Path)

	elements, err := c.renderer.WaitForElements(FlyerSelector, c.waitTimeout)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeTimeout) {
			c.log.Warn().Str("shop", shop.Name).Msg("Flyers not found for shop")
		} else {
			c.log.Error().Err(err).Str("shop", shop.Name).Msg("Failed to render shop page")
		}
		return nil
	}

	var records []FlyerRecord
	elements.Each(func(_ int, s *goquery.Selection) {
		record, err := BuildRecord(s, shop.Name, c.now())
		if err != nil {
			c.log.Error().Err(err).Str("shop", shop.Name).Msg("Failed to parse flyer")
			return
		}
		records = append(records, *record)
	})

	c.log.Info().
		Str("shop", shop.Name).
		Int("count", len(records)).
		Msg("Shop flyers parsed")

	return records
}
