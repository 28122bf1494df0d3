package flyer

import (
	"sjsage522/flyerworker/logger"
	"sjsage522/flyerworker/services/render"
)

// FlyerParsingPipeline orchestrates one parsing run: discover the
// category's shops, collect flyers per shop sequentially in discovery
// order, aggregate the records. The pipeline owns the renderer and
// releases it exactly once on every exit path.
type FlyerParsingPipeline struct {
	discoverer *CategoryShopDiscoverer
	collector  *ShopFlyerCollector
	renderer   render.Renderer
	log        *logger.Logger
}

// NewFlyerParsingPipeline creates a pipeline over the given components
func NewFlyerParsingPipeline(discoverer *CategoryShopDiscoverer, collector *ShopFlyerCollector, renderer render.Renderer) *FlyerParsingPipeline {
	return &FlyerParsingPipeline{
		discoverer: discoverer,
		collector:  collector,
		renderer:   renderer,
		log:        logger.ForPipeline(),
	}
}

// Run parses all flyers of one category. A discovery or transport
// failure aborts the run and yields an empty collection; per-shop and
// per-flyer failures are recovered inside the collector. The total
// record count is logged on every exit path, after the renderer is
// released.
func (p *FlyerParsingPipeline) Run(category string) []FlyerRecord {
	var records []FlyerRecord

	defer func() {
		if err := p.renderer.Release(); err != nil {
			p.log.Error().Err(err).Msg("Failed to release renderer")
		}
		p.log.Info().Int("count", len(records)).Msg("Parsing completed")
	}()

	shops, err := p.discoverer.Discover(category)
	if err != nil {
		p.log.Error().Err(err).Str("category", category).Msg("Shop discovery failed")
		return nil
	}

	p.log.Info().Str("category", category).Int("shops", len(shops)).Msg("Shops discovered")

	for _, shop := range shops {
		records = append(records, p.collector.Collect(shop)...)
	}

	return records
}
