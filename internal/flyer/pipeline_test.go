package flyer

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestPipeline(renderer *fakeRenderer, fetch FetchFunc) *FlyerParsingPipeline {
	discoverer := NewCategoryShopDiscoverer("https://example.com", fetch, nil, 0)
	collector := NewShopFlyerCollector(renderer, "https://example.com", time.Second)
	collector.now = func() time.Time { return testNow }
	return NewFlyerParsingPipeline(discoverer, collector, renderer)
}

func TestPipelineRun(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.pages["https://example.com/lidl/"] = lidlShopHTML
	renderer.timeoutURLs["https://example.com/kaufland/"] = true

	p := newTestPipeline(renderer, staticFetch(categoryPageHTML))

	records := p.Run("/hypermarkte/")

	// Lidl contributes two records, Kaufland times out and contributes
	// nothing without failing the run
	assert.Len(t, records, 2)
	assert.Equal(t, "Lidl", records[0].ShopName)
	assert.Equal(t, "Lidl", records[1].ShopName)

	// Shops were visited sequentially in discovery order
	assert.Equal(t, []string{
		"https://example.com/lidl/",
		"https://example.com/kaufland/",
	}, renderer.navigated)

	// The renderer is released exactly once
	assert.Equal(t, 1, renderer.released)
}

func TestPipelineRunDiscoveryFailure(t *testing.T) {
	renderer := newFakeRenderer()
	failing := func(url string) (io.Reader, error) {
		return nil, errors.New("connection refused")
	}

	p := newTestPipeline(renderer, failing)

	records := p.Run("/hypermarkte/")
	assert.Empty(t, records)

	// No shop was visited, but the renderer was still released
	assert.Empty(t, renderer.navigated)
	assert.Equal(t, 1, renderer.released)
}

func TestPipelineRunBadPageStructure(t *testing.T) {
	renderer := newFakeRenderer()
	p := newTestPipeline(renderer, staticFetch("<html><body>umgebaut</body></html>"))

	records := p.Run("/hypermarkte/")
	assert.Empty(t, records)
	assert.Equal(t, 1, renderer.released)
}

func TestPipelineRunEmptyCategory(t *testing.T) {
	// A category whose dropdown lists no shops is a normal empty run
	html := `<html><body>
		<a href="/hypermarkte/">Hypermärkte</a>
		<ul></ul>
	</body></html>`

	renderer := newFakeRenderer()
	p := newTestPipeline(renderer, func(url string) (io.Reader, error) {
		return strings.NewReader(html), nil
	})

	records := p.Run("/hypermarkte/")
	assert.Empty(t, records)
	assert.Equal(t, 1, renderer.released)
}
