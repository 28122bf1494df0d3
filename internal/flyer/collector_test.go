package flyer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const lidlShopHTML = `<html><body>
	<div id="shop-lidl-brochures-prepend">
		<figure>
			<h2>Wochenprospekt</h2>
			<img src="https://example.com/1.jpg"/>
			<span>01.06.2024 - 15.06.2024</span>
		</figure>
		<figure>
			<h2>Sonderangebote</h2>
			<img data-src="https://example.com/2.jpg"/>
			<span>von 10.06.2024</span>
		</figure>
	</div>
</body></html>`

func TestCollect(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.pages["https://example.com/lidl/"] = lidlShopHTML

	c := NewShopFlyerCollector(renderer, "https://example.com", 10*time.Second)
	c.now = func() time.Time { return testNow }

	records := c.Collect(Shop{Path: "/lidl/", Name: "Lidl"})
	assert.Len(t, records, 2)

	// DOM order is preserved
	assert.Equal(t, "Wochenprospekt", records[0].Title)
	assert.Equal(t, "https://example.com/1.jpg", records[0].Thumbnail)
	assert.Equal(t, "2024-06-01", records[0].ValidFrom)
	assert.Equal(t, "2024-06-15", records[0].ValidTo)

	assert.Equal(t, "Sonderangebote", records[1].Title)
	assert.Equal(t, "https://example.com/2.jpg", records[1].Thumbnail)
	assert.Equal(t, "2024-06-10", records[1].ValidFrom)
	assert.Equal(t, "", records[1].ValidTo)

	for _, r := range records {
		assert.Equal(t, "Lidl", r.ShopName)
		assert.Equal(t, "2024-06-01 10:30:00", r.ParsedTime)
	}

	assert.Equal(t, []string{"https://example.com/lidl/"}, renderer.navigated)
}

func TestCollectTimeout(t *testing.T) {
	renderer := newFakeRenderer()
	renderer.timeoutURLs["https://example.com/kaufland/"] = true

	c := NewShopFlyerCollector(renderer, "https://example.com", 10*time.Second)

	records := c.Collect(Shop{Path: "/kaufland/", Name: "Kaufland"})
	assert.Empty(t, records)
}

func TestCollectRenderFailure(t *testing.T) {
	// No page registered: the fake renderer fails with a non-timeout error
	renderer := newFakeRenderer()

	c := NewShopFlyerCollector(renderer, "https://example.com", 10*time.Second)

	records := c.Collect(Shop{Path: "/lidl/", Name: "Lidl"})
	assert.Empty(t, records)
}

func TestCollectDropsBrokenFlyer(t *testing.T) {
	// The middle flyer has no image; its siblings must survive
	renderer := newFakeRenderer()
	renderer.pages["https://example.com/lidl/"] = `<html><body>
		<div id="shop-lidl-brochures-prepend">
			<figure>
				<h2>Erster</h2>
				<img src="https://example.com/1.jpg"/>
				<span>01.06.2024 - 15.06.2024</span>
			</figure>
			<figure>
				<h2>Kaputt</h2>
				<span>01.06.2024 - 15.06.2024</span>
			</figure>
			<figure>
				<h2>Dritter</h2>
				<img src="https://example.com/3.jpg"/>
				<span>von 01.06.2024</span>
			</figure>
		</div>
	</body></html>`

	c := NewShopFlyerCollector(renderer, "https://example.com", 10*time.Second)

	records := c.Collect(Shop{Path: "/lidl/", Name: "Lidl"})
	assert.Len(t, records, 2)
	assert.Equal(t, "Erster", records[0].Title)
	assert.Equal(t, "Dritter", records[1].Title)
}
