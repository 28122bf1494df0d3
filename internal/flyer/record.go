package flyer

import (
	"strings"
	"time"

	"sjsage522/flyerworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// parsedTimeLayout is the second-precision local timestamp format of
// the parsed_time output field
const parsedTimeLayout = "2006-01-02 15:04:05"

// BuildRecord assembles a FlyerRecord from one rendered flyer element.
// The element is expected to carry an h2 title, an img with either an
// eager src or a lazy data-src, and a span with the validity range.
// Any missing piece or an unparseable range fails the one flyer only.
func BuildRecord(s *goquery.Selection, shopName string, now time.Time) (*FlyerRecord, error) {
	title := strings.TrimSpace(s.Find("h2").First().Text())
	if title == "" {
		return nil, errors.NewValidation(shopName, "flyer title not found")
	}

	img := s.Find("img").First()
	if img.Length() == 0 {
		return nil, errors.NewValidation(shopName, "flyer image not found")
	}
	src, _ := img.Attr("src")
	src = strings.TrimSpace(src)
	if src == "" {
		// Lazy-loaded images carry the URL in data-src until scrolled
		// into view
		src, _ = img.Attr("data-src")
		src = strings.TrimSpace(src)
	}
	if src == "" {
		return nil, errors.NewValidation(shopName, "flyer image source not found")
	}

	rangeText := strings.TrimSpace(s.Find("span").First().Text())
	if rangeText == "" {
		return nil, errors.NewValidation(shopName, "flyer validity range not found")
	}

	validFrom, validTo, err := ParseValidityRange(rangeText)
	if err != nil {
		return nil, errors.NewParse(shopName, "invalid validity range", err)
	}

	return &FlyerRecord{
		Title:      title,
		Thumbnail:  src,
		ShopName:   shopName,
		ValidFrom:  validFrom,
		ValidTo:    validTo,
		ParsedTime: now.Format(parsedTimeLayout),
	}, nil
}
