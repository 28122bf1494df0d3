package render

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Renderer represents the dynamic-page render capability. Shop pages
// load their flyer list with JavaScript, so static fetching never sees
// the elements; a renderer executes the page and exposes the resulting
// DOM through goquery selections.
//
// The renderer is a single logical browser session: one navigation may
// be in flight at a time, and the pipeline owns its lifecycle.
type Renderer interface {
	// Navigate points the session at a URL. The page is not loaded
	// until WaitForElements runs the render.
	Navigate(url string)

	// WaitForElements renders the current page and waits up to timeout
	// for elements matching the CSS selector to appear. It returns the
	// matched elements in DOM order, or a timeout-type error when the
	// wait expires without a match.
	WaitForElements(selector string, timeout time.Duration) (*goquery.Selection, error)

	// Release tears the session down. Safe to call more than once.
	Release() error
}
