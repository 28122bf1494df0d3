package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sjsage522/flyerworker/logger"
	"sjsage522/flyerworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// waitFunction is the puppeteer snippet executed by the remote Chrome
// /function endpoint. It loads the page, waits for the selector and
// returns the rendered HTML, or a timeout flag when the wait expires.
const waitFunction = `module.exports = async ({ page, context }) => {
	await page.setViewport({ width: 1280, height: 800 });
	await page.setUserAgent('Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36');

	await page.goto(context.url, { waitUntil: 'domcontentloaded', timeout: context.timeoutMs });

	try {
		await page.waitForSelector(context.selector, { timeout: context.timeoutMs });
	} catch (e) {
		return { timeout: true };
	}

	return { content: await page.content() };
}`

// ChromeRenderer implements Renderer against a remote headless Chrome
// service (browserless) exposing the /function endpoint.
type ChromeRenderer struct {
	addr       string
	client     *http.Client
	log        *logger.Logger
	currentURL string
	released   bool
}

// NewChromeRenderer creates a renderer talking to the Chrome service at addr
func NewChromeRenderer(addr string) *ChromeRenderer {
	r := &ChromeRenderer{
		addr:   addr,
		client: &http.Client{Timeout: 90 * time.Second},
		log:    logger.ForRenderer(),
	}

	// Check the connection on initialization
	checkClient := &http.Client{Timeout: 5 * time.Second}
	resp, err := checkClient.Get(addr)
	if err != nil {
		r.log.Warn().Err(err).Str("addr", addr).Msg("Chrome connection check failed")
	} else {
		resp.Body.Close()
		r.log.Debug().Str("addr", addr).Int("status", resp.StatusCode).Msg("Chrome connection successful")
	}

	return r
}

// Navigate points the session at a URL
func (r *ChromeRenderer) Navigate(url string) {
	r.currentURL = url
}

// WaitForElements renders the current page and waits for the selector
func (r *ChromeRenderer) WaitForElements(selector string, timeout time.Duration) (*goquery.Selection, error) {
	if r.currentURL == "" {
		return nil, fmt.Errorf("no URL navigated to")
	}

	payload := map[string]interface{}{
		"code": waitFunction,
		"context": map[string]interface{}{
			"url":       r.currentURL,
			"selector":  selector,
			"timeoutMs": timeout.Milliseconds(),
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal function payload: %w", err)
	}

	req, err := http.NewRequest("POST", r.addr+"/function", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create function request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Chrome function endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Chrome function endpoint returned non-OK status: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Chrome function response: %w", err)
	}

	content, timedOut, err := parseFunctionResponse(bodyBytes)
	if err != nil {
		return nil, err
	}
	if timedOut {
		return nil, errors.NewTimeout("", timeout)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML: %w", err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		// The wait reported success but the selector matches nothing in
		// the returned snapshot; treat it like an expired wait.
		return nil, errors.NewTimeout("", timeout)
	}

	return sel, nil
}

// parseFunctionResponse extracts the rendered HTML or the timeout flag
// from a /function response. The envelope differs between Chrome
// service versions: the function result may arrive at the top level or
// nested under a "data" field.
func parseFunctionResponse(body []byte) (content string, timedOut bool, err error) {
	if len(body) == 0 {
		return "", false, fmt.Errorf("empty response from Chrome function endpoint")
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		// Some endpoints return the HTML directly
		content := string(body)
		if strings.Contains(content, "<html") || strings.Contains(content, "<body") {
			return content, false, nil
		}
		return "", false, fmt.Errorf("unrecognized Chrome function response: %w", err)
	}

	if data, ok := result["data"].(map[string]interface{}); ok {
		result = data
	}

	if t, ok := result["timeout"].(bool); ok && t {
		return "", true, nil
	}
	if c, ok := result["content"].(string); ok && c != "" {
		return c, false, nil
	}

	return "", false, fmt.Errorf("no HTML content in Chrome function response (%d bytes)", len(body))
}

// Release tears the session down
func (r *ChromeRenderer) Release() error {
	if r.released {
		return nil
	}
	r.released = true
	r.client.CloseIdleConnections()
	r.log.Debug().Msg("Chrome session released")
	return nil
}
