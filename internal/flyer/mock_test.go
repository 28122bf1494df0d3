package flyer

import (
	"fmt"
	"strings"
	"time"

	"sjsage522/flyerworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// fakeRenderer implements render.Renderer over canned HTML pages
type fakeRenderer struct {
	pages       map[string]string
	timeoutURLs map[string]bool
	current     string
	navigated   []string
	released    int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		pages:       make(map[string]string),
		timeoutURLs: make(map[string]bool),
	}
}

func (f *fakeRenderer) Navigate(url string) {
	f.current = url
	f.navigated = append(f.navigated, url)
}

func (f *fakeRenderer) WaitForElements(selector string, timeout time.Duration) (*goquery.Selection, error) {
	if f.timeoutURLs[f.current] {
		return nil, errors.NewTimeout("", timeout)
	}
	html, ok := f.pages[f.current]
	if !ok {
		return nil, fmt.Errorf("no page rendered for %s", f.current)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, errors.NewTimeout("", timeout)
	}
	return sel, nil
}

func (f *fakeRenderer) Release() error {
	f.released++
	return nil
}

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}
