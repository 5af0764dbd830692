package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"lolstats/api/repositories"
	crawlservice "lolstats/api/services/crawl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCrawler struct {
	mock.Mock
}

func (m *mockCrawler) Crawl(ctx context.Context) (*crawlservice.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).(*crawlservice.Report), args.Error(1)
}

func TestScrape(t *testing.T) {
	crawler := new(mockCrawler)
	h := NewCrawlHandler(&CrawlHandlerDependencies{Crawler: crawler})
	engine := newTestEngine(route{http.MethodGet, "/scrape", h.Scrape})

	crawler.On("Crawl", mock.Anything).Return(&crawlservice.Report{Found: 3, Synced: 2, Failed: 1}, nil).Once()
	crawler.On("Crawl", mock.Anything).
		Return((*crawlservice.Report)(nil), errors.Join(repositories.ErrStorageUnavailable)).Once()

	w := perform(engine, http.MethodGet, "/scrape", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"found": 3, "queued": 0, "synced": 2, "skipped": 0, "failed": 1}`, w.Body.String())

	w = perform(engine, http.MethodGet, "/scrape", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	crawler.AssertExpectations(t)
}
