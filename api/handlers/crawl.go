package handlers

import (
	"context"
	"net/http"

	crawlservice "lolstats/api/services/crawl"

	"github.com/gin-gonic/gin"
)

// Crawler runs a participant crawl.
type Crawler interface {
	Crawl(ctx context.Context) (*crawlservice.Report, error)
}

// CrawlHandler exposes the participant crawl.
type CrawlHandler struct {
	crawler Crawler
}

type CrawlHandlerDependencies struct {
	Crawler Crawler
}

// NewCrawlHandler creates a new instance of the crawl handler.
func NewCrawlHandler(deps *CrawlHandlerDependencies) *CrawlHandler {
	return &CrawlHandler{crawler: deps.Crawler}
}

// Scrape handles GET /scrape.
func (h *CrawlHandler) Scrape(c *gin.Context) {
	report, err := h.crawler.Crawl(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
