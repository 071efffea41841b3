package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/website-cloner/internal/clone"
	"github.com/jonathan/website-cloner/internal/fetch"
)

// WebscrapeRequest represents the request body for /webscrape.
type WebscrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// CloneRequest represents the request body for /clone-website.
type CloneRequest struct {
	URLID string `json:"url_id" validate:"required"`
}

// CloneResponse represents the response for /clone-website.
type CloneResponse struct {
	Success    bool   `json:"success"`
	ClonedHTML string `json:"cloned_html"`
	Message    string `json:"message"`
}

// handleWebscrape scrapes a URL and returns the scrape summary.
func (s *Server) handleWebscrape(w http.ResponseWriter, r *http.Request) {
	var req WebscrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "A valid url is required")
		return
	}

	summary, err := s.scraper.Scrape(r.Context(), req.URL)
	if err != nil {
		s.scrapeErrorResponse(w, req.URL, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, summary)
}

// scrapeErrorResponse maps scrape pipeline errors onto HTTP statuses. An
// upstream non-2xx response is relayed with its original status code;
// everything else is an internal error.
func (s *Server) scrapeErrorResponse(w http.ResponseWriter, url string, err error) {
	var statusErr *fetch.StatusError
	if errors.As(err, &statusErr) {
		s.errorResponse(w, statusErr.StatusCode, "HTTP error occurred: "+statusErr.Body)
		return
	}

	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch the website: "+fetchErr.Error())
		return
	}

	s.logger.Error("scrape failed", zap.String("url", url), zap.Error(err))
	s.errorResponse(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
}

// handleScrapedData returns every stored scrape record keyed by normalized
// id.
func (s *Server) handleScrapedData(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("listing scrape records", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load scraped data: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, records)
}

// handleCloneWebsite generates a self-contained HTML clone from a stored
// scrape record.
func (s *Server) handleCloneWebsite(w http.ResponseWriter, r *http.Request) {
	var req CloneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "url_id is required")
		return
	}

	prompt, err := s.builder.Build(r.Context(), req.URLID)
	if err != nil {
		var notFound *clone.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, "Scraped data not found for this URL ID")
			return
		}
		var insufficient *clone.InsufficientDataError
		if errors.As(err, &insufficient) {
			s.errorResponse(w, http.StatusBadRequest, "No HTML content or screenshot available for cloning")
			return
		}
		s.logger.Error("building clone prompt", zap.String("url_id", req.URLID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "An unexpected error occurred: "+err.Error())
		return
	}

	raw, err := s.llmClient.Complete(r.Context(), prompt)
	if err != nil {
		s.logger.Error("model call failed", zap.String("url_id", req.URLID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to clone website: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, CloneResponse{
		Success:    true,
		ClonedHTML: clone.Sanitize(raw),
		Message:    "Website cloned successfully",
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}
