package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/monolog-ai/monolog/application/service"
	"github.com/monolog-ai/monolog/infrastructure/api/middleware"
	"github.com/monolog-ai/monolog/infrastructure/api/v1/dto"
)

// SearchRouter handles the product search endpoint.
type SearchRouter struct {
	search *service.SearchService
	logger *slog.Logger
}

// NewSearchRouter creates a SearchRouter.
func NewSearchRouter(search *service.SearchService, logger *slog.Logger) *SearchRouter {
	return &SearchRouter{search: search, logger: logger}
}

// Routes returns the chi router for search endpoints.
func (r *SearchRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Search)

	return router
}

// Search handles POST /api/v1/search.
func (r *SearchRouter) Search(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.SearchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}

	matches, err := r.search.Search(ctx, buildSearchRequest(body))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.SearchResult, len(matches))
	for i, m := range matches {
		data[i] = dto.SearchResult{
			Product: productToDTO(m.Product),
			Score:   m.Score,
		}
	}
	middleware.WriteJSON(w, http.StatusOK, dto.SearchResponse{Data: data})
}

func buildSearchRequest(body dto.SearchRequest) service.SearchRequest {
	req := service.SearchRequest{
		Name:    body.Name,
		Brand:   body.Brand,
		Keyword: body.Keyword,
		Price:   parsePrice(body.Price),
	}
	if body.Limit != nil && *body.Limit > 0 {
		req.Limit = *body.Limit
	}
	return req
}

// parsePrice extracts the digits from a free-form price string, so
// "1,280円" and "1280" both parse. Returns nil when no digits remain.
func parsePrice(raw string) *int64 {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
