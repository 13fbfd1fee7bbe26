// Package service provides application layer services that orchestrate
// domain operations.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/monolog-ai/monolog/domain/brand"
	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/internal/config"
	"github.com/monolog-ai/monolog/internal/log"
)

// Score bonuses applied while re-ranking candidates.
const (
	brandBonus      = 0.15
	priceNearBonus  = 0.10
	priceCloseBonus = 0.05
	keywordBonus    = 0.05

	priceNearDiff  = 50
	priceCloseDiff = 200
)

// SearchRequest carries the caller's hints about the product they are
// looking for. All fields are optional. BaseScores lets an upstream
// stage seed per-product scores that the bonuses are added on top of;
// products without an entry start from zero.
type SearchRequest struct {
	Name       string
	Brand      string
	Keyword    string
	Price      *int64
	Limit      int
	BaseScores map[int64]float64
}

// Match is one scored search result.
type Match struct {
	Product catalog.Product
	Score   float64
}

// SearchOption configures a SearchService.
type SearchOption func(*searchConfig)

type searchConfig struct {
	limit int
}

// WithDefaultLimit overrides the result cap used when a request does not
// set one.
func WithDefaultLimit(limit int) SearchOption {
	return func(c *searchConfig) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// SearchService ranks catalog products against caller hints.
type SearchService struct {
	store  catalog.Store
	brands brand.Mapping
	limit  int
	logger *log.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(store catalog.Store, brands brand.Mapping, logger *log.Logger, options ...SearchOption) *SearchService {
	cfg := searchConfig{limit: config.DefaultSearchLimit}
	for _, option := range options {
		option(&cfg)
	}
	return &SearchService{
		store:  store,
		brands: brands,
		limit:  cfg.limit,
		logger: logger,
	}
}

// Search scores every product against the request and returns the top
// matches in descending score order. Products that earn no bonus keep a
// zero score and rank by id.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) ([]Match, error) {
	products, err := s.store.Pivot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	officialBrand := s.brands.Official(req.Brand)
	nameHint := strings.ToLower(strings.TrimSpace(req.Name))
	keywordHint := strings.ToLower(strings.TrimSpace(req.Keyword))

	matches := make([]Match, 0, len(products))
	for _, product := range products {
		score := req.BaseScores[product.ID()]
		score += s.score(product, officialBrand, nameHint, keywordHint, req.Price)
		matches = append(matches, Match{Product: product, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	limit := req.Limit
	if limit <= 0 {
		limit = s.limit
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}

	s.logger.DebugContext(ctx, "search complete",
		"candidates", len(products),
		"returned", len(matches),
	)
	return matches, nil
}

func (s *SearchService) score(product catalog.Product, officialBrand, nameHint, keywordHint string, price *int64) float64 {
	score := 0.0

	if officialBrand != "" {
		if maker, ok := product.Maker(); ok && strings.Contains(maker, officialBrand) {
			score += brandBonus
		}
	}

	if price != nil {
		if productPrice, ok := product.Price(); ok {
			diff := productPrice - *price
			if diff < 0 {
				diff = -diff
			}
			switch {
			case diff <= priceNearDiff:
				score += priceNearBonus
			case diff <= priceCloseDiff:
				score += priceCloseBonus
			}
		}
	}

	name, _ := product.Name()
	haystack := strings.ToLower(name + " " + product.OCRText())
	if nameHint != "" && strings.Contains(haystack, nameHint) {
		score += keywordBonus
	}
	if keywordHint != "" && strings.Contains(haystack, keywordHint) {
		score += keywordBonus
	}

	return score
}
