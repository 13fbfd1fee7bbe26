package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/monolog-ai/monolog/domain/catalog"
	"github.com/monolog-ai/monolog/infrastructure/feed"
	"github.com/monolog-ai/monolog/internal/config"
	"github.com/monolog-ai/monolog/internal/log"
)

const existingLookupChunk = 1000

// IngestReport summarizes one ingest run.
type IngestReport struct {
	Total   int
	New     int
	Updated int
	Skipped int
	Errors  int
}

// IngestOption configures an IngestService.
type IngestOption func(*ingestConfig)

type ingestConfig struct {
	hashWorkers int
	now         func() time.Time
}

// WithHashWorkers sets how many images are hashed concurrently.
func WithHashWorkers(n int) IngestOption {
	return func(c *ingestConfig) {
		if n > 0 {
			c.hashWorkers = n
		}
	}
}

// WithClock overrides the timestamp source. Used in tests.
func WithClock(now func() time.Time) IngestOption {
	return func(c *ingestConfig) {
		c.now = now
	}
}

// IngestService loads a crawler feed, detects which products are new or
// changed, and writes their metadata rows to the store.
type IngestService struct {
	store       catalog.Store
	hashWorkers int
	now         func() time.Time
	logger      *log.Logger
}

// NewIngestService creates an IngestService.
func NewIngestService(store catalog.Store, logger *log.Logger, options ...IngestOption) *IngestService {
	cfg := ingestConfig{
		hashWorkers: config.DefaultHashWorkers,
		now:         time.Now,
	}
	for _, option := range options {
		option(&cfg)
	}
	return &IngestService{
		store:       store,
		hashWorkers: cfg.hashWorkers,
		now:         cfg.now,
		logger:      logger,
	}
}

// Run ingests the feed at feedPath, resolving product images from imageDir.
// Existing products whose compared fields are unchanged are skipped; changed
// products keep their original creation timestamp. Items with malformed ids
// or unreadable images are counted as errors and do not abort the run.
func (s *IngestService) Run(ctx context.Context, feedPath, imageDir string) (IngestReport, error) {
	items, err := feed.Load(feedPath)
	if err != nil {
		return IngestReport{}, err
	}

	var images map[string]string
	if imageDir != "" {
		images, err = feed.ImageIndex(imageDir)
		if err != nil {
			return IngestReport{}, err
		}
	}

	report := IngestReport{Total: len(items)}

	type parsed struct {
		item      feed.Item
		id        int64
		imagePath string
		imageHash string
	}
	candidates := make([]*parsed, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping item with malformed id", "id", item.ID)
			report.Errors++
			continue
		}
		candidates = append(candidates, &parsed{
			item:      item,
			id:        id,
			imagePath: images[item.ID],
		})
	}

	// Hash downloaded images concurrently. A hashing failure marks the
	// item as errored but the rest of the batch proceeds.
	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.hashWorkers)
	failed := make(map[int64]bool)
	for _, c := range candidates {
		if c.imagePath == "" {
			continue
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			hash, err := feed.HashFile(c.imagePath)
			if err != nil {
				s.logger.WarnContext(groupCtx, "image hash failed", "id", c.id, "error", err)
				mu.Lock()
				failed[c.id] = true
				mu.Unlock()
				return nil
			}
			c.imageHash = hash
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return report, fmt.Errorf("hash images: %w", err)
	}

	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.id)
	}
	existing, err := s.loadExisting(ctx, ids)
	if err != nil {
		return report, err
	}

	now := s.now().UTC().Format(time.RFC3339)
	var changed []catalog.Product
	for _, c := range candidates {
		if failed[c.id] {
			report.Errors++
			continue
		}
		// When an image directory is given every product needs an image;
		// without one the record cannot be matched to its picture later.
		if imageDir != "" && c.imagePath == "" {
			s.logger.WarnContext(ctx, "no image for product", "id", c.id)
			report.Errors++
			continue
		}

		old, known := existing[c.id]
		product := s.buildProduct(c.id, c.item, c.imagePath, c.imageHash, old, known, now)

		if !known {
			report.New++
			changed = append(changed, product)
			continue
		}
		if product.ChangedFrom(old) {
			report.Updated++
			changed = append(changed, product)
			continue
		}
		report.Skipped++
	}

	if len(changed) > 0 {
		if err := s.store.SaveAll(ctx, changed); err != nil {
			return report, fmt.Errorf("save products: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "ingest complete",
		"total", report.Total,
		"new", report.New,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"errors", report.Errors,
	)
	return report, nil
}

func (s *IngestService) buildProduct(id int64, item feed.Item, imagePath, imageHash string, old catalog.Product, known bool, now string) catalog.Product {
	p := catalog.NewProduct(id).
		WithText(catalog.FieldName, item.Name).
		WithText(catalog.FieldMaker, item.Maker).
		WithText(catalog.FieldCategory, item.Category).
		WithText(catalog.FieldProductURL, item.ProductURL).
		WithPrice(item.Price)

	if imagePath != "" {
		p = p.WithText(catalog.FieldImagePath, imagePath)
	}
	if imageHash != "" {
		p = p.WithText(catalog.FieldImageHash, imageHash)
	}

	// Creation time and OCR lines survive updates; only the update
	// timestamp moves.
	createdAt := now
	if known {
		if v, ok := old.CreatedAt(); ok {
			createdAt = v
		}
		if v, ok := old.OCRLines(); ok {
			p = p.WithText(catalog.FieldOCRLines, v)
		}
	}
	return p.
		WithText(catalog.FieldCreatedAt, createdAt).
		WithText(catalog.FieldUpdatedAt, now)
}

func (s *IngestService) loadExisting(ctx context.Context, ids []int64) (map[int64]catalog.Product, error) {
	existing := make(map[int64]catalog.Product, len(ids))
	for start := 0; start < len(ids); start += existingLookupChunk {
		end := start + existingLookupChunk
		if end > len(ids) {
			end = len(ids)
		}
		products, err := s.store.GetAll(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("load existing products: %w", err)
		}
		for _, p := range products {
			existing[p.ID()] = p
		}
	}
	return existing, nil
}
