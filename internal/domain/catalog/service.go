// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/your-org/ecart-storefront/internal/infrastructure/remote"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// Service reads the per-category catalogue collections
type Service struct {
	store      remote.Store
	categories []Category
	logger     logrus.FieldLogger
}

// NewService creates a new catalogue service
func NewService(store remote.Store, categories []Category, logger logrus.FieldLogger) *Service {
	if len(categories) == 0 {
		categories = DefaultCategories()
	}
	return &Service{
		store:      store,
		categories: categories,
		logger:     logger.WithField("component", "catalog"),
	}
}

// Categories returns the configured categories
func (s *Service) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Category looks a category up by slug
func (s *Service) Category(slug string) (Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, apperr.Validation(fmt.Sprintf("unknown category %q", slug))
}

// ListCategory returns every product of the category
func (s *Service) ListCategory(ctx context.Context, slug string) ([]Product, error) {
	cat, err := s.Category(slug)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, cat)
}

// Product fetches one product of the category by record id
func (s *Service) Product(ctx context.Context, slug, id string) (Product, error) {
	cat, err := s.Category(slug)
	if err != nil {
		return Product{}, err
	}
	rec, err := remote.NewCollection(s.store, cat.Collection).Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	return remote.JSONDecoder(func(p *Product, id string) { p.ID = id })(rec)
}

func (s *Service) list(ctx context.Context, cat Category) ([]Product, error) {
	coll := remote.NewCollection(s.store, cat.Collection)
	products, err := remote.DecodeAll(ctx, coll,
		remote.JSONDecoder(func(p *Product, id string) { p.ID = id }),
		func(rec remote.Record, err error) {
			s.logger.WithError(err).WithField("record_id", rec.ID).Warn("Skipping malformed product")
		})
	if err != nil {
		s.logger.WithError(err).WithField("collection", cat.Collection).Error("Failed to list products")
		return nil, err
	}
	return products, nil
}

// listAll fetches every category in parallel, preserving category order
func (s *Service) listAll(ctx context.Context) ([][]Product, error) {
	results := make([][]Product, len(s.categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range s.categories {
		g.Go(func() error {
			products, err := s.list(gctx, cat)
			if err != nil {
				return err
			}
			results[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Featured returns the first product of every non-empty category
func (s *Service) Featured(ctx context.Context) ([]Featured, error) {
	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	featured := make([]Featured, 0, len(all))
	for i, products := range all {
		if len(products) == 0 {
			continue
		}
		featured = append(featured, Featured{Category: s.categories[i], Product: products[0]})
	}
	return featured, nil
}

// Search matches query case-insensitively against model, maker and
// description across every category. A non-empty category must equal the
// product's category label. An empty query matches nothing.
func (s *Service) Search(ctx context.Context, query, category string) ([]Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))
	if query == "" {
		return []Product{}, nil
	}

	all, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []Product{}
	for _, products := range all {
		for _, p := range products {
			if !p.matches(query) {
				continue
			}
			if category != "" && strings.ToLower(p.Product) != category {
				continue
			}
			matches = append(matches, p)
		}
	}
	return matches, nil
}
