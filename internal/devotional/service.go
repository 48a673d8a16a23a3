// Package devotional exposes devotional content lookups and the session-wide
// cache of dates for which content exists.
package devotional

import (
	"context"

	"github.com/atti-709/chliebnaskazdodenny-web/internal/model"
)

// DefaultLimit caps getAll queries when the caller does not specify one.
const DefaultLimit = 100

// Source is the upstream devotional store, implemented by the Notion client.
type Source interface {
	ByDate(ctx context.Context, date string) (*model.Devotional, error)
	All(ctx context.Context, limit int) ([]model.Devotional, error)
	Dates(ctx context.Context) ([]string, error)
}

// Service answers devotional lookups for the web app.
type Service struct {
	src Source
}

// NewService creates a Service over the given source.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// ByDate returns the devotional for a canonical date, or nil when none exists.
func (s *Service) ByDate(ctx context.Context, date string) (*model.Devotional, error) {
	return s.src.ByDate(ctx, date)
}

// All returns up to limit devotionals, newest first.
func (s *Service) All(ctx context.Context, limit int) ([]model.Devotional, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.src.All(ctx, limit)
}

// Dates returns every canonical date with content.
func (s *Service) Dates(ctx context.Context) ([]string, error) {
	return s.src.Dates(ctx)
}
