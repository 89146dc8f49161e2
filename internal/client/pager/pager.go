// Package pager implements forward/backward page navigation over a
// remote listing. Each load fully replaces the visible page; nothing is
// merged or appended.
package pager

import (
	"context"
	"errors"
	"sync"

	"github.com/hoaxify/hoaxify-cli/internal/client/models"
)

// ErrLoadInFlight rejects a load while a previous one is still pending;
// each pager serializes its own loads.
var ErrLoadInFlight = errors.New("page load already in flight")

// FetchFunc retrieves one page of size elements.
type FetchFunc[T any] func(ctx context.Context, page, size int) (models.Page[T], error)

// Pager holds the currently visible page of a listing.
//
// Ordering is per-instance only: loads on one pager are serialized, but
// two pagers over the same listing race last-write-wins.
type Pager[T any] struct {
	mu      sync.Mutex
	page    models.Page[T]
	size    int
	fetch   FetchFunc[T]
	loading bool
}

// New builds a pager with an empty initial page. Call Load(ctx, 0) to
// populate it.
func New[T any](size int, fetch FetchFunc[T]) *Pager[T] {
	return &Pager[T]{page: models.EmptyPage[T](size), size: size, fetch: fetch}
}

// Page returns the currently visible page.
func (p *Pager[T]) Page() models.Page[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Load fetches the given page number and replaces the whole page state
// with the response. On failure the previous page stays visible.
func (p *Pager[T]) Load(ctx context.Context, number int) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return ErrLoadInFlight
	}
	p.loading = true
	p.mu.Unlock()

	page, err := p.fetch(ctx, number, p.size)

	p.mu.Lock()
	p.loading = false
	if err == nil {
		p.page = page
	}
	p.mu.Unlock()
	return err
}

// Next loads the following page; a no-op on the last page.
func (p *Pager[T]) Next(ctx context.Context) error {
	p.mu.Lock()
	if p.page.Last {
		p.mu.Unlock()
		return nil
	}
	number := p.page.Number + 1
	p.mu.Unlock()
	return p.Load(ctx, number)
}

// Previous loads the preceding page; a no-op on the first page.
func (p *Pager[T]) Previous(ctx context.Context) error {
	p.mu.Lock()
	if p.page.First {
		p.mu.Unlock()
		return nil
	}
	number := p.page.Number - 1
	p.mu.Unlock()
	return p.Load(ctx, number)
}
