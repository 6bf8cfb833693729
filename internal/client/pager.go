package client

import (
	"context"
	"errors"
	"sync"
)

// ErrPagerBusy is returned when Next is called while another fetch for the
// same pager is still in flight.
var ErrPagerBusy = errors.New("a page is already being fetched")

type PageFunc[T any] func(ctx context.Context, first, skip int) ([]T, error)

// Pager accumulates pages of a subgraph list. The indexer caps page sizes,
// so a single logical request may need several fetches; Pager hides that
// and exposes load-more semantics.
type Pager[T any] struct {
	pageSize int
	fetch    PageFunc[T]

	mutex   sync.Mutex
	loading bool
	noMore  bool
	items   []T
}

func NewPager[T any](pageSize int, fetch PageFunc[T]) *Pager[T] {
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Pager[T]{pageSize: pageSize, fetch: fetch}
}

// Next fetches one more page and returns everything accumulated so far plus
// whether more items might remain. Concurrent calls are rejected instead of
// stacking duplicate fetches.
func (p *Pager[T]) Next(ctx context.Context) ([]T, bool, error) {
	p.mutex.Lock()
	if p.loading {
		p.mutex.Unlock()
		return nil, false, ErrPagerBusy
	}

	if p.noMore {
		items := p.items
		p.mutex.Unlock()
		return items, false, nil
	}

	p.loading = true
	skip := len(p.items)
	p.mutex.Unlock()

	page, err := p.fetch(ctx, p.pageSize, skip)

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.loading = false

	if err != nil {
		return nil, false, err
	}

	p.items = append(p.items, page...)
	if len(page) < p.pageSize {
		p.noMore = true
	}

	return p.items, !p.noMore, nil
}

// Items returns what has been accumulated without fetching.
func (p *Pager[T]) Items() []T {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.items
}

// fetchWindow loads items [skip, skip+first) through a Pager, honoring the
// page size cap. It reads past the window end to report whether more remain.
func fetchWindow[T any](
	ctx context.Context, pageSize int, fetch PageFunc[T], first, skip int,
) ([]T, bool, error) {
	pager := NewPager(pageSize, func(ctx context.Context, pageFirst, pageSkip int) ([]T, error) {
		return fetch(ctx, pageFirst, skip+pageSkip)
	})

	for {
		items, hasMore, err := pager.Next(ctx)
		if err != nil {
			return nil, false, err
		}

		if len(items) > first {
			return items[:first], true, nil
		}

		if !hasMore {
			return items, false, nil
		}
	}
}
