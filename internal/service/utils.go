package service

import (
	"context"
)

// pageSize is OMDb's fixed page size
const pageSize = 10

// fetchPages walks 1-based pages until total is reached, a page comes back
// empty, or maxPages pages have been read.
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, int, error),
	maxPages int,
) ([]T, error) {
	if maxPages <= 0 {
		maxPages = 1
	}

	var all []T

	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, total, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(items) == 0 || len(all) >= total || page*pageSize >= total {
			break
		}
	}

	return all, nil
}
