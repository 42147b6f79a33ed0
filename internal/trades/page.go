package trades

import "github.com/rxtech-lab/settlement-desk/pkg/errors"

// Page returns the zero-based page pageIndex of seq.
// Pages past the end, and negative indexes, are empty.
func Page[T any](seq []T, pageIndex, pageSize int) ([]T, error) {
	if pageSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument, "page size must be positive, got %d", pageSize)
	}

	// the second check keeps pageIndex*pageSize from overflowing
	if pageIndex < 0 || pageIndex > len(seq)/pageSize {
		return []T{}, nil
	}

	start := pageIndex * pageSize
	if start >= len(seq) {
		return []T{}, nil
	}

	end := min(len(seq), start+pageSize)

	return seq[start:end], nil
}

// PageCount returns how many pages of pageSize are needed for length items.
// An empty sequence has zero pages.
func PageCount(length, pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidArgument, "page size must be positive, got %d", pageSize)
	}

	return (length + pageSize - 1) / pageSize, nil
}
