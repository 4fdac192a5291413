package firstbeat

import (
	"context"
	"net/url"
	"strconv"
)

// noOffset marks the first request of a paginated fetch, which is issued
// without an offset query parameter.
const noOffset = -1

// setOffset encodes the offset cursor into the request URL. The first
// request of a collection carries no offset parameter at all.
func setOffset(u *url.URL, offset int) {
	if offset == noOffset {
		return
	}
	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
}

// collectPages drives the offset pagination loop shared by the list
// endpoints. fetch issues one request at the given offset and reports the
// page's items and the server's more flag. The next offset is always the
// number of items collected so far. Any page failure discards the partial
// accumulator; there is no partial-success path.
//
// The returned slice is non-nil on success, so an empty collection stays
// distinguishable from a failed request.
func collectPages[T any](ctx context.Context, fetch func(ctx context.Context, offset int) (more bool, items []T, err error)) ([]T, error) {
	collected := []T{}
	offset := noOffset

	for {
		more, items, err := fetch(ctx, offset)
		if err != nil {
			return nil, err
		}

		collected = append(collected, items...)
		if !more {
			return collected, nil
		}
		offset = len(collected)
	}
}
