package id

import "github.com/oklog/ulid/v2"

// New generates a new ULID string. Ids from one process are strictly
// increasing, even within a millisecond, so a bookmark_id sort key is also
// insertion order.
func New() string {
	return ulid.Make().String()
}
