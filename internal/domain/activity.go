package domain

import "time"

// Activity is one append-only audit trail entry. Entries are written
// inside the same transaction as the mutation they describe.
type Activity struct {
	ID        int64
	ClientID  int64
	Action    string
	Detail    string
	Actor     string
	CreatedAt time.Time
}
