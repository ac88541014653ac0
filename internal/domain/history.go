package domain

import "time"

const (
	// HistoryOriginal tags the first go-live date ever recorded for a client.
	HistoryOriginal = "original"
	// HistoryRevised tags every subsequent recording, even if the date is unchanged.
	HistoryRevised = "revised"
)

// GoLiveHistory is one row of the append-only go-live date ledger.
// Rows are immutable once written.
type GoLiveHistory struct {
	ID         int64
	ClientID   int64
	GoLiveDate time.Time
	EntryType  string
	Reason     string
	Approver   string
	DelayCause string
	CreatedAt  time.Time
}
