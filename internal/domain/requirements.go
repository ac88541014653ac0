package domain

import "time"

// Requirements is the per-client onboarding requirements document.
// One row per client, upserted as a whole.
type Requirements struct {
	ClientID         int64
	ScanningSetup    string
	CaseVolumes      string
	IntegrationNotes string
	ConsultPathways  string
	Notes            string
	UpdatedAt        time.Time
}
