package domain

import "time"

// Tier classifies how much onboarding attention a client gets.
type Tier string

const (
	TierStrategic Tier = "strategic"
	TierStandard  Tier = "standard"
	TierLowTouch  Tier = "low_touch"
)

// PhaseStatus is the coarse-grained lifecycle phase of a client.
type PhaseStatus string

const (
	PhasePlanning      PhaseStatus = "planning"
	PhaseDiscovery     PhaseStatus = "discovery"
	PhaseInBuild       PhaseStatus = "in_build"
	PhaseReadyToGoLive PhaseStatus = "ready_to_go_live"
	PhaseLive          PhaseStatus = "live"
)

func (p PhaseStatus) Valid() bool {
	switch p {
	case PhasePlanning, PhaseDiscovery, PhaseInBuild, PhaseReadyToGoLive, PhaseLive:
		return true
	}
	return false
}

// Client is an account being onboarded. CurrentStage points at the
// furthest step order reached by completion plus one; it never decreases.
type Client struct {
	ID              int64
	Name            string
	Tier            Tier
	BusinessContact string
	ContractDate    *time.Time
	GoLiveDate      *time.Time
	PhaseStatus     PhaseStatus
	HealthScore     int
	CurrentStage    int

	// Gating fields: non-satisfaction blocks progression and raises alerts.
	ContractStatus string
	DPIARequired   bool
	DPIAStatus     string

	Escalated        bool
	EscalationReason string

	ReadinessSignedOffBy string
	ReadinessSignedOffAt *time.Time
	ReadinessNotes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}
