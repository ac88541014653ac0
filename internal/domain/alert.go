package domain

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert types.
const (
	AlertContractUnsigned   = "contract_unsigned"
	AlertDPIAMissing        = "dpia_missing"
	AlertTaskOverdue        = "task_overdue"
	AlertTaskOverdueNoCompl = "task_overdue_no_completion"
	AlertCriticalDependency = "critical_dependency"
)

// Alert is a derived warning about a client. Alerts are recomputed on
// every read and never persisted; they have no identity beyond content.
type Alert struct {
	Type     string
	Severity string
	Message  string
}
