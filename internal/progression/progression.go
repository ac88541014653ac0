// Package progression holds the pure step/task progression rules: status
// transitions with their timestamp bookkeeping, stage advancement, and
// alert computation. Nothing here touches storage.
package progression

import (
	"fmt"
	"strings"
	"time"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
)

// criticalKeywords flag undone tasks as blocking dependencies regardless
// of due date. Matched case-insensitively against the task title.
var criticalKeywords = []string{"integration", "lims", "snomed", "coding", "label"}

// ApplyStatus moves a step to newStatus, maintaining its timestamps:
//   - first transition out of pending sets started_at (if unset)
//   - entering completed sets completed_at, backfilling started_at if a
//     step is completed without ever having been started
//   - leaving completed clears completed_at but keeps started_at
func ApplyStatus(step *domain.Step, newStatus domain.StepStatus, now time.Time) error {
	if !newStatus.Valid() {
		return fmt.Errorf("invalid step status %q", newStatus)
	}

	switch newStatus {
	case domain.StepInProgress:
		if step.StartedAt == nil {
			t := now
			step.StartedAt = &t
		}
		step.CompletedAt = nil
	case domain.StepCompleted:
		if step.Status != domain.StepCompleted {
			t := now
			step.CompletedAt = &t
			if step.StartedAt == nil {
				step.StartedAt = &t
			}
		}
	case domain.StepPending:
		step.CompletedAt = nil
	}

	step.Status = newStatus
	step.UpdatedAt = now
	return nil
}

// Toggle flips a step between completed and pending: completed goes back
// to pending, anything else becomes completed.
func Toggle(step *domain.Step, now time.Time) domain.StepStatus {
	target := domain.StepCompleted
	if step.Status == domain.StepCompleted {
		target = domain.StepPending
	}
	// target is always valid here
	_ = ApplyStatus(step, target, now)
	return target
}

// AdvanceStage returns the client's new current_stage after a step at
// stepOrder moved to newStatus. The stage models "furthest progress
// reached": completing a step at or past the marker pushes it to
// stepOrder+1, and nothing ever pulls it back.
func AdvanceStage(currentStage, stepOrder int, newStatus domain.StepStatus) int {
	if newStatus == domain.StepCompleted && stepOrder >= currentStage {
		return stepOrder + 1
	}
	return currentStage
}

// Progress summarizes completion over a client's steps.
func Progress(steps []domain.Step) (completed, total, percent int) {
	total = len(steps)
	for _, s := range steps {
		if s.Status == domain.StepCompleted {
			completed++
		}
	}
	if total > 0 {
		percent = int(float64(completed)/float64(total)*100 + 0.5)
	}
	return completed, total, percent
}

// ComputeAlerts derives the alert list for a client from its gating
// fields and tasks. It is pure: same input, same output, no mutation.
// Rules are evaluated in a fixed order so the result is stable.
func ComputeAlerts(client domain.Client, tasks []domain.Task, now time.Time) []domain.Alert {
	alerts := []domain.Alert{}

	if client.ContractStatus != "yes" {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertContractUnsigned,
			Severity: domain.SeverityHigh,
			Message:  "Contract not signed",
		})
	}

	if client.DPIARequired && client.DPIAStatus != "yes" && client.DPIAStatus != "waived" {
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertDPIAMissing,
			Severity: domain.SeverityHigh,
			Message:  "DPIA required but not completed",
		})
	}

	for _, t := range tasks {
		if !overdue(t, now) {
			continue
		}
		sev := domain.SeverityMedium
		if t.Severity == domain.SeverityHigh {
			sev = domain.SeverityHigh
		}
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTaskOverdue,
			Severity: sev,
			Message:  fmt.Sprintf("Task %q is overdue", t.Title),
		})
	}

	// Kept as a second, distinct alert for the same overdue task: the
	// tracker has always reported both, and consumers key off both types.
	for _, t := range tasks {
		if !overdue(t, now) || t.CompletionDate != nil {
			continue
		}
		sev := domain.SeverityMedium
		if t.Severity == domain.SeverityHigh {
			sev = domain.SeverityHigh
		}
		alerts = append(alerts, domain.Alert{
			Type:     domain.AlertTaskOverdueNoCompl,
			Severity: sev,
			Message:  fmt.Sprintf("Task %q is overdue with no completion date", t.Title),
		})
	}

	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			continue
		}
		title := strings.ToLower(t.Title)
		for _, kw := range criticalKeywords {
			if strings.Contains(title, kw) {
				alerts = append(alerts, domain.Alert{
					Type:     domain.AlertCriticalDependency,
					Severity: domain.SeverityHigh,
					Message:  fmt.Sprintf("Critical dependency %q is not done", t.Title),
				})
				break
			}
		}
	}

	return alerts
}

func overdue(t domain.Task, now time.Time) bool {
	return t.Status != domain.TaskDone && t.DueDate != nil && t.DueDate.Before(now)
}
