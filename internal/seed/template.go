// Package seed holds the immutable master onboarding framework. Every new
// client gets a private copy of these steps; the template itself is never
// modified at runtime.
package seed

import "github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"

// TemplateStep is one entry of the master framework.
type TemplateStep struct {
	Title       string
	Description string
	Owner       string
	Category    string
}

// Template returns the master 15-step onboarding framework, ordered.
// Callers get a fresh slice; the backing data is package-private.
func Template() []TemplateStep {
	out := make([]TemplateStep, len(masterTemplate))
	copy(out, masterTemplate)
	return out
}

// Instantiate copies a template into per-client step rows: status pending,
// no timestamps, orders 1..N.
func Instantiate(clientID int64, template []TemplateStep) []domain.Step {
	steps := make([]domain.Step, len(template))
	for i, t := range template {
		steps[i] = domain.Step{
			ClientID:    clientID,
			StepOrder:   i + 1,
			Title:       t.Title,
			Description: t.Description,
			Owner:       t.Owner,
			Category:    t.Category,
			Status:      domain.StepPending,
		}
	}
	return steps
}

var masterTemplate = []TemplateStep{
	{
		Title:       "BDM Discovery & Qualification",
		Description: "BDM lands the account, completes handover sections 1-2 (client info, outsourcing, scanning, volumes, consult pathways), flags integration needs and tier classification, and notifies the integration team.",
		Owner:       "BDM (Commercial)",
		Category:    "discovery",
	},
	{
		Title:       "Technical Scoping Call",
		Description: "Integration team joins the scoping call, maps LIS/LIMS architecture and routing, captures automation and security requirements, and rates integration complexity.",
		Owner:       "Integration Team",
		Category:    "discovery",
	},
	{
		Title:       "Contracting & Internal Trigger",
		Description: "Legal finalizes NDA, MSA, SLA and pricing; contract signature is day zero and triggers the official onboarding start. No implementation work before signature.",
		Owner:       "Legal",
		Category:    "documentation",
	},
	{
		Title:       "Handover & Chat Space Setup",
		Description: "Customer Service reviews the handover document, creates the client chat space with all stakeholders, assigns the implementation lead and confirms the tier timeline.",
		Owner:       "Customer Service Lead",
		Category:    "preparation",
	},
	{
		Title:       "Welcome Call & Pack",
		Description: "Implementation lead introduces themselves as single point of contact, walks through the onboarding journey, confirms customer contacts and sends the welcome pack same day.",
		Owner:       "CS Implementation Lead",
		Category:    "engagement",
	},
	{
		Title:       "Homework Collection & Validation",
		Description: "Collect and validate customer homework: user lists, case types, despatch details and referral templates. Chase gaps before the workshop.",
		Owner:       "CS Implementation Lead",
		Category:    "documentation",
	},
	{
		Title:       "Questionnaire Workshop",
		Description: "Structured workshop covering the onboarding questionnaire end to end: workflows, integration touch points, reporting preferences and turnaround expectations.",
		Owner:       "CS Implementation Lead",
		Category:    "integration",
	},
	{
		Title:       "Internal Feasibility & Alignment",
		Description: "Service excellence walks every internal team through the design, confirms capacity and feasibility, and signs off that the build can start.",
		Owner:       "Service Excellence Lead",
		Category:    "review",
	},
	{
		Title:       "Design Playback & Customer Approval",
		Description: "Play the agreed design back to the customer, capture final changes and obtain written approval of the implementation design.",
		Owner:       "CS Implementation Lead",
		Category:    "review",
	},
	{
		Title:       "Build Phase",
		Description: "Integration and automation teams build interfaces, portal accounts, label and routing rules; progress tracked against the agreed complexity rating.",
		Owner:       "Integration + Automation Teams",
		Category:    "integration",
	},
	{
		Title:       "Training & Dry Run",
		Description: "Train customer users on the portal and processes, run an end-to-end dry run with test cases, and capture sign-off that the customer is ready.",
		Owner:       "CS Implementation Lead",
		Category:    "training",
	},
	{
		Title:       "Go-Live & Hypercare",
		Description: "Controlled go-live with daily check-ins during hypercare; monitor first cases end to end and clear issues as they surface.",
		Owner:       "CS Implementation Lead",
		Category:    "go-live",
	},
	{
		Title:       "Day 30 Health Check",
		Description: "Review volumes, turnaround times and open issues with the customer thirty days after go-live; agree corrective actions where needed.",
		Owner:       "CS Account Owner",
		Category:    "health-check",
	},
	{
		Title:       "Day 60 Health Check",
		Description: "Second structured review: confirm earlier actions closed, validate invoicing accuracy and check satisfaction with reporting quality.",
		Owner:       "CS Account Owner",
		Category:    "health-check",
	},
	{
		Title:       "Day 90 Health Check & BAU Transition",
		Description: "Final health check; hand the account from implementation to business-as-usual ownership and close the onboarding record.",
		Owner:       "CS Account Owner",
		Category:    "health-check",
	},
}
