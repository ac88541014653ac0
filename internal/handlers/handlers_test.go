package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/domain"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/repo"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/seed"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "strategic", "standard", "low_touch":
				return true
			}
			return false
		})
	}
	m.Run()
}

// state is the shared map-backed storage behind the fake repositories.
type state struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]domain.Client
	steps   map[int64][]domain.Step
	tasks   map[int64]domain.Task
	history map[int64][]domain.GoLiveHistory
	reqs    map[int64]domain.Requirements
	acts    []domain.Activity
}

func newState() *state {
	return &state{
		clients: make(map[int64]domain.Client),
		steps:   make(map[int64][]domain.Step),
		tasks:   make(map[int64]domain.Task),
		history: make(map[int64][]domain.GoLiveHistory),
		reqs:    make(map[int64]domain.Requirements),
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *state) record(act domain.Activity) {
	act.ID = s.id()
	act.CreatedAt = time.Now().UTC()
	s.acts = append(s.acts, act)
}

type fakeClients struct{ *state }

func (f fakeClients) Create(_ context.Context, c domain.Client, steps []domain.Step, act domain.Activity) (domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	c.ID = f.id()
	c.CurrentStage = 1
	c.CreatedAt = now
	c.UpdatedAt = now
	f.clients[c.ID] = c
	for i := range steps {
		steps[i].ID = f.id()
		steps[i].ClientID = c.ID
	}
	f.steps[c.ID] = steps
	if c.GoLiveDate != nil {
		f.history[c.ID] = append(f.history[c.ID], domain.GoLiveHistory{
			ID: f.id(), ClientID: c.ID, GoLiveDate: *c.GoLiveDate,
			EntryType: domain.HistoryOriginal, CreatedAt: now,
		})
	}
	act.ClientID = c.ID
	f.record(act)
	return c, nil
}

func (f fakeClients) GetByID(_ context.Context, id int64) (domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return domain.Client{}, pgx.ErrNoRows
	}
	return c, nil
}

func (f fakeClients) List(_ context.Context) ([]domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []domain.Client
	for _, c := range f.clients {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeClients) Update(_ context.Context, c domain.Client, act domain.Activity) (domain.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c.ID]; !ok {
		return domain.Client{}, pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now().UTC()
	f.clients[c.ID] = c
	f.record(act)
	return c, nil
}

func (f fakeClients) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.clients, id)
	delete(f.steps, id)
	return nil
}

type fakeSteps struct{ *state }

func (f fakeSteps) GetByOrder(_ context.Context, clientID int64, order int) (domain.Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.steps[clientID] {
		if s.StepOrder == order {
			return s, nil
		}
	}
	return domain.Step{}, pgx.ErrNoRows
}

func (f fakeSteps) ListByClient(_ context.Context, clientID int64) ([]domain.Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := append([]domain.Step(nil), f.steps[clientID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].StepOrder < list[j].StepOrder })
	return list, nil
}

func (f fakeSteps) CountsByClient(_ context.Context) (map[int64]repo.StepCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[int64]repo.StepCounts)
	for clientID, steps := range f.steps {
		sc := counts[clientID]
		for _, s := range steps {
			sc.Total++
			if s.Status == domain.StepCompleted {
				sc.Completed++
			}
		}
		counts[clientID] = sc
	}
	return counts, nil
}

func (f fakeSteps) Save(_ context.Context, step domain.Step, newStage int, act domain.Activity) (domain.Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	steps := f.steps[step.ClientID]
	for i, s := range steps {
		if s.StepOrder == step.StepOrder {
			step.ID = s.ID
			steps[i] = step
			if c, ok := f.clients[step.ClientID]; ok && newStage > c.CurrentStage {
				c.CurrentStage = newStage
				f.clients[step.ClientID] = c
			}
			f.record(act)
			return step, nil
		}
	}
	return domain.Step{}, pgx.ErrNoRows
}

type fakeTasks struct{ *state }

func (f fakeTasks) Create(_ context.Context, t domain.Task, act domain.Activity) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = f.id()
	t.CreatedAt = time.Now().UTC()
	t.UpdatedAt = t.CreatedAt
	f.tasks[t.ID] = t
	f.record(act)
	return t, nil
}

func (f fakeTasks) GetByID(_ context.Context, clientID, id int64) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.ClientID != clientID {
		return domain.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (f fakeTasks) ListByClient(_ context.Context, clientID int64) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []domain.Task
	for _, t := range f.tasks {
		if t.ClientID == clientID {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeTasks) ListAll(_ context.Context) ([]domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []domain.Task
	for _, t := range f.tasks {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeTasks) Update(_ context.Context, t domain.Task, act domain.Activity) (domain.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[t.ID]; !ok {
		return domain.Task{}, pgx.ErrNoRows
	}
	t.UpdatedAt = time.Now().UTC()
	f.tasks[t.ID] = t
	f.record(act)
	return t, nil
}

func (f fakeTasks) Delete(_ context.Context, clientID, id int64, act domain.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.ClientID != clientID {
		return pgx.ErrNoRows
	}
	delete(f.tasks, id)
	f.record(act)
	return nil
}

type fakeHistory struct{ *state }

func (f fakeHistory) Append(_ context.Context, entry domain.GoLiveHistory, act domain.Activity) (domain.GoLiveHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[entry.ClientID]
	if !ok {
		return domain.GoLiveHistory{}, pgx.ErrNoRows
	}
	entry.ID = f.id()
	entry.EntryType = domain.HistoryRevised
	if len(f.history[entry.ClientID]) == 0 {
		entry.EntryType = domain.HistoryOriginal
	}
	entry.CreatedAt = time.Now().UTC()
	f.history[entry.ClientID] = append(f.history[entry.ClientID], entry)
	date := entry.GoLiveDate
	c.GoLiveDate = &date
	f.clients[entry.ClientID] = c
	f.record(act)
	return entry, nil
}

func (f fakeHistory) ListByClient(_ context.Context, clientID int64) ([]domain.GoLiveHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := append([]domain.GoLiveHistory(nil), f.history[clientID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

type fakeReqs struct{ *state }

func (f fakeReqs) Get(_ context.Context, clientID int64) (domain.Requirements, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reqs[clientID]
	if !ok {
		return domain.Requirements{}, pgx.ErrNoRows
	}
	return r, nil
}

func (f fakeReqs) Upsert(_ context.Context, req domain.Requirements, act domain.Activity) (domain.Requirements, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.UpdatedAt = time.Now().UTC()
	f.reqs[req.ClientID] = req
	f.record(act)
	return req, nil
}

type fakeActivity struct{ *state }

func (f fakeActivity) ListByClient(_ context.Context, clientID int64) ([]domain.Activity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []domain.Activity
	for _, a := range f.acts {
		if a.ClientID == clientID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func newTestRouter() (*gin.Engine, *state) {
	st := newState()
	logger := zap.NewNop()
	clientSvc := service.NewClientService(fakeClients{st}, fakeSteps{st}, fakeTasks{st},
		fakeHistory{st}, fakeReqs{st}, fakeActivity{st}, nil, seed.Template(), logger)
	stepSvc := service.NewStepService(fakeClients{st}, fakeSteps{st}, nil, logger)
	taskSvc := service.NewTaskService(fakeClients{st}, fakeTasks{st}, nil, logger)
	portfolioSvc := service.NewPortfolioService(fakeClients{st}, fakeSteps{st}, fakeTasks{st}, nil, logger)

	clients := NewClientHandler(clientSvc)
	steps := NewStepHandler(stepSvc)
	tasks := NewTaskHandler(taskSvc)
	portfolio := NewPortfolioHandler(portfolioSvc)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/clients", clients.List)
	api.POST("/clients", clients.Create)
	api.GET("/clients/:id", clients.Get)
	api.PUT("/clients/:id", clients.Update)
	api.DELETE("/clients/:id", clients.Delete)
	api.GET("/clients/:id/alerts", clients.Alerts)
	api.GET("/clients/:id/requirements", clients.GetRequirements)
	api.PUT("/clients/:id/requirements", clients.PutRequirements)
	api.GET("/clients/:id/go-live-history", clients.GoLiveHistory)
	api.POST("/clients/:id/go-live-date", clients.RecordGoLiveDate)
	api.POST("/clients/:id/go-live-readiness", clients.RecordReadiness)
	api.PUT("/clients/:id/escalation", clients.SetEscalation)
	api.GET("/clients/:id/activity", clients.Activity)
	api.PUT("/clients/:id/steps/:order", steps.Update)
	api.PATCH("/clients/:id/steps/:order/toggle", steps.Toggle)
	api.GET("/clients/:id/tasks", tasks.List)
	api.POST("/clients/:id/tasks", tasks.Create)
	api.PUT("/clients/:id/tasks/:taskId", tasks.Update)
	api.DELETE("/clients/:id/tasks/:taskId", tasks.Delete)
	api.GET("/portfolio", portfolio.Portfolio)
	api.GET("/stats", portfolio.Stats)
	return r, st
}

func do(r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createClient(t *testing.T, r *gin.Engine, body map[string]any) dto.ClientDetailResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/clients", body, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp dto.ClientDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreateClientEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	resp := createClient(t, r, map[string]any{"name": "Northfield Pathology", "tier": "strategic"})
	assert.Equal(t, "strategic", resp.Tier)
	assert.Equal(t, "planning", resp.PhaseStatus)
	assert.Equal(t, 1, resp.CurrentStage)
	require.Len(t, resp.Steps, 15)
	assert.Equal(t, "pending", resp.Steps[0].Status)
}

func TestCreateClientValidation(t *testing.T) {
	r, _ := newTestRouter()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing name", map[string]any{"tier": "standard"}},
		{"unknown tier", map[string]any{"name": "X", "tier": "platinum"}},
		{"unknown phase", map[string]any{"name": "X", "phase_status": "limbo"}},
		{"bad date", map[string]any{"name": "X", "go_live_date": "next tuesday"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/clients", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetClientNotFound(t *testing.T) {
	r, _ := newTestRouter()

	w := do(r, http.MethodGet, "/api/clients/42", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/clients/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleStepEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	client := createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPatch, "/api/clients/1/steps/1/toggle", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var step dto.StepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &step))
	assert.Equal(t, "completed", step.Status)
	assert.NotNil(t, step.CompletedAt)

	// The stage marker follows the completion.
	w = do(r, http.MethodGet, "/api/clients/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail dto.ClientDetailResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, 2, detail.CurrentStage)
	assert.Equal(t, client.ID, detail.ID)
}

func TestUpdateStepRejectsUnknownStatus(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPut, "/api/clients/1/steps/1", map[string]any{"status": "paused"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordGoLiveDateEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPost, "/api/clients/1/go-live-date",
		map[string]any{"go_live_date": "2026-10-01", "reason": "contract signed"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first dto.GoLiveHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "original", first.EntryType)

	w = do(r, http.MethodPost, "/api/clients/1/go-live-date",
		map[string]any{"go_live_date": "2026-12-01", "reason": "integration slipped"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var second dto.GoLiveHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, "revised", second.EntryType)

	w = do(r, http.MethodGet, "/api/clients/1/go-live-history", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []dto.GoLiveHistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, "revised", history[0].EntryType)

	// Missing date is a binding failure.
	w = do(r, http.MethodPost, "/api/clients/1/go-live-date", map[string]any{"reason": "no date"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEscalationEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPut, "/api/clients/1/escalation",
		map[string]any{"escalated": true, "reason": "integration blocked"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Escalated)
	assert.Equal(t, "integration blocked", resp.EscalationReason)

	// The flag itself is mandatory.
	w = do(r, http.MethodPut, "/api/clients/1/escalation", map[string]any{"reason": "oops"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsEndpoint(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs", "dpia_required": true})

	w := do(r, http.MethodGet, "/api/clients/1/alerts", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var alerts []dto.AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alerts))
	require.Len(t, alerts, 2)
	assert.Equal(t, "contract_unsigned", alerts[0].Type)
	assert.Equal(t, "dpia_missing", alerts[1].Type)
}

func TestRequirementsEndpoints(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodGet, "/api/clients/1/requirements", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var doc dto.RequirementsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Empty(t, doc.ScanningSetup)

	w = do(r, http.MethodPut, "/api/clients/1/requirements",
		map[string]any{"scanning_setup": "2x GT450", "case_volumes": "400/week"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2x GT450", doc.ScanningSetup)
}

func TestTaskEndpoints(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPost, "/api/clients/1/tasks",
		map[string]any{"title": "Confirm LIMS endpoints", "severity": "high"}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "not_started", task.Status)
	assert.Equal(t, "high", task.Severity)

	taskPath := fmt.Sprintf("/api/clients/1/tasks/%d", task.ID)
	w = do(r, http.MethodPut, taskPath, map[string]any{"status": "done"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "done", task.Status)

	w = do(r, http.MethodDelete, taskPath, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/clients/1/tasks", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.ListTasksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Items)
}

func TestPortfolioAndStatsEndpoints(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs", "contract_status": "yes"})

	w := do(r, http.MethodGet, "/api/portfolio", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var portfolio dto.PortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &portfolio))
	require.Len(t, portfolio.Items, 1)
	assert.Equal(t, 15, portfolio.Items[0].TotalSteps)
	assert.NotNil(t, portfolio.Items[0].Blockers)
	assert.Empty(t, portfolio.Items[0].Blockers)

	w = do(r, http.MethodGet, "/api/stats", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalClients)
	assert.Equal(t, 15, stats.TotalSteps)
	assert.Equal(t, 15, stats.PendingSteps)
}

func TestActorHeaderRecorded(t *testing.T) {
	r, _ := newTestRouter()
	createClient(t, r, map[string]any{"name": "Harbor Labs"})

	w := do(r, http.MethodPatch, "/api/clients/1/steps/3/toggle", nil, map[string]string{"X-Actor": "jane"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/clients/1/activity", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var acts []dto.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &acts))
	require.Len(t, acts, 2)
	assert.Equal(t, "jane", acts[0].Actor)
	assert.Equal(t, "step_updated", acts[0].Action)
	assert.Equal(t, "system", acts[1].Actor)
}
