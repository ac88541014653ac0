package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/dto"
	"github.com/jennyfitzgerald-jpg/onboarding-framework/internal/service"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// List godoc
// @Summary      List a client's tasks
// @Tags         tasks
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tasks, err := h.svc.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	items := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskToResponse(t))
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: items})
}

// Create godoc
// @Summary      Create a task for a client
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Client ID"
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.svc.Create(c.Request.Context(), id, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskToResponse(task))
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id      path      int  true  "Client ID"
// @Param        taskId  path      int  true  "Task ID"
// @Param        body    body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200     {object}  dto.TaskResponse
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /clients/{id}/tasks/{taskId} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := h.svc.Update(c.Request.Context(), id, taskID, req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(task))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id      path  int  true  "Client ID"
// @Param        taskId  path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	taskID, ok := parseID(c, "taskId")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, taskID, actorFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
