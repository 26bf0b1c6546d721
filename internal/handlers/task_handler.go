package handlers

import (
	"net/http"

	"project-board-api/internal/models"
	"project-board-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status" binding:"omitempty,taskstatus"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,taskstatus"`
	Order       *int               `json:"order" binding:"omitempty,min=0"`
}

// ReorderItemRequest is one entry of a bulk reorder.
type ReorderItemRequest struct {
	ID     string            `json:"id" binding:"required"`
	Order  int               `json:"order" binding:"min=0"`
	Status models.TaskStatus `json:"status" binding:"required,taskstatus"`
}

// ReorderTasksRequest represents the request payload for PUT /api/tasks/reorder
type ReorderTasksRequest struct {
	Tasks []ReorderItemRequest `json:"tasks" binding:"omitempty,dive"`
}

// GetTasks handles GET /api/tasks/:projectId
// Returns the project's tasks sorted by order.
func (h *Handler) GetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListByProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		h.renderError(c, "Failed to fetch tasks", err)
		return
	}
	renderList(c, tasks)
}

// CreateTask handles POST /api/tasks/:projectId
// The task is appended after the project's existing tasks.
func (h *Handler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), c.Param("projectId"), req.Title, req.Description, req.Status)
	if err != nil {
		h.renderError(c, "Failed to create task", err)
		return
	}
	renderData(c, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/tasks/:taskId
func (h *Handler) UpdateTask(c *gin.Context) {
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), c.Param("taskId"), service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Order:       req.Order,
	})
	if err != nil {
		h.renderError(c, "Failed to update task", err)
		return
	}
	renderData(c, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:taskId
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), c.Param("taskId")); err != nil {
		h.renderError(c, "Failed to delete task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

// ReorderTasks handles PUT /api/tasks/reorder
// Every entry is written independently; there is no rollback on partial failure.
func (h *Handler) ReorderTasks(c *gin.Context) {
	var req ReorderTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	var items []models.ReorderItem
	if req.Tasks != nil {
		items = make([]models.ReorderItem, 0, len(req.Tasks))
		for _, t := range req.Tasks {
			items = append(items, models.ReorderItem{ID: t.ID, Order: t.Order, Status: t.Status})
		}
	}

	if err := h.tasks.Reorder(c.Request.Context(), items); err != nil {
		h.renderError(c, "Failed to reorder tasks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tasks reordered successfully",
	})
}
