package handlers

import (
	"net/http"

	"project-board-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest represents the request payload for updating a project
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// GetProjects handles GET /api/projects
func (h *Handler) GetProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.renderError(c, "Failed to fetch projects", err)
		return
	}
	renderList(c, projects)
}

// GetProject handles GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, "Failed to fetch project", err)
		return
	}
	renderData(c, http.StatusOK, project)
}

// CreateProject handles POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		h.renderError(c, "Failed to create project", err)
		return
	}
	renderData(c, http.StatusCreated, project)
}

// UpdateProject handles PUT /api/projects/:id
// Empty fields leave the stored value unchanged.
func (h *Handler) UpdateProject(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.renderBindError(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), service.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.renderError(c, "Failed to update project", err)
		return
	}
	renderData(c, http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
// The project's tasks are deleted with it.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, "Failed to delete project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project and associated tasks deleted successfully",
	})
}
