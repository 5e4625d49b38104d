package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddiq140/Project-Manager/middleware"
	"github.com/siddiq140/Project-Manager/models"
	"github.com/siddiq140/Project-Manager/services"
)

type ProjectHandler struct {
	ProjectService   *services.ProjectService
	AnalyticsService *services.AnalyticsService
}

func NewProjectHandler(projectService *services.ProjectService, analyticsService *services.AnalyticsService) *ProjectHandler {
	return &ProjectHandler{
		ProjectService:   projectService,
		AnalyticsService: analyticsService,
	}
}

type createProjectRequest struct {
	Title     string                 `json:"title"`
	CheckList []models.ChecklistItem `json:"checklist"`
	Priority  models.Priority        `json:"priority"`
	AssignTo  string                 `json:"assignTo"`
	DueDate   *time.Time             `json:"dueDate"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}
	creatorID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	input := services.CreateProjectInput{
		Title:     req.Title,
		CheckList: req.CheckList,
		Priority:  req.Priority,
		AssignTo:  req.AssignTo,
		DueDate:   req.DueDate,
	}

	project, err := h.ProjectService.CreateProject(r.Context(), input, creatorID, claims.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Project created successfully",
		"project": project,
	})
}

func (h *ProjectHandler) FilterProjects(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	filter, valid := models.ParseProjectFilter(vars["filter"])
	if !valid {
		http.Error(w, "Invalid filter type. Use 'Today', 'This Week', 'This Month', or 'All'", http.StatusBadRequest)
		return
	}

	projects, err := h.ProjectService.FilterProjects(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectCounts(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		http.Error(w, "User not authenticated", http.StatusUnauthorized)
		return
	}

	report, err := h.AnalyticsService.GetProjectCounts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	details, err := h.ProjectService.GetProjectDetails(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

type editProjectRequest struct {
	Title     string                 `json:"title"`
	CheckList []models.ChecklistItem `json:"checklist"`
	Priority  models.Priority        `json:"priority"`
	AssignTo  string                 `json:"assignTo"`
	DueDate   *time.Time             `json:"dueDate"`
}

func (h *ProjectHandler) EditProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["projectId"])
	if err != nil {
		http.Error(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	var req editProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	patch := services.EditProjectInput{
		Title:     req.Title,
		CheckList: req.CheckList,
		Priority:  req.Priority,
		AssignTo:  req.AssignTo,
		DueDate:   req.DueDate,
	}

	project, err := h.ProjectService.EditProject(r.Context(), projectID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project updated successfully",
		"project": project,
	})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["projectId"])
	if err != nil {
		http.Error(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), projectID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

type updateStatusRequest struct {
	Status models.Status `json:"status"`
}

func (h *ProjectHandler) UpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	projectID, err := primitive.ObjectIDFromHex(vars["projectId"])
	if err != nil {
		http.Error(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	project, err := h.ProjectService.UpdateProjectStatus(r.Context(), projectID, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Project status updated successfully",
		"project": project,
	})
}

type markChecklistRequest struct {
	ProjectID string `json:"projectId"`
	TaskIndex int    `json:"taskIndex"`
	IsDone    bool   `json:"isDone"`
}

func (h *ProjectHandler) MarkChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req markChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		http.Error(w, "Invalid project ID format", http.StatusBadRequest)
		return
	}

	if err := h.ProjectService.MarkChecklistItem(r.Context(), projectID, req.TaskIndex, req.IsDone); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task status updated successfully"})
}
