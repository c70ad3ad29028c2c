package main

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/signworks/estimator/internal/estimate"
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DB().PingContext(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.storeError(w, "list projects", err)
		return
	}
	s.writeJSON(w, http.StatusOK, projects)
}

func (s *server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p estimate.Project
	if !s.decode(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.CreateProject(r.Context(), p)
	if err != nil {
		s.storeError(w, "create project", err)
		return
	}
	p.ID = id
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := s.store.ProjectByID(r.Context(), id)
	if err != nil {
		s.storeError(w, "get project", err)
		return
	}
	if project == nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

func (s *server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var p estimate.Project
	if !s.decode(w, r, &p) {
		return
	}
	p.ID = id
	if err := s.store.UpdateProject(r.Context(), p); err != nil {
		s.storeError(w, "update project", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	if err := s.store.DeleteProject(r.Context(), id); err != nil {
		s.storeError(w, "delete project", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListBuildings(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	buildings, err := s.store.ListBuildings(r.Context(), projectID)
	if err != nil {
		s.storeError(w, "list buildings", err)
		return
	}
	s.writeJSON(w, http.StatusOK, buildings)
}

func (s *server) handleCreateBuilding(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var b estimate.Building
	if !s.decode(w, r, &b) {
		return
	}
	if strings.TrimSpace(b.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	b.ProjectID = projectID
	id, err := s.store.CreateBuilding(r.Context(), b)
	if err != nil {
		s.storeError(w, "create building", err)
		return
	}
	b.ID = id
	s.writeJSON(w, http.StatusCreated, b)
}

func (s *server) handleUpdateBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid building id")
		return
	}
	var b estimate.Building
	if !s.decode(w, r, &b) {
		return
	}
	b.ID = id
	if err := s.store.UpdateBuilding(r.Context(), b); err != nil {
		s.storeError(w, "update building", err)
		return
	}
	s.writeJSON(w, http.StatusOK, b)
}

func (s *server) handleDeleteBuilding(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid building id")
		return
	}
	if err := s.store.DeleteBuilding(r.Context(), id); err != nil {
		s.storeError(w, "delete building", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignSignRequest struct {
	SignTypeID  int64    `json:"sign_type_id"`
	Quantity    float64  `json:"quantity"`
	CustomPrice *float64 `json:"custom_price,omitempty"`
}

func (s *server) handleAssignSign(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid building id")
		return
	}
	var req assignSignRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if err := s.store.AssignSign(r.Context(), buildingID, req.SignTypeID, req.Quantity, req.CustomPrice); err != nil {
		s.storeError(w, "assign sign", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleUnassignSign(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := urlID(r, "id")
	signTypeID, ok2 := urlID(r, "signTypeID")
	if !ok || !ok2 {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.UnassignSign(r.Context(), buildingID, signTypeID); err != nil {
		s.storeError(w, "unassign sign", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignGroupRequest struct {
	GroupID  int64   `json:"group_id"`
	Quantity float64 `json:"quantity"`
}

func (s *server) handleAssignGroup(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid building id")
		return
	}
	var req assignGroupRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if err := s.store.AssignGroup(r.Context(), buildingID, req.GroupID, req.Quantity); err != nil {
		s.storeError(w, "assign group", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleUnassignGroup(w http.ResponseWriter, r *http.Request) {
	buildingID, ok := urlID(r, "id")
	groupID, ok2 := urlID(r, "groupID")
	if !ok || !ok2 {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.UnassignGroup(r.Context(), buildingID, groupID); err != nil {
		s.storeError(w, "unassign group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleBackup(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		s.storeError(w, "create backup dir", err)
		return
	}
	path := filepath.Join(s.backupDir, time.Now().Format("backup_20060102_150405.db"))
	if err := s.store.Backup(r.Context(), path); err != nil {
		s.storeError(w, "backup database", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"path": path})
}
