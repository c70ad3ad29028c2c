package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/signworks/estimator/internal/estimate"
	"github.com/signworks/estimator/internal/export"
)

func (s *server) handleProjectEstimate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	items, err := s.engine.ProjectEstimate(r.Context(), projectID)
	if err != nil {
		s.storeError(w, "compute estimate", err)
		return
	}
	if items == nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

type customEstimateRequest struct {
	BuildingIDs []int64                `json:"building_ids,omitempty"`
	PriceMode   estimate.PriceMode     `json:"price_mode"`
	InstallMode estimate.InstallMode   `json:"install_mode"`
	Install     estimate.InstallParams `json:"install_params"`
	ReturnMeta  bool                   `json:"return_meta"`
}

type customEstimateResponse struct {
	Items []estimate.LineItem `json:"items"`
	Meta  *estimate.Meta      `json:"meta,omitempty"`
}

func (s *server) handleCustomEstimate(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	var req customEstimateRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.PriceMode == "" {
		req.PriceMode = estimate.PriceModeUnit
	}
	if req.InstallMode == "" {
		req.InstallMode = estimate.InstallModeNone
	}

	items, meta, err := s.engine.CustomEstimate(r.Context(), estimate.CustomRequest{
		ProjectID:   projectID,
		BuildingIDs: req.BuildingIDs,
		PriceMode:   req.PriceMode,
		InstallMode: req.InstallMode,
		Install:     req.Install,
	})
	if err != nil {
		s.storeError(w, "compute custom estimate", err)
		return
	}
	if items == nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	resp := customEstimateResponse{Items: items}
	if req.ReturnMeta {
		resp.Meta = meta
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleEstimateExport(w http.ResponseWriter, r *http.Request) {
	projectID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return
	}
	project, err := s.store.ProjectByID(r.Context(), projectID)
	if err != nil {
		s.storeError(w, "get project", err)
		return
	}
	if project == nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	items, err := s.engine.ProjectEstimate(r.Context(), projectID)
	if err != nil {
		s.storeError(w, "compute estimate", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.Name+"_estimate.xlsx"))
	if err := export.WriteEstimate(w, project.Name, items); err != nil {
		s.log.Error("failed to write estimate workbook", zap.Error(err))
	}
}
