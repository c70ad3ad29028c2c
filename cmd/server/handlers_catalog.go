package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/signworks/estimator/internal/estimate"
	"github.com/signworks/estimator/internal/store"
)

func (s *server) handleListSignTypes(w http.ResponseWriter, r *http.Request) {
	signTypes, err := s.store.ListSignTypes(r.Context())
	if err != nil {
		s.storeError(w, "list sign types", err)
		return
	}
	s.writeJSON(w, http.StatusOK, signTypes)
}

func (s *server) handleCreateSignType(w http.ResponseWriter, r *http.Request) {
	var st estimate.SignType
	if !s.decode(w, r, &st) {
		return
	}
	if strings.TrimSpace(st.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.CreateSignType(r.Context(), st)
	if err != nil {
		s.storeError(w, "create sign type", err)
		return
	}
	st.ID = id
	s.writeJSON(w, http.StatusCreated, st)
}

func (s *server) handleUpdateSignType(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign type id")
		return
	}
	var st estimate.SignType
	if !s.decode(w, r, &st) {
		return
	}
	st.ID = id
	if err := s.store.UpdateSignType(r.Context(), st); err != nil {
		s.storeError(w, "update sign type", err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *server) handleDeleteSignType(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign type id")
		return
	}
	if err := s.store.DeleteSignType(r.Context(), id); err != nil {
		s.storeError(w, "delete sign type", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSignCost returns the standalone diagnostic cost record with every
// applicable pricing method and the preferred one.
func (s *server) handleSignCost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign type id")
		return
	}
	quantity := 1.0
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid quantity")
			return
		}
		quantity = parsed
	}

	cost, err := s.engine.SignCost(r.Context(), id, quantity)
	if err != nil {
		s.storeError(w, "compute sign cost", err)
		return
	}
	if cost == nil {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}

	response := map[string]any{"cost": cost}
	if best, ok := estimate.BestMethod(cost.Methods); ok {
		response["best_method"] = best
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *server) handleListSignGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.ListSignGroups(r.Context())
	if err != nil {
		s.storeError(w, "list sign groups", err)
		return
	}
	s.writeJSON(w, http.StatusOK, groups)
}

func (s *server) handleCreateSignGroup(w http.ResponseWriter, r *http.Request) {
	var g store.SignGroup
	if !s.decode(w, r, &g) {
		return
	}
	if strings.TrimSpace(g.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.CreateSignGroup(r.Context(), g)
	if err != nil {
		s.storeError(w, "create sign group", err)
		return
	}
	g.ID = id
	s.writeJSON(w, http.StatusCreated, g)
}

func (s *server) handleUpdateSignGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign group id")
		return
	}
	var g store.SignGroup
	if !s.decode(w, r, &g) {
		return
	}
	g.ID = id
	if err := s.store.UpdateSignGroup(r.Context(), g); err != nil {
		s.storeError(w, "update sign group", err)
		return
	}
	s.writeJSON(w, http.StatusOK, g)
}

func (s *server) handleDeleteSignGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign group id")
		return
	}
	if err := s.store.DeleteSignGroup(r.Context(), id); err != nil {
		s.storeError(w, "delete sign group", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListGroupMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign group id")
		return
	}
	members, err := s.store.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		s.storeError(w, "list group members", err)
		return
	}
	s.writeJSON(w, http.StatusOK, members)
}

type addMemberRequest struct {
	SignTypeID int64   `json:"sign_type_id"`
	Quantity   float64 `json:"quantity"`
}

func (s *server) handleAddGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid sign group id")
		return
	}
	var req addMemberRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if err := s.store.AddGroupMember(r.Context(), groupID, req.SignTypeID, req.Quantity); err != nil {
		s.storeError(w, "add group member", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *server) handleRemoveGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := urlID(r, "id")
	signTypeID, ok2 := urlID(r, "signTypeID")
	if !ok || !ok2 {
		s.writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.RemoveGroupMember(r.Context(), groupID, signTypeID); err != nil {
		s.storeError(w, "remove group member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	materials, err := s.store.ListMaterials(r.Context())
	if err != nil {
		s.storeError(w, "list materials", err)
		return
	}
	s.writeJSON(w, http.StatusOK, materials)
}

func (s *server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	var m store.Material
	if !s.decode(w, r, &m) {
		return
	}
	if strings.TrimSpace(m.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "material_name is required")
		return
	}
	id, err := s.store.CreateMaterial(r.Context(), m)
	if err != nil {
		s.storeError(w, "create material", err)
		return
	}
	m.ID = id
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *server) handleUpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}
	var m store.Material
	if !s.decode(w, r, &m) {
		return
	}
	m.ID = id
	if err := s.store.UpdateMaterial(r.Context(), m); err != nil {
		s.storeError(w, "update material", err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}
	if err := s.store.DeleteMaterial(r.Context(), id); err != nil {
		s.storeError(w, "delete material", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleRecalcMaterials(w http.ResponseWriter, r *http.Request) {
	updated, err := s.store.RecalcPricesFromMaterials(r.Context())
	if err != nil {
		s.storeError(w, "recalc sign prices", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (s *server) handleListPricingProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.ListPricingProfiles(r.Context())
	if err != nil {
		s.storeError(w, "list pricing profiles", err)
		return
	}
	s.writeJSON(w, http.StatusOK, profiles)
}

func (s *server) handleCreatePricingProfile(w http.ResponseWriter, r *http.Request) {
	var p estimate.PricingProfile
	if !s.decode(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	id, err := s.store.CreatePricingProfile(r.Context(), p)
	if err != nil {
		s.storeError(w, "create pricing profile", err)
		return
	}
	p.ID = id
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleUpdatePricingProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid pricing profile id")
		return
	}
	var p estimate.PricingProfile
	if !s.decode(w, r, &p) {
		return
	}
	p.ID = id
	if err := s.store.UpdatePricingProfile(r.Context(), p); err != nil {
		s.storeError(w, "update pricing profile", err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *server) handleDeletePricingProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid pricing profile id")
		return
	}
	if err := s.store.DeletePricingProfile(r.Context(), id); err != nil {
		s.storeError(w, "delete pricing profile", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
