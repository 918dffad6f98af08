package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
	"github.com/eggnunes/crmidea-sub000/internal/importer"
)

type PresetHandler struct {
	presetRepo entity.MappingPresetRepositoryInterface
}

func NewPresetHandler(presetRepo entity.MappingPresetRepositoryInterface) *PresetHandler {
	return &PresetHandler{presetRepo: presetRepo}
}

type CreatePresetRequest struct {
	Name    string            `json:"name"`
	Columns map[string]string `json:"columns"`
}

func (h *PresetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID := r.Header.Get("X-User-ID")
	if ownerID == "" {
		http.Error(w, "cabeçalho X-User-ID é obrigatório", http.StatusUnauthorized)
		return
	}

	presets, err := h.presetRepo.ListByOwner(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "falha ao listar presets", http.StatusInternalServerError)
		return
	}
	if presets == nil {
		presets = []*entity.MappingPreset{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(presets)
}

func (h *PresetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID := r.Header.Get("X-User-ID")
	if ownerID == "" {
		http.Error(w, "cabeçalho X-User-ID é obrigatório", http.StatusUnauthorized)
		return
	}

	var req CreatePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "nome do preset é obrigatório", http.StatusBadRequest)
		return
	}

	// Normaliza pelo ColumnMapping: só os nove campos lógicos sobrevivem.
	mapping := importer.MappingFromMap(req.Columns)
	preset := entity.NewMappingPreset(ownerID, req.Name, mapping.ToMap())

	if err := h.presetRepo.Create(r.Context(), preset); err != nil {
		http.Error(w, "falha ao salvar preset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(preset)
}

func (h *PresetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID := r.Header.Get("X-User-ID")
	if ownerID == "" {
		http.Error(w, "cabeçalho X-User-ID é obrigatório", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "presetId")
	if err := h.presetRepo.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "preset não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "falha ao remover preset", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
