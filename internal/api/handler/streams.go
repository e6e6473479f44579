package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/projecting"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/revenue-engine-api/pkg/apiErrors"
)

// RegisterStream insere ou substitui um fluxo de receita
func RegisterStream(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var stream domain.RevenueStream
		if err := json.NewDecoder(r.Body).Decode(&stream); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if stream.ID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "id é obrigatório", nil)
			return
		}

		stored := service.RegisterStream(stream)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, stored)
	}
}

// ListStreams retorna todos os fluxos de receita na ordem de inserção
func ListStreams(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, reg.AllStreams())
	}
}

// GetStream retorna um fluxo de receita específico
func GetStream(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		stream, ok := reg.GetStream(id)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrStreamNotFound, "Fluxo de receita não encontrado", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, stream)
	}
}

// GetRevenueMetrics retorna os totais, fluxos e projeções correntes
func GetRevenueMetrics(projector projecting.Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, projector.GetRevenueMetrics())
	}
}

// GetRevenueProjections retorna as projeções diária, mensal e anual
func GetRevenueProjections(projector projecting.Projector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, projector.GetRevenueProjections())
	}
}
