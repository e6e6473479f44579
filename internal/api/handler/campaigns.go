package handler

import (
	"net/http"

	"github.com/vfg2006/revenue-engine-api/internal/domain"
	"github.com/vfg2006/revenue-engine-api/internal/registry"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/revenue-engine-api/pkg/apiErrors"
)

// CreateCampaign cria uma nova campanha de anúncios
func CreateCampaign(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec domain.AdCampaignSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if spec.Name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "name é obrigatório", nil)
			return
		}

		campaign, err := service.CreateAdCampaign(spec)
		if err != nil {
			writeTrackingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, campaign)
	}
}

// ListCampaigns lista campanhas, opcionalmente filtradas por plataforma
func ListCampaigns(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform := r.URL.Query().Get("platform")

		var campaigns []*domain.AdCampaign
		if platform != "" {
			if !domain.IsValidAdPlatform(domain.AdPlatform(platform)) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidPlatform, "Plataforma de anúncios não suportada", nil)
				return
			}
			campaigns = reg.CampaignsByPlatform(domain.AdPlatform(platform))
		} else {
			campaigns = reg.AllCampaigns()
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, campaigns)
	}
}
