package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/revenue-engine-api/internal/usecases/tracking"
	"github.com/vfg2006/revenue-engine-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, payload any) {
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("Erro ao serializar resposta")
	}
}

// writeTrackingError converte erros do usecase de rastreamento para a resposta da API
func writeTrackingError(w http.ResponseWriter, err error) {
	var billingErr *tracking.BillingError

	switch {
	case errors.Is(err, tracking.ErrTierNotFound):
		apiErrors.WriteError(w, apiErrors.ErrTierNotFound, "Plano de assinatura não encontrado", nil)
	case errors.Is(err, tracking.ErrProgramNotFound):
		apiErrors.WriteError(w, apiErrors.ErrProgramNotFound, "Programa de afiliados não encontrado", nil)
	case errors.Is(err, tracking.ErrInvalidAmount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidAmount, "Valor deve ser não-negativo", nil)
	case errors.Is(err, tracking.ErrInvalidPlatform):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPlatform, "Plataforma de anúncios não suportada", nil)
	case errors.As(err, &billingErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Falha no provedor de pagamento", billingErr.Error())
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

type subscriptionChangeRequest struct {
	TierID    string `json:"tier_id"`
	UserDelta int    `json:"user_delta"`
}

// RecordSubscriptionChange aplica um delta de usuários a um plano de assinatura
func RecordSubscriptionChange(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscriptionChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.TierID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "tier_id é obrigatório", nil)
			return
		}

		tier, err := service.RecordSubscriptionChange(req.TierID, req.UserDelta)
		if err != nil {
			writeTrackingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, tier)
	}
}

type subscribeCustomerRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	TierID string `json:"tier_id"`
}

// SubscribeCustomer cria cliente e assinatura no provedor de pagamento
func SubscribeCustomer(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscribeCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.Email == "" || req.TierID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "email e tier_id são obrigatórios", nil)
			return
		}

		result, err := service.SubscribeCustomer(r.Context(), req.Email, req.Name, req.TierID)
		if err != nil {
			logrus.WithError(err).Error("Erro ao criar assinatura")
			writeTrackingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, result)
	}
}

type affiliateSaleRequest struct {
	ProgramID   string  `json:"program_id"`
	AffiliateID string  `json:"affiliate_id"`
	Amount      float64 `json:"amount"`
}

// RecordAffiliateSale registra uma venda de afiliado e sua comissão
func RecordAffiliateSale(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req affiliateSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if req.ProgramID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "program_id é obrigatório", nil)
			return
		}

		result, err := service.RecordAffiliateSale(req.ProgramID, req.AffiliateID, req.Amount)
		if err != nil {
			writeTrackingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, result)
	}
}

type marketplaceTransactionRequest struct {
	SellerID string  `json:"seller_id"`
	BuyerID  string  `json:"buyer_id"`
	Amount   float64 `json:"amount"`
}

// RecordMarketplaceTransaction registra uma transação do marketplace
func RecordMarketplaceTransaction(service tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req marketplaceTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		result, err := service.RecordMarketplaceTransaction(req.SellerID, req.BuyerID, req.Amount)
		if err != nil {
			writeTrackingError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		writeJSON(w, result)
	}
}
