package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidAmount       = "VAL_003" // Valor monetário negativo

	// Erros de domínio de receita (REV)
	ErrTierNotFound    = "REV_001" // Plano de assinatura não encontrado
	ErrProgramNotFound = "REV_002" // Programa de afiliados não encontrado
	ErrInvalidPlatform = "REV_003" // Plataforma de anúncios não suportada
	ErrStreamNotFound  = "REV_004" // Fluxo de receita não encontrado

	// Erros do servidor (SRV)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro no provedor de pagamento
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidAmount:       http.StatusBadRequest,
	ErrTierNotFound:        http.StatusNotFound,
	ErrProgramNotFound:     http.StatusNotFound,
	ErrInvalidPlatform:     http.StatusBadRequest,
	ErrStreamNotFound:      http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
