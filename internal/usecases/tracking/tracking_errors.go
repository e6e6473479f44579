package tracking

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de rastreamento de canais
var (
	// Erros de validação
	ErrTierNotFound    = errors.New("subscription tier not found")
	ErrProgramNotFound = errors.New("affiliate program not found")
	ErrInvalidAmount   = errors.New("amount must be non-negative")
	ErrInvalidPlatform = errors.New("ad platform not supported")

	// Erros internos
	ErrGenerateID = errors.New("error generating campaign ID")
)

// BillingError indica falha do provedor de pagamento. Nenhuma métrica local
// é alterada quando este erro é retornado.
type BillingError struct {
	Err     error  // Erro do provedor
	Step    string // Etapa da integração que falhou
	Details string
}

// Error implementa a interface error
func (e *BillingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("billing provider failure at %s: %s: %s", e.Step, e.Err.Error(), e.Details)
	}
	return fmt.Sprintf("billing provider failure at %s: %s", e.Step, e.Err.Error())
}

// Unwrap retorna o erro subjacente
func (e *BillingError) Unwrap() error {
	return e.Err
}

// NewBillingError cria um novo BillingError
func NewBillingError(err error, step string) *BillingError {
	return &BillingError{
		Err:  err,
		Step: step,
	}
}
