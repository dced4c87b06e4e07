package handler

import (
	"net/http"

	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/domain/usecase/paymentmethod"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PaymentMethodHandler handles payment rail catalog HTTP requests
type PaymentMethodHandler struct {
	registry *paymentmethod.Registry
	logger   coreport.Logger
}

// NewPaymentMethodHandler creates a new payment method handler instance
func NewPaymentMethodHandler(registry *paymentmethod.Registry, logger coreport.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListPaymentMethods handles the GET /payment-methods endpoint
func (h *PaymentMethodHandler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.registry.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.PaymentMethodListResponse{
		PaymentMethods: make([]dto.PaymentMethodResponse, 0, len(methods)),
	}
	for i := range methods {
		response.PaymentMethods = append(response.PaymentMethods, dto.FromPaymentMethod(&methods[i]))
	}

	c.JSON(http.StatusOK, response)
}
