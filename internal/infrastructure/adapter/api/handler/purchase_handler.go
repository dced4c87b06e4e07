package handler

import (
	"net/http"

	"github.com/propstake/token-ledger/internal/domain/entity"
	domainerr "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	purchaseUseCase "github.com/propstake/token-ledger/internal/domain/usecase/purchase"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles token purchase and spend HTTP requests
type PurchaseHandler struct {
	purchaseService *purchaseUseCase.Service
	logger          coreport.Logger
}

// NewPurchaseHandler creates a new purchase handler instance
func NewPurchaseHandler(purchaseService *purchaseUseCase.Service, logger coreport.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
		logger:          logger,
	}
}

// Purchase handles the POST /tokens/purchase endpoint
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid purchase request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	userID, role := callerIdentity(c)
	result, err := h.purchaseService.Purchase(
		c.Request.Context(),
		userID,
		entity.Role(role),
		req.TokenAmount,
		req.PaymentMethod,
		req.PaymentReference,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromPurchaseResult(result))
}

// Spend handles the POST /tokens/spend endpoint
func (h *PurchaseHandler) Spend(c *gin.Context) {
	var req dto.SpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid spend request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	userID, role := callerIdentity(c)
	result, err := h.purchaseService.Spend(
		c.Request.Context(),
		userID,
		entity.Role(role),
		req.TokenAmount,
		req.Description,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromSpendResult(result))
}
