package handler

import (
	"net/http"
	"strconv"

	"github.com/propstake/token-ledger/internal/domain/entity"
	domainerr "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	purchaseUseCase "github.com/propstake/token-ledger/internal/domain/usecase/purchase"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles back-office HTTP requests
type AdminHandler struct {
	purchaseService *purchaseUseCase.Service
	logger          coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(purchaseService *purchaseUseCase.Service, logger coreport.Logger) *AdminHandler {
	return &AdminHandler{
		purchaseService: purchaseService,
		logger:          logger,
	}
}

// ResolveTransaction handles the PUT /admin/transactions/:id/status endpoint.
// Back-office staff use it to complete or reject manually verified purchases.
func (h *AdminHandler) ResolveTransaction(c *gin.Context) {
	idParam := c.Param("id")
	transactionID, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid transaction ID format",
		})
		return
	}

	var req dto.ResolveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid request format: " + err.Error(),
		})
		return
	}

	if err := h.purchaseService.Resolve(c.Request.Context(), transactionID, entity.TransactionStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Transaction resolved by back office", map[string]any{
		"transaction_id": transactionID,
		"status":         req.Status,
	})

	c.JSON(http.StatusOK, dto.ResolveTransactionResponse{
		TransactionID: transactionID,
		Status:        req.Status,
	})
}
