package handler

import (
	"net/http"
	"strconv"

	"github.com/propstake/token-ledger/internal/domain/entity"
	domainerr "github.com/propstake/token-ledger/internal/domain/error"
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	accountUseCase "github.com/propstake/token-ledger/internal/domain/usecase/account"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles token account HTTP requests
type AccountHandler struct {
	accountService *accountUseCase.UseCase
	historyService *accountUseCase.HistoryUseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(
	accountService *accountUseCase.UseCase,
	historyService *accountUseCase.HistoryUseCase,
	logger coreport.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		historyService: historyService,
		logger:         logger,
	}
}

// GetAccount handles the GET /tokens/account endpoint
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, role := callerIdentity(c)

	view, err := h.accountService.GetAccount(c.Request.Context(), userID, entity.Role(role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccountView(view))
}

// ListTransactions handles the GET /tokens/transactions endpoint
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	userID, role := callerIdentity(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	txns, err := h.historyService.ListTransactions(c.Request.Context(), userID, entity.Role(role), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
	}
	for i := range txns {
		response.Transactions = append(response.Transactions, dto.FromTransaction(&txns[i]))
	}

	c.JSON(http.StatusOK, response)
}
