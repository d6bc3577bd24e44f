package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	reportingService portssvc.ReportingService
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, rs portssvc.ReportingService) *accountHandler {
	return &accountHandler{
		accountService:   as,
		reportingService: rs,
	}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, reportingService portssvc.ReportingService) {
	RegisterValidators()
	h := newAccountHandler(accountService, reportingService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/tree", h.getAccountTree)
		accounts.POST("/seed", h.seedDefaultAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
		accounts.GET("/:id/balance", h.getAccountBalance)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account in the caller's tenant, optionally under a parent account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	tenantID, userID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "request format", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("type", string(req.AccountType)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), tenantID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the tenant's accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   type query string false "Account type filter"
// @Param   isActive query bool false "Active flag filter"
// @Param   leafOnly query bool false "Only accounts that accept journal lines"
// @Param   search query string false "Matches code or name"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccountTree godoc
// @Summary Get the chart of accounts as a tree
// @Description Returns the active accounts grouped per type, children ordered by code
// @Tags accounts
// @Produce  json
// @Success 200 {object} domain.AccountTree
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build account tree"
// @Security BearerAuth
// @Router /accounts/tree [get]
func (h *accountHandler) getAccountTree(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}

	tree, err := h.accountService.GetAccountTree(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to build account tree")
		return
	}
	c.JSON(http.StatusOK, tree)
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies a partial update. Changing parentId moves the subtree.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Type or nature change not allowed"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	tenantID, userID, ok := requestActor(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, "request format", err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Removes an account that has no children and no journal lines
// @Tags accounts
// @Param   id path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Account has children or journal lines"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	tenantID, userID, ok := requestActor(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), tenantID, c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// seedDefaultAccounts godoc
// @Summary Seed the default chart of accounts
// @Description Upserts the default chart template by account code
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.SeedAccountsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to seed accounts"
// @Security BearerAuth
// @Router /accounts/seed [post]
func (h *accountHandler) seedDefaultAccounts(c *gin.Context) {
	tenantID, userID, ok := requestActor(c)
	if !ok {
		return
	}

	result, err := h.accountService.SeedDefaultAccounts(c.Request.Context(), tenantID, userID)
	if err != nil {
		respondError(c, err, "Failed to seed accounts")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Default chart seeded",
		slog.Int("created", result.Created), slog.Int("updated", result.Updated))
	c.JSON(http.StatusOK, dto.SeedAccountsResponse{Created: result.Created, Updated: result.Updated})
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Returns the signed cumulative balance of posted lines up to asOfDate
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   asOfDate query string true "Cut-off date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to calculate balance"
// @Security BearerAuth
// @Router /accounts/{id}/balance [get]
func (h *accountHandler) getAccountBalance(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}
	var q dto.AsOfQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, "query parameters", err)
		return
	}

	balance, err := h.reportingService.AccountBalance(c.Request.Context(), tenantID, c.Param("id"), q.AsOfDate)
	if err != nil {
		respondError(c, err, "Failed to calculate balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountBalanceResponse(balance))
}
