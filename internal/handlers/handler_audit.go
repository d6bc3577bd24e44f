package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type auditHandler struct {
	auditService portssvc.AuditService
}

func newAuditHandler(as portssvc.AuditService) *auditHandler {
	return &auditHandler{auditService: as}
}

// RegisterAuditRoutes registers routes that read the audit chain
func RegisterAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditService) {
	h := newAuditHandler(auditService)

	auditGroup := rg.Group("/audit")
	{
		auditGroup.GET("/verify", h.verifyChain)
	}
}

// verifyChain godoc
// @Summary Verify the audit chain
// @Description Re-hashes the tenant's audit log and reports the first broken record, if any
// @Tags audit
// @Produce json
// @Success 200 {object} domain.AuditChainReport
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to verify audit chain"
// @Security BearerAuth
// @Router /audit/verify [get]
func (h *auditHandler) verifyChain(c *gin.Context) {
	tenantID, _, ok := requestActor(c)
	if !ok {
		return
	}

	report, err := h.auditService.VerifyAuditChain(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err, "Failed to verify audit chain")
		return
	}
	c.JSON(http.StatusOK, report)
}
