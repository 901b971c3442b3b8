package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"room-lease-backend/internal/lease"
	"room-lease-backend/internal/model"
	"room-lease-backend/internal/mw"
)

type createContractRequest struct {
	RoomID    string    `json:"room_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// PostContract handles POST /api/contracts. The tenant identity comes from
// the upstream auth headers; the contract starts Pending.
func (h *Handler) PostContract(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleTenant {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only tenants may request a lease"})
		return
	}

	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.lifecycle.Create(c.Request.Context(), req.RoomID, mw.CallerID(c), req.StartDate, req.EndDate)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// AcceptContract handles POST /api/contracts/:id/accept. Only the owner of
// the contract's room may accept.
func (h *Handler) AcceptContract(c *gin.Context) {
	if mw.CallerRole(c) != model.RoleOwner {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only owners may accept a contract"})
		return
	}

	contract, err := h.lifecycle.Accept(c.Request.Context(), c.Param("id"), mw.CallerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// GetContract handles GET /api/contracts/:id. Visible to the contract's
// tenant and to the owner of its room.
func (h *Handler) GetContract(c *gin.Context) {
	contract, err := h.store.ContractByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, mapStoreErr(err))
		return
	}

	callerID := mw.CallerID(c)
	switch mw.CallerRole(c) {
	case model.RoleTenant:
		if contract.TenantID != callerID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your contract"})
			return
		}
	case model.RoleOwner:
		if _, err := h.registry.VerifyOwnership(c.Request.Context(), contract.RoomID, callerID); err != nil {
			abortWithError(c, err)
			return
		}
	default:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, contract)
}

// ListContracts handles GET /api/contracts. The result set is shaped by the
// caller's role: tenants see their own contracts, owners see contracts on a
// room they own (?room_id=), anonymous callers see nothing.
func (h *Handler) ListContracts(c *gin.Context) {
	callerID := mw.CallerID(c)
	role := mw.CallerRole(c)
	roomID := c.Query("room_id")

	filter, ok := lease.ContractFilterForRole(callerID, role, roomID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "listing not permitted for this caller"})
		return
	}
	if role == model.RoleOwner {
		if _, err := h.registry.VerifyOwnership(c.Request.Context(), roomID, callerID); err != nil {
			abortWithError(c, err)
			return
		}
	}

	contracts, err := h.store.ContractsByFilter(c.Request.Context(), filter)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve contracts"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}
