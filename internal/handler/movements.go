package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/apierror"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/middleware"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/service"
)

type MovementHandler struct{ svc service.MovementService }

func NewMovementHandler(svc service.MovementService) *MovementHandler {
	return &MovementHandler{svc: svc}
}

// Add godoc
// @Summary Records a cash withdrawal against the open drawer
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddMovementRequest true "Movement data"
// @Success 201 {object} dto.MovementResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/movements [post]
func (h *MovementHandler) Add(c *gin.Context) {
	var req dto.AddMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	createdBy := "unknown"
	if claims := middleware.GetClaims(c); claims != nil && claims.Name != "" {
		createdBy = claims.Name
	}
	resp, err := h.svc.Add(c.Request.Context(), createdBy, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete godoc
// @Summary Deletes a movement while its drawer is still open
// @Tags movements
// @Security BearerAuth
// @Param id path string true "Movement ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/movements/{id} [delete]
func (h *MovementHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid movement id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByDrawer godoc
// @Summary Lists all movements of a drawer with their running total
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param id path string true "Drawer ID"
// @Success 200 {object} dto.MovementListResponse
// @Router /v1/drawers/{id}/movements [get]
func (h *MovementHandler) ListByDrawer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid drawer id"))
		return
	}
	resp, err := h.svc.ListByDrawer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
