package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/apierror"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/service"
)

type DrawerHandler struct{ svc service.DrawerService }

func NewDrawerHandler(svc service.DrawerService) *DrawerHandler {
	return &DrawerHandler{svc: svc}
}

// Open godoc
// @Summary Opens a new cash drawer session
// @Tags drawers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenDrawerRequest true "Opening data"
// @Success 201 {object} dto.DrawerResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/drawers/open [post]
func (h *DrawerHandler) Open(c *gin.Context) {
	var req dto.OpenDrawerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Closes a drawer session and freezes the reconciliation
// @Tags drawers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Drawer ID"
// @Param body body dto.CloseDrawerRequest true "Declared closing amount"
// @Success 200 {object} dto.CloseDrawerResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/drawers/{id}/close [post]
func (h *DrawerHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid drawer id"))
		return
	}
	var req dto.CloseDrawerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetActive godoc
// @Summary Returns the currently open drawer with its live summary
// @Tags drawers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DrawerSummaryResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/drawers/active [get]
func (h *DrawerHandler) GetActive(c *gin.Context) {
	resp, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Returns the reconciliation summary of any drawer, open or closed
// @Tags drawers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Drawer ID"
// @Success 200 {object} dto.DrawerSummaryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/drawers/{id}/summary [get]
func (h *DrawerHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid drawer id"))
		return
	}
	resp, err := h.svc.Summarize(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary Lists past drawer sessions with filters and pagination
// @Tags drawers
// @Produce json
// @Security BearerAuth
// @Param operator query string false "Filter by operator name (partial match)"
// @Param status query string false "open | closed | all"
// @Param date_from query string false "YYYY-MM-DD"
// @Param date_to query string false "YYYY-MM-DD"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.DrawerListResponse
// @Router /v1/drawers [get]
func (h *DrawerHandler) History(c *gin.Context) {
	var filter dto.DrawerHistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
