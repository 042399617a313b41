package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/apierror"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/dto"
	"github.com/Nahuel-199/eze-maxikiosco-sub000/internal/service"
)

type SaleHandler struct{ svc service.SaleService }

func NewSaleHandler(svc service.SaleService) *SaleHandler {
	return &SaleHandler{svc: svc}
}

// Process godoc
// @Summary Processes a sale: ticket, line items and stock in one transaction
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ProcessSaleRequest true "Sale data"
// @Success 201 {object} dto.SaleResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/sales [post]
func (h *SaleHandler) Process(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcessSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lists sales, by drawer or by date (defaults to today)
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param drawer_id query string false "Drawer ID"
// @Param date query string false "YYYY-MM-DD"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.SaleListResponse
// @Router /v1/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid query: "+err.Error()))
		return
	}
	if err := validate.Struct(filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
