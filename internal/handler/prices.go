package handler

import (
	"net/http"
	"time"

	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

// PricesHandler serves the price list of a supplier.
type PricesHandler struct{ svc service.PriceService }

func NewPricesHandler(svc service.PriceService) *PricesHandler {
	return &PricesHandler{svc: svc}
}

// Add godoc
// @Summary      Add a supplier price
// @Description  Rejects periods that overlap an existing price of the same supplier and product.
// @Tags         prices
// @Accept       json
// @Produce      json
// @Param        supplierId  path     string                  true  "Supplier UUID"
// @Param        body        body     dto.CreatePriceRequest  true  "Price"
// @Success      201         {object} dto.PriceResponse
// @Failure      400         {object} apierror.APIError
// @Failure      404         {object} apierror.APIError
// @Failure      409         {object} apierror.APIError
// @Router       /api/v1/suppliers/{supplierId}/prices [post]
func (h *PricesHandler) Add(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId", "supplier")
	if !ok {
		return
	}
	var req dto.CreatePriceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPrice(c.Request.Context(), supplierID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PricesHandler) List(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId", "supplier")
	if !ok {
		return
	}
	var filter dto.PriceFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListPrices(c.Request.Context(), supplierID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricesHandler) ListActive(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId", "supplier")
	if !ok {
		return
	}
	var q dto.ActivePriceQuery
	if !bindQuery(c, &q) {
		return
	}
	var day *time.Time
	if q.Date != "" {
		// already checked by the datetime tag
		d, _ := time.Parse(dto.DateLayout, q.Date)
		day = &d
	}
	resp, err := h.svc.ListActivePrices(c.Request.Context(), supplierID, day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PricesHandler) Delete(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId", "supplier")
	if !ok {
		return
	}
	priceID, ok := uuidParam(c, "priceId", "price")
	if !ok {
		return
	}
	if err := h.svc.DeletePrice(c.Request.Context(), supplierID, priceID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
