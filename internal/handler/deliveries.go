package handler

import (
	"net/http"

	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type DeliveriesHandler struct{ svc service.DeliveryService }

func NewDeliveriesHandler(svc service.DeliveryService) *DeliveriesHandler {
	return &DeliveriesHandler{svc: svc}
}

// Create godoc
// @Summary      Register a delivery
// @Description  Prices every item with the supplier price active on the delivery date and stores the delivery with its items in one transaction.
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        body  body     dto.CreateDeliveryRequest  true  "Delivery"
// @Success      201   {object} dto.DeliveryResponse
// @Failure      400   {object} apierror.ValidationError
// @Failure      404   {object} apierror.APIError
// @Router       /api/v1/deliveries [post]
func (h *DeliveriesHandler) Create(c *gin.Context) {
	var req dto.CreateDeliveryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetByID godoc
// @Summary      Get a delivery
// @Tags         deliveries
// @Produce      json
// @Param        id   path     string  true  "Delivery UUID"
// @Success      200  {object} dto.DeliveryResponse
// @Failure      404  {object} apierror.APIError
// @Router       /api/v1/deliveries/{id} [get]
func (h *DeliveriesHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id", "delivery")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeliveriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *DeliveriesHandler) ListBySupplier(c *gin.Context) {
	supplierID, ok := uuidParam(c, "supplierId", "supplier")
	if !ok {
		return
	}
	resp, err := h.svc.ListBySupplier(c.Request.Context(), supplierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
