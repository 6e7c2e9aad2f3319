package handler

import (
	"fmt"
	"net/http"

	"fruitwarehouse/internal/dto"
	"fruitwarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Get godoc
// @Summary      Delivery report
// @Description  Summary or detailed delivery report for an inclusive date range, rendered as JSON, CSV, PDF or XLSX.
// @Tags         reports
// @Produce      json,text/csv,application/pdf
// @Param        startDate  query    string  true   "Start date (YYYY-MM-DD)"
// @Param        endDate    query    string  true   "End date (YYYY-MM-DD)"
// @Param        detailed   query    bool    false  "One row per delivery item"
// @Param        format     query    string  false  "JSON (default), CSV, PDF or XLSX"
// @Success      200        {object} dto.ReportResponse
// @Failure      400        {object} apierror.APIError
// @Router       /api/v1/reports [get]
func (h *ReportsHandler) Get(c *gin.Context) {
	var req dto.ReportRequest
	if !bindQuery(c, &req) {
		return
	}
	doc, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	if doc.FileName != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	}
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
