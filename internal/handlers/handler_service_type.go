package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/parish_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/parish_ledger_app/internal/dto"
	"github.com/SscSPs/parish_ledger_app/internal/middleware"
)

// serviceTypeHandler handles HTTP requests for the payment category reference data.
type serviceTypeHandler struct {
	serviceTypeService portssvc.ServiceTypeSvcFacade
}

// registerServiceTypeRoutes wires the service type endpoints into the v1 group.
func registerServiceTypeRoutes(rg *gin.RouterGroup, serviceTypeService portssvc.ServiceTypeSvcFacade) {
	h := &serviceTypeHandler{serviceTypeService: serviceTypeService}

	rg.GET("/service-types", h.listServiceTypes)
}

func (h *serviceTypeHandler) listServiceTypes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	types, err := h.serviceTypeService.ListServiceTypes(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list service types")
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceTypes": dto.ToServiceTypeResponses(types)})
}
