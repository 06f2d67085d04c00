package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/parish_ledger_app/internal/core/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, svc *services.Container) {
	r.GET("/", home)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, svc)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, svc *services.Container) {
	v1 := r.Group("/api/v1")

	registerPaymentRoutes(v1, svc.Ledger)
	registerDayLockRoutes(v1, svc.DayLock)
	registerMembershipRoutes(v1, svc.Membership)
	registerServiceTypeRoutes(v1, svc.ServiceType)
}
