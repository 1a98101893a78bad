package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/assets/:manage_number", h.getAsset)
	api.POST("/reports", h.createReport)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
