package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter returns an engine with recovery, request IDs, request logging and the API
// routes registered.
func NewRouter(h *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/healthz", h.Healthz)

	api := r.Group("/api/v1")
	{
		crit := api.Group("/criteria")
		{
			crit.POST("/compile", h.Compile)
			crit.POST("/validate", h.Validate)
			crit.POST("/evaluate", h.Evaluate)
		}
		quotations := api.Group("/quotations")
		{
			quotations.POST("/parse", h.ParseQuotation)
			quotations.POST("/template", h.QuotationTemplate)
		}
		if h.backend != nil {
			vendors := api.Group("/vendors")
			{
				vendors.GET("/:id/zones", h.VendorZones)
				vendors.POST("/:id/quotation", h.PushQuotation)
			}
		}
	}
}
