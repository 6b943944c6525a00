package handler

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置路由
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.New()

	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware())
	r.Use(CORSMiddleware())

	r.GET("/", h.Health)
	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		orders := api.Group("/orders")
		{
			orders.POST("/create", h.CreateOrder)
			orders.GET("/:id", h.GetOrder)
		}

		payment := api.Group("/payment")
		{
			payment.POST("/init", h.InitPayment)
			payment.POST("/callback", h.PaymentCallback)
		}
	}

	return r
}
