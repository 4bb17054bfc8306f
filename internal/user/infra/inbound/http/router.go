package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexaplaces/internal/shared/infra/web"
)

func RegisterUserRoutes(r gin.IRouter, handler *UserHandler) {
	users := r.Group("/users")
	{
		users.GET("", web.FiltersFromQuery(handler.schema), handler.FindUsers)
		users.POST("/query", web.FiltersFromBody(handler.schema), handler.FindUsers)
		users.POST("", handler.CreateUser)
		users.GET("/:id", handler.GetUser)
		users.PUT("/:id", handler.UpdateUser)
		users.DELETE("/:id", handler.DeleteUser)
	}
}
