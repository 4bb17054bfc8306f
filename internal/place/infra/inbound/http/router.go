package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/hexaplaces/internal/shared/infra/web"
)

// RegisterPlaceRoutes registra las rutas HTTP para el dominio de Lugares.
func RegisterPlaceRoutes(r gin.IRouter, handler *PlaceHandler) {
	places := r.Group("/places")
	{
		places.GET("", web.FiltersFromQuery(handler.schema), handler.FindPlaces)       // Listar con filtros en la query string
		places.POST("/query", web.FiltersFromBody(handler.schema), handler.FindPlaces) // Listar con filtros en el cuerpo
		places.POST("", handler.CreatePlace)
		places.GET("/:id", handler.GetPlace)
		places.PUT("/:id", handler.UpdatePlace)
		places.DELETE("/:id", handler.DeletePlace)
	}
}
