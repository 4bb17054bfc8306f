// en pkg/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse define la estructura estándar para las respuestas de error.
type ErrorResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse es el sobre de los listados.
type PaginatedResponse struct {
	Page       int   `json:"page"`
	TotalPages int64 `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
	Data       any   `json:"data"`
}

// SendSuccess envía una respuesta exitosa con un payload de datos.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"data": data,
	})
}

// SendPaginated envía un listado paginado.
func SendPaginated(c *gin.Context, page int, totalPages, totalCount int64, data any) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Page:       page,
		TotalPages: totalPages,
		TotalCount: totalCount,
		Data:       data,
	})
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error": ErrorResponse{
			Message: message,
		},
	})
}

// SendUnprocessable responde 422 con el detalle por campo.
func SendUnprocessable(c *gin.Context, message string, details any) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"error":   message,
		"details": details,
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendConflict(c *gin.Context, message string) {
	SendError(c, http.StatusConflict, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendError(c, http.StatusInternalServerError, message)
}
