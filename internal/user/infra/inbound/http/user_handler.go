package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/shared/infra/storage/filesystem"
	"github.com/davicafu/hexaplaces/internal/shared/infra/web"
	"github.com/davicafu/hexaplaces/internal/user/application"
	"github.com/davicafu/hexaplaces/internal/user/domain"
	"github.com/davicafu/hexaplaces/pkg/utils"
)

// UserHandler encapsula los endpoints HTTP relacionados con User
type UserHandler struct {
	service *application.UserService
	schema  web.QuerySchema
}

// NewUserHandler crea un nuevo UserHandler
func NewUserHandler(service *application.UserService, maxItems int) *UserHandler {
	return &UserHandler{
		service: service,
		schema:  domain.NewQuerySchema(maxItems),
	}
}

// El mismo struct sirve para JSON y multipart; la imagen solo llega por multipart.
type createUserRequest struct {
	Name    string                `json:"name" form:"name" binding:"required,min=2"`
	Email   string                `json:"email" form:"email" binding:"required,email_strict"`
	IsAdmin bool                  `json:"isAdmin" form:"isAdmin"`
	Image   *multipart.FileHeader `json:"-" form:"image"`
}

type updateUserRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2"`
	Email   *string `json:"email" binding:"omitempty,email_strict"`
	IsAdmin *bool   `json:"isAdmin"`
}

// ---------------- Handlers ----------------

// CreateUser endpoint POST /api/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !web.Bind(c, &req) {
		return
	}

	var image *domain.ImageUpload
	if req.Image != nil && c.ContentType() == binding.MIMEMultipartPOSTForm {
		file, err := req.Image.Open()
		if err != nil {
			utils.SendBadRequest(c, "could not read image")
			return
		}
		defer file.Close()
		image = &domain.ImageUpload{Filename: req.Image.Filename, Content: file}
	}

	user, err := h.service.CreateUser(c.Request.Context(), application.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	}, image)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser endpoint GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser endpoint PUT /api/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	// Punteros para que los campos sean opcionales en el JSON
	var req updateUserRequest
	if !web.Bind(c, &req) {
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, domain.UserPatch{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser endpoint DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		sendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindUsers endpoint GET /api/users y POST /api/users/query
func (h *UserHandler) FindUsers(c *gin.Context) {
	q, ok := web.GetFindQuery(c)
	if !ok {
		utils.SendInternalServerError(c, "missing query")
		return
	}

	users, total, err := h.service.FindUsers(c.Request.Context(), q)
	if err != nil {
		sendError(c, err)
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	data, err := web.SelectFields(users, q.Fields)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendPaginated(c, q.Page, q.TotalPages(total), total, data)
}

// ---------------- Helpers ----------------

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := domain.ParseID(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return id, false
	}
	return id, true
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		utils.SendConflict(c, err.Error())
	case errors.Is(err, filesystem.ErrUnsupportedImage):
		utils.SendError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, filesystem.ErrImageTooLarge):
		utils.SendError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
