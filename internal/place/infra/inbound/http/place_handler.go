package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/davicafu/hexaplaces/internal/place/application"
	placeDomain "github.com/davicafu/hexaplaces/internal/place/domain"
	"github.com/davicafu/hexaplaces/internal/shared/infra/storage/filesystem"
	"github.com/davicafu/hexaplaces/internal/shared/infra/web"
	"github.com/davicafu/hexaplaces/pkg/utils"
)

// PlaceHandler encapsula los endpoints HTTP relacionados con Place.
type PlaceHandler struct {
	service *application.PlaceService
	schema  web.QuerySchema
}

// NewPlaceHandler crea un PlaceHandler; maxItems limita el tamaño de página.
func NewPlaceHandler(service *application.PlaceService, maxItems int) *PlaceHandler {
	return &PlaceHandler{
		service: service,
		schema:  placeDomain.NewQuerySchema(maxItems),
	}
}

// ---------------- Requests ----------------

type locationRequest struct {
	Lat *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
}

func (l *locationRequest) toDomain() placeDomain.Location {
	return placeDomain.Location{Lat: *l.Lat, Lng: *l.Lng}
}

type createPlaceRequest struct {
	Title       string           `json:"title" binding:"required,min=10"`
	Description string           `json:"description" binding:"required,min=10"`
	Address     string           `json:"address" binding:"required,min=10"`
	Location    *locationRequest `json:"location" binding:"required"`
	CreatorID   string           `json:"creatorId" binding:"required,len=24,hexadecimal"`
}

// createPlaceForm es la variante multipart: la ubicación llega plana y puede venir una imagen.
type createPlaceForm struct {
	Title       string                `form:"title" json:"title" binding:"required,min=10"`
	Description string                `form:"description" json:"description" binding:"required,min=10"`
	Address     string                `form:"address" json:"address" binding:"required,min=10"`
	Lat         *float64              `form:"lat" json:"lat" binding:"required,gte=-90,lte=90"`
	Lng         *float64              `form:"lng" json:"lng" binding:"required,gte=-180,lte=180"`
	CreatorID   string                `form:"creatorId" json:"creatorId" binding:"required,len=24,hexadecimal"`
	Image       *multipart.FileHeader `form:"image" json:"image"`
}

type updatePlaceRequest struct {
	Title       *string          `json:"title" binding:"omitempty,min=10"`
	Description *string          `json:"description" binding:"omitempty,min=10"`
	Address     *string          `json:"address" binding:"omitempty,min=10"`
	Location    *locationRequest `json:"location"`
	CreatorID   *string          `json:"creatorId" binding:"omitempty,len=24,hexadecimal"`
}

// ---------------- Handlers ----------------

// CreatePlace endpoint POST /api/places (JSON o multipart/form-data con "image")
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var (
		in    application.CreatePlaceInput
		image *placeDomain.ImageUpload
	)

	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		var req createPlaceForm
		if !web.Bind(c, &req) {
			return
		}
		in = application.CreatePlaceInput{
			Title:       req.Title,
			Description: req.Description,
			Address:     req.Address,
			Location:    placeDomain.Location{Lat: *req.Lat, Lng: *req.Lng},
		}
		in.CreatorID, _ = primitive.ObjectIDFromHex(req.CreatorID)

		if req.Image != nil {
			file, err := req.Image.Open()
			if err != nil {
				utils.SendBadRequest(c, "could not read image")
				return
			}
			defer file.Close()
			image = &placeDomain.ImageUpload{Filename: req.Image.Filename, Content: file}
		}
	} else {
		var req createPlaceRequest
		if !web.Bind(c, &req) {
			return
		}
		in = application.CreatePlaceInput{
			Title:       req.Title,
			Description: req.Description,
			Address:     req.Address,
			Location:    req.Location.toDomain(),
		}
		in.CreatorID, _ = primitive.ObjectIDFromHex(req.CreatorID)
	}

	place, err := h.service.CreatePlace(c.Request.Context(), in, image)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusCreated, place)
}

// GetPlace endpoint GET /api/places/:id
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	place, err := h.service.GetPlace(c.Request.Context(), id)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, place)
}

// UpdatePlace endpoint PUT /api/places/:id (actualización parcial)
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePlaceRequest
	if !web.Bind(c, &req) {
		return
	}

	patch := placeDomain.PlacePatch{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
	}
	if req.Location != nil {
		loc := req.Location.toDomain()
		patch.Location = &loc
	}
	if req.CreatorID != nil {
		creatorID, _ := primitive.ObjectIDFromHex(*req.CreatorID)
		patch.CreatorID = &creatorID
	}

	place, err := h.service.UpdatePlace(c.Request.Context(), id, patch)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, place)
}

// DeletePlace endpoint DELETE /api/places/:id
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePlace(c.Request.Context(), id); err != nil {
		sendError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// FindPlaces endpoint GET /api/places y POST /api/places/query.
// La consulta ya viene validada por el middleware de filtros.
func (h *PlaceHandler) FindPlaces(c *gin.Context) {
	q, ok := web.GetFindQuery(c)
	if !ok {
		utils.SendInternalServerError(c, "missing query")
		return
	}

	places, total, err := h.service.FindPlaces(c.Request.Context(), q)
	if err != nil {
		sendError(c, err)
		return
	}
	if places == nil {
		places = []*placeDomain.Place{}
	}

	data, err := web.SelectFields(places, q.Fields)
	if err != nil {
		utils.SendInternalServerError(c, err.Error())
		return
	}

	utils.SendPaginated(c, q.Page, q.TotalPages(total), total, data)
}

// ---------------- Helpers ----------------

func parseID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := placeDomain.ParseID(c.Param("id"))
	if err != nil {
		utils.SendBadRequest(c, err.Error())
		return id, false
	}
	return id, true
}

func sendError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, placeDomain.ErrPlaceNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, filesystem.ErrUnsupportedImage):
		utils.SendError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, filesystem.ErrImageTooLarge):
		utils.SendError(c, http.StatusRequestEntityTooLarge, err.Error())
	default:
		utils.SendInternalServerError(c, err.Error())
	}
}
