package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourstay/internal/middleware"
	"tourstay/internal/pkg/response"
	"tourstay/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the anonymous browse endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/hotels", h.ListHotels)
	rg.GET("/hotels/:id", h.GetHotel)
	rg.GET("/hotels/:id/rooms", h.ListRoomTypes)
}

// RegisterOwnerRoutes mounts the authenticated management endpoints.
func (h *Handler) RegisterOwnerRoutes(rg *gin.RouterGroup, ownerOrAdmin, moderatorOrAdmin gin.HandlerFunc) {
	rg.POST("/hotels", ownerOrAdmin, h.CreateHotel)
	rg.PATCH("/hotels/:id", ownerOrAdmin, h.UpdateHotel)
	rg.DELETE("/hotels/:id", moderatorOrAdmin, h.DeleteHotel)
	rg.POST("/hotels/:id/rooms", ownerOrAdmin, h.CreateRoomType)
	rg.PATCH("/rooms/:id", ownerOrAdmin, h.UpdateRoomType)
	rg.DELETE("/rooms/:id", ownerOrAdmin, h.DeleteRoomType)
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	hotel, err := h.service.CreateHotel(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Hotel submitted for moderation", hotel)
}

func (h *Handler) GetHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.service.GetHotel(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hotel)
}

func (h *Handler) ListHotels(c *gin.Context) {
	var q ListHotelsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	page, limit := normalizePage(q.Page, q.Limit)

	hotels, total, err := h.service.ListHotels(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, hotels, total, page, limit)
}

func (h *Handler) UpdateHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	hotel, err := h.service.UpdateHotel(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Hotel updated", hotel)
}

func (h *Handler) DeleteHotel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteHotel(c.Request.Context(), id, middleware.Role(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Hotel deleted", nil)
}

func (h *Handler) CreateRoomType(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	rt, err := h.service.CreateRoomType(c.Request.Context(), hotelID, middleware.UserID(c), middleware.Role(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Room type created", rt)
}

func (h *Handler) ListRoomTypes(c *gin.Context) {
	hotelID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rts, err := h.service.ListRoomTypes(c.Request.Context(), hotelID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rts)
}

func (h *Handler) UpdateRoomType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	rt, err := h.service.UpdateRoomType(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Room type updated", rt)
}

func (h *Handler) DeleteRoomType(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteRoomType(c.Request.Context(), id, middleware.UserID(c), middleware.Role(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Room type deleted", nil)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
