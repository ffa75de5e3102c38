package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourstay/internal/middleware"
	"tourstay/internal/pkg/response"
)

type RejectHotelRequest struct {
	Reason string `json:"reason"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the moderation endpoints; the caller attaches the
// moderator/admin role guard on the group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/hotels/pending", h.PendingHotels)
	rg.POST("/admin/hotels/:id/approve", h.ApproveHotel)
	rg.POST("/admin/hotels/:id/reject", h.RejectHotel)
}

// @Summary		List hotels awaiting moderation
// @Tags		admin
// @Produce	json
// @Param		page	query	int	false	"Page number"
// @Param		limit	query	int	false	"Page size"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/hotels/pending [get]
func (h *Handler) PendingHotels(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	hotels, total, err := h.service.PendingHotels(c.Request.Context(), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, hotels, total, page, limit)
}

// @Summary		Approve a pending hotel
// @Tags		admin
// @Produce	json
// @Param		id	path	int	true	"Hotel ID"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/hotels/{id}/approve [post]
func (h *Handler) ApproveHotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	hotel, err := h.service.ApproveHotel(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Hotel approved", hotel)
}

// @Summary		Reject a pending hotel with a reason
// @Tags		admin
// @Accept		json
// @Produce	json
// @Param		id	path	int	true	"Hotel ID"
// @Success	200	{object}	map[string]interface{}
// @Router		/admin/hotels/{id}/reject [post]
func (h *Handler) RejectHotel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var req RejectHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	hotel, err := h.service.RejectHotel(c.Request.Context(), id, middleware.UserID(c), req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Hotel rejected", hotel)
}
