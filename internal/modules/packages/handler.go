package packages

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourstay/internal/pkg/response"
	"tourstay/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts browse and quote endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/packages", h.List)
	rg.GET("/packages/slug/:slug", h.GetBySlug)
	rg.GET("/packages/:id", h.Get)
	rg.GET("/packages/:id/quote", h.Quote)
}

// RegisterAdminRoutes mounts package management; the caller attaches the
// admin guard on the group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/packages", h.Create)
	rg.PATCH("/packages/:id", h.Update)
	rg.DELETE("/packages/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Validation failed", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusCreated, "Package created", p)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	items, total, err := h.service.List(c.Request.Context(), c.Query("category"), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, items, total, page, limit)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Package updated", p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessMessage(c, http.StatusOK, "Package deleted", nil)
}

func (h *Handler) Quote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	groupSize, err := strconv.Atoi(c.DefaultQuery("group_size", "1"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid group_size")
		return
	}

	quote, qerr := h.service.Quote(c.Request.Context(), id, groupSize)
	if qerr != nil {
		response.FromError(c, qerr)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
