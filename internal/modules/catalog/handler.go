package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiobook/internal/domain"
	"studiobook/internal/middleware"
	"studiobook/internal/pkg/response"
	"studiobook/internal/pkg/validator"
	"studiobook/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		studios := public.Group("/studios")
		{
			studios.GET("", h.GetStudios) // GET /api/v1/studios?city=...&page=...
			studios.GET("/:id", h.GetStudioByID)
			studios.GET("/:id/resources", h.GetResources)
		}
		public.GET("/resources/:id/hours", h.GetWeeklyHours)
	}

	if protected != nil {
		owner := protected.Group("", middleware.OwnerOnly())
		{
			owner.GET("/owner/studios", h.GetMyStudios)
			owner.POST("/owner/studios", h.CreateStudio)
			owner.POST("/owner/studios/:id/resources", h.CreateResource)
			owner.PUT("/owner/resources/:id/hours", h.SetWeeklyHours)
			owner.POST("/owner/resources/:id/exceptions", h.AddException)
		}
	}
}

/* ---------- STUDIO HANDLERS ---------- */

// GetStudios handles GET /studios with city filter and pagination
// @Summary		List studios
// @Tags		Catalog
// @Param		city	query	string	false	"City (case-insensitive)"
// @Param		page	query	int		false	"Page number"	default(1)
// @Param		limit	query	int		false	"Page size"	default(20)
// @Success		200	{object}	response.Envelope
// @Router		/studios [GET]
func (h *Handler) GetStudios(c *gin.Context) {
	f := repository.StudioFilters{City: c.Query("city")}

	// Pagination
	f.Limit = 20 // default
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	studios, total, err := h.service.ListStudios(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"studios": studios,
		"pagination": gin.H{
			"page":        f.Offset/f.Limit + 1,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": (int(total) + f.Limit - 1) / f.Limit,
		},
	})
}

func (h *Handler) GetStudioByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	studio, err := h.service.GetStudio(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studio": studio})
}

func (h *Handler) GetMyStudios(c *gin.Context) {
	studios, err := h.service.ListMyStudios(c.Request.Context(), principal(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"studios": studios})
}

func (h *Handler) CreateStudio(c *gin.Context) {
	var req CreateStudioRequest
	if !bind(c, &req) {
		return
	}
	studio, err := h.service.CreateStudio(c.Request.Context(), principal(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"studio": studio})
}

/* ---------- RESOURCE HANDLERS ---------- */

func (h *Handler) GetResources(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resources, err := h.service.ListResources(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": resources})
}

// CreateResource adds a bookable resource to one of the owner's studios.
// @Summary		Create resource
// @Tags		Catalog - Owner
// @Security	BearerAuth
// @Param		id		path	int						true	"Studio ID"
// @Param		request	body	CreateResourceRequest	true	"Resource data, base_price_per_hour as a decimal string"
// @Success		201	{object}	response.Envelope
// @Failure		403	{object}	response.Envelope "Not the studio owner"
// @Failure		422	{object}	response.Envelope "Validation error"
// @Router		/owner/studios/{id}/resources [POST]
func (h *Handler) CreateResource(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CreateResourceRequest
	if !bind(c, &req) {
		return
	}
	res, err := h.service.CreateResource(c.Request.Context(), principal(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"resource": res})
}

/* ---------- OPENING HOURS HANDLERS ---------- */

func (h *Handler) GetWeeklyHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rows, err := h.service.GetWeeklyHours(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"days": rows})
}

// @Summary		Set weekly hours
// @Description	Replaces the opening template of every weekday in the request.
// @Tags		Catalog - Owner
// @Security	BearerAuth
// @Param		id		path	int					true	"Resource ID"
// @Param		request	body	WeeklyHoursRequest	true	"Opening hours per weekday"
// @Success		200	{object}	response.Envelope
// @Failure		422	{object}	response.Envelope "Validation error"
// @Router		/owner/resources/{id}/hours [PUT]
func (h *Handler) SetWeeklyHours(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req WeeklyHoursRequest
	if !bind(c, &req) {
		return
	}
	rows, err := h.service.SetWeeklyHours(c.Request.Context(), principal(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"days": rows})
}

func (h *Handler) AddException(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CreateExceptionRequest
	if !bind(c, &req) {
		return
	}
	e, err := h.service.AddException(c.Request.Context(), principal(c), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"exception": e})
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request", errs)
		return false
	}
	return true
}

func principal(c *gin.Context) domain.Principal {
	return domain.Principal{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

/* ---------- ERROR HANDLING ---------- */

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't have permission to perform this action")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
