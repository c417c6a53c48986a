package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studiobook/internal/domain"
	"studiobook/internal/middleware"
	"studiobook/internal/pkg/response"
	"studiobook/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public slot lookup and the authenticated booking API.
// protected must already run middleware.JWTAuth.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/bookings/available-slots/:resource_id", h.ListAvailableSlots)
	}

	if protected != nil {
		protected.POST("/bookings", middleware.CustomerOnly(), h.CreateBooking)
		protected.GET("/bookings/my-bookings", middleware.CustomerOnly(), h.ListMyBookings)
		protected.GET("/bookings/pending-approvals", middleware.OwnerOnly(), h.ListPendingApprovals)
		protected.GET("/bookings/my-studio-bookings", middleware.OwnerOnly(), h.ListStudioBookings)
		protected.PUT("/bookings/:id/approve", middleware.OwnerOnly(), h.DecideBooking)
		protected.PUT("/bookings/:id/cancel", h.CancelBooking)
		protected.GET("/bookings/:id", h.GetBooking)
	}
}

// ListAvailableSlots returns the 30-minute slot grid of a resource for one date.
// @Summary		Available slots
// @Description	Lists every 30-minute slot inside the resource's opening window with its availability and price.
// @Tags		Bookings
// @Param		resource_id		path	int		true	"Resource ID"
// @Param		booking_date	query	string	true	"Date (YYYY-MM-DD)"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope "Invalid resource ID or date"
// @Failure		404	{object}	response.Envelope "Resource not found"
// @Router		/bookings/available-slots/{resource_id} [GET]
func (h *Handler) ListAvailableSlots(c *gin.Context) {
	resourceID, ok := pathID(c, "resource_id")
	if !ok {
		return
	}
	date, err := domain.ParseDate(c.Query("booking_date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "booking_date must be YYYY-MM-DD")
		return
	}

	out, err := h.service.ListAvailableSlots(c.Request.Context(), resourceID, date)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateBooking books a resource for a customer.
// @Summary		Create booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"Resource, date and time range"
// @Success		201	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope "Invalid interval"
// @Failure		409	{object}	response.Envelope "Overlaps an existing booking"
// @Failure		422	{object}	response.Envelope "Validation error"
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid booking request", errs)
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) ListMyBookings(c *gin.Context) {
	rows, err := h.service.ListMyBookings(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListPendingApprovals(c *gin.Context) {
	rows, err := h.service.ListPendingForOwner(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func (h *Handler) ListStudioBookings(c *gin.Context) {
	rows, err := h.service.ListStudioBookings(c.Request.Context(), principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// DecideBooking approves or rejects a pending booking.
// @Summary		Approve or reject booking
// @Description	Owner decision on a pending booking. A rejection needs rejection_reason.
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path	int				true	"Booking ID"
// @Param		request	body	DecideRequest	true	"Decision"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope "Booking is not pending"
// @Failure		403	{object}	response.Envelope "Not the studio owner"
// @Router		/bookings/{id}/approve [PUT]
func (h *Handler) DecideBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid approval request", errs)
		return
	}

	b, err := h.service.DecideBooking(c.Request.Context(), principal(c), id, *req.Approve, req.RejectionReason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// CancelBooking cancels the caller's booking and computes the refund.
// @Summary		Cancel booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path	int				true	"Booking ID"
// @Param		request	body	CancelRequest	true	"Cancel reason"
// @Success		200	{object}	response.Envelope
// @Failure		400	{object}	response.Envelope "Booking already cancelled or rejected"
// @Failure		403	{object}	response.Envelope "Not your booking"
// @Router		/bookings/{id}/cancel [PUT]
func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid cancel request", errs)
		return
	}

	// the service checks the trimmed length again
	b, err := h.service.CancelBooking(c.Request.Context(), principal(c), id, req.CancelReason)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// @Summary		Get booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	int	true	"Booking ID"
// @Success		200	{object}	response.Envelope
// @Failure		404	{object}	response.Envelope
// @Router		/bookings/{id} [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.service.GetBooking(c.Request.Context(), principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func principal(c *gin.Context) domain.Principal {
	return domain.Principal{
		UserID: c.GetInt64("user_id"),
		Role:   domain.UserRole(c.GetString("role")),
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

var errorStatus = []struct {
	kind   error
	status int
	code   string
}{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrInvalidInterval, http.StatusBadRequest, "INVALID_INTERVAL"},
	{ErrValidation, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	{ErrConflict, http.StatusConflict, "BOOKING_CONFLICT"},
	{ErrInvalidTransition, http.StatusBadRequest, "INVALID_STATUS_TRANSITION"},
}

func writeError(c *gin.Context, err error) {
	var be *Error
	if errors.As(err, &be) {
		for _, e := range errorStatus {
			if errors.Is(be.Kind, e.kind) {
				response.ErrorWithDetails(c, e.status, e.code, be.Message, details(be))
				return
			}
		}
	}

	// logged by middleware.ErrorLogger
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error")
}

func details(e *Error) gin.H {
	d := gin.H{}
	if e.Field != "" {
		d["field"] = e.Field
	}
	if e.Status != "" {
		d["current_status"] = e.Status
	}
	if e.Conflict != nil {
		d["conflict"] = e.Conflict
		d["conflict_booking_id"] = e.ConflictBookingID
	}
	if len(d) == 0 {
		return nil
	}
	return d
}
