package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medimeet/booking-api/internal/core/domain"
	"github.com/medimeet/booking-api/internal/core/ports"
)

// AvailabilityHandler handles HTTP requests for doctor availability.
type AvailabilityHandler struct {
	service ports.AvailabilityService
}

func NewAvailabilityHandler(service ports.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// --- Request / Response types ---

type slotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time"   validate:"required"`
}

type replaceSlotsRequest struct {
	Slots []slotRequest `json:"slots" validate:"required,min=1"`
}

type slotsResponse struct {
	Success bool                      `json:"success"`
	Slots   []domain.AvailabilitySlot `json:"slots"`
}

// Replace handles PUT /v1/availability.
//
// @Summary      Replace the calling doctor's availability slots
// @Tags         availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      replaceSlotsRequest  true  "Proposed slot set"
// @Success      200   {object}  slotsResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/availability [put]
func (h *AvailabilityHandler) Replace(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req replaceSlotsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	slots := make([]ports.SlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, ports.SlotInput{StartTime: s.StartTime, EndTime: s.EndTime})
	}

	created, err := h.service.ReplaceSlots(c.Request().Context(), ports.ReplaceSlotsInput{
		Subject: subject,
		Slots:   slots,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, slotsResponse{Success: true, Slots: created})
}

// List handles GET /v1/availability.
//
// @Summary      List the calling doctor's availability slots
// @Tags         availability
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  slotsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/availability [get]
func (h *AvailabilityHandler) List(c echo.Context) error {
	subject, err := ctxSubject(c)
	if err != nil {
		return err
	}

	slots, err := h.service.ListSlots(c.Request().Context(), subject)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, slotsResponse{Success: true, Slots: slots})
}
