package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinera/appointment-slots-service/internal/config"
	"github.com/clinera/appointment-slots-service/internal/core/domain"
	"github.com/clinera/appointment-slots-service/internal/core/json_types"
	"github.com/clinera/appointment-slots-service/internal/core/ports/in"
	"github.com/clinera/appointment-slots-service/internal/utils"
)

type BookingController struct {
	availability in.AvailabilityUseCase
	booking      in.BookingUseCase
	cfg          *config.Config
}

func NewBookingController(availability in.AvailabilityUseCase, booking in.BookingUseCase, cfg *config.Config) *BookingController {
	return &BookingController{
		availability: availability,
		booking:      booking,
		cfg:          cfg,
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/doctors/:doctorId/slots", c.getAvailableSlots)
		api.POST("/appointments", c.bookAppointment)
	}
}

func (c *BookingController) getAvailableSlots(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}

	date, err := utils.ParseCivilDate(ctx.Query("date"), c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	duration, err := strconv.Atoi(ctx.DefaultQuery("duration", "30"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration"})
		return
	}

	slots, debugInfo, err := c.availability.GetAvailableSlots(ctx.Request.Context(), doctorID, date, duration)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	response := gin.H{
		"doctorId": doctorID,
		"date":     date.Format("2006-01-02"),
		"slots":    slots,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

type BookAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" binding:"required"`
	PatientRef      string    `json:"patient_ref" binding:"required"`
	Date            string    `json:"date" binding:"required"`
	StartTime       string    `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration" binding:"required"`
}

func (c *BookingController) bookAppointment(ctx *gin.Context) {
	var req BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := utils.ParseCivilDate(req.Date, c.cfg.Location())
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	startTime, err := json_types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time, expected HH:MM"})
		return
	}

	appointment, err := c.booking.BookAppointment(ctx.Request.Context(), in.BookingRequest{
		DoctorID:        req.DoctorID,
		PatientRef:      req.PatientRef,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: req.DurationMinutes,
		ClientKey:       ctx.ClientIP(),
	})
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (c *BookingController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSlotTaken):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *BookingController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
