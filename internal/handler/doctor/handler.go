package doctor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carelink/healthcare-api/internal/handler"
	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/service/doctor"
)

type Handler struct {
	service doctor.Service
}

func NewHandler(service doctor.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		// Static route before the :id wildcard.
		doctors.GET("/specializations", h.Specializations)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.PATCH("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.Envelope{
		"message": "Doctor created successfully",
		"doctor":  created,
	})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	filters := &model.DoctorFilters{
		Specialization: c.Query("specialization"),
	}
	if raw := c.Query("is_active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			handler.BindError(c, err)
			return
		}
		filters.IsActive = &active
	}

	doctors, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}

	summaries := make([]*model.DoctorSummary, 0, len(doctors))
	for _, d := range doctors {
		summaries = append(summaries, d.Summary())
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Doctors retrieved successfully",
		"doctors": summaries,
		"count":   len(summaries),
	})
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Doctor retrieved successfully",
		"doctor":  d,
	})
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Doctor updated successfully",
		"doctor":  updated,
	})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Doctor deleted successfully",
	})
}

func (h *Handler) Specializations(c *gin.Context) {
	c.JSON(http.StatusOK, handler.Envelope{
		"message":         "Specializations retrieved successfully",
		"specializations": h.service.Specializations(),
	})
}
