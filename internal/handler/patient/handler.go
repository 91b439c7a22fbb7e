package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink/healthcare-api/internal/handler"
	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/service/patient"
)

type Handler struct {
	service patient.Service
}

func NewHandler(service patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.PATCH("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.Envelope{
		"message": "Patient created successfully",
		"patient": created,
	})
}

func (h *Handler) ListPatients(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	patients, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message":  "Patients retrieved successfully",
		"patients": patients,
		"count":    len(patients),
	})
}

func (h *Handler) GetPatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Patient retrieved successfully",
		"patient": p,
	})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Patient updated successfully",
		"patient": updated,
	})
}

func (h *Handler) DeletePatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": "Patient deleted successfully",
	})
}
