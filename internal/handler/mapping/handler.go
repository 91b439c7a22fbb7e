package mapping

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carelink/healthcare-api/internal/handler"
	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/service/mapping"
)

type Handler struct {
	service mapping.Service
}

func NewHandler(service mapping.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	mappings := r.Group("/mappings")
	{
		mappings.POST("", h.CreateMapping)
		mappings.GET("", h.ListMappings)
		mappings.POST("/bulk_assign", h.BulkAssign)
		mappings.GET("/patient/:patient_id", h.DoctorsByPatient)
		mappings.PUT("/:id", h.UpdateMapping)
		mappings.PATCH("/:id", h.UpdateMapping)
		mappings.DELETE("/:id", h.DeleteMapping)
	}
}

func (h *Handler) CreateMapping(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	var req model.CreateMappingRequest
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
		"message": "Doctor assigned to patient successfully",
		"mapping": created,
	})
}

func (h *Handler) ListMappings(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	mappings, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message":  "Patient-doctor mappings retrieved successfully",
		"mappings": mappings,
		"count":    len(mappings),
	})
}

func (h *Handler) UpdateMapping(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateMappingRequest
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
		"message": "Mapping updated successfully",
		"mapping": updated,
	})
}

func (h *Handler) DeleteMapping(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	id, ok := handler.PathID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Destroy(c.Request.Context(), userID, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	message := "Mapping deleted successfully"
	if deleted.DoctorDetails != nil && deleted.PatientDetails != nil {
		message = fmt.Sprintf("Dr. %s removed from patient %s successfully",
			deleted.DoctorDetails.Name, deleted.PatientDetails.Name)
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": message,
	})
}

func (h *Handler) DoctorsByPatient(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}
	patientID, ok := handler.PathID(c, "patient_id")
	if !ok {
		return
	}

	patient, mappings, err := h.service.DoctorsByPatient(c.Request.Context(), userID, patientID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.Envelope{
		"message": fmt.Sprintf("Doctors for patient %s retrieved successfully", patient.Name),
		"patient": patient.Summary(),
		"doctors": mappings,
		"count":   len(mappings),
	})
}

func (h *Handler) BulkAssign(c *gin.Context) {
	userID, ok := handler.UserID(c)
	if !ok {
		return
	}

	var req model.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	result, err := h.service.BulkAssign(c.Request.Context(), userID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	body := handler.Envelope{
		"message":          fmt.Sprintf("%d doctors assigned successfully", len(result.Created)),
		"created_mappings": result.Created,
		"created_count":    len(result.Created),
	}
	if len(result.Errors) > 0 {
		body["errors"] = result.Errors
		body["error_count"] = len(result.Errors)
	}

	c.JSON(http.StatusCreated, body)
}
