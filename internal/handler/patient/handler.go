package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/handler"
	"github.com/odontoweb/records-api/internal/model"
	"github.com/odontoweb/records-api/internal/service/patient"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.POST("", h.CreatePatient)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)

		patients.GET("/:id/treatments", h.ListTreatments)
		patients.POST("/:id/treatments", h.AddTreatment)
		patients.PUT("/:id/treatments/:treatmentId", h.UpdateTreatment)
		patients.DELETE("/:id/treatments/:treatmentId", h.RemoveTreatment)

		patients.GET("/:id/images", h.ListImages)
		patients.POST("/:id/images", h.AddImage)
		patients.PUT("/:id/images/:imageId", h.UpdateImage)
		patients.DELETE("/:id/images/:imageId", h.RemoveImage)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.CreatePatient(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	found, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.UpdatePatient(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.MessageResponse{Message: "patient deleted successfully"})
}

func (h *Handler) ListTreatments(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	treatments, err := h.service.ListTreatments(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatments)
}

func (h *Handler) AddTreatment(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.AddTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.AddTreatment(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	treatmentID, ok := h.subID(c, "treatmentId", "treatment")
	if !ok {
		return
	}

	var req model.UpdateTreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.UpdateTreatment(c.Request.Context(), id, treatmentID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) RemoveTreatment(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	treatmentID, ok := h.subID(c, "treatmentId", "treatment")
	if !ok {
		return
	}

	if err := h.service.RemoveTreatment(c.Request.Context(), id, treatmentID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.MessageResponse{Message: "treatment deleted successfully"})
}

func (h *Handler) ListImages(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	images, err := h.service.ListImages(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *Handler) AddImage(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}

	var req model.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.AddImage(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateImage(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	imageID, ok := h.subID(c, "imageId", "image")
	if !ok {
		return
	}

	var req model.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondError(c, apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.UpdateImage(c.Request.Context(), id, imageID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) RemoveImage(c *gin.Context) {
	id, ok := h.patientID(c)
	if !ok {
		return
	}
	imageID, ok := h.subID(c, "imageId", "image")
	if !ok {
		return
	}

	if err := h.service.RemoveImage(c.Request.Context(), id, imageID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.MessageResponse{Message: "image deleted successfully"})
}

func (h *Handler) patientID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		handler.RespondError(c, apperrors.Validation("invalid patient ID", err))
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) subID(c *gin.Context, param, resource string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		handler.RespondError(c, apperrors.Validation("invalid "+resource+" ID", err))
		return primitive.NilObjectID, false
	}
	return id, true
}
