package patient

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/model"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

// Sub-document operations over the embedded treatment and image sequences.
// Identity lookup is a linear scan: the sequences are bounded by a realistic
// clinical history, so no secondary index is kept. Every mutation is a
// read-modify-write persisted as a whole-document replace.

func (s *Service) ListTreatments(ctx context.Context, patientID primitive.ObjectID) ([]model.Treatment, error) {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return patient.HistoriaClinica.Tratamientos, nil
}

func (s *Service) AddTreatment(ctx context.Context, patientID primitive.ObjectID, req *model.AddTreatmentRequest) (*model.Treatment, error) {
	if err := validateDiente(req.Diente); err != nil {
		return nil, err
	}
	if req.Procedimiento == "" {
		return nil, apperrors.Validation("procedimiento is required", nil)
	}

	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	treatment := model.Treatment{
		ID:            primitive.NewObjectID(),
		Fecha:         time.Now().UTC(),
		Procedimiento: req.Procedimiento,
		Notas:         req.Notas,
		Diente:        req.Diente,
		Estado:        model.TreatmentStatusPendiente,
	}
	if req.Fecha != nil {
		treatment.Fecha = *req.Fecha
	}
	if req.Estado != "" {
		treatment.Estado = req.Estado
	}

	patient.HistoriaClinica.Tratamientos = append(patient.HistoriaClinica.Tratamientos, treatment)

	if err := s.repo.Replace(ctx, patient); err != nil {
		return nil, err
	}
	return &treatment, nil
}

func (s *Service) UpdateTreatment(ctx context.Context, patientID, treatmentID primitive.ObjectID, req *model.UpdateTreatmentRequest) (*model.Treatment, error) {
	if err := validateDiente(req.Diente); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	idx := findTreatment(patient.HistoriaClinica.Tratamientos, treatmentID)
	if idx < 0 {
		return nil, apperrors.NotFound("treatment", nil)
	}

	// Shallow merge: fields absent from the patch keep their stored values.
	// Estado has no transition rules, any value may change to any other.
	treatment := &patient.HistoriaClinica.Tratamientos[idx]
	if req.Fecha != nil {
		treatment.Fecha = *req.Fecha
	}
	if req.Procedimiento != nil {
		if *req.Procedimiento == "" {
			return nil, apperrors.Validation("procedimiento is required", nil)
		}
		treatment.Procedimiento = *req.Procedimiento
	}
	if req.Notas != nil {
		treatment.Notas = *req.Notas
	}
	if req.Diente != nil {
		treatment.Diente = req.Diente
	}
	if req.Estado != nil {
		treatment.Estado = *req.Estado
	}

	if err := s.repo.Replace(ctx, patient); err != nil {
		return nil, err
	}
	return treatment, nil
}

func (s *Service) RemoveTreatment(ctx context.Context, patientID, treatmentID primitive.ObjectID) error {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return err
	}

	idx := findTreatment(patient.HistoriaClinica.Tratamientos, treatmentID)
	if idx < 0 {
		return apperrors.NotFound("treatment", nil)
	}

	tratamientos := patient.HistoriaClinica.Tratamientos
	patient.HistoriaClinica.Tratamientos = append(tratamientos[:idx], tratamientos[idx+1:]...)

	return s.repo.Replace(ctx, patient)
}

func (s *Service) ListImages(ctx context.Context, patientID primitive.ObjectID) ([]model.Image, error) {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return patient.Imagenes, nil
}

func (s *Service) AddImage(ctx context.Context, patientID primitive.ObjectID, req *model.AddImageRequest) (*model.Image, error) {
	if req.URL == "" {
		return nil, apperrors.Validation("url is required", nil)
	}

	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	image := model.Image{
		ID:          primitive.NewObjectID(),
		URL:         req.URL,
		Tipo:        req.Tipo,
		Descripcion: req.Descripcion,
		Fecha:       time.Now().UTC(),
	}
	if req.Tipo == "" {
		image.Tipo = model.ImageTypeOtro
	}
	if req.Fecha != nil {
		image.Fecha = *req.Fecha
	}

	patient.Imagenes = append(patient.Imagenes, image)

	if err := s.repo.Replace(ctx, patient); err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *Service) UpdateImage(ctx context.Context, patientID, imageID primitive.ObjectID, req *model.UpdateImageRequest) (*model.Image, error) {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	idx := findImage(patient.Imagenes, imageID)
	if idx < 0 {
		return nil, apperrors.NotFound("image", nil)
	}

	image := &patient.Imagenes[idx]
	if req.URL != nil {
		if *req.URL == "" {
			return nil, apperrors.Validation("url is required", nil)
		}
		image.URL = *req.URL
	}
	if req.Tipo != nil {
		image.Tipo = *req.Tipo
	}
	if req.Descripcion != nil {
		image.Descripcion = *req.Descripcion
	}
	if req.Fecha != nil {
		image.Fecha = *req.Fecha
	}

	if err := s.repo.Replace(ctx, patient); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *Service) RemoveImage(ctx context.Context, patientID, imageID primitive.ObjectID) error {
	patient, err := s.repo.Get(ctx, patientID)
	if err != nil {
		return err
	}

	idx := findImage(patient.Imagenes, imageID)
	if idx < 0 {
		return apperrors.NotFound("image", nil)
	}

	patient.Imagenes = append(patient.Imagenes[:idx], patient.Imagenes[idx+1:]...)

	return s.repo.Replace(ctx, patient)
}

func findTreatment(treatments []model.Treatment, id primitive.ObjectID) int {
	for i := range treatments {
		if treatments[i].ID == id {
			return i
		}
	}
	return -1
}

func findImage(images []model.Image, id primitive.ObjectID) int {
	for i := range images {
		if images[i].ID == id {
			return i
		}
	}
	return -1
}

func validateDiente(diente *int) error {
	if diente != nil && (*diente < 1 || *diente > 32) {
		return apperrors.Validation("diente must be between 1 and 32", nil)
	}
	return nil
}
