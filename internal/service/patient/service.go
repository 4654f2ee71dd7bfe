package patient

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/model"
	"github.com/odontoweb/records-api/internal/repository"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

type PatientService interface {
	ListPatients(ctx context.Context) ([]*model.Patient, error)
	GetPatient(ctx context.Context, id primitive.ObjectID) (*model.Patient, error)
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id primitive.ObjectID, req *model.UpdatePatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id primitive.ObjectID) error

	ListTreatments(ctx context.Context, patientID primitive.ObjectID) ([]model.Treatment, error)
	AddTreatment(ctx context.Context, patientID primitive.ObjectID, req *model.AddTreatmentRequest) (*model.Treatment, error)
	UpdateTreatment(ctx context.Context, patientID, treatmentID primitive.ObjectID, req *model.UpdateTreatmentRequest) (*model.Treatment, error)
	RemoveTreatment(ctx context.Context, patientID, treatmentID primitive.ObjectID) error

	ListImages(ctx context.Context, patientID primitive.ObjectID) ([]model.Image, error)
	AddImage(ctx context.Context, patientID primitive.ObjectID, req *model.AddImageRequest) (*model.Image, error)
	UpdateImage(ctx context.Context, patientID, imageID primitive.ObjectID, req *model.UpdateImageRequest) (*model.Image, error)
	RemoveImage(ctx context.Context, patientID, imageID primitive.ObjectID) error
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	patient := &model.Patient{
		Nombre:                req.Nombre,
		Apellido:              req.Apellido,
		NumeroHistoriaClinica: req.NumeroHistoriaClinica,
		DNI:                   req.DNI,
		Telefono:              req.Telefono,
		Email:                 req.Email,
		FechaNacimiento:       req.FechaNacimiento,
		HistoriaClinica: model.HistoriaClinica{
			FechaCreacion: time.Now().UTC(),
			Antecedentes:  req.Antecedentes,
			Alergias:      req.ParseAlergias(),
			Tratamientos:  []model.Treatment{},
		},
		Imagenes: []model.Image{},
	}

	if err := s.validatePatient(patient); err != nil {
		return nil, err
	}

	// Pre-check both alternate keys. The store's unique index remains the
	// final authority: a race between check and insert still surfaces as a
	// DuplicateKey error from Create.
	if err := s.checkAlternateKeys(ctx, patient, primitive.NilObjectID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// UpdatePatient applies a merge-by-field partial update: nil request fields
// leave the stored values untouched. historiaClinica.fechaCreacion is never
// written by callers.
func (s *Service) UpdatePatient(ctx context.Context, id primitive.ObjectID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		patient.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		patient.Apellido = *req.Apellido
	}
	if req.NumeroHistoriaClinica != nil {
		patient.NumeroHistoriaClinica = *req.NumeroHistoriaClinica
	}
	if req.DNI != nil {
		patient.DNI = *req.DNI
	}
	if req.Telefono != nil {
		patient.Telefono = *req.Telefono
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.FechaNacimiento != nil {
		patient.FechaNacimiento = req.FechaNacimiento
	}
	if req.Antecedentes != nil {
		patient.HistoriaClinica.Antecedentes = *req.Antecedentes
	}
	if req.Alergias != nil {
		patient.HistoriaClinica.Alergias = *req.Alergias
	}

	if err := s.validatePatient(patient); err != nil {
		return nil, err
	}

	if err := s.checkAlternateKeys(ctx, patient, id); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id primitive.ObjectID) error {
	// Deleting the document cascades to all embedded treatments and images.
	return s.repo.Delete(ctx, id)
}

func (s *Service) validatePatient(patient *model.Patient) error {
	if patient.Nombre == "" {
		return apperrors.Validation("nombre is required", nil)
	}
	if patient.Apellido == "" {
		return apperrors.Validation("apellido is required", nil)
	}
	if patient.NumeroHistoriaClinica == "" {
		return apperrors.Validation("numeroHistoriaClinica is required", nil)
	}
	if patient.DNI == "" {
		return apperrors.Validation("dni is required", nil)
	}
	if patient.Telefono == "" {
		return apperrors.Validation("telefono is required", nil)
	}
	if patient.Email != "" && !emailPattern.MatchString(patient.Email) {
		return apperrors.Validation("email is not valid", nil)
	}
	return nil
}

// checkAlternateKeys verifies both unique fields against the store. selfID
// excludes the record being updated, so an unchanged key never collides with
// itself.
func (s *Service) checkAlternateKeys(ctx context.Context, patient *model.Patient, selfID primitive.ObjectID) error {
	keys := []struct {
		field string
		value string
	}{
		{repository.FieldDNI, patient.DNI},
		{repository.FieldNumeroHistoriaClinica, patient.NumeroHistoriaClinica},
	}

	for _, key := range keys {
		existing, err := s.repo.FindByAlternateKey(ctx, key.field, key.value)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return err
		}
		if existing.ID != selfID {
			return apperrors.DuplicateKey(key.field, nil)
		}
	}
	return nil
}
