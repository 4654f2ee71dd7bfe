// Package memory provides an in-memory PatientRepository used by tests. It
// mirrors the mongo repository's contract, including unique alternate keys
// and creation-time-descending listing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/model"
	"github.com/odontoweb/records-api/internal/repository"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

type PatientRepository struct {
	mu       sync.RWMutex
	patients map[primitive.ObjectID]*model.Patient
}

func NewPatientRepository() *PatientRepository {
	return &PatientRepository{patients: make(map[primitive.ObjectID]*model.Patient)}
}

func (r *PatientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if field := r.collidingField(patient); field != "" {
		return apperrors.DuplicateKey(field, nil)
	}

	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}

	r.patients[patient.ID] = clone(patient)
	return nil
}

func (r *PatientRepository) Get(_ context.Context, id primitive.ObjectID) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return clone(patient), nil
}

func (r *PatientRepository) FindByAlternateKey(_ context.Context, field, value string) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, patient := range r.patients {
		if alternateKey(patient, field) == value {
			return clone(patient), nil
		}
	}
	return nil, apperrors.NotFound("patient", nil)
}

func (r *PatientRepository) List(_ context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(r.patients))
	for _, patient := range r.patients {
		patients = append(patients, clone(patient))
	}
	sort.Slice(patients, func(i, j int) bool {
		return patients[i].CreatedAt.After(patients[j].CreatedAt)
	})
	return patients, nil
}

func (r *PatientRepository) Replace(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[patient.ID]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	if field := r.collidingField(patient); field != "" {
		return apperrors.DuplicateKey(field, nil)
	}

	patient.UpdatedAt = time.Now().UTC()
	r.patients[patient.ID] = clone(patient)
	return nil
}

func (r *PatientRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patients[id]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	delete(r.patients, id)
	return nil
}

// Count returns the number of stored patients. Test helper.
func (r *PatientRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.patients)
}

func (r *PatientRepository) collidingField(candidate *model.Patient) string {
	for _, existing := range r.patients {
		if existing.ID == candidate.ID {
			continue
		}
		if existing.DNI == candidate.DNI {
			return repository.FieldDNI
		}
		if existing.NumeroHistoriaClinica == candidate.NumeroHistoriaClinica {
			return repository.FieldNumeroHistoriaClinica
		}
	}
	return ""
}

func alternateKey(patient *model.Patient, field string) string {
	switch field {
	case repository.FieldDNI:
		return patient.DNI
	case repository.FieldNumeroHistoriaClinica:
		return patient.NumeroHistoriaClinica
	}
	return ""
}

func clone(p *model.Patient) *model.Patient {
	c := *p
	c.HistoriaClinica.Alergias = append([]string(nil), p.HistoriaClinica.Alergias...)
	c.HistoriaClinica.Tratamientos = append([]model.Treatment(nil), p.HistoriaClinica.Tratamientos...)
	c.Imagenes = append([]model.Image(nil), p.Imagenes...)
	return &c
}
