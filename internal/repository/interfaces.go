package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/model"
)

// Alternate-key fields accepted by FindByAlternateKey. These are the only two
// fields carrying unique indexes on the patients collection.
const (
	FieldDNI                   = "dni"
	FieldNumeroHistoriaClinica = "numeroHistoriaClinica"
)

// PatientRepository is the record store: durable keyed storage of patient
// documents with atomic whole-document writes.
type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id primitive.ObjectID) (*model.Patient, error)
	FindByAlternateKey(ctx context.Context, field, value string) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	Replace(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
