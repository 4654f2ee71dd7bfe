package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/odontoweb/records-api/internal/model"
	"github.com/odontoweb/records-api/internal/repository"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

const patientsCollection = "patients"

type patientRepository struct {
	coll *mongo.Collection
}

func NewPatientRepository(db *DB) repository.PatientRepository {
	return &patientRepository{coll: db.Database().Collection(patientsCollection)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, patient); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Patient, error) {
	var patient model.Patient
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, translateReadError(err)
	}
	return &patient, nil
}

func (r *patientRepository) FindByAlternateKey(ctx context.Context, field, value string) (*model.Patient, error) {
	var patient model.Patient
	err := r.coll.FindOne(ctx, bson.M{field: value}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, translateReadError(err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, translateReadError(err)
	}
	defer cursor.Close(ctx)

	patients := make([]*model.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, translateReadError(err)
	}
	return patients, nil
}

// Replace persists the whole document atomically, including the embedded
// treatment and image sequences.
func (r *patientRepository) Replace(ctx context.Context, patient *model.Patient) error {
	patient.UpdatedAt = time.Now().UTC()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": patient.ID}, patient)
	if err != nil {
		return translateWriteError(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateWriteError(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

// translateWriteError maps driver errors onto the application taxonomy. A
// duplicate-key violation names the colliding field when the index name can
// be derived from the error message.
func translateWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.DuplicateKey(duplicateField(err), err)
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperrors.StoreUnavailable(err)
	}
	return apperrors.Internal(err)
}

func translateReadError(err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return apperrors.StoreUnavailable(err)
	}
	return apperrors.Internal(err)
}

func duplicateField(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, repository.FieldDNI+"_1"):
		return repository.FieldDNI
	case strings.Contains(msg, repository.FieldNumeroHistoriaClinica+"_1"):
		return repository.FieldNumeroHistoriaClinica
	}
	return ""
}
