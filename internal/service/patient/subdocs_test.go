package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/odontoweb/records-api/internal/model"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

func createTestPatient(t *testing.T, svc *Service) *model.Patient {
	t.Helper()
	created, err := svc.CreatePatient(context.Background(), validCreateRequest())
	require.NoError(t, err)
	return created
}

func TestAddTreatmentAppendsWithFreshIdentity(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	first, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{Procedimiento: "Limpieza"})
	require.NoError(t, err)
	second, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{Procedimiento: "Extraccion"})
	require.NoError(t, err)

	assert.False(t, first.ID.IsZero())
	assert.False(t, second.ID.IsZero())
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.TreatmentStatusPendiente, first.Estado)

	treatments, err := svc.ListTreatments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, treatments, 2)
	assert.Equal(t, first.ID, treatments[0].ID)
	assert.Equal(t, second.ID, treatments[1].ID)
}

func TestAddTreatmentDefaultsAndOverrides(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	fecha := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	diente := 12
	created, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{
		Fecha:         &fecha,
		Procedimiento: "Endodoncia",
		Notas:         "segunda sesion",
		Diente:        &diente,
		Estado:        model.TreatmentStatusEnProceso,
	})
	require.NoError(t, err)

	assert.Equal(t, fecha, created.Fecha)
	assert.Equal(t, model.TreatmentStatusEnProceso, created.Estado)
	require.NotNil(t, created.Diente)
	assert.Equal(t, 12, *created.Diente)
}

func TestAddTreatmentRejectsToothOutOfRange(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	diente := 33
	_, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{
		Procedimiento: "Limpieza",
		Diente:        &diente,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAddTreatmentParentNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddTreatment(context.Background(), primitive.NewObjectID(), &model.AddTreatmentRequest{
		Procedimiento: "Limpieza",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateTreatmentShallowMerge(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	fecha := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	diente := 7
	created, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{
		Fecha:         &fecha,
		Procedimiento: "Limpieza",
		Notas:         "primera visita",
		Diente:        &diente,
	})
	require.NoError(t, err)

	estado := model.TreatmentStatusCompletado
	updated, err := svc.UpdateTreatment(ctx, p.ID, created.ID, &model.UpdateTreatmentRequest{Estado: &estado})
	require.NoError(t, err)

	assert.Equal(t, model.TreatmentStatusCompletado, updated.Estado)
	assert.Equal(t, fecha, updated.Fecha)
	assert.Equal(t, "Limpieza", updated.Procedimiento)
	assert.Equal(t, "primera visita", updated.Notas)
	require.NotNil(t, updated.Diente)
	assert.Equal(t, 7, *updated.Diente)
}

func TestUpdateTreatmentNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	estado := model.TreatmentStatusCompletado
	_, err := svc.UpdateTreatment(ctx, p.ID, primitive.NewObjectID(), &model.UpdateTreatmentRequest{Estado: &estado})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRemoveTreatmentPreservesOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	var ids []primitive.ObjectID
	for _, proc := range []string{"Limpieza", "Extraccion", "Endodoncia"} {
		created, err := svc.AddTreatment(ctx, p.ID, &model.AddTreatmentRequest{Procedimiento: proc})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	require.NoError(t, svc.RemoveTreatment(ctx, p.ID, ids[1]))

	treatments, err := svc.ListTreatments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, treatments, 2)
	assert.Equal(t, ids[0], treatments[0].ID)
	assert.Equal(t, ids[2], treatments[1].ID)
}

func TestRemoveTreatmentNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	err := svc.RemoveTreatment(ctx, p.ID, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddImageDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	created, err := svc.AddImage(ctx, p.ID, &model.AddImageRequest{
		URL: "https://cdn.example.com/rx1.png",
	})
	require.NoError(t, err)

	assert.False(t, created.ID.IsZero())
	assert.Equal(t, model.ImageTypeOtro, created.Tipo)
	assert.False(t, created.Fecha.IsZero())

	images, err := svc.ListImages(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, created.ID, images[0].ID)
}

func TestUpdateImageDescripcion(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	created, err := svc.AddImage(ctx, p.ID, &model.AddImageRequest{
		URL:  "https://cdn.example.com/rx1.png",
		Tipo: model.ImageTypeRadiografia,
	})
	require.NoError(t, err)

	descripcion := "radiografia panoramica"
	updated, err := svc.UpdateImage(ctx, p.ID, created.ID, &model.UpdateImageRequest{Descripcion: &descripcion})
	require.NoError(t, err)

	assert.Equal(t, descripcion, updated.Descripcion)
	assert.Equal(t, created.URL, updated.URL)
	assert.Equal(t, model.ImageTypeRadiografia, updated.Tipo)
}

func TestRemoveImage(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	p := createTestPatient(t, svc)

	created, err := svc.AddImage(ctx, p.ID, &model.AddImageRequest{URL: "https://cdn.example.com/rx1.png"})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveImage(ctx, p.ID, created.ID))

	images, err := svc.ListImages(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	err = svc.RemoveImage(ctx, p.ID, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
