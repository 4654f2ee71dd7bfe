package patient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontoweb/records-api/internal/model"
	"github.com/odontoweb/records-api/internal/repository/memory"
	apperrors "github.com/odontoweb/records-api/pkg/errors"
)

func newTestService() (*Service, *memory.PatientRepository) {
	repo := memory.NewPatientRepository()
	return NewService(repo), repo
}

func validCreateRequest() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		Nombre:                "Ana",
		Apellido:              "Lopez",
		NumeroHistoriaClinica: "HC-001",
		DNI:                   "12345678",
		Telefono:              "555-0101",
	}
}

func TestCreatePatientAndGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.Equal(t, "Ana", created.Nombre)
	assert.False(t, created.HistoriaClinica.FechaCreacion.IsZero())
	assert.Empty(t, created.HistoriaClinica.Tratamientos)
	assert.Empty(t, created.Imagenes)

	fetched, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.DNI, fetched.DNI)
	assert.Equal(t, created.NumeroHistoriaClinica, fetched.NumeroHistoriaClinica)
	assert.Equal(t, created.HistoriaClinica.FechaCreacion.Unix(), fetched.HistoriaClinica.FechaCreacion.Unix())
}

func TestCreatePatientParsesAlergias(t *testing.T) {
	svc, _ := newTestService()

	req := validCreateRequest()
	req.Alergias = "penicilina, latex , "

	created, err := svc.CreatePatient(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"penicilina", "latex"}, created.HistoriaClinica.Alergias)
}

func TestCreatePatientDuplicateDNI(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.NumeroHistoriaClinica = "HC-002"
	_, err = svc.CreatePatient(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateKey(err))
	assert.Equal(t, 1, repo.Count())
}

func TestCreatePatientDuplicateHistoriaClinica(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.DNI = "87654321"
	_, err = svc.CreatePatient(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateKey(err))
	assert.Equal(t, 1, repo.Count())
}

func TestCreatePatientValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.CreatePatientRequest)
	}{
		{"missing nombre", func(r *model.CreatePatientRequest) { r.Nombre = "" }},
		{"missing apellido", func(r *model.CreatePatientRequest) { r.Apellido = "" }},
		{"missing dni", func(r *model.CreatePatientRequest) { r.DNI = "" }},
		{"missing historia clinica number", func(r *model.CreatePatientRequest) { r.NumeroHistoriaClinica = "" }},
		{"missing telefono", func(r *model.CreatePatientRequest) { r.Telefono = "" }},
		{"malformed email", func(r *model.CreatePatientRequest) { r.Email = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := svc.CreatePatient(ctx, req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestUpdatePatientMergesFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	telefono := "555-9999"
	updated, err := svc.UpdatePatient(ctx, created.ID, &model.UpdatePatientRequest{Telefono: &telefono})
	require.NoError(t, err)

	assert.Equal(t, "555-9999", updated.Telefono)
	assert.Equal(t, created.Nombre, updated.Nombre)
	assert.Equal(t, created.Apellido, updated.Apellido)
	assert.Equal(t, created.DNI, updated.DNI)
	assert.Equal(t, created.HistoriaClinica.FechaCreacion.Unix(), updated.HistoriaClinica.FechaCreacion.Unix())
}

func TestUpdatePatientUnchangedAlternateKeyDoesNotCollideWithSelf(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	dni := created.DNI
	_, err = svc.UpdatePatient(ctx, created.ID, &model.UpdatePatientRequest{DNI: &dni})
	require.NoError(t, err)
}

func TestUpdatePatientDuplicateAlternateKey(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.DNI = "87654321"
	second.NumeroHistoriaClinica = "HC-002"
	other, err := svc.CreatePatient(ctx, second)
	require.NoError(t, err)

	_, err = svc.UpdatePatient(ctx, other.ID, &model.UpdatePatientRequest{DNI: &first.DNI})
	require.Error(t, err)
	assert.True(t, apperrors.IsDuplicateKey(err))
}

func TestUpdatePatientClearsRequiredFieldFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	empty := ""
	_, err = svc.UpdatePatient(ctx, created.ID, &model.UpdatePatientRequest{Nombre: &empty})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeletePatientCascades(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.AddTreatment(ctx, created.ID, &model.AddTreatmentRequest{Procedimiento: "Limpieza"})
	require.NoError(t, err)
	_, err = svc.AddImage(ctx, created.ID, &model.AddImageRequest{URL: "https://cdn.example.com/rx1.png"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(ctx, created.ID))

	_, err = svc.GetPatient(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListPatientsSortedByCreationDescending(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreatePatient(ctx, validCreateRequest())
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)

	req := validCreateRequest()
	req.DNI = "87654321"
	req.NumeroHistoriaClinica = "HC-002"
	second, err := svc.CreatePatient(ctx, req)
	require.NoError(t, err)

	patients, err := svc.ListPatients(ctx)
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, second.ID, patients[0].ID)
	assert.Equal(t, first.ID, patients[1].ID)
}
