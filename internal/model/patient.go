package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is the root clinical record for one individual. Field names on the
// wire (json and bson) follow the clinic's existing conventions.
type Patient struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre                string             `bson:"nombre" json:"nombre"`
	Apellido              string             `bson:"apellido" json:"apellido"`
	NumeroHistoriaClinica string             `bson:"numeroHistoriaClinica" json:"numeroHistoriaClinica"`
	DNI                   string             `bson:"dni" json:"dni"`
	Telefono              string             `bson:"telefono" json:"telefono"`
	Email                 string             `bson:"email,omitempty" json:"email,omitempty"`
	FechaNacimiento       *time.Time         `bson:"fechaNacimiento,omitempty" json:"fechaNacimiento,omitempty"`
	HistoriaClinica       HistoriaClinica    `bson:"historiaClinica" json:"historiaClinica"`
	Imagenes              []Image            `bson:"imagenes" json:"imagenes"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HistoriaClinica is the clinical history embedded in a Patient.
// FechaCreacion is set once when the patient is created and never changes.
type HistoriaClinica struct {
	FechaCreacion time.Time   `bson:"fechaCreacion" json:"fechaCreacion"`
	Antecedentes  string      `bson:"antecedentes" json:"antecedentes"`
	Alergias      []string    `bson:"alergias" json:"alergias"`
	Tratamientos  []Treatment `bson:"tratamientos" json:"tratamientos"`
}

type CreatePatientRequest struct {
	Nombre                string     `json:"nombre" binding:"required"`
	Apellido              string     `json:"apellido" binding:"required"`
	NumeroHistoriaClinica string     `json:"numeroHistoriaClinica" binding:"required"`
	DNI                   string     `json:"dni" binding:"required"`
	Telefono              string     `json:"telefono" binding:"required"`
	Email                 string     `json:"email" binding:"omitempty,email"`
	FechaNacimiento       *time.Time `json:"fechaNacimiento"`
	Antecedentes          string     `json:"antecedentes"`
	// Alergias arrives as a comma-separated string, matching the intake form.
	Alergias string `json:"alergias"`
}

// ParseAlergias splits the comma-separated allergy field into trimmed entries.
func (r *CreatePatientRequest) ParseAlergias() []string {
	if strings.TrimSpace(r.Alergias) == "" {
		return []string{}
	}
	parts := strings.Split(r.Alergias, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// UpdatePatientRequest carries a partial update: nil fields are preserved.
type UpdatePatientRequest struct {
	Nombre                *string    `json:"nombre"`
	Apellido              *string    `json:"apellido"`
	NumeroHistoriaClinica *string    `json:"numeroHistoriaClinica"`
	DNI                   *string    `json:"dni"`
	Telefono              *string    `json:"telefono"`
	Email                 *string    `json:"email" binding:"omitempty,email"`
	FechaNacimiento       *time.Time `json:"fechaNacimiento"`
	Antecedentes          *string    `json:"antecedentes"`
	Alergias              *[]string  `json:"alergias"`
}
