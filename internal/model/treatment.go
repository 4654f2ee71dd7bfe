package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TreatmentStatus string

const (
	TreatmentStatusPendiente  TreatmentStatus = "pendiente"
	TreatmentStatusEnProceso  TreatmentStatus = "en-proceso"
	TreatmentStatusCompletado TreatmentStatus = "completado"
)

// Treatment is one procedure entry in a patient's clinical history. Its ID is
// unique within the parent patient only.
type Treatment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Fecha         time.Time          `bson:"fecha" json:"fecha"`
	Procedimiento string             `bson:"procedimiento" json:"procedimiento"`
	Notas         string             `bson:"notas,omitempty" json:"notas,omitempty"`
	Diente        *int               `bson:"diente,omitempty" json:"diente,omitempty"`
	Estado        TreatmentStatus    `bson:"estado" json:"estado"`
}

type AddTreatmentRequest struct {
	Fecha         *time.Time      `json:"fecha"`
	Procedimiento string          `json:"procedimiento" binding:"required"`
	Notas         string          `json:"notas"`
	Diente        *int            `json:"diente" binding:"omitempty,diente"`
	Estado        TreatmentStatus `json:"estado" binding:"omitempty,oneof=pendiente en-proceso completado"`
}

// UpdateTreatmentRequest is a shallow merge patch: nil fields are preserved.
type UpdateTreatmentRequest struct {
	Fecha         *time.Time       `json:"fecha"`
	Procedimiento *string          `json:"procedimiento"`
	Notas         *string          `json:"notas"`
	Diente        *int             `json:"diente" binding:"omitempty,diente"`
	Estado        *TreatmentStatus `json:"estado" binding:"omitempty,oneof=pendiente en-proceso completado"`
}
