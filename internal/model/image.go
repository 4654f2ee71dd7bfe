package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ImageType string

const (
	ImageTypeRadiografia ImageType = "radiografia"
	ImageTypeFotografia  ImageType = "fotografia"
	ImageTypeOtro        ImageType = "otro"
)

// Image is one stored radiograph/photo reference attached to a patient. The
// URL is the source of truth for display; the API never sees raw image bytes.
type Image struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	URL         string             `bson:"url" json:"url"`
	Tipo        ImageType          `bson:"tipo" json:"tipo"`
	Descripcion string             `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	Fecha       time.Time          `bson:"fecha" json:"fecha"`
}

type AddImageRequest struct {
	URL         string     `json:"url" binding:"required"`
	Tipo        ImageType  `json:"tipo" binding:"omitempty,oneof=radiografia fotografia otro"`
	Descripcion string     `json:"descripcion"`
	Fecha       *time.Time `json:"fecha"`
}

// UpdateImageRequest is a shallow merge patch: nil fields are preserved.
type UpdateImageRequest struct {
	URL         *string    `json:"url"`
	Tipo        *ImageType `json:"tipo" binding:"omitempty,oneof=radiografia fotografia otro"`
	Descripcion *string    `json:"descripcion"`
	Fecha       *time.Time `json:"fecha"`
}
