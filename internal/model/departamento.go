package model

import (
	"time"

	"github.com/google/uuid"
)

// Departamento groups products for catalog browsing and reporting.
type Departamento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization for the Spanish name.
func (Departamento) TableName() string { return "departamentos" }
