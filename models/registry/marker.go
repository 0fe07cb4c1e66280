package registry

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/models/common"
	"gorm.io/gorm"
)

// Marker is a map annotation that refers to exactly one Upload. The
// marker does not own the upload.
type Marker struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	MarkerLatitude  float64   `gorm:"not null" json:"markerLatitude"`
	MarkerLongitude float64   `gorm:"not null" json:"markerLongitude"`
	MarkerAddress   string    `gorm:"type:varchar(255);not null" json:"markerAddress"`
	UploadID        string    `gorm:"type:varchar(36);not null;index" json:"uploadId"`
	CreatedAt       time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Marker) TableName() string {
	return "markers"
}

func (m *Marker) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ToJSON converts this Marker to JSON.
func (m *Marker) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MarkerInput is the body of a create-marker request. Pointer fields
// let us tell a missing value from a zero value.
type MarkerInput struct {
	MarkerLatitude  *float64 `json:"markerLatitude"`
	MarkerLongitude *float64 `json:"markerLongitude"`
	MarkerAddress   *string  `json:"markerAddress"`
	UploadID        string   `json:"uploadId"`
}

// Validate checks required fields and coordinate ranges.
func (in *MarkerInput) Validate() error {
	if in.MarkerLatitude == nil {
		return common.NewValidationError("markerLatitude", "is required")
	}
	if in.MarkerLongitude == nil {
		return common.NewValidationError("markerLongitude", "is required")
	}
	if in.MarkerAddress == nil || strings.TrimSpace(*in.MarkerAddress) == "" {
		return common.NewValidationError("markerAddress", "is required")
	}
	if strings.TrimSpace(in.UploadID) == "" {
		return common.NewValidationError("uploadId", "is required")
	}
	if _, err := uuid.Parse(in.UploadID); err != nil {
		return common.NewValidationError("uploadId", "must be a UUID")
	}
	return ValidateCoordinates(in.MarkerLatitude, in.MarkerLongitude, "markerLatitude", "markerLongitude")
}

// ToMarker returns a new, unsaved Marker. Call Validate first.
func (in *MarkerInput) ToMarker() *Marker {
	return &Marker{
		MarkerLatitude:  *in.MarkerLatitude,
		MarkerLongitude: *in.MarkerLongitude,
		MarkerAddress:   strings.TrimSpace(*in.MarkerAddress),
		UploadID:        in.UploadID,
	}
}
