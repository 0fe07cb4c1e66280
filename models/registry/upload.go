package registry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/constants"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Upload is one stored disaster-report asset. A row is created with an
// empty Key, which makes it pending. The key is filled in once the
// bytes are safely in the object store. Pending rows are never returned
// by read queries.
type Upload struct {
	ID          string            `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Key         string            `gorm:"column:storage_key;type:varchar(255);not null;default:'';index" json:"key"`
	Type        DisasterType      `gorm:"type:varchar(16);not null;index" json:"type"`
	Latitude    *float64          `json:"latitude,omitempty"`
	Longitude   *float64          `json:"longitude,omitempty"`
	Address     *string           `gorm:"type:varchar(255)" json:"address,omitempty"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	Size        int64             `gorm:"not null" json:"size"`
	MimeType    string            `gorm:"column:mimetype;type:varchar(255);not null" json:"mimetype"`
	Metadata    datatypes.JSONMap `json:"metadata"`
	CreatedAt   time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// URL is the public URL of the stored object. It is derived from
	// Key when the upload is returned to a client and is not persisted.
	URL string `gorm:"-" json:"url,omitempty"`
}

func (Upload) TableName() string {
	return "uploads"
}

// BeforeCreate assigns the identifier. The identifier must exist before
// the storage key can be computed, so it is minted at insert time.
func (u *Upload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsPending returns true if this upload has no object in storage yet.
func (u *Upload) IsPending() bool {
	return u.Key == constants.PendingKey
}

// Extension returns the file extension recorded in metadata.
func (u *Upload) Extension() string {
	if u.Metadata == nil {
		return ""
	}
	if ext, ok := u.Metadata[constants.MetaExtension].(string); ok {
		return ext
	}
	return ""
}

// ToJSON converts this Upload to JSON.
func (u *Upload) ToJSON() ([]byte, error) {
	return json.Marshal(u)
}
