package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var Bloomsday, _ = time.Parse(time.RFC3339, "1904-06-16T15:04:05Z")

const (
	Address     = "서울특별시 중구 세종대로 110"
	Description = "Water over the road near city hall"
	Latitude    = 37.5665
	Longitude   = 126.978
)

func FloatPtr(f float64) *float64 {
	return &f
}

func StringPtr(s string) *string {
	return &s
}

// GetUpload returns an unsaved upload of the given type for a 10-byte
// JPEG. Its key is empty.
func GetUpload(disasterType registry.DisasterType) *registry.Upload {
	return &registry.Upload{
		Type:        disasterType,
		Latitude:    FloatPtr(Latitude),
		Longitude:   FloatPtr(Longitude),
		Address:     StringPtr(Address),
		Description: StringPtr(Description),
		Size:        10,
		MimeType:    "image/jpeg",
		Metadata: datatypes.JSONMap{
			constants.MetaExtension:    "jpeg",
			constants.MetaEncoding:     constants.DefaultEncoding,
			constants.MetaOriginalName: "flood.jpeg",
		},
	}
}

// GetMarker returns an unsaved marker that refers to uploadID.
func GetMarker(uploadID string) *registry.Marker {
	return &registry.Marker{
		MarkerLatitude:  Latitude,
		MarkerLongitude: Longitude,
		MarkerAddress:   Address,
		UploadID:        uploadID,
	}
}

// CreateUpload saves a complete upload created at createdAt. It skips
// the object store, so the key points at nothing.
func CreateUpload(t *testing.T, client *network.RegistryClient, disasterType registry.DisasterType, createdAt time.Time) *registry.Upload {
	ctx := context.Background()
	upload := GetUpload(disasterType)
	upload.CreatedAt = createdAt
	require.Nil(t, client.UploadCreate(ctx, upload))
	key := fmt.Sprintf("%s/%s.jpeg", constants.KeyPrefix, upload.ID)
	require.Nil(t, client.UploadSetKey(ctx, upload, key))
	return upload
}

// CreatePendingUpload saves an upload that has no key.
func CreatePendingUpload(t *testing.T, client *network.RegistryClient, disasterType registry.DisasterType) *registry.Upload {
	upload := GetUpload(disasterType)
	require.Nil(t, client.UploadCreate(context.Background(), upload))
	return upload
}
