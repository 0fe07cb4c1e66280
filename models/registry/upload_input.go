package registry

import (
	"math"
	"strings"

	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/util"
)

// UploadInput is the metadata a client declares alongside the file.
type UploadInput struct {
	Type        DisasterType
	Latitude    *float64
	Longitude   *float64
	Address     *string
	Description *string
}

// Validate checks the declared metadata. It returns a
// *common.ValidationError describing the first problem found.
func (in *UploadInput) Validate() error {
	if in.Type == "" {
		return common.NewValidationError("type", "is required")
	}
	if !in.Type.Valid() {
		return common.NewValidationError("type", "must be one of %s",
			strings.Join(constants.DisasterTypes, ", "))
	}
	if err := ValidateCoordinates(in.Latitude, in.Longitude, "latitude", "longitude"); err != nil {
		return err
	}
	return nil
}

// ValidateCoordinates range-checks an optional coordinate pair. NaN is
// out of every range.
func ValidateCoordinates(lat, lng *float64, latField, lngField string) error {
	if lat != nil && (math.IsNaN(*lat) || *lat < -90 || *lat > 90) {
		return common.NewValidationError(latField, "must be between -90 and 90")
	}
	if lng != nil && (math.IsNaN(*lng) || *lng < -180 || *lng > 180) {
		return common.NewValidationError(lngField, "must be between -180 and 180")
	}
	return nil
}

// FileInfo describes the file half of an upload request.
type FileInfo struct {
	ContentType  string
	Encoding     string
	OriginalName string
	Size         int64
}

// Extension returns the file extension of the original filename.
func (f *FileInfo) Extension() string {
	return util.FileExtension(f.OriginalName)
}

// IsKsplat returns true for .ksplat gaussian-splat files, which are
// accepted as opaque binaries.
func (f *FileInfo) IsKsplat() bool {
	return strings.EqualFold(f.Extension(), constants.ExtensionKsplat)
}

// ResolveContentType validates the declared content type and returns
// the type the object should be stored with. Images and videos keep
// their declared type. Ksplat files that are not declared as image or
// video fall back to application/octet-stream.
func (f *FileInfo) ResolveContentType() (string, error) {
	declared := strings.ToLower(strings.TrimSpace(f.ContentType))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if util.HasAnyPrefix(declared, constants.AcceptedMediaPrefixes) {
		return declared, nil
	}
	if f.IsKsplat() {
		return constants.ContentTypeOctetStream, nil
	}
	return "", common.NewValidationError("file",
		"type %q is not allowed: upload an image, a video or a .ksplat file", f.ContentType)
}

// Validate checks size against maxSize.
func (f *FileInfo) Validate(maxSize int64) error {
	if f.Size < 1 {
		return common.NewValidationError("file", "is required and must not be empty")
	}
	if f.Size > maxSize {
		return common.NewValidationError("file", "is %d bytes, which exceeds the limit of %d bytes", f.Size, maxSize)
	}
	_, err := f.ResolveContentType()
	return err
}
