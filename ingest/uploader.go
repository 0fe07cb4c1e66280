package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/metrics"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/util/logger"
	"gorm.io/datatypes"
)

// UploadRegistry is the part of network.RegistryClient that the
// Uploader writes to.
type UploadRegistry interface {
	UploadCreate(ctx context.Context, upload *registry.Upload) error
	UploadSetKey(ctx context.Context, upload *registry.Upload, key string) error
	UploadDelete(ctx context.Context, id string) error
}

// Uploader stores an uploaded file and records it, keeping the object
// store and the uploads table consistent with each other.
//
// The record is inserted first so the database can assign its ID,
// because the ID is part of the storage key. The record stays pending
// (empty key) until the object has been written. If the write fails,
// the Uploader removes whatever may have been written and deletes the
// record. A client that retries after a failure gets a new ID.
type Uploader struct {
	Logger      *logging.Logger
	MaxFileSize int64
	Registry    UploadRegistry
	Store       network.ObjectStore
	metrics     *metrics.Metrics
}

// NewUploader creates a new Uploader.
func NewUploader(uploadRegistry UploadRegistry, store network.ObjectStore, maxFileSize int64, _logger *logging.Logger) *Uploader {
	return &Uploader{
		Logger:      _logger,
		MaxFileSize: maxFileSize,
		Registry:    uploadRegistry,
		Store:       store,
		metrics:     metrics.Get(),
	}
}

// StorageKey returns the object key for an upload.
func StorageKey(id, extension string) string {
	if extension == "" {
		return fmt.Sprintf("%s/%s", constants.KeyPrefix, id)
	}
	return fmt.Sprintf("%s/%s.%s", constants.KeyPrefix, id, extension)
}

// Upload validates input and file, writes reader to the object store
// and returns the complete upload record.
//
// A *common.ValidationError means nothing was written anywhere. A
// *common.CompensationError means the write failed and the record
// could not be removed afterward. Any other error means the write
// failed and the record is gone.
func (u *Uploader) Upload(ctx context.Context, input *registry.UploadInput, file *registry.FileInfo, reader io.Reader) (*registry.Upload, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := file.Validate(u.MaxFileSize); err != nil {
		return nil, err
	}
	contentType, err := file.ResolveContentType()
	if err != nil {
		return nil, err
	}
	started := time.Now()
	upload := u.newRecord(input, file, contentType)

	err = u.Registry.UploadCreate(ctx, upload)
	if err != nil {
		u.stageFailed(constants.StageInsert, "Could not insert upload record for %s: %v", file.OriginalName, err)
		return nil, fmt.Errorf("insert upload record: %w", err)
	}

	key := StorageKey(upload.ID, upload.Extension())
	progress := logger.NewMinioProgressLogger(u.Logger, key, file.Size)
	_, err = u.Store.PutObject(ctx, key, reader, file.Size, contentType, progress)
	if err != nil {
		u.stageFailed(constants.StageStore, "Could not store %s for upload %s: %v", key, upload.ID, err)
		return nil, u.compensate(ctx, upload, key, constants.StageStore, err)
	}

	err = u.Registry.UploadSetKey(ctx, upload, key)
	if err != nil {
		u.stageFailed(constants.StageBackfill, "Could not record key %s for upload %s: %v", key, upload.ID, err)
		return nil, u.compensate(ctx, upload, key, constants.StageBackfill, err)
	}

	u.metrics.UploadsTotal.Inc()
	u.metrics.BytesUploaded.Add(float64(file.Size))
	u.metrics.UploadDuration.Observe(time.Since(started).Seconds())
	u.Logger.Infof("Stored upload %s (%s, %s, %d bytes) at %s/%s",
		upload.ID, upload.Type, contentType, file.Size, u.Store.Bucket(), key)
	return upload, nil
}

func (u *Uploader) newRecord(input *registry.UploadInput, file *registry.FileInfo, contentType string) *registry.Upload {
	encoding := file.Encoding
	if encoding == "" {
		encoding = constants.DefaultEncoding
	}
	return &registry.Upload{
		Type:        input.Type,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Address:     input.Address,
		Description: input.Description,
		Size:        file.Size,
		MimeType:    contentType,
		Metadata: datatypes.JSONMap{
			constants.MetaExtension:    file.Extension(),
			constants.MetaEncoding:     encoding,
			constants.MetaOriginalName: file.OriginalName,
		},
	}
}

// compensate undoes a failed upload. The object may have been partly
// written, so we try to remove it, but failure there only gets logged.
// The record must go. If it can't be deleted, the result is a
// CompensationError.
//
// Cleanup runs even if ctx was canceled, since a client hanging up
// mid-upload is a common cause of failure.
func (u *Uploader) compensate(ctx context.Context, upload *registry.Upload, key, stage string, cause error) error {
	cleanupCtx := context.WithoutCancel(ctx)
	err := u.Store.RemoveObject(cleanupCtx, key)
	if err != nil {
		u.stageFailed(constants.StageCleanup, "Could not remove %s after failed %s of upload %s: %v",
			key, stage, upload.ID, err)
	}
	err = u.Registry.UploadDelete(cleanupCtx, upload.ID)
	if err != nil {
		u.metrics.StageFailures.WithLabelValues(constants.StageCompensate).Inc()
		u.metrics.Compensations.WithLabelValues("failed").Inc()
		compErr := &common.CompensationError{
			CleanupErr: err,
			Err:        cause,
			RecordID:   upload.ID,
			Stage:      stage,
		}
		u.Logger.Critical(compErr.Detail())
		return compErr
	}
	u.metrics.Compensations.WithLabelValues("succeeded").Inc()
	u.Logger.Infof("Rolled back upload %s after failed %s", upload.ID, stage)
	return fmt.Errorf("%s upload %s: %w", stage, upload.ID, cause)
}

// stageFailed counts a failure and logs it. Failures of cleanup steps
// are warnings, since the caller still gets the original error.
func (u *Uploader) stageFailed(name, format string, args ...interface{}) {
	u.metrics.StageFailures.WithLabelValues(name).Inc()
	message := fmt.Sprintf(format, args...)
	stage := constants.StageFor(name)
	if stage == nil {
		u.Logger.Error(message)
		return
	}
	message = fmt.Sprintf("[%d/%d %s] %s", stage.Order, len(constants.UploadStages), stage.Name, message)
	if stage.Compensates {
		u.Logger.Warning(message)
	} else {
		u.Logger.Error(message)
	}
}
