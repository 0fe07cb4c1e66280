package services

import (
	"context"

	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
)

// UploadQuery answers read requests for uploads. Every upload it
// returns carries its public URL.
type UploadQuery struct {
	Registry *network.RegistryClient
	Target   *common.StorageTarget
}

func NewUploadQuery(client *network.RegistryClient, target *common.StorageTarget) *UploadQuery {
	return &UploadQuery{
		Registry: client,
		Target:   target,
	}
}

// List returns one page of uploads matching filter, newest first.
func (q *UploadQuery) List(ctx context.Context, filter *registry.UploadFilter) (*registry.UploadPage, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	uploads, total, err := q.Registry.UploadList(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, upload := range uploads {
		q.Decorate(upload)
	}
	return registry.NewUploadPage(uploads, total, filter), nil
}

// GetOne returns the upload with the given id. The error wraps
// common.ErrNotFound if there is no such complete upload.
func (q *UploadQuery) GetOne(ctx context.Context, id string) (*registry.Upload, error) {
	upload, err := q.Registry.UploadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.Decorate(upload), nil
}

func (q *UploadQuery) Statistics(ctx context.Context) (*registry.UploadStatistics, error) {
	return q.Registry.UploadStatistics(ctx)
}

// Decorate sets the upload's public URL.
func (q *UploadQuery) Decorate(upload *registry.Upload) *registry.Upload {
	upload.URL = q.Target.URLFor(upload.Key)
	return upload
}
