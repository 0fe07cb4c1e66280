package services

import (
	"context"
	"fmt"

	"github.com/op/go-logging"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
)

// MarkerService creates and reads map markers. A marker can only be
// created for an upload that exists and is complete.
type MarkerService struct {
	Logger   *logging.Logger
	Registry *network.RegistryClient
}

func NewMarkerService(client *network.RegistryClient, logger *logging.Logger) *MarkerService {
	return &MarkerService{
		Logger:   logger,
		Registry: client,
	}
}

// Create validates input, checks that the referenced upload exists,
// and saves a new marker.
func (s *MarkerService) Create(ctx context.Context, input *registry.MarkerInput) (*registry.Marker, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUpload(ctx, input.UploadID); err != nil {
		return nil, err
	}
	marker := input.ToMarker()
	if err := s.Registry.MarkerCreate(ctx, marker); err != nil {
		return nil, err
	}
	s.Logger.Infof("Created marker %s for upload %s", marker.ID, marker.UploadID)
	return marker, nil
}

func (s *MarkerService) ListAll(ctx context.Context) ([]*registry.Marker, error) {
	return s.Registry.MarkerList(ctx)
}

// ListByUpload returns the markers for one upload. The error wraps
// common.ErrNotFound if the upload does not exist.
func (s *MarkerService) ListByUpload(ctx context.Context, uploadID string) ([]*registry.Marker, error) {
	if err := s.requireUpload(ctx, uploadID); err != nil {
		return nil, err
	}
	return s.Registry.MarkerListByUpload(ctx, uploadID)
}

func (s *MarkerService) GetOne(ctx context.Context, id string) (*registry.Marker, error) {
	return s.Registry.MarkerByID(ctx, id)
}

func (s *MarkerService) requireUpload(ctx context.Context, uploadID string) error {
	exists, err := s.Registry.UploadExists(ctx, uploadID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("upload %s: %w", uploadID, common.ErrNotFound)
	}
	return nil
}
