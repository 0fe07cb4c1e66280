package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/services"
	"github.com/scorve12/disaster-uploads/util/logger"
	"github.com/scorve12/disaster-uploads/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markerInput(uploadID string) *registry.MarkerInput {
	return &registry.MarkerInput{
		MarkerLatitude:  testutil.FloatPtr(35.1796),
		MarkerLongitude: testutil.FloatPtr(129.0756),
		MarkerAddress:   testutil.StringPtr("부산광역시 중구"),
		UploadID:        uploadID,
	}
}

func TestMarkerServiceCreate(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	upload := testutil.CreateUpload(t, client, flood, testutil.Bloomsday)
	svc := services.NewMarkerService(client, logger.Discard())

	marker, err := svc.Create(ctx, markerInput(upload.ID))
	require.Nil(t, err)
	_, err = uuid.Parse(marker.ID)
	assert.Nil(t, err)
	assert.Equal(t, upload.ID, marker.UploadID)
	assert.Equal(t, "부산광역시 중구", marker.MarkerAddress)

	found, err := svc.GetOne(ctx, marker.ID)
	require.Nil(t, err)
	assert.Equal(t, marker.ID, found.ID)
	assert.InDelta(t, 35.1796, found.MarkerLatitude, 0.000001)
}

func TestMarkerServiceCreateUnknownUpload(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	pending := testutil.CreatePendingUpload(t, client, flood)
	svc := services.NewMarkerService(client, logger.Discard())

	_, err := svc.Create(ctx, markerInput(uuid.NewString()))
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.Create(ctx, markerInput(pending.ID))
	assert.ErrorIs(t, err, common.ErrNotFound)

	markers, err := svc.ListAll(ctx)
	require.Nil(t, err)
	assert.Empty(t, markers)
}

func TestMarkerServiceCreateInvalid(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	upload := testutil.CreateUpload(t, client, flood, testutil.Bloomsday)
	svc := services.NewMarkerService(client, logger.Discard())

	input := markerInput(upload.ID)
	input.MarkerLatitude = testutil.FloatPtr(91)
	_, err := svc.Create(ctx, input)
	assert.True(t, common.IsValidationError(err))

	input = markerInput(upload.ID)
	input.MarkerAddress = nil
	_, err = svc.Create(ctx, input)
	assert.True(t, common.IsValidationError(err))

	input = markerInput("not-a-uuid")
	_, err = svc.Create(ctx, input)
	assert.True(t, common.IsValidationError(err))
}

func TestMarkerServiceList(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	first := testutil.CreateUpload(t, client, flood, testutil.Bloomsday)
	second := testutil.CreateUpload(t, client, flood, testutil.Bloomsday)
	svc := services.NewMarkerService(client, logger.Discard())
	for _, id := range []string{first.ID, first.ID, second.ID} {
		_, err := svc.Create(ctx, markerInput(id))
		require.Nil(t, err)
	}

	all, err := svc.ListAll(ctx)
	require.Nil(t, err)
	assert.Len(t, all, 3)

	forFirst, err := svc.ListByUpload(ctx, first.ID)
	require.Nil(t, err)
	assert.Len(t, forFirst, 2)

	_, err = svc.ListByUpload(ctx, uuid.NewString())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.GetOne(ctx, uuid.NewString())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
