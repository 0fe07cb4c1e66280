package network_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/util/logger"
	"github.com/scorve12/disaster-uploads/util/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flood = registry.DisasterType(constants.DisasterFlood)
var fire = registry.DisasterType(constants.DisasterFire)
var quake = registry.DisasterType(constants.DisasterEarthquake)

func TestUploadCreateAssignsIDAndClearsKey(t *testing.T) {
	client := testutil.NewRegistryClient(t)
	upload := testutil.GetUpload(flood)
	upload.Key = "uploads/should-be-cleared.jpeg"
	require.Nil(t, client.UploadCreate(context.Background(), upload))
	_, err := uuid.Parse(upload.ID)
	assert.Nil(t, err)
	assert.True(t, upload.IsPending())
	assert.False(t, upload.CreatedAt.IsZero())
}

func TestUploadCreateDistinctIDs(t *testing.T) {
	client := testutil.NewRegistryClient(t)
	first := testutil.CreatePendingUpload(t, client, flood)
	second := testutil.CreatePendingUpload(t, client, flood)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestPendingUploadIsHidden(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	pending := testutil.CreatePendingUpload(t, client, flood)

	_, err := client.UploadByID(ctx, pending.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	exists, err := client.UploadExists(ctx, pending.ID)
	require.Nil(t, err)
	assert.False(t, exists)

	uploads, total, err := client.UploadList(ctx, registry.NewUploadFilter())
	require.Nil(t, err)
	assert.Empty(t, uploads)
	assert.EqualValues(t, 0, total)

	stats, err := client.UploadStatistics(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, 0, stats.TotalUploads)
	assert.Empty(t, stats.MonthlyStats)
	assert.Empty(t, stats.DisasterTypeStats)
}

func TestUploadSetKey(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	upload := testutil.CreatePendingUpload(t, client, fire)
	key := "uploads/" + upload.ID + ".jpeg"
	require.Nil(t, client.UploadSetKey(ctx, upload, key))
	assert.Equal(t, key, upload.Key)

	saved, err := client.UploadByID(ctx, upload.ID)
	require.Nil(t, err)
	assert.Equal(t, key, saved.Key)
	assert.Equal(t, fire, saved.Type)
	assert.Equal(t, "image/jpeg", saved.MimeType)
	assert.EqualValues(t, 10, saved.Size)
	assert.Equal(t, "jpeg", saved.Extension())
	assert.Equal(t, "flood.jpeg", saved.Metadata[constants.MetaOriginalName])
	require.NotNil(t, saved.Latitude)
	assert.InDelta(t, testutil.Latitude, *saved.Latitude, 0.000001)
	require.NotNil(t, saved.Address)
	assert.Equal(t, testutil.Address, *saved.Address)

	missing := &registry.Upload{ID: uuid.NewString()}
	err = client.UploadSetKey(ctx, missing, "uploads/nothing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUploadDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	client := network.NewRegistryClient(db, logger.Discard())
	upload := testutil.CreatePendingUpload(t, client, flood)

	require.Nil(t, client.UploadDelete(ctx, upload.ID))
	var count int64
	require.Nil(t, db.Model(&registry.Upload{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Already gone
	assert.Nil(t, client.UploadDelete(ctx, upload.ID))
}

func TestUploadByIDNotFound(t *testing.T) {
	client := testutil.NewRegistryClient(t)
	upload, err := client.UploadByID(context.Background(), uuid.NewString())
	assert.Nil(t, upload)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUploadList(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ids := make([]string, 0)
	for i := 0; i < 15; i++ {
		dt := flood
		if i%3 == 0 {
			dt = fire
		}
		upload := testutil.CreateUpload(t, client, dt, start.Add(time.Duration(i)*time.Hour))
		ids = append(ids, upload.ID)
	}
	testutil.CreatePendingUpload(t, client, flood)

	filter := registry.NewUploadFilter()
	uploads, total, err := client.UploadList(ctx, filter)
	require.Nil(t, err)
	assert.EqualValues(t, 15, total)
	require.Len(t, uploads, 10)
	// Newest first
	assert.Equal(t, ids[14], uploads[0].ID)
	assert.Equal(t, ids[5], uploads[9].ID)

	filter.Page = 2
	uploads, total, err = client.UploadList(ctx, filter)
	require.Nil(t, err)
	assert.EqualValues(t, 15, total)
	require.Len(t, uploads, 5)
	assert.Equal(t, ids[4], uploads[0].ID)
	assert.Equal(t, ids[0], uploads[4].ID)

	filter.Page = 3
	uploads, _, err = client.UploadList(ctx, filter)
	require.Nil(t, err)
	assert.Empty(t, uploads)

	filter = registry.NewUploadFilter()
	filter.Type = &fire
	uploads, total, err = client.UploadList(ctx, filter)
	require.Nil(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, uploads, 5)
	for _, upload := range uploads {
		assert.Equal(t, fire, upload.Type)
	}
}

func TestUploadStatistics(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	may := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	jan := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

	testutil.CreateUpload(t, client, flood, may)
	testutil.CreateUpload(t, client, flood, may)
	testutil.CreateUpload(t, client, fire, june)
	testutil.CreateUpload(t, client, flood, jan)
	testutil.CreateUpload(t, client, quake, jan)
	testutil.CreateUpload(t, client, fire, jan)
	testutil.CreatePendingUpload(t, client, fire)

	stats, err := client.UploadStatistics(ctx)
	require.Nil(t, err)
	assert.EqualValues(t, 6, stats.TotalUploads)

	require.Len(t, stats.MonthlyStats, 3)
	assert.Equal(t, registry.MonthlyUploadStats{Year: 2025, Month: 1, Count: 3}, stats.MonthlyStats[0])
	assert.Equal(t, registry.MonthlyUploadStats{Year: 2024, Month: 6, Count: 1}, stats.MonthlyStats[1])
	assert.Equal(t, registry.MonthlyUploadStats{Year: 2024, Month: 5, Count: 2}, stats.MonthlyStats[2])

	require.Len(t, stats.DisasterTypeStats, 3)
	assert.Equal(t, registry.DisasterTypeStats{Type: flood, Label: "홍수", Count: 3}, stats.DisasterTypeStats[0])
	assert.Equal(t, registry.DisasterTypeStats{Type: fire, Label: "화재", Count: 2}, stats.DisasterTypeStats[1])
	assert.Equal(t, registry.DisasterTypeStats{Type: quake, Label: "지진", Count: 1}, stats.DisasterTypeStats[2])

	var sum int64
	for _, m := range stats.MonthlyStats {
		sum += m.Count
	}
	assert.Equal(t, stats.TotalUploads, sum)
}

func TestMarkers(t *testing.T) {
	ctx := context.Background()
	client := testutil.NewRegistryClient(t)
	first := testutil.CreateUpload(t, client, flood, testutil.Bloomsday)
	second := testutil.CreateUpload(t, client, fire, testutil.Bloomsday)

	m1 := testutil.GetMarker(first.ID)
	m1.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m2 := testutil.GetMarker(first.ID)
	m2.CreatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	m3 := testutil.GetMarker(second.ID)
	m3.CreatedAt = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, m := range []*registry.Marker{m1, m2, m3} {
		require.Nil(t, client.MarkerCreate(ctx, m))
		_, err := uuid.Parse(m.ID)
		require.Nil(t, err)
	}

	saved, err := client.MarkerByID(ctx, m2.ID)
	require.Nil(t, err)
	assert.Equal(t, first.ID, saved.UploadID)
	assert.Equal(t, testutil.Address, saved.MarkerAddress)

	_, err = client.MarkerByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, common.ErrNotFound)

	all, err := client.MarkerList(ctx)
	require.Nil(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, m3.ID, all[0].ID)
	assert.Equal(t, m1.ID, all[2].ID)

	forFirst, err := client.MarkerListByUpload(ctx, first.ID)
	require.Nil(t, err)
	require.Len(t, forFirst, 2)
	assert.Equal(t, m2.ID, forFirst[0].ID)
	assert.Equal(t, m1.ID, forFirst[1].ID)

	none, err := client.MarkerListByUpload(ctx, uuid.NewString())
	require.Nil(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPing(t *testing.T) {
	client := testutil.NewRegistryClient(t)
	assert.Nil(t, client.Ping(context.Background()))
}
