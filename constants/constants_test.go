package constants_test

import (
	"testing"

	"github.com/scorve12/disaster-uploads/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisasterLabels(t *testing.T) {
	require.Equal(t, 5, len(constants.DisasterTypes))
	for _, dt := range constants.DisasterTypes {
		label, ok := constants.DisasterLabels[dt]
		assert.True(t, ok, dt)
		assert.NotEmpty(t, label)
	}
}

func TestStageFor(t *testing.T) {
	stage := constants.StageFor(constants.StageStore)
	require.NotNil(t, stage)
	assert.EqualValues(t, 2, stage.Order)
	assert.False(t, stage.Compensates)

	stage = constants.StageFor(constants.StageCompensate)
	require.NotNil(t, stage)
	assert.True(t, stage.Compensates)

	assert.Nil(t, constants.StageFor("nope"))
}

func TestStageOrder(t *testing.T) {
	for i, stage := range constants.UploadStages {
		assert.EqualValues(t, i+1, stage.Order, stage.Name)
	}
}
