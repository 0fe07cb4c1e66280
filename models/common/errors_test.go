package common_test

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var msg = "Something went wrong"
var innerError = fmt.Errorf("This is the inner error")
var testURL = "https://example.com"

func TestNewError(t *testing.T) {
	err := common.NewError(
		msg,
		nil,
		false,
	)
	assert.Nil(t, err.Err)
	assert.Equal(t, msg, err.Message)
	assert.Equal(t, msg, err.Error())
	assert.False(t, err.IsFatal)
	assert.NotEqual(t, 0, err.Line)
	assert.True(t, strings.HasSuffix(err.File, "errors_test.go"))
}

func TestErrorUnwrap(t *testing.T) {
	err := common.NewError(
		msg,
		innerError,
		false,
	)
	assert.Equal(t, innerError, err.Unwrap())
	assert.True(t, errors.Is(err, innerError))
}

func TestErrorDetail(t *testing.T) {
	err := common.NewError(
		msg,
		innerError,
		true,
	)
	detail := err.Detail()
	assert.True(t, strings.HasPrefix(detail, "FATAL"))
	assert.True(t, strings.Contains(detail, err.Message))
	assert.True(t, strings.Contains(detail, err.File))
	assert.True(t, strings.Contains(detail, strconv.Itoa(err.Line)))
	assert.True(t, strings.Contains(detail, "Underlying error"))
	assert.True(t, strings.Contains(detail, innerError.Error()))
}

func TestNewHttpError(t *testing.T) {
	err := common.NewHttpError(
		msg,
		innerError,
		http.MethodGet,
		testURL,
		http.StatusTeapot,
	)
	assert.Equal(t, msg, err.Message)
	assert.Equal(t, innerError, err.Err)
	assert.Equal(t, http.MethodGet, err.Method)
	assert.Equal(t, testURL, err.URL)
	assert.Equal(t, http.StatusTeapot, err.StatusCode)

	assert.Equal(t, msg, err.Error())
	assert.Equal(t, innerError, err.Unwrap())

	detail := err.Detail()
	assert.True(t, strings.Contains(detail, "returned status"))
	assert.True(t, strings.Contains(detail, strconv.Itoa(err.StatusCode)))
	assert.True(t, strings.Contains(detail, innerError.Error()))
}

func TestValidationError(t *testing.T) {
	err := common.NewValidationError("type", "must be one of %s", "FLOOD, FIRE")
	assert.Equal(t, "type: must be one of FLOOD, FIRE", err.Error())
	assert.True(t, common.IsValidationError(err))

	wrapped := fmt.Errorf("parsing form: %w", err)
	assert.True(t, common.IsValidationError(wrapped))
	assert.False(t, common.IsValidationError(innerError))

	noField := common.NewValidationError("", "bad request")
	assert.Equal(t, "bad request", noField.Error())
}

func TestCompensationError(t *testing.T) {
	cleanupErr := fmt.Errorf("database is gone")
	err := &common.CompensationError{
		CleanupErr: cleanupErr,
		Err:        innerError,
		RecordID:   "1234",
		Stage:      "store",
	}
	assert.True(t, errors.Is(err, innerError))
	assert.True(t, errors.Is(err, cleanupErr))

	var compErr *common.CompensationError
	require.True(t, errors.As(fmt.Errorf("upload: %w", err), &compErr))
	assert.Equal(t, "1234", compErr.RecordID)

	assert.Contains(t, err.Error(), "1234")
	assert.Contains(t, err.Detail(), "orphaned upload record 1234")
}

func TestDetailedError(t *testing.T) {
	err := common.NewError(
		msg,
		nil,
		false,
	)
	assert.Equal(t, err.Detail(), testfunc(err))

	compErr := &common.CompensationError{Err: innerError, CleanupErr: innerError}
	assert.Equal(t, compErr.Detail(), testfunc(compErr))
}

func testfunc(err common.DetailedError) string {
	return err.Detail()
}
