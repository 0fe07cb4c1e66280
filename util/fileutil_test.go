package util_test

import (
	"strings"
	"testing"

	"github.com/scorve12/disaster-uploads/util"
	"github.com/stretchr/testify/assert"
)

func TestFileExists(t *testing.T) {
	assert.True(t, util.FileExists(tempDir))
	assert.False(t, util.FileExists("NonExistentFile.xyz"))
}

func TestExpandTilde(t *testing.T) {
	expanded, err := util.ExpandTilde("~/tmp")
	assert.Nil(t, err)
	assert.True(t, len(expanded) > 6)
	assert.True(t, strings.HasSuffix(expanded, "tmp"))

	expanded, err = util.ExpandTilde("/nothing/to/expand")
	assert.Nil(t, err)
	assert.Equal(t, "/nothing/to/expand", expanded)

	expanded, err = util.ExpandTilde("")
	assert.Nil(t, err)
	assert.Equal(t, "", expanded)
}

func TestLooksSafeToDelete(t *testing.T) {
	assert.True(t, util.LooksSafeToDelete("/var/run/uploads/server.pid", 15, 3))
	assert.False(t, util.LooksSafeToDelete("/usr/local", 12, 3))
}
