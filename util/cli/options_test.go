package cli_test

import (
	"testing"

	"github.com/scorve12/disaster-uploads/util/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	opts, err := cli.ParseArgs([]string{"-config-dir", "/etc/disaster", "-config-name", "prod"})
	require.Nil(t, err)
	assert.Equal(t, "/etc/disaster", opts.ConfigDir)
	assert.Equal(t, "prod", opts.ConfigName)
	assert.False(t, opts.PrintHelp)
	assert.True(t, opts.HasConfig())

	opts, err = cli.ParseArgs([]string{"-help"})
	require.Nil(t, err)
	assert.True(t, opts.PrintHelp)
	assert.False(t, opts.HasConfig())

	_, err = cli.ParseArgs([]string{"-workers", "3"})
	assert.NotNil(t, err)
}
