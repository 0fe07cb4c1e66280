package common_test

import (
	"testing"

	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/stretchr/testify/assert"
)

func TestURLFor(t *testing.T) {
	target := common.NewStorageTarget(common.S3Credentials{
		Bucket:         "images",
		PublicEndpoint: "https://cdn.example.com/",
	})
	assert.Equal(t, "https://cdn.example.com/images/uploads/1234.jpeg",
		target.URLFor("uploads/1234.jpeg"))
	assert.Equal(t, "https://cdn.example.com/images/uploads/a%20b",
		target.URLFor("uploads/a b"))
	assert.Equal(t, "", target.URLFor(""))
}
