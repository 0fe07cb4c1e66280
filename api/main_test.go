package api_test

import (
	"os"
	"testing"

	"github.com/scorve12/disaster-uploads/util/testutil"
)

var S3TestServer *testutil.S3Server

func TestMain(m *testing.M) {
	S3TestServer = testutil.NewS3Server()
	exitCode := m.Run()
	S3TestServer.Close()
	os.Exit(exitCode)
}
