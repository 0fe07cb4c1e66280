package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scorve12/disaster-uploads/api"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/util"
	"github.com/scorve12/disaster-uploads/util/cli"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(0)
	}
	os.Exit(run(loadConfig(opts)))
}

// run starts the server and blocks until it stops. It returns the
// process exit code.
func run(config *common.Config) int {
	appContext, err := common.NewContextFromConfig(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := appContext.Logger

	if config.PidFile != "" {
		if util.IsRunningInOtherProcess(config.PidFile) {
			logger.Criticalf("Another instance is running with pid %d. Exiting.",
				util.ReadPidFile(config.PidFile))
			return 1
		}
		if age, err := util.AgeOfPidFile(config.PidFile); err == nil {
			logger.Warningf("Replacing stale pid file %s, last written %s ago", config.PidFile, age.Round(time.Second))
		}
		if err = util.WritePidFile(config.PidFile); err != nil {
			logger.Criticalf("Cannot write pid file %s: %v", config.PidFile, err)
			return 1
		}
		defer util.DeletePidFile(config.PidFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = network.Migrate(ctx, appContext.DB); err != nil {
		logger.Criticalf("Database migration failed: %v", err)
		return 1
	}
	store := network.NewMinioObjectStore(
		appContext.S3Client,
		config.S3Credentials.Bucket,
		config.S3Credentials.Region,
		logger)
	if err = store.EnsureBucket(ctx); err != nil {
		var detailed common.DetailedError
		if errors.As(err, &detailed) {
			logger.Critical(detailed.Detail())
		} else {
			logger.Critical(err.Error())
		}
		return 1
	}
	logger.Infof("Config %s: storing uploads in bucket %s at %s, public URL %s",
		config.ConfigName, config.S3Credentials.Bucket,
		config.S3Credentials.EndpointURL(), config.S3Credentials.PublicEndpoint)

	server := api.NewServerWithStore(appContext, store)
	err = server.ListenAndServe(ctx, shutdownTimeout)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Criticalf("HTTP server stopped: %v", err)
		return 1
	}
	logger.Info("Server stopped")
	return 0
}

// loadConfig loads config from the command-line flags, or from the
// environment if the flags are missing. The server must not start
// without valid storage settings, so a bad config ends the process.
func loadConfig(opts cli.Options) *common.Config {
	if !opts.HasConfig() {
		return common.NewConfig()
	}
	config, err := common.LoadConfig(opts.ConfigDir, opts.ConfigName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return config
}

func printHelp() {
	message := `
disaster_upload_server runs the disaster-report upload API. It accepts
images, videos and .ksplat files, stores them in an S3-compatible bucket,
and records their metadata (disaster type, location, description) in
Postgres or sqlite. It also serves upload lists, statistics and map
markers.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
