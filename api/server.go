package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/scorve12/disaster-uploads/ingest"
	"github.com/scorve12/disaster-uploads/metrics"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/network"
	"github.com/scorve12/disaster-uploads/services"
)

// multipartOverhead is the room we allow in a request body for form
// fields and multipart boundaries on top of the file itself.
const multipartOverhead = int64(1 << 20)

// multipartMemory is how much of a multipart body is held in memory.
// The rest spills to temp files.
const multipartMemory = int64(32 << 20)

// maxJSONBody limits the size of JSON request bodies.
const maxJSONBody = int64(1 << 20)

// Server is the HTTP front end of the upload service.
type Server struct {
	config   *common.Config
	logger   *logging.Logger
	metrics  *metrics.Metrics
	registry *network.RegistryClient
	uploader *ingest.Uploader
	uploads  *services.UploadQuery
	markers  *services.MarkerService
}

// NewServer returns a server that stores objects through the context's
// S3 client.
func NewServer(context *common.Context) *Server {
	store := network.NewMinioObjectStore(
		context.S3Client,
		context.StorageTarget.Bucket,
		context.Config.S3Credentials.Region,
		context.Logger)
	return NewServerWithStore(context, store)
}

// NewServerWithStore returns a server that writes objects to store.
func NewServerWithStore(context *common.Context, store network.ObjectStore) *Server {
	client := network.NewRegistryClient(context.DB, context.Logger)
	return &Server{
		config:   context.Config,
		logger:   context.Logger,
		metrics:  metrics.Get(),
		registry: client,
		uploader: ingest.NewUploader(client, store, context.Config.MaxFileSize, context.Logger),
		uploads:  services.NewUploadQuery(client, context.StorageTarget),
		markers:  services.NewMarkerService(client, context.Logger),
	}
}

// Handler returns the server's routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "POST /upload", s.makeUploadHandler())
	s.route(mux, "GET /upload/list", s.makeUploadListHandler())
	s.route(mux, "GET /upload/statistics", s.makeUploadStatisticsHandler())
	s.route(mux, "GET /upload/{id}", s.makeUploadGetHandler())
	s.route(mux, "POST /marker", s.makeMarkerCreateHandler())
	s.route(mux, "GET /marker/list", s.makeMarkerListHandler())
	s.route(mux, "GET /marker/upload/{uploadId}", s.makeMarkerListByUploadHandler())
	s.route(mux, "GET /marker/{id}", s.makeMarkerGetHandler())
	s.route(mux, "GET /health", s.makeHealthHandler())
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, common.NewHttpError(
			fmt.Sprintf("Cannot %s %s", r.Method, r.URL.Path),
			nil, r.Method, r.URL.String(), http.StatusNotFound))
	})
	return cors.New(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(mux)
}

// ListenAndServe serves until ctx is canceled, then shuts down,
// giving in-flight requests up to shutdownTimeout to finish.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.HTTPReadTimeout,
		WriteTimeout: s.config.HTTPWriteTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Infof("Listening on port %d", s.config.HTTPPort)
		errc <- httpServer.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		if listenErr := <-errc; listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			return listenErr
		}
		return err
	}
}
