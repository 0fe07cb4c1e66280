package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
)

// makeUploadHandler handles multipart POST /upload. Fields: file
// (required), type (required), latitude, longitude, address and
// description.
func (s *Server) makeUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxFileSize+multipartOverhead)
		err := r.ParseMultipartForm(multipartMemory)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if !errors.As(err, &maxBytesErr) {
				err = common.NewValidationError("", "Request must be multipart/form-data: %v", err)
			}
			s.writeError(w, r, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		input, err := parseUploadInput(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			s.writeError(w, r, common.NewValidationError("file", "is required"))
			return
		}
		defer file.Close()
		if header.Size > s.config.MaxFileSize {
			s.writeError(w, r, common.NewHttpError(
				fmt.Sprintf("File is %d bytes. The limit is %d bytes.", header.Size, s.config.MaxFileSize),
				nil, r.Method, r.URL.String(), http.StatusRequestEntityTooLarge))
			return
		}
		fileInfo := &registry.FileInfo{
			ContentType:  header.Header.Get("Content-Type"),
			Encoding:     header.Header.Get("Content-Transfer-Encoding"),
			OriginalName: header.Filename,
			Size:         header.Size,
		}
		upload, err := s.uploader.Upload(r.Context(), input, fileInfo, file)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, s.uploads.Decorate(upload))
	}
}

func parseUploadInput(r *http.Request) (*registry.UploadInput, error) {
	input := &registry.UploadInput{}
	rawType := strings.TrimSpace(r.FormValue("type"))
	if dt, ok := registry.ParseDisasterType(rawType); ok {
		input.Type = dt
	} else {
		input.Type = registry.DisasterType(rawType)
	}
	var err error
	if input.Latitude, err = optionalFloat(r, "latitude"); err != nil {
		return nil, err
	}
	if input.Longitude, err = optionalFloat(r, "longitude"); err != nil {
		return nil, err
	}
	input.Address = optionalString(r, "address")
	input.Description = optionalString(r, "description")
	return input, input.Validate()
}

func optionalFloat(r *http.Request, name string) (*float64, error) {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, common.NewValidationError(name, "%q is not a number", value)
	}
	return &f, nil
}

func optionalString(r *http.Request, name string) *string {
	value := strings.TrimSpace(r.FormValue(name))
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(r *http.Request, name string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, common.NewValidationError(name, "%q is not an integer", value)
	}
	return i, nil
}

// makeUploadListHandler handles GET /upload/list?type=&page=&limit=
func (s *Server) makeUploadListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseUploadFilter(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		page, err := s.uploads.List(r.Context(), filter)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, page)
	}
}

func parseUploadFilter(r *http.Request) (*registry.UploadFilter, error) {
	filter := registry.NewUploadFilter()
	var err error
	if filter.Page, err = optionalInt(r, "page", constants.DefaultListPage); err != nil {
		return nil, err
	}
	if filter.Limit, err = optionalInt(r, "limit", constants.DefaultListLimit); err != nil {
		return nil, err
	}
	if filter.Limit > constants.MaxListLimit {
		filter.Limit = constants.MaxListLimit
	}
	if rawType := strings.TrimSpace(r.URL.Query().Get("type")); rawType != "" {
		dt, ok := registry.ParseDisasterType(rawType)
		if !ok {
			return nil, common.NewValidationError("type", "unknown disaster type %q", rawType)
		}
		filter.Type = &dt
	}
	return filter, nil
}

func (s *Server) makeUploadStatisticsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.uploads.Statistics(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) makeUploadGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		upload, err := s.uploads.GetOne(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, upload)
	}
}

func (s *Server) makeHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.registry.Ping(r.Context()); err != nil {
			s.logger.Warningf("Health check failed: %v", err)
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
