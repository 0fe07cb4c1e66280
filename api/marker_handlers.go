package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/models/registry"
)

// makeMarkerCreateHandler handles POST /marker with a JSON body.
func (s *Server) makeMarkerCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := &registry.MarkerInput{}
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
		if err := decoder.Decode(input); err != nil {
			var maxBytesErr *http.MaxBytesError
			if !errors.As(err, &maxBytesErr) {
				err = common.NewValidationError("", "Request body must be a JSON object: %v", err)
			}
			s.writeError(w, r, err)
			return
		}
		marker, err := s.markers.Create(r.Context(), input)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, marker)
	}
}

func (s *Server) makeMarkerListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		markers, err := s.markers.ListAll(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, markers)
	}
}

func (s *Server) makeMarkerListByUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uploadID, err := pathID(r, "uploadId")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		markers, err := s.markers.ListByUpload(r.Context(), uploadID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, markers)
	}
}

func (s *Server) makeMarkerGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		marker, err := s.markers.GetOne(r.Context(), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, marker)
	}
}
