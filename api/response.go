package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/scorve12/disaster-uploads/models/common"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// jsonRecord is implemented by registry records that serialize
// themselves.
type jsonRecord interface {
	ToJSON() ([]byte, error)
}

// writeJSON serializes v before writing the status, so a value that
// can't be encoded becomes a 500 instead of an empty success.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var data []byte
	var err error
	if record, ok := v.(jsonRecord); ok {
		data, err = record.ToJSON()
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		s.logger.Errorf("Error encoding %T response: %v", v, err)
		status = http.StatusInternalServerError
		data, _ = json.Marshal(&ErrorResponse{
			StatusCode: status,
			Error:      http.StatusText(status),
			Message:    "Internal server error",
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err = w.Write(append(data, '\n')); err != nil {
		s.logger.Errorf("Error writing response: %v", err)
	}
}

// writeError maps err to a status code and writes an ErrorResponse.
// Details of server errors go to the log, not to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := s.classify(err)
	if status >= http.StatusInternalServerError {
		detail := err.Error()
		var detailed common.DetailedError
		if errors.As(err, &detailed) {
			detail = detailed.Detail()
		}
		s.logger.Errorf("%s %s: %s", r.Method, r.URL.Path, detail)
	}
	s.writeJSON(w, status, &ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

func (s *Server) classify(err error) (int, string) {
	var maxBytesErr *http.MaxBytesError
	var httpErr *common.HttpError
	switch {
	case common.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "Request body is too large"
	case errors.As(err, &httpErr):
		if httpErr.StatusCode >= http.StatusInternalServerError {
			return httpErr.StatusCode, http.StatusText(httpErr.StatusCode)
		}
		return httpErr.StatusCode, httpErr.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}

// pathID returns the named path value if it is a UUID.
func pathID(r *http.Request, name string) (string, error) {
	value := r.PathValue(name)
	id, err := uuid.Parse(value)
	if err != nil {
		return "", common.NewValidationError(name, "%q is not a valid UUID", value)
	}
	return id.String(), nil
}
