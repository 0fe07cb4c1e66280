package registry

import (
	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/models/common"
	"github.com/scorve12/disaster-uploads/util"
)

// UploadFilter describes a list request. A nil Type matches every
// disaster type.
type UploadFilter struct {
	Type  *DisasterType
	Page  int
	Limit int
}

// NewUploadFilter returns a filter for the first page with the default
// page size.
func NewUploadFilter() *UploadFilter {
	return &UploadFilter{
		Page:  constants.DefaultListPage,
		Limit: constants.DefaultListLimit,
	}
}

// Validate checks page, limit and type.
func (f *UploadFilter) Validate() error {
	if f.Page < 1 {
		return common.NewValidationError("page", "must be at least 1")
	}
	if f.Limit < 1 || f.Limit > constants.MaxListLimit {
		return common.NewValidationError("limit", "must be between 1 and %d", constants.MaxListLimit)
	}
	if f.Type != nil && !f.Type.Valid() {
		return common.NewValidationError("type", "unknown disaster type %q", string(*f.Type))
	}
	return nil
}

// Offset returns the number of rows to skip.
func (f *UploadFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// UploadPage is one page of a list request.
type UploadPage struct {
	Items      []*Upload `json:"items"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int64     `json:"totalPages"`
}

// NewUploadPage builds a page and computes TotalPages.
func NewUploadPage(items []*Upload, total int64, filter *UploadFilter) *UploadPage {
	if items == nil {
		items = make([]*Upload, 0)
	}
	return &UploadPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: util.CeilDiv(total, int64(filter.Limit)),
	}
}
