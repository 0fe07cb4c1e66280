package registry

import (
	"strings"

	"github.com/scorve12/disaster-uploads/constants"
	"github.com/scorve12/disaster-uploads/util"
)

// DisasterType classifies an uploaded asset. The zero value is not a
// valid type.
type DisasterType string

// ParseDisasterType converts client input into a DisasterType. It
// accepts the wire values (case-insensitive) and the Korean labels.
// The second return value is false if s names no known type.
func ParseDisasterType(s string) (DisasterType, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	for _, dt := range constants.DisasterTypes {
		if upper == dt || s == constants.DisasterLabels[dt] {
			return DisasterType(dt), true
		}
	}
	return "", false
}

// Valid returns true if dt is one of the five known disaster types.
func (dt DisasterType) Valid() bool {
	return util.StringListContains(constants.DisasterTypes, string(dt))
}

// Label returns the Korean display label, or the raw value if dt is
// not a known type.
func (dt DisasterType) Label() string {
	if label, ok := constants.DisasterLabels[string(dt)]; ok {
		return label
	}
	return string(dt)
}

func (dt DisasterType) String() string {
	return string(dt)
}
