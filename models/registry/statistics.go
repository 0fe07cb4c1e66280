package registry

// MonthlyUploadStats is the number of uploads created in one month.
type MonthlyUploadStats struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// DisasterTypeStats is the number of uploads of one disaster type.
// Label is the type's display label.
type DisasterTypeStats struct {
	Type  DisasterType `json:"type"`
	Label string       `json:"label"`
	Count int64        `json:"count"`
}

// UploadStatistics summarizes all complete uploads. MonthlyStats is
// ordered newest month first. DisasterTypeStats is ordered by count,
// highest first.
type UploadStatistics struct {
	TotalUploads      int64                `json:"totalUploads"`
	MonthlyStats      []MonthlyUploadStats `json:"monthlyStats"`
	DisasterTypeStats []DisasterTypeStats  `json:"disasterTypeStats"`
}
