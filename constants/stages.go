package constants

// Stage names one step of the upload transaction. Stage names appear
// in logs and as the "stage" label on failure metrics.
type Stage struct {
	Name        string
	Order       int64
	Compensates bool
}

const (
	StageInsert     = "insert"
	StageStore      = "store"
	StageBackfill   = "backfill"
	StageCleanup    = "cleanup"
	StageCompensate = "compensate"
)

var UploadStages = []Stage{
	{
		Name:  StageInsert,
		Order: 1,
	},
	{
		Name:  StageStore,
		Order: 2,
	},
	{
		Name:  StageBackfill,
		Order: 3,
	},
	{
		Name:        StageCleanup,
		Order:       4,
		Compensates: true,
	},
	{
		Name:        StageCompensate,
		Order:       5,
		Compensates: true,
	},
}

// StageFor returns the stage with the specified name, or nil.
func StageFor(name string) *Stage {
	for i := range UploadStages {
		if UploadStages[i].Name == name {
			return &UploadStages[i]
		}
	}
	return nil
}
