package constants

const (
	DisasterFlood      = "FLOOD"
	DisasterEarthquake = "EARTHQUAKE"
	DisasterTyphoon    = "TYPHOON"
	DisasterFire       = "FIRE"
	DisasterLandslide  = "LANDSLIDE"

	ContentTypeOctetStream = "application/octet-stream"
	DefaultBucket          = "images"
	DefaultEncoding        = "7bit"
	DefaultListLimit       = 10
	DefaultListPage        = 1
	DefaultMaxFileSize     = int64(300 * 1024 * 1024)
	ExtensionKsplat        = "ksplat"
	KeyPrefix              = "uploads"
	MaxListLimit           = 100
	MetaEncoding           = "encoding"
	MetaExtension          = "extension"
	MetaOriginalName       = "originalName"
	PendingKey             = ""
)

// DisasterTypes is the closed set of accepted disaster types, in the
// order they are presented to clients.
var DisasterTypes []string = []string{
	DisasterFlood,
	DisasterEarthquake,
	DisasterTyphoon,
	DisasterFire,
	DisasterLandslide,
}

// DisasterLabels maps each disaster type to the Korean label the mobile
// clients display. Labels are also accepted as input aliases.
var DisasterLabels = map[string]string{
	DisasterFlood:      "홍수",
	DisasterEarthquake: "지진",
	DisasterTyphoon:    "태풍",
	DisasterFire:       "화재",
	DisasterLandslide:  "산사태",
}

// AcceptedMediaPrefixes are the MIME type prefixes accepted for upload.
// Files with the ksplat extension are accepted regardless of type.
var AcceptedMediaPrefixes []string = []string{
	"image/",
	"video/",
}
