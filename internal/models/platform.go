package models

// Platforms tracked by the ingestion pipeline.
const (
	PlatformTwitter = "TWITTER"
	PlatformYouTube = "YOUTUBE"
	PlatformRednote = "REDNOTE"
	PlatformReddit  = "REDDIT"
)

// AllPlatforms lists every supported platform identifier.
var AllPlatforms = []string{PlatformTwitter, PlatformYouTube, PlatformRednote, PlatformReddit}

// IsValidPlatform reports whether p is one of the supported platforms.
func IsValidPlatform(p string) bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}
