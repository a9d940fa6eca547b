package bgg

// Config holds configuration for the catalog API.
type Config struct {
	// BaseURL is the xmlapi root; paths are appended as "<path>/<param>".
	BaseURL string `mapstructure:"base_url" default:"https://boardgamegeek.com/xmlapi/"`
	// Username is the default collection owner.
	Username string `mapstructure:"username" default:""`
	// TimeoutSeconds bounds a single request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"collection-prep/1.0"`
}
