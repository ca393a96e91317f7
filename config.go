package envbar

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadURLs reads the four URL_* environment variables into a URLs value.
//
// The default .env file is loaded once per process before the first parse;
// a missing file is not an error. No URL validation is performed: any string
// value is accepted as-is, absent variables become empty strings.
func LoadURLs() (URLs, error) {
	defaultEnvLoaded.Do(func() {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load()
	})

	var urls URLs
	if err := env.Parse(&urls); err != nil {
		return URLs{}, errors.Join(ErrParseConfig, err)
	}
	return urls, nil
}
