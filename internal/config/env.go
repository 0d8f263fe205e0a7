package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnv loads dotenv files into the process environment. Variables
// already set in the environment win over file values. Missing files are
// skipped, and a malformed file is skipped as a whole.
func LoadEnv(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// LoadDefaultEnv loads env from YTS_ENV, ~/.yt-summarize.env, and ./.env
// when present. Earlier files win.
func LoadDefaultEnv() {
	if p := strings.TrimSpace(os.Getenv("YTS_ENV")); p != "" {
		LoadEnv(p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		LoadEnv(filepath.Join(home, ".yt-summarize.env"))
	}
	LoadEnv(".env")
}
