package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	oss "github.com/giongto35/glprobe/pkg/os"
	"github.com/kkyr/fig"
)

const EnvPrefix = "GLPROBE"

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file;
// when it is empty the default locations are searched and a missing
// file is not an error.
// Reads and puts environment variables with the prefix GLPROBE_.
// Params from the config should be in uppercase separated with _.
func LoadConfig(config any, path string) error {
	if path != "" {
		if !oss.Exists(path) {
			return fmt.Errorf("%s: %w", path, fig.ErrFileNotFound)
		}
		return fig.Load(config, fig.File(filepath.Base(path)), fig.Dirs(filepath.Dir(path)), fig.UseEnv(EnvPrefix))
	}
	dirs := []string{".", "configs"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".glprobe"))
	}
	err := fig.Load(config, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if errors.Is(err, fig.ErrFileNotFound) {
		return LoadConfigEnv(config)
	}
	return err
}

func LoadConfigEnv(config any) error {
	return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
}
