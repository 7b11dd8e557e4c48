package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/ukaji3/tablegroup-go/pkg/tablegroup/source"
)

// DefaultPath is read when no config path is given. A missing file is
// not an error.
const DefaultPath = "tablegroup.toml"

type Config struct {
	ScratchDir string        `toml:"scratch_dir"`
	Detection  source.Config `toml:"detection"`
	Server     ServerConfig  `toml:"server"`
	Log        LogConfig     `toml:"log"`
}

type ServerConfig struct {
	Addr        string `toml:"addr"`
	MaxUploadMB int64  `toml:"max_upload_mb"`
	APIKey      string `toml:"api_key"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Detection: source.DefaultConfig(),
		Server:    ServerConfig{Addr: ":8080", MaxUploadMB: 100},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads config: defaults -> TOML file -> env vars (env wins).
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TABLEGROUP_SCRATCH_DIR"); v != "" {
		cfg.ScratchDir = v
	}
	if v := os.Getenv("TABLEGROUP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TABLEGROUP_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("TABLEGROUP_MAX_UPLOAD_MB"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid TABLEGROUP_MAX_UPLOAD_MB %q", v)
		}
		cfg.Server.MaxUploadMB = n
	}
	if v := os.Getenv("TABLEGROUP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TABLEGROUP_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}
