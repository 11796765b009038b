package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the config file stem inside the diary directory.
	ConfigName = "config"
	// ConfigType is the config file format and extension.
	ConfigType = "toml"
	// EnvPrefix prefixes every environment override, e.g. DIARY_EDITOR.
	EnvPrefix = "DIARY"

	defaultListMaxCount = 10
)

// Config describes where the diary lives and how it is edited.
type Config interface {
	BasePath() string
	ConfigFile() string
	Editor() string
	Author() string
	ListMaxCount() int
}

// LoadConfig resolves the diary directory and reads config.toml from it.
// dir wins over DIARY_DIR, which wins over the platform default. A missing
// config file leaves the defaults in place.
func LoadConfig(dir string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("editor", defaultEditor())
	v.SetDefault("author", defaultAuthor())
	v.SetDefault("list_max_count", defaultListMaxCount)

	if dir == "" {
		dir = v.GetString("dir")
	}
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	dir, err := homedir.Expand(dir)
	if err != nil {
		return nil, fmt.Errorf("store: expand %q: %w", dir, err)
	}

	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config in %s: %w", dir, err)
		}
	}

	return &fileConfig{v: v, path: dir}, nil
}

// WriteConfig saves cfg's settings as a config file in its diary directory.
// An existing file is left untouched and reported as created == false.
func WriteConfig(cfg Config) (created bool, err error) {
	if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
		return false, fmt.Errorf("store: ensure base path: %w", err)
	}

	v := viper.New()
	v.Set("editor", cfg.Editor())
	v.Set("author", cfg.Author())
	v.Set("list_max_count", cfg.ListMaxCount())

	if err := v.SafeWriteConfigAs(cfg.ConfigFile()); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return false, nil
		}
		return false, fmt.Errorf("store: write config: %w", err)
	}
	return true, nil
}

// DefaultDir is %LOCALAPPDATA%\diary on Windows and $XDG_CONFIG_HOME/diary
// (or ~/.config/diary) elsewhere.
func DefaultDir() (string, error) {
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, "diary"), nil
		}
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "diary"), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("store: locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "diary"), nil
}

func defaultEditor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

func defaultAuthor() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(env); u != "" {
			return u
		}
	}
	return ""
}

type fileConfig struct {
	v    *viper.Viper
	path string
}

func (f *fileConfig) BasePath() string {
	return f.path
}

func (f *fileConfig) ConfigFile() string {
	return filepath.Join(f.path, ConfigName+"."+ConfigType)
}

func (f *fileConfig) Editor() string {
	return f.v.GetString("editor")
}

func (f *fileConfig) Author() string {
	return f.v.GetString("author")
}

func (f *fileConfig) ListMaxCount() int {
	if n := f.v.GetInt("list_max_count"); n > 0 {
		return n
	}
	return defaultListMaxCount
}
