// Package config loads the trilogysave ini file.
//
//	[backup]
//	dir    = ~/.local/share/trilogysave
//	level  = 3
//	keep   = 20
//
//	[codec]
//	strict_checksum = false
//	default_format  = ME2
//
//	[watch]
//	dir = C:\Users\me\Documents\BioWare\Mass Effect 2\Save
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/goopsie/trilogySaveTools/pkg/backup"
	"github.com/goopsie/trilogySaveTools/pkg/save"
)

// FileName is the name of the config file inside the user config directory.
const FileName = "trilogysave.ini"

type Backup struct {
	Dir     string
	Level   int
	Keep    int
	Disable bool
}

// DB returns the path of the backup database.
func (b Backup) DB() string {
	return filepath.Join(b.Dir, "backups.db")
}

type Codec struct {
	StrictChecksum bool
	DefaultFormat  save.Format
}

type Watch struct {
	Dir string
}

type Config struct {
	Path   string
	Backup Backup
	Codec  Codec
	Watch  Watch
}

// Options returns the decode options the codec section asks for. The
// default format is only tried first; detection still runs.
func (c *Config) Options() []save.Option {
	return []save.Option{
		save.WithStrictChecksum(c.Codec.StrictChecksum),
		save.WithPreferredFormat(c.Codec.DefaultFormat),
	}
}

func dataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "trilogysave")
	}
	return ".trilogysave"
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Backup: Backup{
			Dir:   dataDir(),
			Level: backup.DefaultCompressionLevel,
			Keep:  20,
		},
	}
}

// DefaultPath is where Load looks when no path is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "trilogysave", FileName)
}

// Load reads the config file at path. An empty path reads DefaultPath and
// tolerates it being absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	opts := ini.LoadOptions{}
	if path == "" {
		path = DefaultPath()
		opts.Loose = true
	}
	f, err := ini.LoadSources(opts, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	c, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Parse reads a config from ini source text.
func Parse(src []byte) (*Config, error) {
	f, err := ini.Load(src)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return parse(f)
}

func parse(f *ini.File) (*Config, error) {
	c := Default()

	b := f.Section("backup")
	if dir := b.Key("dir").String(); dir != "" {
		c.Backup.Dir = expandHome(dir)
	}
	var err error
	if b.HasKey("level") {
		if c.Backup.Level, err = b.Key("level").Int(); err != nil {
			return nil, fmt.Errorf("backup.level: %w", err)
		}
	}
	if c.Backup.Level < 1 || c.Backup.Level > 22 {
		return nil, fmt.Errorf("backup.level %d out of range 1..22", c.Backup.Level)
	}
	c.Backup.Keep = b.Key("keep").MustInt(c.Backup.Keep)
	if c.Backup.Keep < 0 {
		return nil, fmt.Errorf("backup.keep must not be negative")
	}
	c.Backup.Disable = b.Key("disable").MustBool(false)

	k := f.Section("codec")
	c.Codec.StrictChecksum = k.Key("strict_checksum").MustBool(false)
	if name := k.Key("default_format").String(); name != "" {
		if c.Codec.DefaultFormat, err = save.ParseFormat(name); err != nil {
			return nil, fmt.Errorf("codec.default_format: %w", err)
		}
	}

	if dir := f.Section("watch").Key("dir").String(); dir != "" {
		c.Watch.Dir = expandHome(dir)
	}
	return c, nil
}

func expandHome(p string) string {
	if len(p) < 2 || p[0] != '~' || (p[1] != '/' && p[1] != '\\') {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
