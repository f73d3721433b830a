package config

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/twitter/procsched/scheduler/driver"
	"github.com/twitter/procsched/scheduler/engine"
)

// DefaultConfigName is used when no config is given.
const DefaultConfigName = "default"

//go:embed configs/*.yaml
var assets embed.FS

// Config is everything procsched can be configured with.
type Config struct {
	Engine EngineConfig `yaml:"engine" json:"engine"`
	Output OutputConfig `yaml:"output" json:"output"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

type EngineConfig struct {
	MaxProcesses int   `yaml:"maxProcesses" json:"maxProcesses"`
	Inventories  []int `yaml:"inventories" json:"inventories"`
	DebugMode    bool  `yaml:"debugMode" json:"debugMode"`
}

type OutputConfig struct {
	Format string `yaml:"format" json:"format"` // crlf|unix
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"` // error|info|debug
}

// Names lists the built-in configs, sorted.
func Names() []string {
	entries, err := assets.ReadDir("configs")
	if err != nil {
		log.Panicf("built-in configs unreadable: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Named returns the built-in config called name.
func Named(name string) (Config, error) {
	text, err := assets.ReadFile(path.Join("configs", name+".yaml"))
	if err != nil {
		return Config{}, fmt.Errorf("no built-in config %q, expected one of %v", name, Names())
	}
	return parse(text, Config{})
}

// Default returns the built-in default config.
func Default() Config {
	c, err := Named(DefaultConfigName)
	if err != nil {
		log.Panicf("default config is invalid: %v", err)
	}
	return c
}

var fileNameRe = regexp.MustCompile(`^[^\s{}:]+\.(ya?ml|json)$`)

// Load finds the config for a --config flag value. The value is either the
// name of a built-in config, a .yaml/.yml/.json file to read, or literal
// YAML (or JSON) text. Files and literal text only need to set the fields
// that differ from the default config.
func Load(flag string) (Config, error) {
	flag = strings.TrimSpace(flag)
	if flag == "" {
		flag = DefaultConfigName
	}
	if c, err := Named(flag); err == nil {
		log.Debugf("using built-in config %q", flag)
		return c, nil
	}
	if fileNameRe.MatchString(flag) {
		text, err := os.ReadFile(flag)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", flag)
		}
		log.Debugf("using config file %s", flag)
		c, err := Parse(text)
		return c, errors.Wrapf(err, "config file %s", flag)
	}
	log.Debugf("using --config as literal config text")
	return Parse([]byte(flag))
}

// Parse reads YAML text over the default config.
func Parse(text []byte) (Config, error) {
	return parse(text, Default())
}

func parse(text []byte, base Config) (Config, error) {
	c := base
	c.Engine.Inventories = append([]int(nil), base.Engine.Inventories...)
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "parsing config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := c.EngineConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		MaxProcesses: c.Engine.MaxProcesses,
		Inventories:  append([]int(nil), c.Engine.Inventories...),
		DebugMode:    c.Engine.DebugMode,
	}
}

func (c Config) OutputFormat() (driver.OutputFormat, error) {
	return driver.ParseOutputFormat(c.Output.Format)
}

func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

func (c Config) String() string {
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("unprintable config: %v", err)
	}
	return string(out)
}
