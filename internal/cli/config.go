package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"

	"github.com/toyz/implementor/internal/errors"
	"github.com/toyz/implementor/internal/utils"
)

// DefaultConfigFile is read from the working directory when no -config flag is given
const DefaultConfigFile = ".implementor.toml"

const (
	defaultServerAddr   = ":8080"
	defaultMaxBodyBytes = 1 << 20
)

// Config holds the configuration for a CLI or server run
type Config struct {
	// Sourcepath lists the roots searched for interface sources, in order
	Sourcepath []string `toml:"sourcepath"`

	// Classpath is appended to the compiler classpath after the archive and the type origin
	Classpath []string `toml:"classpath"`

	// Javac is an explicit compiler executable
	Javac string `toml:"javac"`

	// JavacFlags holds extra compiler flags, split with shell quoting rules
	JavacFlags string `toml:"javac_flags"`

	// Release is passed to javac as --release when it supports it
	Release Release `toml:"release"`

	// KeepWorkspace keeps the packaged-mode scratch directory after a successful build
	KeepWorkspace bool `toml:"keep_workspace"`

	Server ServerConfig `toml:"server"`

	// Out overrides the direct-mode destination root
	Out string `toml:"-"`

	Verbose bool `toml:"-"`
	Quiet   bool `toml:"-"`
}

// ServerConfig configures the HTTP surface
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Release is a Java release number. The config file may spell it as a
// string or an integer.
type Release string

// UnmarshalTOML implements toml.Unmarshaler
func (r *Release) UnmarshalTOML(v interface{}) error {
	switch value := v.(type) {
	case string:
		*r = Release(strings.TrimSpace(value))
	case int64:
		*r = Release(strconv.FormatInt(value, 10))
	default:
		return fmt.Errorf("release must be a string or an integer, got %T", v)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file or flag says otherwise
func DefaultConfig() *Config {
	return &Config{
		Sourcepath: []string{"."},
		Server: ServerConfig{
			Addr:         defaultServerAddr,
			MaxBodyBytes: defaultMaxBodyBytes,
		},
	}
}

// LoadConfig reads a TOML config file on top of the defaults. An empty path
// reads DefaultConfigFile if it exists; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.WrapConfigurationError(path, "stat", err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, "decode", err).
			WithSuggestion("Check the TOML syntax of the config file")
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		sort.Strings(keys)
		return nil, errors.Newf(errors.ConfigurationFailureCode, "unknown config keys in %s: %s", path, strings.Join(keys, ", ")).
			WithContext("file", path).
			WithSuggestions(
				"Known keys: sourcepath, classpath, javac, javac_flags, release, keep_workspace",
				"Server keys go under [server]: addr, max_body_bytes",
			)
	}

	cfg.resolvePaths(filepath.Dir(path))
	return cfg, cfg.Validate()
}

// resolvePaths makes relative file paths relative to the config file's directory
func (c *Config) resolvePaths(base string) {
	for i, p := range c.Sourcepath {
		c.Sourcepath[i] = relativeTo(base, p)
	}
	for i, p := range c.Classpath {
		c.Classpath[i] = relativeTo(base, p)
	}
	if c.Javac != "" && strings.ContainsRune(c.Javac, filepath.Separator) {
		c.Javac = relativeTo(base, c.Javac)
	}
}

func relativeTo(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

var (
	validateSourcepath = utils.NewValidatorChain(
		utils.SliceNotEmpty[string]("sourcepath"),
		utils.ValidateEach("sourcepath", utils.NotEmpty("entry")),
	)
	validateRelease      = utils.Optional(utils.MatchesRegex("release", `^(1\.)?[0-9]+$`, "a Java release number"))
	validateMaxBodyBytes = utils.Positive[int64]("server.max_body_bytes")
)

// Validate checks the values a run depends on
func (c *Config) Validate() error {
	if err := validateSourcepath.Validate(c.Sourcepath); err != nil {
		return invalidConfig(err, "Set sourcepath = [\".\"] or pass -sourcepath")
	}
	if err := validateRelease(string(c.Release)); err != nil {
		return invalidConfig(err, "Use a release number such as release = 17")
	}
	if err := validateMaxBodyBytes(c.Server.MaxBodyBytes); err != nil {
		return invalidConfig(err, "Set [server] max_body_bytes to a positive byte count")
	}
	if _, err := c.JavacFlagList(); err != nil {
		return err
	}
	return nil
}

func invalidConfig(err error, suggestion string) error {
	return errors.New(errors.ConfigurationFailureCode, err.Error()).WithSuggestion(suggestion)
}

// JavacFlagList splits JavacFlags into arguments
func (c *Config) JavacFlagList() ([]string, error) {
	if strings.TrimSpace(c.JavacFlags) == "" {
		return nil, nil
	}
	flags, err := shellquote.Split(c.JavacFlags)
	if err != nil {
		return nil, errors.WrapConfigurationError("javac_flags", "split", err).
			WithContext("value", c.JavacFlags).
			WithSuggestion("Balance the quotes in javac_flags")
	}
	return flags, nil
}

// SplitPathList splits an os.PathListSeparator separated list, dropping empty entries
func SplitPathList(list string) []string {
	var result []string
	for _, p := range filepath.SplitList(list) {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
