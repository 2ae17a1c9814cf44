package config

import (
	"regexp"
	"time"

	"github.com/arthur-debert/modlist/pkg/errors"
)

// Packages holds package-root settings
type Packages struct {
	Root     string `koanf:"root"`
	Sanitize bool   `koanf:"sanitize"`
}

// Layout describes the input tree conventions
type Layout struct {
	OptionPattern             string   `koanf:"option_pattern"`
	CorePrefix                string   `koanf:"core_prefix"`
	DataFolders               []string `koanf:"data_folders"`
	PluginScriptExtensions    []string `koanf:"plugin_script_extensions"`
	PrimaryPluginExtensions   []string `koanf:"primary_plugin_extensions"`
	SecondaryPluginExtensions []string `koanf:"secondary_plugin_extensions"`
	PluginKeySuffix           string   `koanf:"plugin_key_suffix"`
}

// Decisions holds decision store settings
type Decisions struct {
	Dir string `koanf:"dir"`
}

// Prompt selects how operators are asked for decisions
type Prompt struct {
	Mode string `koanf:"mode"`
}

// Prompt modes
const (
	PromptAuto = "auto"
	PromptLine = "line"
	PromptTUI  = "tui"
)

// Manifest holds output document settings
type Manifest struct {
	Path              string   `koanf:"path"`
	ListName          string   `koanf:"list_name"`
	Remove            []string `koanf:"remove"`
	DataAnchor        string   `koanf:"data_anchor"`
	ContentAnchor     string   `koanf:"content_anchor"`
	DataExclusions    string   `koanf:"data_exclusions"`
	ContentExclusions string   `koanf:"content_exclusions"`
}

// Backup holds retention settings
type Backup struct {
	Retention int `koanf:"retention"`
}

// Configurator describes the external configuration applier
type Configurator struct {
	Binary       string   `koanf:"binary"`
	Args         []string `koanf:"args"`
	Allow        []string `koanf:"allow"`
	OutputConfig string   `koanf:"output_config"`
}

// Patch describes the ordering fix applied to the target config
type Patch struct {
	File   string `koanf:"file"`
	Move   string `koanf:"move"`
	Anchor string `koanf:"anchor"`
}

// Mirror holds remote mirror settings
type Mirror struct {
	Enabled  bool          `koanf:"enabled"`
	Dir      string        `koanf:"dir"`
	Remote   string        `koanf:"remote"`
	Branch   string        `koanf:"branch"`
	Interval time.Duration `koanf:"interval"`
	Message  string        `koanf:"message"`
}

// Config is the main configuration structure
type Config struct {
	Packages     Packages     `koanf:"packages"`
	Layout       Layout       `koanf:"layout"`
	Decisions    Decisions    `koanf:"decisions"`
	Prompt       Prompt       `koanf:"prompt"`
	Manifest     Manifest     `koanf:"manifest"`
	Backup       Backup       `koanf:"backup"`
	Configurator Configurator `koanf:"configurator"`
	Patch        Patch        `koanf:"patch"`
	Mirror       Mirror       `koanf:"mirror"`
}

// PatchFile returns the file the patch applies to, falling back to the
// configurator's output config.
func (c *Config) PatchFile() string {
	if c.Patch.File != "" {
		return c.Patch.File
	}
	return c.Configurator.OutputConfig
}

// Validate rejects configurations the pipeline cannot run with
func (c *Config) Validate() error {
	if c.Backup.Retention < 1 {
		return errors.Newf(errors.ErrConfigValid, "backup.retention must be at least 1, got %d", c.Backup.Retention).
			WithDetail("key", "backup.retention")
	}
	if _, err := regexp.Compile(c.Layout.OptionPattern); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "layout.option_pattern is not a valid regular expression").
			WithDetail("key", "layout.option_pattern")
	}
	if c.Manifest.ListName == "" {
		return errors.New(errors.ErrConfigValid, "manifest.list_name must not be empty").
			WithDetail("key", "manifest.list_name")
	}
	if c.Manifest.DataAnchor == "" || c.Manifest.ContentAnchor == "" {
		return errors.New(errors.ErrConfigValid, "manifest anchors must not be empty").
			WithDetail("key", "manifest.data_anchor")
	}
	if c.Patch.Move == "" || c.Patch.Anchor == "" {
		return errors.New(errors.ErrConfigValid, "patch.move and patch.anchor must not be empty").
			WithDetail("key", "patch")
	}
	switch c.Prompt.Mode {
	case PromptAuto, PromptLine, PromptTUI:
	default:
		return errors.Newf(errors.ErrConfigValid, "prompt.mode must be auto, line or tui, got %q", c.Prompt.Mode).
			WithDetail("key", "prompt.mode")
	}
	return nil
}
