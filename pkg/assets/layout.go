package assets

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/errors"
)

// FileKind classifies a content file by extension.
type FileKind int

const (
	NotContent FileKind = iota
	PluginScript
	PrimaryPlugin
	SecondaryPlugin
)

// Layout is the compiled form of the input tree conventions.
type Layout struct {
	// PluginKeySuffix is appended to decision keys of plugin choices.
	PluginKeySuffix string

	option      *regexp.Regexp
	corePrefix  string
	dataFolders map[string]bool
	extensions  map[string]FileKind
}

// NewLayout compiles the layout section of the configuration.
func NewLayout(cfg config.Layout) (*Layout, error) {
	option, err := regexp.Compile(cfg.OptionPattern)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid option pattern").
			WithDetail("pattern", cfg.OptionPattern)
	}

	l := &Layout{
		option:          option,
		corePrefix:      strings.ToLower(cfg.CorePrefix),
		dataFolders:     make(map[string]bool, len(cfg.DataFolders)),
		extensions:      make(map[string]FileKind),
		PluginKeySuffix: cfg.PluginKeySuffix,
	}
	for _, name := range cfg.DataFolders {
		l.dataFolders[strings.ToLower(name)] = true
	}
	add := func(exts []string, kind FileKind) {
		for _, ext := range exts {
			ext = strings.ToLower(ext)
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			l.extensions[ext] = kind
		}
	}
	add(cfg.PluginScriptExtensions, PluginScript)
	add(cfg.SecondaryPluginExtensions, SecondaryPlugin)
	add(cfg.PrimaryPluginExtensions, PrimaryPlugin)
	return l, nil
}

// IsOption reports whether a directory name marks an installer option.
func (l *Layout) IsOption(name string) bool {
	return l.option.MatchString(name)
}

// IsCore reports whether an option is the auto-selected core option. The
// match is a case-insensitive prefix match, so "00 CoreExtra" qualifies.
func (l *Layout) IsCore(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), l.corePrefix)
}

// IsDataFolder reports whether a directory name is one of the data folders.
func (l *Layout) IsDataFolder(name string) bool {
	return l.dataFolders[strings.ToLower(name)]
}

// Kind returns the content kind of a file name.
func (l *Layout) Kind(name string) FileKind {
	return l.extensions[strings.ToLower(filepath.Ext(name))]
}
