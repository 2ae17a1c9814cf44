package manifest

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/modlist/pkg/config"
	"github.com/arthur-debert/modlist/pkg/errors"
	"github.com/arthur-debert/modlist/pkg/logging"
	"github.com/arthur-debert/modlist/pkg/types"
	"github.com/pelletier/go-toml/v2"
)

// Document is the serialized customization file
type Document struct {
	Customizations []Customization `toml:"Customizations"`
}

// Customization is one named customization list
type Customization struct {
	ListName      string         `toml:"listName"`
	Remove        []string       `toml:"remove"`
	RemoveData    []string       `toml:"removeData,omitempty"`
	RemoveContent []string       `toml:"removeContent,omitempty"`
	Insert        []DataBlock    `toml:"insert"`
	InsertContent []ContentBlock `toml:"insertContent"`
}

// DataBlock inserts data directories before an anchor
type DataBlock struct {
	InsertBefore string   `toml:"insertBefore"`
	Paths        []string `toml:"paths"`
}

// ContentBlock inserts plugin files before an anchor
type ContentBlock struct {
	InsertBefore string   `toml:"insertBefore"`
	Plugins      []string `toml:"plugins"`
}

// Options shape the compiled document
type Options struct {
	ListName          string
	Remove            []string
	DataAnchor        string
	ContentAnchor     string
	DataExclusions    []string
	ContentExclusions []string
}

// OptionsFromConfig builds compile options from the manifest section,
// reading the exclusion files relative to baseDir.
func OptionsFromConfig(fsys types.FS, cfg config.Manifest, baseDir string) (Options, error) {
	data, err := LoadExclusions(fsys, resolve(baseDir, cfg.DataExclusions))
	if err != nil {
		return Options{}, err
	}
	content, err := LoadExclusions(fsys, resolve(baseDir, cfg.ContentExclusions))
	if err != nil {
		return Options{}, err
	}
	return Options{
		ListName:          cfg.ListName,
		Remove:            cfg.Remove,
		DataAnchor:        cfg.DataAnchor,
		ContentAnchor:     cfg.ContentAnchor,
		DataExclusions:    data,
		ContentExclusions: content,
	}, nil
}

// Compile deduplicates and sorts the resolved sets. It returns nil when
// nothing resolved to an asset directory; that is not an error.
func Compile(res *types.Resolution, opts Options) *Document {
	logger := logging.GetLogger("manifest")

	paths := uniqueSorted(res.Assets)
	if len(paths) == 0 {
		logger.Warn().Msg("No asset directories resolved, no manifest will be produced")
		return nil
	}

	names := make([]string, 0, len(res.Plugins))
	for _, p := range res.Plugins {
		names = append(names, p.Filename)
	}
	plugins := uniqueSorted(names)

	logger.Info().
		Int("paths", len(paths)).
		Int("plugins", len(plugins)).
		Int("dataExclusions", len(opts.DataExclusions)).
		Int("contentExclusions", len(opts.ContentExclusions)).
		Msg("Compiled manifest")

	return &Document{Customizations: []Customization{{
		ListName:      opts.ListName,
		Remove:        nonNil(opts.Remove),
		RemoveData:    opts.DataExclusions,
		RemoveContent: opts.ContentExclusions,
		Insert:        []DataBlock{{InsertBefore: opts.DataAnchor, Paths: paths}},
		InsertContent: []ContentBlock{{InsertBefore: opts.ContentAnchor, Plugins: nonNil(plugins)}},
	}}}
}

// Render serializes the document. Every string is written as a basic
// string, so path separators come out doubled.
func Render(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetArraysMultiline(true)
	enc.SetIndentTables(true)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrManifestRender, "failed to render manifest")
	}
	return basicStrings(buf.Bytes()), nil
}

// basicStrings rewrites the encoder's single-quoted literal strings as
// double-quoted basic strings. Literal strings never hold a quote or a
// newline, so each one ends at the next single quote.
func basicStrings(in []byte) []byte {
	out := make([]byte, 0, len(in)+len(in)/8)
	for i := 0; i < len(in); i++ {
		switch c := in[i]; c {
		case '"':
			// Already a basic string; copy through its closing quote.
			out = append(out, c)
			for i++; i < len(in); i++ {
				out = append(out, in[i])
				if in[i] == '\\' && i+1 < len(in) {
					i++
					out = append(out, in[i])
					continue
				}
				if in[i] == '"' {
					break
				}
			}
		case '\'':
			end := bytes.IndexByte(in[i+1:], '\'')
			if end < 0 {
				return append(out, in[i:]...)
			}
			out = append(out, '"')
			for _, b := range in[i+1 : i+1+end] {
				if b == '\\' || b == '"' {
					out = append(out, '\\')
				}
				out = append(out, b)
			}
			out = append(out, '"')
			i += end + 1
		default:
			out = append(out, c)
		}
	}
	return out
}

// LoadExclusions reads a newline-delimited exclusion file. Blank lines are
// ignored and a missing file yields no entries.
func LoadExclusions(fsys types.FS, path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrManifestRender, "cannot read exclusion file").
			WithDetail("path", path)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
