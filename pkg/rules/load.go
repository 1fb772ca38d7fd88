package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/marksync/pkg/bookmarks"
	"github.com/agentstation/marksync/pkg/errors"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format is a rules file encoding.
type Format string

// Supported rule file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension. Unknown
// extensions are read as JSON, the historical format.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// entry is the on-disk shape of a rule. Pointers tell a missing key apart
// from a zero value.
type entry struct {
	Name         *string   `json:"name" yaml:"name" toml:"name"`
	CollectionID *int64    `json:"collection_id" yaml:"collection_id" toml:"collection_id"`
	Tags         *[]string `json:"tags" yaml:"tags" toml:"tags"`
}

// tomlFile holds rules as [[rules]] tables; TOML has no top-level arrays.
type tomlFile struct {
	Rules []entry `toml:"rules"`
}

// Load reads and validates a rules file. An empty path yields no rules.
func Load(path string) (Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("rules", fmt.Sprintf("cannot read %s", path), errors.WrapIO("read", path, err))
	}
	rs, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// Parse decodes and validates rules in the given format. Any malformed entry
// fails the whole set with a *errors.ConfigError.
func Parse(data []byte, format Format) (Rules, error) {
	var entries []entry
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &entries)
	case FormatYAML:
		err = yaml.Unmarshal(data, &entries)
	case FormatTOML:
		var f tomlFile
		err = toml.Unmarshal(data, &f)
		entries = f.Rules
	default:
		return nil, errors.NewConfigError("rules", fmt.Sprintf("unsupported format %q", format), nil)
	}
	if err != nil {
		return nil, errors.NewConfigError("rules", "malformed rules file", errors.WrapParse(string(format), "", err))
	}

	rs := make(Rules, 0, len(entries))
	for i, e := range entries {
		if e.CollectionID == nil || e.Tags == nil {
			return nil, errors.NewConfigError("rules", fmt.Sprintf("rule %d must include collection_id and tags", i), nil)
		}
		r := Rule{
			Collection: bookmarks.CollectionID(*e.CollectionID),
			Tags:       bookmarks.NormalizeTags(*e.Tags, false),
		}
		if e.Name != nil {
			r.Name = strings.TrimSpace(*e.Name)
		}
		rs = append(rs, r)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}
