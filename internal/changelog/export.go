package changelog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects the output document type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// ValidFormats returns the accepted output formats.
func ValidFormats() []string {
	return []string{string(FormatMarkdown), string(FormatYAML)}
}

// ParseFormat converts a configuration value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatMarkdown, FormatYAML:
		return f, nil
	case "", "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// document is the YAML shape of the release notes.
type document struct {
	Range    rangeDoc     `yaml:"range"`
	Versions []versionDoc `yaml:"versions"`
}

type rangeDoc struct {
	Oldest string `yaml:"oldest"`
	Newest string `yaml:"newest"`
}

type versionDoc struct {
	Version string     `yaml:"version"`
	Date    string     `yaml:"date,omitempty"`
	Changes *yaml.Node `yaml:"changes"`
}

// changesNode builds an ordered mapping so categories keep render order.
func changesNode(c Changes) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, cat := range RenderOrder() {
		entries := c[cat]
		if len(entries) == 0 {
			continue
		}
		var value yaml.Node
		if err := value.Encode(entries); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", cat.Key(), err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: cat.Key()},
			&value,
		)
	}
	return node, nil
}

// RenderYAML writes the release notes as a YAML document, newest version first.
func RenderYAML(n *Notes, w io.Writer) error {
	doc := document{
		Range:    rangeDoc{Oldest: n.OldestHash, Newest: n.NewestHash},
		Versions: []versionDoc{},
	}

	for _, s := range newestFirst(n.Segments) {
		changes, err := changesNode(s.Changes)
		if err != nil {
			return fmt.Errorf("rendering version %s: %w", s.Label, err)
		}
		doc.Versions = append(doc.Versions, versionDoc{
			Version: s.Label,
			Date:    s.Date,
			Changes: changes,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding release notes YAML: %w", err)
	}
	return enc.Close()
}

// Render writes n in the given format.
func Render(n *Notes, format Format, w io.Writer) error {
	switch format {
	case FormatYAML:
		return RenderYAML(n, w)
	case FormatMarkdown, "":
		return RenderMarkdown(n, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// RenderString renders n in the given format to a string.
func RenderString(n *Notes, format Format) (string, error) {
	var b strings.Builder
	if err := Render(n, format, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile renders n to path. The document is written to a temporary file
// in the same directory and renamed into place.
func WriteFile(path string, n *Notes, format Format) error {
	content, err := RenderString(n, format)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("writing release notes: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
