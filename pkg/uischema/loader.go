package uischema

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFS walks the provided filesystem and parses JSON/YAML override files of
// the form {"questions": {"<id>": {...}}}. When fsys is nil or no override
// files are present, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{overrides: make(map[string]Override)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverrideFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}
		doc, err := parseFile(data, path)
		if err != nil {
			return err
		}

		for rawID, override := range doc.Questions {
			id := strings.TrimSpace(rawID)
			if _, err := strconv.Atoi(id); err != nil {
				return fmt.Errorf("uischema: file %s uses non-numeric question id %q", path, rawID)
			}
			if prev, exists := store.overrides[id]; exists {
				return fmt.Errorf("uischema: duplicate override for question %s (files %s and %s)", id, prev.Source, path)
			}
			store.overrides[id] = normaliseOverride(override, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type overrideFile struct {
	Questions map[string]Override `json:"questions" yaml:"questions"`
}

func parseFile(data []byte, source string) (overrideFile, error) {
	var doc overrideFile
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, fmt.Errorf("uischema: file %s is empty", source)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return overrideFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return overrideFile{}, fmt.Errorf("uischema: parse %s: %w", source, err)
		}
	}
	return doc, nil
}

func normaliseOverride(raw Override, source string) Override {
	out := Override{
		Placeholder: sanitizePlaceholder(raw.Placeholder),
		Widget:      strings.TrimSpace(raw.Widget),
		Source:      source,
	}
	if len(raw.Options) > 0 {
		out.Options = make(map[string]any, len(raw.Options))
		for k, v := range raw.Options {
			out.Options[k] = v
		}
	}
	return out
}

func isOverrideFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
