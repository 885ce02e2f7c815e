package definition

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Source identifies where a questionnaire definition originated so loaders
// can operate on files, fs.FS entries, URLs or S3 objects without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
	SourceKindS3   SourceKind = "s3"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("definition: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("definition: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// S3Location addresses one object in a bucket.
type S3Location struct {
	Bucket string
	Key    string
}

// String renders the location as s3://bucket/key.
func (l S3Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

type s3Source struct {
	loc S3Location
}

func (s s3Source) Location() string { return s.loc.String() }
func (s s3Source) Kind() SourceKind { return SourceKindS3 }

// SourceFromS3 returns a Source identifying an S3 object.
func SourceFromS3(bucket, key string) Source {
	return s3Source{loc: S3Location{Bucket: bucket, Key: strings.TrimPrefix(key, "/")}}
}

// ParseS3Location splits an s3://bucket/key reference.
func ParseS3Location(raw string) (S3Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return S3Location{}, fmt.Errorf("definition: invalid s3 location %q: %w", raw, err)
	}
	if u.Scheme != "s3" {
		return S3Location{}, fmt.Errorf("definition: %q is not an s3:// location", raw)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return S3Location{}, fmt.Errorf("definition: s3 location %q needs a bucket and a key", raw)
	}
	return S3Location{Bucket: u.Host, Key: key}, nil
}

// ParseSource picks the source kind from a command-line style reference:
// s3://bucket/key, http(s) URLs, fs:<name> for the configured fs.FS, and
// anything else as a file path.
func ParseSource(raw string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.New("definition: source is required")
	}

	switch {
	case strings.HasPrefix(trimmed, "s3://"):
		loc, err := ParseS3Location(trimmed)
		if err != nil {
			return nil, err
		}
		return s3Source{loc: loc}, nil
	case strings.HasPrefix(trimmed, "http://"), strings.HasPrefix(trimmed, "https://"):
		if _, err := url.ParseRequestURI(trimmed); err != nil {
			return nil, fmt.Errorf("definition: invalid URL %q: %w", trimmed, err)
		}
		return urlSource{raw: trimmed}, nil
	case strings.HasPrefix(trimmed, "fs:"):
		name := strings.TrimPrefix(trimmed, "fs:")
		if name == "" {
			return nil, errors.New("definition: fs source needs a name")
		}
		return fsSource{name: name}, nil
	default:
		return SourceFromFile(trimmed), nil
	}
}
