package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/goliatone/go-qna/pkg/definition"
)

// Loader implements definition.Loader by delegating to file, fs.FS, HTTP or
// S3 strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration

	s3Mu        sync.Mutex
	s3          definition.S3GetObjectAPI
	s3Default   bool
	s3Region    string
	newS3Client func(ctx context.Context, region string) (definition.S3GetObjectAPI, error)
}

var _ definition.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options definition.LoaderOptions) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:          options.FileSystem,
		http:        httpClient,
		allowHTTP:   httpClient != nil,
		timeout:     timeout,
		s3:          options.S3Client,
		s3Default:   options.AllowS3DefaultConfig,
		s3Region:    options.S3Region,
		newS3Client: newDefaultS3Client,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src definition.Source) (definition.Document, error) {
	if src == nil {
		return definition.Document{}, errors.New("definition loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case definition.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case definition.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case definition.SourceKindURL:
		if !l.allowHTTP {
			return definition.Document{}, errors.New("definition loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	case definition.SourceKindS3:
		client, clientErr := l.s3Client(ctx)
		if clientErr != nil {
			return definition.Document{}, clientErr
		}
		data, err = loadS3(ctx, client, src.Location())
	default:
		err = errors.New("definition loader: unsupported source kind")
	}
	if err != nil {
		return definition.Document{}, err
	}

	return definition.NewDocument(src, data)
}

func (l *Loader) s3Client(ctx context.Context) (definition.S3GetObjectAPI, error) {
	l.s3Mu.Lock()
	defer l.s3Mu.Unlock()

	if l.s3 != nil {
		return l.s3, nil
	}
	if !l.s3Default {
		return nil, errors.New("definition loader: s3 support disabled")
	}
	client, err := l.newS3Client(ctx, l.s3Region)
	if err != nil {
		return nil, err
	}
	l.s3 = client
	return client, nil
}
