package definition

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrSourceNotFound matches load failures caused by a missing file, object or
// remote document.
var ErrSourceNotFound = errors.New("definition: source not found")

// Loader fetches definition documents from different sources (filesystem,
// fs.FS, HTTP, S3). The implementation lives under internal/definition but
// satisfies this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// S3GetObjectAPI is the subset of the S3 client the loader needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoaderOptions configures how a Loader resolves sources. Remote sources are
// opt-in; the zero value only reads local files.
type LoaderOptions struct {
	// FileSystem backs fs: sources.
	FileSystem fs.FS

	// HTTPClient enables URL sources with caller supplied behaviour.
	HTTPClient *http.Client

	// AllowHTTPFallback enables URL sources with a default client.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration

	// S3Client enables s3:// sources.
	S3Client S3GetObjectAPI

	// AllowS3DefaultConfig builds an S3 client from the ambient AWS
	// configuration on first use when no client is supplied.
	AllowS3DefaultConfig bool

	// S3Region overrides the region of the default S3 client.
	S3Region string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs: sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote definitions.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading using a default client and assigns an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithS3Client injects the client used for s3:// sources.
func WithS3Client(client S3GetObjectAPI) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.S3Client = client
	}
}

// WithS3DefaultConfig enables s3:// sources using the shared AWS config
// (environment, profile, instance role). An empty region keeps the
// configured default.
func WithS3DefaultConfig(region string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowS3DefaultConfig = true
		opts.S3Region = region
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
