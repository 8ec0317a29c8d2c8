// Client initialization and connection management.
//
// The Client binds to a single bucket at a time via Open and keeps two
// pieces of mutable state: the remote working directory (an S3 key prefix)
// and the local working directory. Both are only ever mutated by the
// caller's own command sequence; there is no background work.
package s3ftp

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	ftperrors "github.com/dudrev/s3ftp/errors"
	"github.com/dudrev/s3ftp/internal/s3api"
	"github.com/dudrev/s3ftp/internal/validation"
	"github.com/dudrev/s3ftp/params"
)

// Client implements the ftp verb set over a single Amazon S3 bucket.
type Client struct {
	api s3api.API
	fs  afero.Fs
	log *slog.Logger

	// defaults is the merge of config-file and constructor parameters
	defaults params.Params

	bucket    string
	remoteDir string
	localDir  string
}

// New creates a client using the AWS SDK default credential chain.
// Default object parameters are resolved at construction: a config file
// that exists but cannot be parsed fails here with ErrConfiguration.
func New(opts ...Option) (*Client, error) {
	cfg := applyOptions(opts)

	var awsCfg aws.Config
	var err error
	if cfg.AWSConfig != nil {
		awsCfg = *cfg.AWSConfig
	} else {
		awsCfg, err = config.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, ftperrors.New("new", ftperrors.ErrConfiguration).
				WithMessage(err.Error())
		}
	}

	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	} else if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1" // AWS default region
	}
	if cfg.MaxRetries > 0 {
		awsCfg.RetryMaxAttempts = cfg.MaxRetries
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	if cfg.HTTPClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = cfg.HTTPClient
		})
	} else if cfg.Timeout > 0 {
		httpClient := &http.Client{Timeout: cfg.Timeout}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return newClient(s3.NewFromConfig(awsCfg, s3Opts...), cfg)
}

// NewWithAPI creates a client over a custom API implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api s3api.API, opts ...Option) (*Client, error) {
	return newClient(api, applyOptions(opts))
}

func applyOptions(opts []Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newClient(api s3api.API, cfg *Config) (*Client, error) {
	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var fileParams params.Params
	var err error
	switch {
	case cfg.SkipConfigFile:
		fileParams = params.Params{}
	case cfg.ConfigPath != "":
		fileParams, err = params.LoadFile(fsys, cfg.ConfigPath)
	default:
		fileParams, err = params.Load(fsys)
	}
	if err != nil {
		return nil, err
	}

	localDir := cfg.LocalDir
	if localDir == "" {
		if wd, wderr := os.Getwd(); wderr == nil {
			localDir = wd
		} else {
			localDir = "/"
		}
	}

	return &Client{
		api:      api,
		fs:       fsys,
		log:      logger,
		defaults: params.Merge(fileParams, cfg.ObjectParams),
		localDir: localDir,
	}, nil
}

// Open binds the client to a bucket, optionally starting in a directory
// within it: "bucket" or "bucket/dir/subdir". The bucket must exist and
// be accessible.
func (c *Client) Open(ctx context.Context, loc string) error {
	if loc == "" {
		return ftperrors.New("open", ftperrors.ErrNotFound).
			WithMessage("bucket name cannot be empty")
	}

	bucket, dir, _ := strings.Cut(strings.Trim(loc, "/"), "/")
	if err := validation.BucketName(bucket); err != nil {
		return ftperrors.New("open", ftperrors.ErrInvalidCommand).
			WithBucket(bucket).
			WithMessage(err.Error())
	}

	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return ftperrors.New("open", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(bucket)
	}

	c.bucket = bucket
	c.remoteDir = absolutePath("", "/"+dir)
	c.log.Debug("bucket opened", "bucket", bucket, "dir", c.remoteDir)
	return nil
}

// Close unbinds the active bucket. It is safe to call when nothing is open.
func (c *Client) Close() error {
	c.bucket = ""
	c.remoteDir = ""
	return nil
}

// Connected reports whether a bucket is currently open.
func (c *Client) Connected() bool {
	return c.bucket != ""
}

// Bucket returns the name of the open bucket, or "" when closed.
func (c *Client) Bucket() string {
	return c.bucket
}

// requireOpen guards verbs that need an active bucket.
func (c *Client) requireOpen(op string) error {
	if c.bucket == "" {
		return ftperrors.New(op, ftperrors.ErrNotConnected)
	}
	return nil
}
