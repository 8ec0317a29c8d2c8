// Functional options for configuring client behavior.
package s3ftp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"

	"github.com/dudrev/s3ftp/params"
)

// Config collects the settings applied by functional options.
type Config struct {
	// Region is the AWS region; empty means the credential chain's region
	Region string

	// Endpoint is a custom S3 endpoint URL, for S3-compatible services
	// or local testing
	Endpoint string

	// ForcePathStyle forces path-style URLs instead of virtual-hosted style
	ForcePathStyle bool

	// MaxRetries is the SDK retry budget; 0 keeps the SDK default
	MaxRetries int

	// Timeout bounds individual HTTP requests; 0 means no timeout
	Timeout time.Duration

	// HTTPClient overrides the HTTP client used by the SDK
	HTTPClient *http.Client

	// AWSConfig overrides default AWS configuration loading entirely
	AWSConfig *aws.Config

	// ObjectParams are default per-object parameters, merged over any
	// loaded from the configuration file
	ObjectParams params.Params

	// ConfigPath points at an explicit parameter config file instead of
	// the default search locations
	ConfigPath string

	// SkipConfigFile disables config file loading altogether
	SkipConfigFile bool

	// Fs is the local filesystem used for transfers and config loading
	Fs afero.Fs

	// LocalDir is the initial local working directory; empty means the
	// process working directory
	LocalDir string

	// Logger receives debug-level operation tracing
	Logger *slog.Logger
}

// Option configures the client during construction.
type Option func(*Config)

// WithRegion sets the AWS region for S3 operations.
func WithRegion(region string) Option {
	return func(c *Config) {
		c.Region = region
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing.
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces the use of path-style URLs instead of
// virtual-hosted style. Required for most S3-compatible services.
func WithForcePathStyle(force bool) Option {
	return func(c *Config) {
		c.ForcePathStyle = force
	}
}

// WithMaxRetries sets the maximum number of SDK retry attempts.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
	}
}

// WithTimeout bounds individual S3 requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient allows providing a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithAWSConfig allows providing a custom AWS configuration, overriding
// the default credential chain loading.
func WithAWSConfig(config *aws.Config) Option {
	return func(c *Config) {
		c.AWSConfig = config
	}
}

// WithObjectParams sets default per-object parameters. They take
// precedence over parameters from the configuration file and are
// overridden by call-site parameters.
func WithObjectParams(p params.Params) Option {
	return func(c *Config) {
		c.ObjectParams = p
	}
}

// WithConfigPath reads default object parameters from an explicit file
// instead of searching the working and home directories.
func WithConfigPath(path string) Option {
	return func(c *Config) {
		c.ConfigPath = path
	}
}

// WithoutConfigFile disables configuration file loading.
func WithoutConfigFile() Option {
	return func(c *Config) {
		c.SkipConfigFile = true
	}
}

// WithFs sets the local filesystem used for transfers and config loading.
// Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *Config) {
		c.Fs = fsys
	}
}

// WithLocalDir sets the initial local working directory.
func WithLocalDir(dir string) Option {
	return func(c *Config) {
		c.LocalDir = dir
	}
}

// WithLogger sets the logger used for operation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
