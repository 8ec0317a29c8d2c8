package s3ftp

import (
	"context"
	"time"

	"github.com/dudrev/s3ftp/params"
)

// Entry is a single listing entry returned by Ls.
type Entry struct {
	// Name is the entry name relative to the remote working directory
	Name string

	// Size is the object size in bytes; zero for directories
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// IsDir marks emulated directories (common prefixes and markers)
	IsDir bool
}

// Interface is the ftp verb set. Client implements it for Amazon S3;
// clients for other object stores can provide their own implementation
// and plug into the same command loop.
type Interface interface {
	// Open binds to a storage location ("bucket" or "bucket/dir").
	Open(ctx context.Context, loc string) error

	// Close unbinds the active storage location.
	Close() error

	// Connected reports whether a location is bound.
	Connected() bool

	// Ls lists the current remote directory.
	Ls(ctx context.Context) ([]Entry, error)

	// Cd changes the remote working directory.
	Cd(ctx context.Context, dir string) error

	// Pwd returns the remote working directory.
	Pwd() (string, error)

	// Lcd changes the local working directory.
	Lcd(dir string) error

	// Lpwd returns the local working directory.
	Lpwd() string

	// Mkdir creates an emulated remote directory.
	Mkdir(ctx context.Context, dir string) error

	// Rmdir removes an empty emulated remote directory.
	Rmdir(ctx context.Context, dir string) error

	// Put uploads a local file into the remote working directory.
	Put(ctx context.Context, name string, extra ...params.Params) error

	// Get downloads a remote file into the local working directory.
	Get(ctx context.Context, name string, extra ...params.Params) error

	// Mput uploads all local files matching the glob patterns.
	Mput(ctx context.Context, patterns []string, extra ...params.Params) error

	// Mget downloads all remote files matching the glob patterns.
	Mget(ctx context.Context, patterns []string, extra ...params.Params) error

	// Delete removes a single remote file.
	Delete(ctx context.Context, name string) error

	// Mdelete removes all remote files matching the glob patterns.
	Mdelete(ctx context.Context, patterns []string) error
}

var _ Interface = (*Client)(nil)
