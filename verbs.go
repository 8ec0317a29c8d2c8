// The ftp verbs. Each one validates its input, resolves paths against the
// working directories, and forwards to a single S3 call; S3 key prefixes
// stand in for directories, with zero-byte marker objects making empty
// directories visible.
package s3ftp

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	ftperrors "github.com/dudrev/s3ftp/errors"
	"github.com/dudrev/s3ftp/internal/pool"
	"github.com/dudrev/s3ftp/params"
)

// defaultContentType is used when content type detection fails.
const defaultContentType = "application/octet-stream"

// Ls lists the contents of the current remote directory, one level deep.
// Emulated subdirectories come back as entries with IsDir set. Listing a
// directory that does not exist fails with ErrNotFound; the bucket root
// of an empty bucket lists as empty.
func (c *Client) Ls(ctx context.Context) ([]Entry, error) {
	if err := c.requireOpen("ls"); err != nil {
		return nil, err
	}

	prefix := keyPrefix(c.remoteDir)
	var entries []Entry
	sawAny := false

	var continuationToken *string
	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(c.bucket),
			Prefix:            aws.String(prefix),
			Delimiter:         aws.String("/"),
			ContinuationToken: continuationToken,
		}
		result, err := c.api.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, ftperrors.New("ls", classifyS3Error(err, ftperrors.ErrTransfer)).
				WithBucket(c.bucket).
				WithKey(c.remoteDir)
		}

		for _, cp := range result.CommonPrefixes {
			sawAny = true
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name == "" {
				continue
			}
			entries = append(entries, Entry{Name: name, IsDir: true})
		}
		for _, obj := range result.Contents {
			sawAny = true
			key := aws.ToString(obj.Key)
			if key == prefix {
				// marker object for the directory being listed
				continue
			}
			entries = append(entries, Entry{
				Name:         strings.TrimPrefix(key, prefix),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}

		if !aws.ToBool(result.IsTruncated) {
			break
		}
		continuationToken = result.NextContinuationToken
	}

	if !sawAny && c.remoteDir != "" {
		return nil, ftperrors.New("ls", ftperrors.ErrNotFound).
			WithBucket(c.bucket).
			WithKey(c.remoteDir).
			WithMessage("no such directory")
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Cd changes the remote working directory. The target must exist; "cd /"
// returns to the bucket root and ".." segments resolve without escaping it.
func (c *Client) Cd(ctx context.Context, dir string) error {
	if err := c.requireOpen("cd"); err != nil {
		return err
	}

	target := absolutePath(c.remoteDir, dir)
	if target != "" {
		ok, err := c.isDir(ctx, target)
		if err != nil {
			return ftperrors.New("cd", err).WithBucket(c.bucket).WithKey(target)
		}
		if !ok {
			return ftperrors.New("cd", ftperrors.ErrNotFound).
				WithBucket(c.bucket).
				WithKey(target).
				WithMessage("no such directory")
		}
	}
	c.remoteDir = target
	return nil
}

// Pwd returns the remote working directory as an absolute path ("/" is
// the bucket root).
func (c *Client) Pwd() (string, error) {
	if err := c.requireOpen("pwd"); err != nil {
		return "", err
	}
	return "/" + c.remoteDir, nil
}

// Lcd changes the local working directory. Purely local state; no remote
// call is made.
func (c *Client) Lcd(dir string) error {
	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(c.localDir, target)
	}
	ok, err := afero.DirExists(c.fs, target)
	if err != nil {
		return ftperrors.New("lcd", err).WithKey(target)
	}
	if !ok {
		return ftperrors.New("lcd", ftperrors.ErrNotFound).
			WithKey(target).
			WithMessage("no such local directory")
	}
	c.localDir = target
	return nil
}

// Lpwd returns the local working directory.
func (c *Client) Lpwd() string {
	return c.localDir
}

// Mkdir creates an emulated directory by writing a zero-byte marker
// object with a trailing separator. Fails with ErrExists if a file or
// directory of that name is already present.
func (c *Client) Mkdir(ctx context.Context, dir string) error {
	if err := c.requireOpen("mkdir"); err != nil {
		return err
	}

	target := absolutePath(c.remoteDir, dir)
	if target == "" {
		return ftperrors.New("mkdir", ftperrors.ErrExists).WithBucket(c.bucket)
	}

	if ok, err := c.isFile(ctx, target); err != nil {
		return ftperrors.New("mkdir", err).WithBucket(c.bucket).WithKey(target)
	} else if ok {
		return ftperrors.New("mkdir", ftperrors.ErrExists).WithBucket(c.bucket).WithKey(target)
	}
	if ok, err := c.isDir(ctx, target); err != nil {
		return ftperrors.New("mkdir", err).WithBucket(c.bucket).WithKey(target)
	} else if ok {
		return ftperrors.New("mkdir", ftperrors.ErrExists).WithBucket(c.bucket).WithKey(target)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(markerKey(target)),
		Body:   bytes.NewReader(nil),
	}
	applyPutParams(input, c.defaults)
	if _, err := c.api.PutObject(ctx, input); err != nil {
		return ftperrors.New("mkdir", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(c.bucket).
			WithKey(target)
	}
	return nil
}

// Rmdir removes an empty emulated directory. A directory holding anything
// beyond its own marker fails with ErrNotEmpty.
func (c *Client) Rmdir(ctx context.Context, dir string) error {
	if err := c.requireOpen("rmdir"); err != nil {
		return err
	}

	target := absolutePath(c.remoteDir, dir)
	if target == "" {
		return ftperrors.New("rmdir", ftperrors.ErrNotEmpty).WithBucket(c.bucket)
	}

	ok, err := c.isDir(ctx, target)
	if err != nil {
		return ftperrors.New("rmdir", err).WithBucket(c.bucket).WithKey(target)
	}
	if !ok {
		return ftperrors.New("rmdir", ftperrors.ErrNotFound).
			WithBucket(c.bucket).
			WithKey(target).
			WithMessage("no such directory")
	}

	empty, err := c.dirEmpty(ctx, target)
	if err != nil {
		return ftperrors.New("rmdir", err).WithBucket(c.bucket).WithKey(target)
	}
	if !empty {
		return ftperrors.New("rmdir", ftperrors.ErrNotEmpty).WithBucket(c.bucket).WithKey(target)
	}

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(markerKey(target)),
	}); err != nil {
		return ftperrors.New("rmdir", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(c.bucket).
			WithKey(target)
	}
	return nil
}

// Put uploads a local file into the current remote directory, overwriting
// any existing object of the same name. The name may include local path
// separators; only its base name is used for the remote key. Call-site
// parameters override the client defaults key-by-key.
func (c *Client) Put(ctx context.Context, name string, extra ...params.Params) error {
	if err := c.requireOpen("put"); err != nil {
		return err
	}
	if name == "" {
		return ftperrors.New("put", ftperrors.ErrNotFound).
			WithMessage("file name cannot be empty")
	}

	localPath := c.joinLocal(name)
	key := absolutePath(c.remoteDir, baseName(name))

	file, err := c.fs.Open(localPath)
	if err != nil {
		return ftperrors.New("put", ftperrors.ErrNotFound).
			WithKey(localPath).
			WithMessage(err.Error())
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return ftperrors.New("put", err).WithKey(localPath)
	}
	if info.IsDir() {
		return ftperrors.New("put", ftperrors.ErrIsDirectory).WithKey(localPath)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(c.detectContentType(file, localPath)),
	}
	applyPutParams(input, params.Merge(append([]params.Params{c.defaults}, extra...)...))

	if _, err := c.api.PutObject(ctx, input); err != nil {
		return ftperrors.New("put", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(c.bucket).
			WithKey(key)
	}
	c.log.Debug("uploaded", "bucket", c.bucket, "key", key, "size", info.Size())
	return nil
}

// Get downloads a remote file into the local working directory,
// overwriting any existing file of the same base name. Getting a
// directory fails with ErrIsDirectory.
func (c *Client) Get(ctx context.Context, name string, extra ...params.Params) error {
	if err := c.requireOpen("get"); err != nil {
		return err
	}
	if name == "" {
		return ftperrors.New("get", ftperrors.ErrNotFound).
			WithMessage("file name cannot be empty")
	}

	key := absolutePath(c.remoteDir, name)
	localPath := filepath.Join(c.localDir, baseName(name))

	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}
	applyGetParams(input, params.Merge(append([]params.Params{c.defaults}, extra...)...))

	result, err := c.api.GetObject(ctx, input)
	if err != nil {
		if isNotFoundErr(err) {
			// distinguish a directory from a missing file
			if ok, dirErr := c.isDir(ctx, key); dirErr == nil && ok {
				return ftperrors.New("get", ftperrors.ErrIsDirectory).
					WithBucket(c.bucket).
					WithKey(key)
			}
		}
		return ftperrors.New("get", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(c.bucket).
			WithKey(key)
	}
	defer result.Body.Close()

	if err := c.writeLocal(localPath, result.Body); err != nil {
		return ftperrors.New("get", ftperrors.ErrTransfer).
			WithBucket(c.bucket).
			WithKey(key).
			WithMessage(err.Error())
	}
	c.log.Debug("downloaded", "bucket", c.bucket, "key", key, "to", localPath)
	return nil
}

// Mput uploads every local file matching the glob patterns. Patterns
// resolve against the local working directory; directories are skipped.
func (c *Client) Mput(ctx context.Context, patterns []string, extra ...params.Params) error {
	if err := c.requireOpen("mput"); err != nil {
		return err
	}

	for _, pattern := range patterns {
		p := pattern
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.localDir, p)
		}
		matches, err := afero.Glob(c.fs, p)
		if err != nil {
			return ftperrors.New("mput", ftperrors.ErrInvalidCommand).
				WithKey(pattern).
				WithMessage("bad pattern")
		}
		for _, m := range matches {
			info, err := c.fs.Stat(m)
			if err != nil {
				return ftperrors.New("mput", ftperrors.ErrTransfer).
					WithKey(m).
					WithMessage(err.Error())
			}
			if info.IsDir() {
				continue
			}
			if err := c.Put(ctx, m, extra...); err != nil {
				return err
			}
		}
	}
	return nil
}

// Mget downloads every file in the current remote directory whose name
// matches one of the glob patterns.
func (c *Client) Mget(ctx context.Context, patterns []string, extra ...params.Params) error {
	if err := c.requireOpen("mget"); err != nil {
		return err
	}

	entries, err := c.Ls(ctx)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		for _, entry := range entries {
			if entry.IsDir {
				continue
			}
			ok, err := path.Match(pattern, entry.Name)
			if err != nil {
				return ftperrors.New("mget", ftperrors.ErrInvalidCommand).
					WithKey(pattern).
					WithMessage("bad pattern")
			}
			if !ok {
				continue
			}
			if err := c.Get(ctx, entry.Name, extra...); err != nil {
				return err
			}
		}
	}
	return nil
}

// Delete removes a single remote file. Deleting a directory fails with
// ErrIsDirectory and deleting a missing key fails with ErrNotFound,
// never silently.
func (c *Client) Delete(ctx context.Context, name string) error {
	if err := c.requireOpen("delete"); err != nil {
		return err
	}

	key := absolutePath(c.remoteDir, name)

	if ok, err := c.isFile(ctx, key); err != nil {
		return ftperrors.New("delete", err).WithBucket(c.bucket).WithKey(key)
	} else if !ok {
		if dir, err := c.isDir(ctx, key); err == nil && dir {
			return ftperrors.New("delete", ftperrors.ErrIsDirectory).
				WithBucket(c.bucket).
				WithKey(key)
		}
		return ftperrors.New("delete", ftperrors.ErrNotFound).
			WithBucket(c.bucket).
			WithKey(key).
			WithMessage("no such object")
	}

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return ftperrors.New("delete", classifyS3Error(err, ftperrors.ErrTransfer)).
			WithBucket(c.bucket).
			WithKey(key)
	}
	return nil
}

// Mdelete removes every file in the current remote directory whose name
// matches one of the glob patterns.
func (c *Client) Mdelete(ctx context.Context, patterns []string) error {
	if err := c.requireOpen("mdelete"); err != nil {
		return err
	}

	entries, err := c.Ls(ctx)
	if err != nil {
		return err
	}
	for _, pattern := range patterns {
		for _, entry := range entries {
			if entry.IsDir {
				continue
			}
			ok, err := path.Match(pattern, entry.Name)
			if err != nil {
				return ftperrors.New("mdelete", ftperrors.ErrInvalidCommand).
					WithKey(pattern).
					WithMessage("bad pattern")
			}
			if !ok {
				continue
			}
			if err := c.Delete(ctx, entry.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// isDir reports whether the given bucket-root-relative path has any keys
// beneath it (including its own marker object).
func (c *Client) isDir(ctx context.Context, dir string) (bool, error) {
	if dir == "" {
		return true, nil
	}
	result, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(markerKey(dir)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, classifyS3Error(err, ftperrors.ErrTransfer)
	}
	return len(result.Contents) > 0 || len(result.CommonPrefixes) > 0, nil
}

// isFile reports whether the path names an exact object (not a marker).
func (c *Client) isFile(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	_, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFoundErr(err) {
			return false, nil
		}
		return false, classifyS3Error(err, ftperrors.ErrTransfer)
	}
	return true, nil
}

// dirEmpty reports whether a directory holds nothing beyond its marker.
func (c *Client) dirEmpty(ctx context.Context, dir string) (bool, error) {
	result, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.bucket),
		Prefix:  aws.String(markerKey(dir)),
		MaxKeys: aws.Int32(2),
	})
	if err != nil {
		return false, classifyS3Error(err, ftperrors.ErrTransfer)
	}
	switch len(result.Contents) {
	case 0:
		return true, nil
	case 1:
		return aws.ToString(result.Contents[0].Key) == markerKey(dir), nil
	default:
		return false, nil
	}
}

// writeLocal streams a download body into a local file through a pooled
// copy buffer.
func (c *Client) writeLocal(localPath string, body io.Reader) error {
	if dir := filepath.Dir(localPath); dir != "" {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := c.fs.Create(localPath)
	if err != nil {
		return err
	}
	if _, err := pool.Copy(out, body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// joinLocal resolves a file argument against the local working directory.
func (c *Client) joinLocal(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.localDir, name)
}

// detectContentType sniffs the file header with mimetype, falling back to
// extension-based lookup, then to application/octet-stream.
func (c *Client) detectContentType(file afero.File, name string) string {
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	_, _ = file.Seek(0, io.SeekStart)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil && mt.String() != defaultContentType {
			return mt.String()
		}
	}
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return defaultContentType
}
