package s3ftp

import (
	"path"
	"strings"
)

// absolutePath normalizes a path argument to a bucket-root-relative path.
// The result carries no leading or trailing slash; the bucket root is the
// empty string. A leading slash in the argument makes it absolute,
// otherwise it resolves against the remote working directory. Dot and
// dot-dot segments are collapsed, and dot-dot never escapes the root.
func absolutePath(remoteDir, p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") && remoteDir != "" {
		p = remoteDir + "/" + p
	}
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

// keyPrefix converts a bucket-root-relative directory path into the S3
// list prefix for its contents ("" for the root, "dir/" otherwise).
func keyPrefix(dir string) string {
	if dir == "" {
		return ""
	}
	return dir + "/"
}

// markerKey is the zero-byte object key that stands in for a directory.
func markerKey(dir string) string {
	return dir + "/"
}

// baseName returns the final element of a slash-separated path argument.
func baseName(p string) string {
	return path.Base(strings.TrimSuffix(p, "/"))
}
