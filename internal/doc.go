// Package internal contains private implementation details for the ftp
// adapter. These packages are not intended for external use and may
// change without notice.
//
// The internal packages are organized as follows:
//   - s3api: the interface over the AWS SDK S3 client
//   - validation: input validation for bucket names and object keys
//   - pool: transfer copy buffer reuse
//   - testutil: test doubles (scripted mock and stateful fake bucket)
package internal
