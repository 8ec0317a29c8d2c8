// Package s3ftp emulates basic ftp client functionality over Amazon S3.
// It wraps AWS SDK v2 so that each ftp verb (ls, cd, put, get, mkdir, ...)
// forwards to the corresponding S3 object operation, with S3 key prefixes
// standing in for directories.
//
// Credentials come entirely from the SDK's default credential chain; the
// package defines no credential format of its own. Default per-object
// parameters (encryption, ACL, metadata) are resolved by merging a
// .s3ftp.json config file, constructor options, and call-site overrides,
// in that order of precedence.
//
// Example usage:
//
//	client, err := s3ftp.New(s3ftp.WithRegion("us-west-2"))
//	if err != nil {
//	    return err
//	}
//	if err := client.Open(ctx, "my-bucket/reports"); err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	// Upload a local file into the current remote directory
//	if err := client.Put(ctx, "2024-summary.pdf"); err != nil {
//	    return err
//	}
package s3ftp
