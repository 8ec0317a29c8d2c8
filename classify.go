package s3ftp

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	ftperrors "github.com/dudrev/s3ftp/errors"
)

// classifyS3Error maps an AWS SDK error onto the shared taxonomy. Errors
// that match no known code fall through to the given fallback sentinel.
func classifyS3Error(err error, fallback error) error {
	if err == nil {
		return nil
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return fmt.Errorf("%w: no such key", ftperrors.ErrNotFound)
	}
	var noSuchBucket *types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return fmt.Errorf("%w: no such bucket", ftperrors.ErrNotFound)
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: not found", ftperrors.ErrNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound", "NoSuchUpload":
			return fmt.Errorf("%w: %s", ftperrors.ErrNotFound, apiErr.ErrorMessage())
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch",
			"AccountProblem", "AllAccessDisabled":
			return fmt.Errorf("%w: %s", ftperrors.ErrPermission, apiErr.ErrorMessage())
		}
	}

	return fmt.Errorf("%w: %v", fallback, err)
}

// isNotFoundErr reports whether the SDK error means the object or bucket
// does not exist, without surfacing it to the caller.
func isNotFoundErr(err error) bool {
	return ftperrors.IsNotFound(classifyS3Error(err, ftperrors.ErrTransfer))
}
