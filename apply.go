package s3ftp

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/spf13/cast"

	"github.com/dudrev/s3ftp/internal/validation"
	"github.com/dudrev/s3ftp/params"
)

// applyPutParams copies resolved object parameters onto a PutObject
// request. Keys follow the S3 request field names and match
// case-insensitively; unrecognized keys are ignored so a config file can
// carry parameters for several tools.
func applyPutParams(input *s3.PutObjectInput, p params.Params) {
	if v, ok := p.Lookup("ServerSideEncryption"); ok {
		input.ServerSideEncryption = types.ServerSideEncryption(cast.ToString(v))
	}
	if v, ok := p.Lookup("SSEKMSKeyId"); ok {
		input.SSEKMSKeyId = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("ACL"); ok {
		input.ACL = types.ObjectCannedACL(cast.ToString(v))
	}
	if v, ok := p.Lookup("StorageClass"); ok {
		input.StorageClass = types.StorageClass(cast.ToString(v))
	}
	if v, ok := p.Lookup("ContentType"); ok {
		input.ContentType = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("CacheControl"); ok {
		input.CacheControl = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("ContentEncoding"); ok {
		input.ContentEncoding = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("ContentDisposition"); ok {
		input.ContentDisposition = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("ContentLanguage"); ok {
		input.ContentLanguage = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("Metadata"); ok {
		if m := validation.SanitizeMetadata(cast.ToStringMapString(v)); len(m) > 0 {
			input.Metadata = m
		}
	}
}

// applyGetParams copies the download-relevant parameters onto a GetObject
// request (customer-provided encryption keys and version selection).
func applyGetParams(input *s3.GetObjectInput, p params.Params) {
	if v, ok := p.Lookup("SSECustomerAlgorithm"); ok {
		input.SSECustomerAlgorithm = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("SSECustomerKey"); ok {
		input.SSECustomerKey = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("SSECustomerKeyMD5"); ok {
		input.SSECustomerKeyMD5 = aws.String(cast.ToString(v))
	}
	if v, ok := p.Lookup("VersionId"); ok {
		input.VersionId = aws.String(cast.ToString(v))
	}
}
