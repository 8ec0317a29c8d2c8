package testutil

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dudrev/s3ftp/internal/s3api"
)

var _ s3api.API = (*FakeBucket)(nil)

// FakeBucket is an in-memory stand-in for a single S3 bucket. Unlike
// MockS3Client it is stateful: puts are visible to subsequent lists and
// gets, which lets tests exercise verb sequences (mkdir then ls) without
// scripting every call.
type FakeBucket struct {
	Name string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewFakeBucket creates an empty fake bucket with the given name.
func NewFakeBucket(name string) *FakeBucket {
	return &FakeBucket{
		Name:    name,
		objects: make(map[string][]byte),
	}
}

// Seed stores an object directly, bypassing the API surface.
func (f *FakeBucket) Seed(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
}

// Keys returns all stored object keys in sorted order.
func (f *FakeBucket) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func apiError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}

func (f *FakeBucket) checkBucket(bucket *string) error {
	if aws.ToString(bucket) != f.Name {
		return apiError("NoSuchBucket", "the specified bucket does not exist")
	}
	return nil
}

// HeadBucket verifies the bucket name matches.
func (f *FakeBucket) HeadBucket(
	_ context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options),
) (*s3.HeadBucketOutput, error) {
	if aws.ToString(params.Bucket) != f.Name {
		return nil, apiError("NotFound", "not found")
	}
	return &s3.HeadBucketOutput{}, nil
}

// PutObject stores the object body under its key.
func (f *FakeBucket) PutObject(
	_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if err := f.checkBucket(params.Bucket); err != nil {
		return nil, err
	}
	var data []byte
	if params.Body != nil {
		var err error
		data, err = io.ReadAll(params.Body)
		if err != nil {
			return nil, err
		}
	}
	f.mu.Lock()
	f.objects[aws.ToString(params.Key)] = data
	f.mu.Unlock()
	return &s3.PutObjectOutput{ETag: aws.String(`"fake-etag"`)}, nil
}

// GetObject returns the stored body, or NoSuchKey.
func (f *FakeBucket) GetObject(
	_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	if err := f.checkBucket(params.Bucket); err != nil {
		return nil, err
	}
	f.mu.Lock()
	data, ok := f.objects[aws.ToString(params.Key)]
	f.mu.Unlock()
	if !ok {
		return nil, apiError("NoSuchKey", "the specified key does not exist")
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(time.Now()),
	}, nil
}

// HeadObject reports metadata for an exact key, or NotFound.
func (f *FakeBucket) HeadObject(
	_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	if err := f.checkBucket(params.Bucket); err != nil {
		return nil, err
	}
	f.mu.Lock()
	data, ok := f.objects[aws.ToString(params.Key)]
	f.mu.Unlock()
	if !ok {
		return nil, apiError("NotFound", "not found")
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(time.Now()),
	}, nil
}

// DeleteObject removes a key. Like S3, deleting an absent key succeeds.
func (f *FakeBucket) DeleteObject(
	_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	if err := f.checkBucket(params.Bucket); err != nil {
		return nil, err
	}
	f.mu.Lock()
	delete(f.objects, aws.ToString(params.Key))
	f.mu.Unlock()
	return &s3.DeleteObjectOutput{}, nil
}

// ListObjectsV2 implements prefix and delimiter grouping over the stored
// keys, enough for one-level directory listings.
func (f *FakeBucket) ListObjectsV2(
	_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	if err := f.checkBucket(params.Bucket); err != nil {
		return nil, err
	}
	prefix := aws.ToString(params.Prefix)
	delimiter := aws.ToString(params.Delimiter)

	var contents []types.Object
	prefixSet := map[string]bool{}
	for _, key := range f.Keys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		rest := key[len(prefix):]
		if delimiter != "" {
			if idx := strings.Index(rest, delimiter); idx >= 0 {
				prefixSet[prefix+rest[:idx+len(delimiter)]] = true
				continue
			}
		}
		f.mu.Lock()
		size := int64(len(f.objects[key]))
		f.mu.Unlock()
		contents = append(contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(size),
			LastModified: aws.Time(time.Now()),
		})
	}

	commonPrefixes := make([]string, 0, len(prefixSet))
	for p := range prefixSet {
		commonPrefixes = append(commonPrefixes, p)
	}
	sort.Strings(commonPrefixes)

	out := &s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		KeyCount:    aws.Int32(int32(len(contents) + len(commonPrefixes))),
	}
	maxKeys := int(aws.ToInt32(params.MaxKeys))
	if maxKeys > 0 && len(contents) > maxKeys {
		contents = contents[:maxKeys]
	}
	out.Contents = contents
	for _, p := range commonPrefixes {
		out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(p)})
	}
	return out, nil
}
