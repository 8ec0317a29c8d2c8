package s3ftp

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ftperrors "github.com/dudrev/s3ftp/errors"
)

func TestClassifyS3Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "typed no such key",
			err:  &types.NoSuchKey{},
			want: ftperrors.ErrNotFound,
		},
		{
			name: "typed no such bucket",
			err:  &types.NoSuchBucket{},
			want: ftperrors.ErrNotFound,
		},
		{
			name: "typed not found",
			err:  &types.NotFound{},
			want: ftperrors.ErrNotFound,
		},
		{
			name: "generic not found code",
			err:  &smithy.GenericAPIError{Code: "NotFound", Message: "not found"},
			want: ftperrors.ErrNotFound,
		},
		{
			name: "access denied",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "access denied"},
			want: ftperrors.ErrPermission,
		},
		{
			name: "invalid access key",
			err:  &smithy.GenericAPIError{Code: "InvalidAccessKeyId", Message: "bad key"},
			want: ftperrors.ErrPermission,
		},
		{
			name: "unknown code falls back",
			err:  &smithy.GenericAPIError{Code: "SlowDown", Message: "slow down"},
			want: ftperrors.ErrTransfer,
		},
		{
			name: "plain error falls back",
			err:  errors.New("connection reset"),
			want: ftperrors.ErrTransfer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyS3Error(tt.err, ftperrors.ErrTransfer)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassifyS3Error_Nil(t *testing.T) {
	assert.NoError(t, classifyS3Error(nil, ftperrors.ErrTransfer))
}

func TestIsNotFoundErr(t *testing.T) {
	assert.True(t, isNotFoundErr(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isNotFoundErr(&smithy.GenericAPIError{Code: "AccessDenied"}))
	assert.False(t, isNotFoundErr(errors.New("timeout")))
}
