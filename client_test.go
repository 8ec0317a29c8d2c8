package s3ftp

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ftperrors "github.com/dudrev/s3ftp/errors"
	"github.com/dudrev/s3ftp/internal/testutil"
	"github.com/dudrev/s3ftp/params"
)

func TestNewWithAPI_Defaults(t *testing.T) {
	client, err := NewWithAPI(&testutil.MockS3Client{}, WithoutConfigFile())
	require.NoError(t, err)

	assert.False(t, client.Connected())
	assert.Empty(t, client.Bucket())
	assert.NotEmpty(t, client.Lpwd())
}

func TestNewWithAPI_MalformedConfigFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/home/.s3ftp.json", []byte(`{not json`), 0o600))

	_, err := NewWithAPI(&testutil.MockS3Client{},
		WithFs(fsys),
		WithConfigPath("/home/.s3ftp.json"),
	)
	require.Error(t, err)
	assert.True(t, ftperrors.IsConfiguration(err))
}

func TestNewWithAPI_ConfigFileParams(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `{"ServerSideEncryption": "AES256"}`
	require.NoError(t, afero.WriteFile(fsys, "/home/.s3ftp.json", []byte(content), 0o600))

	client, err := NewWithAPI(&testutil.MockS3Client{},
		WithFs(fsys),
		WithConfigPath("/home/.s3ftp.json"),
		WithObjectParams(params.Params{"ACL": "private"}),
	)
	require.NoError(t, err)

	v, ok := client.defaults.Lookup("ServerSideEncryption")
	require.True(t, ok)
	assert.Equal(t, "AES256", v)

	v, ok = client.defaults.Lookup("ACL")
	require.True(t, ok)
	assert.Equal(t, "private", v)
}

func TestNewWithAPI_ConstructorParamsOverrideFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	content := `{"ACL": "public-read"}`
	require.NoError(t, afero.WriteFile(fsys, "/home/.s3ftp.json", []byte(content), 0o600))

	client, err := NewWithAPI(&testutil.MockS3Client{},
		WithFs(fsys),
		WithConfigPath("/home/.s3ftp.json"),
		WithObjectParams(params.Params{"ACL": "private"}),
	)
	require.NoError(t, err)

	v, ok := client.defaults.Lookup("ACL")
	require.True(t, ok)
	assert.Equal(t, "private", v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("bucket only", func(t *testing.T) {
		client, err := NewWithAPI(testutil.NewFakeBucket("my-bucket"), WithoutConfigFile())
		require.NoError(t, err)

		require.NoError(t, client.Open(ctx, "my-bucket"))
		assert.True(t, client.Connected())
		assert.Equal(t, "my-bucket", client.Bucket())

		pwd, err := client.Pwd()
		require.NoError(t, err)
		assert.Equal(t, "/", pwd)
	})

	t.Run("bucket with starting directory", func(t *testing.T) {
		client, err := NewWithAPI(testutil.NewFakeBucket("my-bucket"), WithoutConfigFile())
		require.NoError(t, err)

		require.NoError(t, client.Open(ctx, "my-bucket/reports/2026"))

		pwd, err := client.Pwd()
		require.NoError(t, err)
		assert.Equal(t, "/reports/2026", pwd)
	})

	t.Run("missing bucket", func(t *testing.T) {
		client, err := NewWithAPI(testutil.NewFakeBucket("other"), WithoutConfigFile())
		require.NoError(t, err)

		err = client.Open(ctx, "my-bucket")
		require.Error(t, err)
		assert.True(t, ftperrors.IsNotFound(err))
		assert.False(t, client.Connected())
	})

	t.Run("access denied", func(t *testing.T) {
		mock := &testutil.MockS3Client{
			HeadBucketFunc: func(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "AccessDenied", Message: "access denied"}
			},
		}
		client, err := NewWithAPI(mock, WithoutConfigFile())
		require.NoError(t, err)

		err = client.Open(ctx, "my-bucket")
		require.Error(t, err)
		assert.True(t, ftperrors.IsPermission(err))
	})

	t.Run("invalid bucket name", func(t *testing.T) {
		client, err := NewWithAPI(&testutil.MockS3Client{}, WithoutConfigFile())
		require.NoError(t, err)

		err = client.Open(ctx, "My_Bucket")
		require.Error(t, err)
		assert.ErrorIs(t, err, ftperrors.ErrInvalidCommand)
	})

	t.Run("empty location", func(t *testing.T) {
		client, err := NewWithAPI(&testutil.MockS3Client{}, WithoutConfigFile())
		require.NoError(t, err)

		err = client.Open(ctx, "")
		require.Error(t, err)
		assert.True(t, ftperrors.IsNotFound(err))
	})
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	client, err := NewWithAPI(testutil.NewFakeBucket("my-bucket"), WithoutConfigFile())
	require.NoError(t, err)

	require.NoError(t, client.Open(ctx, "my-bucket"))
	require.True(t, client.Connected())

	require.NoError(t, client.Close())
	assert.False(t, client.Connected())
	assert.Empty(t, client.Bucket())

	// closing again is harmless
	require.NoError(t, client.Close())
}

func TestVerbsRequireOpenBucket(t *testing.T) {
	ctx := context.Background()
	client, err := NewWithAPI(&testutil.MockS3Client{}, WithoutConfigFile())
	require.NoError(t, err)

	calls := map[string]func() error{
		"ls":      func() error { _, err := client.Ls(ctx); return err },
		"cd":      func() error { return client.Cd(ctx, "dir1") },
		"pwd":     func() error { _, err := client.Pwd(); return err },
		"mkdir":   func() error { return client.Mkdir(ctx, "dir1") },
		"rmdir":   func() error { return client.Rmdir(ctx, "dir1") },
		"put":     func() error { return client.Put(ctx, "file.txt") },
		"get":     func() error { return client.Get(ctx, "file.txt") },
		"mput":    func() error { return client.Mput(ctx, []string{"*.txt"}) },
		"mget":    func() error { return client.Mget(ctx, []string{"*.txt"}) },
		"delete":  func() error { return client.Delete(ctx, "file.txt") },
		"mdelete": func() error { return client.Mdelete(ctx, []string{"*.txt"}) },
	}

	for verb, call := range calls {
		t.Run(verb, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.ErrorIs(t, err, ftperrors.ErrNotConnected)
		})
	}
}
