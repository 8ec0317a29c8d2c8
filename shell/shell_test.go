package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dudrev/s3ftp"
	ftperrors "github.com/dudrev/s3ftp/errors"
	"github.com/dudrev/s3ftp/internal/testutil"
)

func newTestShell(t *testing.T, fake *testutil.FakeBucket, input string) (*Shell, *bytes.Buffer) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/local", 0o755))

	client, err := s3ftp.NewWithAPI(fake,
		s3ftp.WithoutConfigFile(),
		s3ftp.WithFs(fsys),
		s3ftp.WithLocalDir("/local"),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	sh := New(client, WithInput(strings.NewReader(input)), WithOutput(&out))
	return sh, &out
}

func TestDispatch_UnknownVerb(t *testing.T) {
	sh, _ := newTestShell(t, testutil.NewFakeBucket("my-bucket"), "")

	_, err := sh.Dispatch(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ftperrors.ErrInvalidCommand)
}

func TestDispatch_Arity(t *testing.T) {
	sh, _ := newTestShell(t, testutil.NewFakeBucket("my-bucket"), "")
	ctx := context.Background()

	tests := []struct {
		name string
		args []string
	}{
		{"no-arg verb with argument", []string{"pwd", "extra"}},
		{"one-arg verb without argument", []string{"cd"}},
		{"one-arg verb with two arguments", []string{"get", "a.txt", "b.txt"}},
		{"var-arg verb without patterns", []string{"mget"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sh.Dispatch(ctx, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, ftperrors.ErrInvalidCommand)
		})
	}
}

func TestDispatch_VerbsBeforeOpen(t *testing.T) {
	sh, _ := newTestShell(t, testutil.NewFakeBucket("my-bucket"), "")

	_, err := sh.Dispatch(context.Background(), []string{"ls"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ftperrors.ErrNotConnected)
}

func TestDispatch_Help(t *testing.T) {
	sh, _ := newTestShell(t, testutil.NewFakeBucket("my-bucket"), "")

	out, err := sh.Dispatch(context.Background(), []string{"help"})
	require.NoError(t, err)
	assert.Contains(t, out, "mget")
}

func TestRun_Session(t *testing.T) {
	fake := testutil.NewFakeBucket("my-bucket")
	fake.Seed("report.csv", []byte("a,b,c"))

	input := strings.Join([]string{
		"open my-bucket",
		"mkdir dir3",
		"ls",
		"quit",
	}, "\n") + "\n"

	sh, out := newTestShell(t, fake, input)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "dir3/")
	assert.Contains(t, out.String(), "report.csv")
	assert.Contains(t, fake.Keys(), "dir3/")
}

func TestRun_ErrorKeepsLoopAlive(t *testing.T) {
	input := strings.Join([]string{
		"open my-bucket",
		"cd nope",
		"pwd",
		"quit",
	}, "\n") + "\n"

	sh, out := newTestShell(t, testutil.NewFakeBucket("my-bucket"), input)
	require.NoError(t, sh.Run(context.Background()))

	assert.Contains(t, out.String(), "ERROR:")
	assert.Contains(t, out.String(), "/\n")
}

func TestRun_EndOfInput(t *testing.T) {
	sh, _ := newTestShell(t, testutil.NewFakeBucket("my-bucket"), "pwd\n")

	// no quit; loop ends cleanly when input runs out
	require.NoError(t, sh.Run(context.Background()))
}

func TestRun_BlankLinesIgnored(t *testing.T) {
	input := "\n\nquit\n"
	sh, out := newTestShell(t, testutil.NewFakeBucket("my-bucket"), input)

	require.NoError(t, sh.Run(context.Background()))
	assert.NotContains(t, out.String(), "ERROR:")
}

func TestFormatEntries(t *testing.T) {
	entries := []s3ftp.Entry{
		{Name: "b.txt", Size: 12},
		{Name: "dir1", IsDir: true},
		{Name: "a.txt", Size: 3},
	}

	got := formatEntries(entries)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)

	// directories first, then files by name
	assert.Contains(t, lines[0], "dir1/")
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[2], "b.txt")
}
