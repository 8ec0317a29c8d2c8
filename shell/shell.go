// Package shell provides the interactive ftp-style command loop. It parses
// one command per line, dispatches to the client verb, reports any error,
// and keeps accepting commands; only quit (or end of input) ends the loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dudrev/s3ftp"
	ftperrors "github.com/dudrev/s3ftp/errors"
)

// Prompt is printed before each command is read.
const Prompt = "s3ftp> "

// errQuit signals a clean exit from the command loop.
var errQuit = errors.New("quit")

// Shell reads ftp commands from an input stream and executes them
// against a client.
type Shell struct {
	client s3ftp.Interface
	in     io.Reader
	out    io.Writer
	log    *slog.Logger
}

// Option configures a Shell.
type Option func(*Shell)

// WithInput sets the command input stream. Defaults to stdin.
func WithInput(r io.Reader) Option {
	return func(s *Shell) { s.in = r }
}

// WithOutput sets the result and error output stream. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) { s.out = w }
}

// WithLogger sets the logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) { s.log = logger }
}

// New creates a shell over the given client.
func New(client s3ftp.Interface, opts ...Option) *Shell {
	s := &Shell{
		client: client,
		in:     os.Stdin,
		out:    os.Stdout,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the command loop until quit or end of input. Command
// failures are reported and the loop continues; only input errors and
// context cancellation are returned.
func (s *Shell) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	fmt.Fprint(s.out, Prompt)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			fmt.Fprint(s.out, Prompt)
			continue
		}

		output, err := s.Dispatch(ctx, args)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			s.log.Debug("command failed", "verb", args[0], "error", err)
			fmt.Fprintf(s.out, "ERROR: %v\n", err)
		case output != "":
			fmt.Fprintln(s.out, output)
		}
		fmt.Fprint(s.out, Prompt)
	}
	return scanner.Err()
}

// Dispatch parses a single tokenized command and invokes the matching
// verb. It returns the text to display, if any.
func (s *Shell) Dispatch(ctx context.Context, args []string) (string, error) {
	verb, rest := args[0], args[1:]

	if fn, ok := s.noArgVerbs()[verb]; ok {
		if len(rest) != 0 {
			return "", ftperrors.New(verb, ftperrors.ErrInvalidCommand).
				WithMessage("takes no arguments")
		}
		return fn(ctx)
	}
	if fn, ok := s.oneArgVerbs()[verb]; ok {
		if len(rest) != 1 {
			return "", ftperrors.New(verb, ftperrors.ErrInvalidCommand).
				WithMessage("takes exactly one argument")
		}
		return "", fn(ctx, rest[0])
	}
	if fn, ok := s.varArgVerbs()[verb]; ok {
		if len(rest) == 0 {
			return "", ftperrors.New(verb, ftperrors.ErrInvalidCommand).
				WithMessage("takes one or more patterns")
		}
		return "", fn(ctx, rest)
	}
	return "", ftperrors.New(verb, ftperrors.ErrInvalidCommand).
		WithMessage("unknown command")
}

func (s *Shell) noArgVerbs() map[string]func(context.Context) (string, error) {
	return map[string]func(context.Context) (string, error){
		"ls": func(ctx context.Context) (string, error) {
			entries, err := s.client.Ls(ctx)
			if err != nil {
				return "", err
			}
			return formatEntries(entries), nil
		},
		"pwd": func(context.Context) (string, error) {
			return s.client.Pwd()
		},
		"lpwd": func(context.Context) (string, error) {
			return s.client.Lpwd(), nil
		},
		"close": func(context.Context) (string, error) {
			return "", s.client.Close()
		},
		"quit": s.quit,
		"bye":  s.quit,
		"help": func(context.Context) (string, error) {
			return s.help(), nil
		},
	}
}

func (s *Shell) oneArgVerbs() map[string]func(context.Context, string) error {
	return map[string]func(context.Context, string) error{
		"open":   s.client.Open,
		"cd":     s.client.Cd,
		"lcd":    func(_ context.Context, dir string) error { return s.client.Lcd(dir) },
		"mkdir":  s.client.Mkdir,
		"rmdir":  s.client.Rmdir,
		"delete": s.client.Delete,
		"put": func(ctx context.Context, name string) error {
			return s.client.Put(ctx, name)
		},
		"get": func(ctx context.Context, name string) error {
			return s.client.Get(ctx, name)
		},
	}
}

func (s *Shell) varArgVerbs() map[string]func(context.Context, []string) error {
	return map[string]func(context.Context, []string) error{
		"mput": func(ctx context.Context, patterns []string) error {
			return s.client.Mput(ctx, patterns)
		},
		"mget": func(ctx context.Context, patterns []string) error {
			return s.client.Mget(ctx, patterns)
		},
		"mdelete": s.client.Mdelete,
	}
}

func (s *Shell) quit(context.Context) (string, error) {
	_ = s.client.Close()
	return "", errQuit
}

func (s *Shell) help() string {
	verbs := []string{
		"open <bucket[/dir]>", "close", "quit",
		"ls", "cd <dir>", "pwd", "lcd <dir>", "lpwd",
		"mkdir <dir>", "rmdir <dir>",
		"put <file>", "get <file>", "delete <file>",
		"mput <pattern>...", "mget <pattern>...", "mdelete <pattern>...",
	}
	return "commands: " + strings.Join(verbs, ", ")
}

// formatEntries renders a listing, directories first with a trailing
// separator, the way ftp clients conventionally do.
func formatEntries(entries []s3ftp.Entry) string {
	sorted := make([]s3ftp.Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].IsDir != sorted[j].IsDir {
			return sorted[i].IsDir
		}
		return sorted[i].Name < sorted[j].Name
	})

	var b strings.Builder
	for _, e := range sorted {
		if e.IsDir {
			fmt.Fprintf(&b, "%12s  %s/\n", "-", e.Name)
		} else {
			fmt.Fprintf(&b, "%12d  %s\n", e.Size, e.Name)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
