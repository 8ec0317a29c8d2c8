package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dudrev/s3ftp"
	"github.com/dudrev/s3ftp/shell"
)

var (
	version = "dev"

	cfgFile   string
	region    string
	endpoint  string
	pathStyle bool
	noConfig  bool
	logLevel  string
	jsonLog   bool
)

var rootCmd = &cobra.Command{
	Use:     "s3ftp [bucket[/dir]]",
	Version: version,
	Short:   "ftp-style command interface for Amazon S3",
	Long: `s3ftp - ftp-style command interface for Amazon S3

Starts an interactive session speaking the classic ftp vocabulary
(ls, cd, put, get, mget, delete, ...) against an S3 bucket. Remote
directories are emulated with zero-byte marker objects so buckets can
be navigated like a filesystem.

Credentials come from the AWS SDK default chain (environment, shared
config, instance role). Default per-object upload parameters such as
ServerSideEncryption or StorageClass are read from a .s3ftp.json file
in the working or home directory; run 's3ftp configure' to create one.

If a bucket is given on the command line it is opened before the first
prompt, otherwise start with the 'open' command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSession,
}

func init() {
	addSessionFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(configureCmd)
}

func addSessionFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&cfgFile, "config", "c", "", "object parameter config file (default: ./.s3ftp.json or ~/.s3ftp.json)")
	fs.StringVarP(&region, "region", "r", "", "AWS region (default: credential chain region)")
	fs.StringVarP(&endpoint, "endpoint", "e", "", "custom S3 endpoint URL, for S3-compatible services")
	fs.BoolVar(&pathStyle, "path-style", false, "use path-style URLs (required by most S3-compatible services)")
	fs.BoolVar(&noConfig, "no-config", false, "skip the object parameter config file")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default: warn)")
	fs.BoolVar(&jsonLog, "json-log", false, "emit logs as JSON instead of colorized text")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSession(cmd *cobra.Command, args []string) error {
	logger := setupLogging()

	opts := []s3ftp.Option{s3ftp.WithLogger(logger)}
	if region != "" {
		opts = append(opts, s3ftp.WithRegion(region))
	}
	if endpoint != "" {
		opts = append(opts, s3ftp.WithEndpoint(endpoint))
	}
	if pathStyle {
		opts = append(opts, s3ftp.WithForcePathStyle(true))
	}
	if cfgFile != "" {
		opts = append(opts, s3ftp.WithConfigPath(cfgFile))
	}
	if noConfig {
		opts = append(opts, s3ftp.WithoutConfigFile())
	}

	client, err := s3ftp.New(opts...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if len(args) == 1 {
		if err := client.Open(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Connected to %s\n", client.Bucket())
	}

	sh := shell.New(client, shell.WithLogger(logger))
	return sh.Run(ctx)
}
