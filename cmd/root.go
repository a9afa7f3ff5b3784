package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/tbcbank/rekotool/internal/config"
)

var (
	accessKey string
	secretKey string
	region    string
)

var rootCmd = &cobra.Command{
	Use:   "rekotool",
	Short: "Batch face enrollment and search against AWS Rekognition collections",
	Long: `Rekotool batch-processes a directory of image files against AWS
Rekognition face collections. The collect command enrolls the faces it
detects into a named collection; the search command looks up the best
match per image in a collection populated by a prior collect run.

Results are written as CSV to standard output, one line per file, flushed
as the batch progresses.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&accessKey, "access-key", "", "AWS access key id (default: AWS_ACCESS_KEY_ID)")
	rootCmd.PersistentFlags().StringVar(&secretKey, "secret-key", "", "AWS secret access key (default: AWS_SECRET_ACCESS_KEY)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region (default: AWS_REGION)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// awsSettings merges the persistent flags over the environment and
// validates the result before anything touches the filesystem or the
// service.
func awsSettings() (config.AWSConfig, error) {
	aws := config.Load().AWS
	if accessKey != "" {
		aws.AccessKey = accessKey
	}
	if secretKey != "" {
		aws.SecretKey = secretKey
	}
	if region != "" {
		aws.Region = region
	}

	if aws.Region == "" {
		return aws, errors.New("missing region: set --region or AWS_REGION")
	}
	if err := config.ValidateRegion(aws.Region); err != nil {
		return aws, err
	}
	if aws.AccessKey == "" || aws.SecretKey == "" {
		return aws, errors.New("missing credentials: set --access-key/--secret-key or AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY")
	}
	return aws, nil
}

// openOutput returns the CSV destination: the named file when path is set,
// standard output otherwise. Closing the result never closes stdout; for a
// file the Close error must be checked, since a failed close can truncate
// the audit trail.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// newBar builds the stderr progress bar for a batch. Stderr keeps it out
// of the CSV stream on stdout.
func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)
}
