package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tbcbank/rekotool/internal/batch"
	"github.com/tbcbank/rekotool/internal/faces"
	"github.com/tbcbank/rekotool/internal/scan"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Enroll faces from a directory of images into a collection",
	Long: `Enroll the faces detected in a directory of images into a Rekognition
collection. The collection is created first when it does not exist yet.

Each file produces one CSV line on stdout: the file name and the enrolled
face id, or NotDetected when the service found no usable face.

Examples:
  # Enroll every .jpg in the current directory
  rekotool collect --collection staff

  # Enroll .png files from a specific folder
  rekotool collect --collection staff --source /data/photos --pattern "*.png"`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().String("source", ".", "Directory with image files")
	collectCmd.Flags().String("pattern", "*.jpg", "File name glob pattern (case-insensitive)")
	collectCmd.Flags().String("collection", "", "Target collection id")
	collectCmd.Flags().StringP("output", "o", "", "Write CSV to a file instead of stdout")
	_ = collectCmd.MarkFlagRequired("collection")
}

func runCollect(cmd *cobra.Command, args []string) error {
	source := mustGetString(cmd, "source")
	pattern := mustGetString(cmd, "pattern")
	collection := mustGetString(cmd, "collection")
	output := mustGetString(cmd, "output")

	awsCfg, err := awsSettings()
	if err != nil {
		return err
	}

	files, err := scan.Files(source, pattern, false)
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := faces.NewRekognition(ctx, awsCfg.AccessKey, awsCfg.SecretKey, awsCfg.Region)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Enrolling %d file(s) into collection %s\n", len(files), collection)
	bar := newBar(len(files), "Enrolling")

	runner := &batch.Runner{
		Client:   client,
		Out:      out,
		Progress: func() { _ = bar.Add(1) },
	}
	if err := runner.Enroll(ctx, collection, files); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	_ = bar.Finish()
	fmt.Fprintf(os.Stderr, "\nDone: %d file(s) processed\n", len(files))
	return nil
}
