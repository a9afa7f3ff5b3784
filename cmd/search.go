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

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search a collection for the best match per image",
	Long: `Search a Rekognition collection for the best matching enrolled face per
image, at a fixed 90% similarity threshold. The collection is expected to
be populated by a prior collect run.

Each file produces one CSV line on stdout: file name, size in bytes, the
remote call's elapsed milliseconds, the matched face id and its similarity
score. A file with no match is recorded as null,0.

Examples:
  # Search every .jpg in the current directory
  rekotool search --collection staff

  # Search a folder tree recursively
  rekotool search --collection staff --source /data/captures -r`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("source", ".", "Directory with image files")
	searchCmd.Flags().String("pattern", "*.jpg", "File name glob pattern (case-insensitive)")
	searchCmd.Flags().String("collection", "", "Collection id to search")
	searchCmd.Flags().BoolP("recursive", "r", false, "Search for files recursively in subdirectories")
	searchCmd.Flags().StringP("output", "o", "", "Write CSV to a file instead of stdout")
	_ = searchCmd.MarkFlagRequired("collection")
}

func runSearch(cmd *cobra.Command, args []string) error {
	source := mustGetString(cmd, "source")
	pattern := mustGetString(cmd, "pattern")
	collection := mustGetString(cmd, "collection")
	recursive := mustGetBool(cmd, "recursive")
	output := mustGetString(cmd, "output")

	awsCfg, err := awsSettings()
	if err != nil {
		return err
	}

	files, err := scan.Files(source, pattern, recursive)
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

	fmt.Fprintf(os.Stderr, "Searching collection %s with %d file(s)\n", collection, len(files))
	bar := newBar(len(files), "Searching")

	runner := &batch.Runner{
		Client:   client,
		Out:      out,
		Progress: func() { _ = bar.Add(1) },
	}
	if err := runner.Search(ctx, collection, files); err != nil {
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
