// Package batch drives the per-file submission loop for both modes and
// emits the CSV audit trail.
package batch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/tbcbank/rekotool/internal/bytesource"
	"github.com/tbcbank/rekotool/internal/faces"
	"github.com/tbcbank/rekotool/internal/scan"
)

// CSV headers and sentinel values, fixed per mode.
const (
	enrollHeader = "file,faceId"
	searchHeader = "file,size,elapsedMs,faceId,similarity"
	notDetected  = "NotDetected"
)

// Runner processes enumerated files one at a time, in order, against the
// remote face service and writes one CSV record per file to Out.
type Runner struct {
	Client faces.Client
	Out    io.Writer

	// Progress, when set, is called after each processed file.
	Progress func()
}

// Enroll submits every file to the collection in order. The collection is
// created first when it does not exist yet. Any remote or stream error
// aborts the batch; CSV lines already written remain valid partial output.
func (r *Runner) Enroll(ctx context.Context, collectionID string, files []scan.File) error {
	if err := r.ensureCollection(ctx, collectionID); err != nil {
		return err
	}

	out := newEmitter(r.Out)
	if err := out.line(enrollHeader); err != nil {
		return err
	}
	for _, f := range files {
		if err := r.enrollOne(ctx, collectionID, f, out); err != nil {
			return err
		}
		r.step()
	}
	return nil
}

// Search submits every file as a search query against the collection, in
// order, timing each remote call. The collection is assumed to be
// populated by a prior enroll run.
func (r *Runner) Search(ctx context.Context, collectionID string, files []scan.File) error {
	out := newEmitter(r.Out)
	if err := out.line(searchHeader); err != nil {
		return err
	}
	for _, f := range files {
		if err := r.searchOne(ctx, collectionID, f, out); err != nil {
			return err
		}
		r.step()
	}
	return nil
}

func (r *Runner) ensureCollection(ctx context.Context, id string) error {
	exists, err := r.Client.DescribeCollection(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.Client.CreateCollection(ctx, id)
}

func (r *Runner) enrollOne(ctx context.Context, collectionID string, f scan.File, out *emitter) error {
	payload, err := readFile(f.Path)
	if err != nil {
		return err
	}

	found, err := r.Client.IndexImage(ctx, collectionID, payload)
	if err != nil {
		return fmt.Errorf("failed to enroll %s: %w", f.Path, err)
	}

	name := filepath.Base(f.Path)
	if len(found) == 0 {
		return out.line("%s,%s", name, notDetected)
	}
	return out.line("%s,%s", name, found[0].ID)
}

func (r *Runner) searchOne(ctx context.Context, collectionID string, f scan.File, out *emitter) error {
	payload, err := readFile(f.Path)
	if err != nil {
		return err
	}

	// The timer covers the remote round-trip only, not the file read.
	start := time.Now()
	matches, err := r.Client.SearchImage(ctx, collectionID, payload)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return fmt.Errorf("failed to search %s: %w", f.Path, err)
	}

	name := filepath.Base(f.Path)
	if len(matches) == 0 {
		return out.line("%s,%d,%d,null,0", name, f.Size, elapsed)
	}
	return out.line("%s,%d,%d,%s,%g", name, f.Size, elapsed, matches[0].FaceID, matches[0].Similarity)
}

// readFile materializes one file's bytes through an owned byte source,
// releasing the file handle before the caller moves on.
func readFile(path string) ([]byte, error) {
	src, err := bytesource.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	payload, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return payload, nil
}

func (r *Runner) step() {
	if r.Progress != nil {
		r.Progress()
	}
}
