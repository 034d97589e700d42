// Package media manages the on-disk library of uploaded audio files,
// composed videos and downloaded provider output.
//
// Files live under a single media root in per-kind subdirectories
// (audio/, videos/, ai_videos/, thumbnails/). Callers store and serve
// files by root-relative path; paths escaping the root are rejected.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/mvx/internal/shared"
)

// Subdirectories created under the media root.
const (
	DirAudio      = "audio"
	DirVideos     = "videos"
	DirGenerated  = "generated_videos"
	DirAIVideos   = "ai_videos"
	DirThumbnails = "thumbnails"
)

// Store provides path-safe access to files under the media root.
type Store struct {
	root string
}

// NewStore creates a Store rooted at the given directory, creating the
// root and its per-kind subdirectories if needed.
func NewStore(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media root: %w", err)
	}

	for _, dir := range []string{"", DirAudio, DirVideos, DirGenerated, DirAIVideos, DirThumbnails} {
		if err := os.MkdirAll(filepath.Join(abs, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media directory: %w", err)
		}
	}

	return &Store{root: abs}, nil
}

// Root returns the absolute media root directory.
func (s *Store) Root() string {
	return s.root
}

// Path resolves a root-relative path to an absolute path, rejecting
// paths that escape the media root.
func (s *Store) Path(rel string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("%w: %s", shared.ErrMediaEscape, rel)
	}
	return filepath.Join(s.root, cleaned), nil
}

// Save writes the reader's contents to dir/filename under the media
// root and returns the stored root-relative path.
//
// The filename is flattened to its base name, so callers cannot smuggle
// separators through an upload.
func (s *Store) Save(dir, filename string, r io.Reader) (string, error) {
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: empty filename", shared.ErrInvalidInput)
	}

	rel := filepath.ToSlash(filepath.Join(dir, name))
	abs, err := s.Path(rel)
	if err != nil {
		return "", err
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}

	return rel, nil
}

// Open opens a stored file by root-relative path.
func (s *Store) Open(rel string) (*os.File, error) {
	abs, err := s.Path(rel)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(abs)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrMediaNotFound, rel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}

	return f, nil
}

// Stat reports the size in bytes of a stored file.
func (s *Store) Stat(rel string) (int64, error) {
	abs, err := s.Path(rel)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("%w: %s", shared.ErrMediaNotFound, rel)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat media file: %w", err)
	}

	return info.Size(), nil
}

// Exists reports whether a stored file is present.
func (s *Store) Exists(rel string) bool {
	abs, err := s.Path(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// Remove deletes a stored file, ignoring files already gone.
func (s *Store) Remove(rel string) error {
	abs, err := s.Path(rel)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove media file: %w", err)
	}

	return nil
}
