// Package assetstore manages the image file area that accompanies the
// database. Ingredient images are content-addressed under the ingredient's
// id so a changed image gets a new name; recipe images keep the fixed name
// img.<ext> and are overwritten in place.
package assetstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/forkwhisk/cookbook/internal/logger"
)

const (
	ingredientsDir = "ingredients"
	recipesDir     = "recipes"
	hashLen        = 16
)

// Store is a filesystem-backed asset store rooted at a single directory.
type Store struct {
	root string
}

// New creates a store rooted at root, creating the directory if needed.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset root: %w", err)
	}
	return &Store{root: root}, nil
}

// Root returns the root directory of the store.
func (s *Store) Root() string {
	return s.root
}

// StoreIngredientImage copies the file at srcPath into the ingredient's
// directory under a name derived from a hash of the file content, and
// returns the stored path. A changed image therefore changes name, so a
// stale path can never silently point at new content.
func (s *Store) StoreIngredientImage(ingredientID uint, srcPath string) (string, error) {
	dir := filepath.Join(s.root, ingredientsDir, strconv.FormatUint(uint64(ingredientID), 10))
	sum, err := hashFile(srcPath)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, sum[:hashLen]+ext(srcPath))
	if err := copyFile(srcPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// StoreRecipeImage copies the file at srcPath into the recipe's directory
// under the fixed name img.<ext>, overwriting any previous image, and
// returns the stored path.
func (s *Store) StoreRecipeImage(recipeID uint, srcPath string) (string, error) {
	dir := filepath.Join(s.root, recipesDir, strconv.FormatUint(uint64(recipeID), 10))
	dst := filepath.Join(dir, "img"+ext(srcPath))
	if err := copyFile(srcPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Remove deletes a stored file. Removing a path that is already gone is
// not an error. The then-empty entity directory is cleaned up
// opportunistically.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove asset %s: %w", path, err)
	}
	// Only succeeds when the directory is empty.
	_ = os.Remove(filepath.Dir(path))
	return nil
}

// RemoveBestEffort deletes a stored file, logging instead of failing. Used
// where a leftover file must not block a row operation.
func (s *Store) RemoveBestEffort(path string) {
	if err := s.Remove(path); err != nil {
		logger.L().Warnw("failed to remove asset, leaving orphaned file", "path", path, "error", err)
	}
}

// copyFile copies src to dst. The destination directory is created lazily
// and idempotently; racing creators must treat "already exists" as
// success, which MkdirAll does. The copy goes through a temp file in the
// destination directory and is renamed into place, so a crash mid-copy can
// leave a stray temp file but never a half-written destination.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create asset directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source image: %w", err)
	}
	defer func() { _ = in.Close() }()

	tmp := filepath.Join(filepath.Dir(dst), ".tmp-"+uuid.New().String())
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to copy image: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to flush image: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

// hashFile returns the hex sha256 of the file content at path.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open source image: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash image: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ext returns the lower-cased extension of path, defaulting to .img when
// the picker hands over a file without one.
func ext(path string) string {
	e := strings.ToLower(filepath.Ext(path))
	if e == "" {
		e = ".img"
	}
	return e
}
