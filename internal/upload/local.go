package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalWriter stores files under <Root>/images/produits.
type LocalWriter struct {
	Root string
}

func NewLocal(root string) *LocalWriter {
	return &LocalWriter{Root: root}
}

// Write copies r to <Root>/images/produits/name. A failed write leaves no file behind.
func (w *LocalWriter) Write(_ context.Context, name string, r io.Reader) (string, error) {
	dir := filepath.Join(w.Root, filepath.FromSlash(ImageDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	target := filepath.Join(dir, name)
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close file: %w", err)
	}
	return publicPath(name), nil
}
