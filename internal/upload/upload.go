// Package upload stores product images and returns the public URL they are served from.
package upload

import (
	"context"
	"io"
	"path"
	"regexp"
	"strings"
)

// ImageDir is the public path product images live under.
const ImageDir = "images/produits"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Writer persists an uploaded file under name and returns its public URL.
type Writer interface {
	Write(ctx context.Context, name string, r io.Reader) (string, error)
}

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-] with '-' and lowercases the result.
func SanitizeFilename(name string) string {
	return strings.ToLower(unsafeChars.ReplaceAllString(name, "-"))
}

func publicPath(name string) string {
	return "/" + path.Join(ImageDir, name)
}
