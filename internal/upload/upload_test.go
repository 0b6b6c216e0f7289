package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Canard Rôti.PNG":      "canard-r-ti.png",
		"magret_de-canard.jpg": "magret-de-canard.jpg",
		"../../etc/passwd":     "..-..-etc-passwd",
		"foie gras (2).webp":   "foie-gras--2-.webp",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalWriter(t *testing.T) {
	root := t.TempDir()
	w := NewLocal(root)

	url, err := w.Write(context.Background(), "confit.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if url != "/images/produits/confit.png" {
		t.Fatalf("unexpected url %s", url)
	}
	data, err := os.ReadFile(filepath.Join(root, "images", "produits", "confit.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestLocalWriter_Failure(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(root, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := NewLocal(root).Write(context.Background(), "x.png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error when root is a file")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalWriter_ReadFailureRemovesFile(t *testing.T) {
	root := t.TempDir()
	r := io.MultiReader(strings.NewReader("partial"), failingReader{})

	if _, err := NewLocal(root).Write(context.Background(), "partial.png", r); err == nil {
		t.Fatalf("expected error when the body cannot be read")
	}
	if _, err := os.Stat(filepath.Join(root, "images", "produits", "partial.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial file to be removed, got %v", err)
	}
}

type stubS3 struct {
	bucket, key, contentType string
	body                     string
	err                      error
}

func (s *stubS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.bucket = *in.Bucket
	s.key = *in.Key
	if in.ContentType != nil {
		s.contentType = *in.ContentType
	}
	b, _ := io.ReadAll(in.Body)
	s.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Writer(t *testing.T) {
	stub := &stubS3{}
	w := &S3Writer{client: stub, bucket: "orderdesk-assets", baseURL: "https://cdn.example.com/"}

	url, err := w.Write(context.Background(), "magret.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if url != "https://cdn.example.com/images/produits/magret.png" {
		t.Fatalf("unexpected url %s", url)
	}
	if stub.bucket != "orderdesk-assets" || stub.key != "images/produits/magret.png" || stub.body != "img" {
		t.Fatalf("unexpected put %+v", stub)
	}
	if stub.contentType != "image/png" {
		t.Fatalf("expected image/png content type, got %q", stub.contentType)
	}
}

func TestS3Writer_Error(t *testing.T) {
	w := &S3Writer{client: &stubS3{err: errors.New("denied")}, bucket: "b"}

	if _, err := w.Write(context.Background(), "a.png", strings.NewReader("")); err == nil {
		t.Fatalf("expected error")
	}
}
