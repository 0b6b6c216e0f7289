package db

import (
	"context"
	"testing"
)

func TestConnect_InvalidDSN(t *testing.T) {
	if _, err := Connect(context.Background(), "postgres://%zz", nil); err == nil {
		t.Fatalf("expected error for malformed dsn")
	}
}
