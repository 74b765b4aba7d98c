package drivers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalFSDriverRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "localfs-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	driver, err := NewLocalFSDriver(tempDir, "/documents")
	if err != nil {
		t.Fatalf("failed to create driver: %v", err)
	}

	ctx := context.Background()
	key := "missions/42/abcdef123456.pdf"
	content := []byte("waybill content")

	if err := driver.Save(ctx, key, bytes.NewReader(content), "application/pdf"); err != nil {
		t.Errorf("Save failed: %v", err)
	}

	// The key's directory structure is preserved under the base dir.
	fullPath := filepath.Join(tempDir, "missions", "42", "abcdef123456.pdf")
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		t.Errorf("file not found at %s", fullPath)
	}

	reader, contentType, err := driver.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer reader.Close()

	if contentType != "application/pdf" {
		t.Errorf("expected content type application/pdf, got %s", contentType)
	}

	url, err := driver.GenerateURL(ctx, key, 0)
	if err != nil {
		t.Errorf("GenerateURL failed: %v", err)
	}
	if !strings.HasSuffix(url, key) || !strings.Contains(url, "/documents") {
		t.Errorf("unexpected URL: %s", url)
	}

	if err := driver.Delete(ctx, key); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
		t.Error("file still exists after deletion")
	}
}

func TestLocalFSDriverRejectsTraversal(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "localfs-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	driver, err := NewLocalFSDriver(tempDir, "")
	if err != nil {
		t.Fatalf("failed to create driver: %v", err)
	}

	ctx := context.Background()
	for _, key := range []string{"../escape", "missions/../../etc/passwd", "/absolute"} {
		if err := driver.Save(ctx, key, bytes.NewReader([]byte("x")), "text/plain"); err == nil {
			t.Errorf("expected Save to reject key %q", key)
		}
	}
}
