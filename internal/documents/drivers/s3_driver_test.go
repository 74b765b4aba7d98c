package drivers

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// testS3Client never performs a request in these tests.
func testS3Client() *s3.Client {
	return s3.New(s3.Options{Region: "us-east-1"})
}

func TestS3DriverObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{"no prefix", "", "missions/42/doc.pdf", "missions/42/doc.pdf"},
		{"prefix prepended", "relief", "missions/42/doc.pdf", "relief/missions/42/doc.pdf"},
		{"prefix slashes trimmed", "/relief/docs/", "missions/42/doc.pdf", "relief/docs/missions/42/doc.pdf"},
		{"leading slash on key trimmed", "relief", "/missions/42/doc.pdf", "relief/missions/42/doc.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := NewS3Driver(testS3Client(), "bucket", tt.prefix, "")
			if got := driver.objectKey(tt.key); got != tt.want {
				t.Errorf("objectKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestS3DriverPublicURLIncludesPrefix(t *testing.T) {
	driver := NewS3Driver(testS3Client(), "bucket", "relief", "https://cdn.example.org/")

	url, err := driver.GenerateURL(context.Background(), "missions/42/doc.pdf", 0)
	if err != nil {
		t.Fatalf("GenerateURL failed: %v", err)
	}

	want := "https://cdn.example.org/relief/missions/42/doc.pdf"
	if url != want {
		t.Errorf("GenerateURL = %q, want %q", url, want)
	}
}
