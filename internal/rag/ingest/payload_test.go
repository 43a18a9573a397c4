package ingest

import (
	"testing"
	"time"
)

func TestBuildPayload_Defaults(t *testing.T) {
	payload := BuildPayload("chunk text", "/uploads/deep/dir/manual.pdf", 2, "PDF", nil)

	if payload["text"] != "chunk text" {
		t.Errorf("text = %v", payload["text"])
	}
	if payload["source"] != "manual.pdf" {
		t.Errorf("source must be the base name, got %v", payload["source"])
	}
	if payload["chunk_index"] != 2 {
		t.Errorf("chunk_index = %v", payload["chunk_index"])
	}
	if payload["type"] != "PDF" {
		t.Errorf("type = %v", payload["type"])
	}

	createdAt, ok := payload["created_at"].(string)
	if !ok {
		t.Fatalf("created_at missing: %v", payload["created_at"])
	}
	if _, err := time.Parse(time.RFC3339, createdAt); err != nil {
		t.Errorf("created_at not RFC3339: %v", err)
	}
}

func TestBuildPayload_ExtraMetadataMergesLast(t *testing.T) {
	extra := map[string]any{
		"page_number": 7,
		"type":        "OVERRIDDEN",
	}
	payload := BuildPayload("x", "doc.txt", 0, "TXT", extra)

	if payload["page_number"] != 7 {
		t.Errorf("extra metadata missing: %v", payload["page_number"])
	}
	if payload["type"] != "OVERRIDDEN" {
		t.Errorf("extra metadata must override defaults, got %v", payload["type"])
	}
}

func TestInferDocType(t *testing.T) {
	tests := []struct {
		explicit string
		filename string
		want     string
	}{
		{"TXT", "whatever.pdf", "TXT"},
		{"", "manual.pdf", "PDF"},
		{"", "notes.txt", "TXT"},
		{"", "no_extension", "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := InferDocType(tt.explicit, tt.filename); got != tt.want {
			t.Errorf("InferDocType(%q, %q) = %q; want %q", tt.explicit, tt.filename, got, tt.want)
		}
	}
}
