package utils

import (
	"strings"
	"testing"
)

func TestGenerateID_Deterministic(t *testing.T) {
	a := GenerateID("manual.pdf_0")
	b := GenerateID("manual.pdf_0")
	if a != b {
		t.Errorf("same input produced different ids: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(a))
	}
}

func TestGenerateID_EmptyString(t *testing.T) {
	// md5 of the empty string is a fixed value
	const emptyDigest = "d41d8cd98f00b204e9800998ecf8427e"
	if got := GenerateID(""); got != emptyDigest {
		t.Errorf("GenerateID(\"\") = %s; want %s", got, emptyDigest)
	}
}

func TestDigestToPointID(t *testing.T) {
	id := DigestToPointID("d41d8cd98f00b204e9800998ecf8427e")
	want := "d41d8cd9-8f00-b204-e980-0998ecf8427e"
	if id != want {
		t.Errorf("got %s, want %s", id, want)
	}
	// non-digest input passes through untouched
	if got := DigestToPointID("short"); got != "short" {
		t.Errorf("got %s, want short", got)
	}
}

func TestDeterministicPointID_Branches(t *testing.T) {
	withSource := map[string]any{"source": "manual.pdf", "chunk_index": 3, "text": "hello"}
	a := DeterministicPointID(withSource)
	b := DeterministicPointID(withSource)
	if a != b {
		t.Errorf("source+index branch not deterministic: %s vs %s", a, b)
	}
	if a != DigestToPointID(GenerateID("manual.pdf_3")) {
		t.Errorf("source+index branch must hash source_index, got %s", a)
	}

	textOnly := map[string]any{"text": "hello"}
	if got := DeterministicPointID(textOnly); got != DigestToPointID(GenerateID("hello")) {
		t.Errorf("text branch must hash the chunk text, got %s", got)
	}

	// neither source nor text - random uuid, two calls must differ
	empty := map[string]any{}
	if DeterministicPointID(empty) == DeterministicPointID(empty) {
		t.Error("fallback branch should be random")
	}
	if !strings.Contains(DeterministicPointID(empty), "-") {
		t.Error("fallback branch should be uuid shaped")
	}
}
