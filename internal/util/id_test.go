package util

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := NewID("memo")
	if !strings.HasPrefix(id, "memo_") {
		t.Fatalf("missing prefix: %s", id)
	}
	if len(id) != len("memo_")+32 {
		t.Fatalf("unexpected length: %s", id)
	}

	bare := NewID("")
	if strings.Contains(bare, "_") || len(bare) != 32 {
		t.Fatalf("unexpected bare id: %s", bare)
	}

	if NewID("memo") == NewID("memo") {
		t.Fatal("ids should not repeat")
	}
}
