package access

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

type fakeAccessStore struct {
	ownerID   string
	ownerErr  error
	shared    bool
	sharedErr error
}

func (f *fakeAccessStore) GetMemoOwnerID(context.Context, string) (string, error) {
	return f.ownerID, f.ownerErr
}

func (f *fakeAccessStore) HasAcceptedShare(context.Context, string, string) (bool, error) {
	return f.shared, f.sharedErr
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		store fakeAccessStore
		want  Level
	}{
		{name: "owner", store: fakeAccessStore{ownerID: "usr_1"}, want: LevelOwner},
		{name: "accepted share", store: fakeAccessStore{ownerID: "usr_2", shared: true}, want: LevelShared},
		{name: "no relationship", store: fakeAccessStore{ownerID: "usr_2"}, want: LevelNone},
		{name: "memo missing", store: fakeAccessStore{ownerErr: sql.ErrNoRows}, want: LevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(&tt.store)
			level, err := resolver.Resolve(context.Background(), "usr_1", "memo_1")
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if level != tt.want {
				t.Fatalf("Resolve() = %q, want %q", level, tt.want)
			}
		})
	}
}

func TestResolvePropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	resolver := NewResolver(&fakeAccessStore{ownerErr: boom})
	if _, err := resolver.Resolve(context.Background(), "usr_1", "memo_1"); !errors.Is(err, boom) {
		t.Fatalf("Resolve() error = %v, want %v", err, boom)
	}
}

func TestLevelPermissions(t *testing.T) {
	if !LevelOwner.CanRead() || !LevelOwner.CanWrite() {
		t.Error("owner should read and write")
	}
	if !LevelShared.CanRead() || !LevelShared.CanWrite() {
		t.Error("shared should read and write")
	}
	if LevelNone.CanRead() || LevelNone.CanWrite() {
		t.Error("none should neither read nor write")
	}
}
