// Package access resolves what level of access a user holds on a memo.
package access

import (
	"context"
	"database/sql"
	"errors"
)

type Level string

const (
	LevelOwner  Level = "owner"
	LevelShared Level = "shared"
	LevelNone   Level = "none"
)

// CanRead reports whether the level grants read access to the memo.
func (l Level) CanRead() bool {
	return l == LevelOwner || l == LevelShared
}

// CanWrite reports whether the level grants write access. Owners and accepted
// share targets both write; deletion stays owner-only and is enforced at the
// storage layer, not here.
func (l Level) CanWrite() bool {
	return l == LevelOwner || l == LevelShared
}

// MemoAccessStore is the slice of storage the resolver needs.
type MemoAccessStore interface {
	GetMemoOwnerID(ctx context.Context, memoID string) (string, error)
	HasAcceptedShare(ctx context.Context, memoID, userID string) (bool, error)
}

type Resolver struct {
	store MemoAccessStore
}

func NewResolver(store MemoAccessStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve is a pure predicate over store state. It is re-evaluated on every
// request; levels are never cached, so a revoked or deleted memo is noticed
// the next time the user asks.
func (r *Resolver) Resolve(ctx context.Context, userID, memoID string) (Level, error) {
	ownerID, err := r.store.GetMemoOwnerID(ctx, memoID)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelNone, nil
	}
	if err != nil {
		return LevelNone, err
	}
	if ownerID == userID {
		return LevelOwner, nil
	}
	shared, err := r.store.HasAcceptedShare(ctx, memoID, userID)
	if err != nil {
		return LevelNone, err
	}
	if shared {
		return LevelShared, nil
	}
	return LevelNone, nil
}
