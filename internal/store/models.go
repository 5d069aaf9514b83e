package store

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Memo struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessibleMemo is a memo row joined with how the querying user reaches it.
type AccessibleMemo struct {
	Memo
	AccessType    string // "owner" or "shared"
	OwnerUsername string
}

type MemoShare struct {
	ID         string
	MemoID     string
	SharedBy   string
	SharedWith string
	Status     string // pending, accepted, rejected
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ShareRequest is a pending share annotated for the target user's inbox.
type ShareRequest struct {
	MemoShare
	MemoTitle      string
	SharerUsername string
}

type Notification struct {
	ID        string
	UserID    string
	ShareID   string
	Type      string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// MemoUpdate is one append-only history snapshot of a shared-memo edit.
type MemoUpdate struct {
	ID             string
	MemoID         string
	UpdatedBy      string
	EditorUsername string
	Title          string
	Content        string
	CreatedAt      time.Time
}

type KnowledgeBase struct {
	ID          string
	UserID      string
	Name        string
	Description string
	MemoCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
