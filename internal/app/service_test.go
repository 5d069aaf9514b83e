package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"memopad/api/internal/access"
	"memopad/api/internal/authpw"
	"memopad/api/internal/config"
	"memopad/api/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
)

type fakeStore struct {
	getUserByIDFn             func(context.Context, string) (store.User, error)
	getUserByUsernameFn       func(context.Context, string) (store.User, error)
	insertMemoFn              func(context.Context, store.Memo) (store.Memo, error)
	updateMemoFn              func(context.Context, string, string, string) (store.Memo, error)
	getMemoFn                 func(context.Context, string) (store.Memo, error)
	getMemoOwnerIDFn          func(context.Context, string) (string, error)
	hasAcceptedShareFn        func(context.Context, string, string) (bool, error)
	deleteMemoOwnedFn         func(context.Context, string, string) (bool, error)
	deleteMemosOwnedFn        func(context.Context, string, []string) (int, error)
	listAccessibleMemosFn     func(context.Context, string) ([]store.AccessibleMemo, error)
	insertShareFn             func(context.Context, store.MemoShare) error
	getShareFn                func(context.Context, string) (store.MemoShare, error)
	setShareStatusFn          func(context.Context, string, string) (bool, error)
	listShareRequestsFn       func(context.Context, string) ([]store.ShareRequest, error)
	insertNotificationFn      func(context.Context, store.Notification) error
	listUnreadNotificationsFn func(context.Context, string) ([]store.Notification, error)
	markNotificationReadFn    func(context.Context, string, string) (bool, error)
	insertMemoUpdateFn        func(context.Context, store.MemoUpdate) error
	listMemoUpdatesFn         func(context.Context, string, int) ([]store.MemoUpdate, error)
	getKnowledgeBaseFn        func(context.Context, string, string) (store.KnowledgeBase, error)
	addMemoToKBFn             func(context.Context, string, string, string, string) (bool, error)
}

func (f *fakeStore) GetUserByID(ctx context.Context, userID string) (store.User, error) {
	if f.getUserByIDFn != nil {
		return f.getUserByIDFn(ctx, userID)
	}
	return store.User{ID: userID, Username: "user-" + userID}, nil
}
func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (store.User, error) {
	if f.getUserByUsernameFn != nil {
		return f.getUserByUsernameFn(ctx, username)
	}
	return store.User{}, sql.ErrNoRows
}
func (f *fakeStore) GetUserByEmail(context.Context, string) (store.User, error) {
	return store.User{}, sql.ErrNoRows
}
func (f *fakeStore) CreateUser(context.Context, store.User) error { return nil }
func (f *fakeStore) InsertMemo(ctx context.Context, memo store.Memo) (store.Memo, error) {
	if f.insertMemoFn != nil {
		return f.insertMemoFn(ctx, memo)
	}
	memo.CreatedAt = time.Now()
	memo.UpdatedAt = memo.CreatedAt
	return memo, nil
}
func (f *fakeStore) UpdateMemo(ctx context.Context, memoID, title, content string) (store.Memo, error) {
	if f.updateMemoFn != nil {
		return f.updateMemoFn(ctx, memoID, title, content)
	}
	return store.Memo{}, sql.ErrNoRows
}
func (f *fakeStore) GetMemo(ctx context.Context, memoID string) (store.Memo, error) {
	if f.getMemoFn != nil {
		return f.getMemoFn(ctx, memoID)
	}
	return store.Memo{}, sql.ErrNoRows
}
func (f *fakeStore) GetMemoOwnerID(ctx context.Context, memoID string) (string, error) {
	if f.getMemoOwnerIDFn != nil {
		return f.getMemoOwnerIDFn(ctx, memoID)
	}
	return "", sql.ErrNoRows
}
func (f *fakeStore) HasAcceptedShare(ctx context.Context, memoID, userID string) (bool, error) {
	if f.hasAcceptedShareFn != nil {
		return f.hasAcceptedShareFn(ctx, memoID, userID)
	}
	return false, nil
}
func (f *fakeStore) SharedUserIDs(context.Context, string) ([]string, error) { return nil, nil }
func (f *fakeStore) DeleteMemoOwned(ctx context.Context, ownerID, memoID string) (bool, error) {
	if f.deleteMemoOwnedFn != nil {
		return f.deleteMemoOwnedFn(ctx, ownerID, memoID)
	}
	return false, nil
}
func (f *fakeStore) DeleteMemosOwned(ctx context.Context, ownerID string, memoIDs []string) (int, error) {
	if f.deleteMemosOwnedFn != nil {
		return f.deleteMemosOwnedFn(ctx, ownerID, memoIDs)
	}
	return 0, nil
}
func (f *fakeStore) ListAccessibleMemos(ctx context.Context, userID string) ([]store.AccessibleMemo, error) {
	if f.listAccessibleMemosFn != nil {
		return f.listAccessibleMemosFn(ctx, userID)
	}
	return nil, nil
}
func (f *fakeStore) InsertShare(ctx context.Context, share store.MemoShare) error {
	if f.insertShareFn != nil {
		return f.insertShareFn(ctx, share)
	}
	return nil
}
func (f *fakeStore) GetShare(ctx context.Context, shareID string) (store.MemoShare, error) {
	if f.getShareFn != nil {
		return f.getShareFn(ctx, shareID)
	}
	return store.MemoShare{}, sql.ErrNoRows
}
func (f *fakeStore) SetShareStatus(ctx context.Context, shareID, status string) (bool, error) {
	if f.setShareStatusFn != nil {
		return f.setShareStatusFn(ctx, shareID, status)
	}
	return false, nil
}
func (f *fakeStore) ListShareRequests(ctx context.Context, userID string) ([]store.ShareRequest, error) {
	if f.listShareRequestsFn != nil {
		return f.listShareRequestsFn(ctx, userID)
	}
	return nil, nil
}
func (f *fakeStore) InsertNotification(ctx context.Context, notification store.Notification) error {
	if f.insertNotificationFn != nil {
		return f.insertNotificationFn(ctx, notification)
	}
	return nil
}
func (f *fakeStore) ListUnreadNotifications(ctx context.Context, userID string) ([]store.Notification, error) {
	if f.listUnreadNotificationsFn != nil {
		return f.listUnreadNotificationsFn(ctx, userID)
	}
	return nil, nil
}
func (f *fakeStore) MarkNotificationRead(ctx context.Context, userID, notificationID string) (bool, error) {
	if f.markNotificationReadFn != nil {
		return f.markNotificationReadFn(ctx, userID, notificationID)
	}
	return false, nil
}
func (f *fakeStore) InsertMemoUpdate(ctx context.Context, update store.MemoUpdate) error {
	if f.insertMemoUpdateFn != nil {
		return f.insertMemoUpdateFn(ctx, update)
	}
	return nil
}
func (f *fakeStore) ListMemoUpdates(ctx context.Context, memoID string, limit int) ([]store.MemoUpdate, error) {
	if f.listMemoUpdatesFn != nil {
		return f.listMemoUpdatesFn(ctx, memoID, limit)
	}
	return nil, nil
}
func (f *fakeStore) InsertKnowledgeBase(ctx context.Context, kb store.KnowledgeBase) (store.KnowledgeBase, error) {
	return kb, nil
}
func (f *fakeStore) UpdateKnowledgeBase(context.Context, string, string, string, string) (bool, error) {
	return false, nil
}
func (f *fakeStore) DeleteKnowledgeBase(context.Context, string, string) (bool, error) {
	return false, nil
}
func (f *fakeStore) ListKnowledgeBases(context.Context, string) ([]store.KnowledgeBase, error) {
	return nil, nil
}
func (f *fakeStore) GetKnowledgeBase(ctx context.Context, userID, kbID string) (store.KnowledgeBase, error) {
	if f.getKnowledgeBaseFn != nil {
		return f.getKnowledgeBaseFn(ctx, userID, kbID)
	}
	return store.KnowledgeBase{}, sql.ErrNoRows
}
func (f *fakeStore) AddMemoToKnowledgeBase(ctx context.Context, linkID, userID, kbID, memoID string) (bool, error) {
	if f.addMemoToKBFn != nil {
		return f.addMemoToKBFn(ctx, linkID, userID, kbID, memoID)
	}
	return false, nil
}
func (f *fakeStore) RemoveMemoFromKnowledgeBase(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (f *fakeStore) ListKnowledgeBaseMemos(context.Context, string, string) ([]store.AccessibleMemo, error) {
	return nil, nil
}
func (f *fakeStore) ListMemoKnowledgeBases(context.Context, string, string) ([]store.KnowledgeBase, error) {
	return nil, nil
}
func (f *fakeStore) SaveRefreshSession(context.Context, string, string, time.Time) error { return nil }
func (f *fakeStore) LookupRefreshSession(context.Context, string) (store.User, error) {
	return store.User{}, sql.ErrNoRows
}
func (f *fakeStore) RevokeRefreshSession(context.Context, string) error          { return nil }
func (f *fakeStore) RevokeAccessToken(context.Context, string, time.Time) error  { return nil }
func (f *fakeStore) IsAccessTokenRevoked(context.Context, string) (bool, error)  { return false, nil }
func (f *fakeStore) Ping(context.Context) error                                  { return nil }

func newTestService(fake *fakeStore) *Service {
	return &Service{
		cfg: config.Config{
			TokenSecret: "test-secret",
			AccessTTL:   time.Hour,
			RefreshTTL:  24 * time.Hour,
		},
		store:    fake,
		sessions: fake,
		resolver: access.NewResolver(fake),
		authpw:   authpw.NewService(fake),
	}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "memo_shares_memo_id_shared_with_key"}
}

func domainStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Status, domainErr.Code
}

func TestSaveMemoCreatesForOwner(t *testing.T) {
	var inserted store.Memo
	fake := &fakeStore{
		insertMemoFn: func(_ context.Context, memo store.Memo) (store.Memo, error) {
			inserted = memo
			return memo, nil
		},
	}
	svc := newTestService(fake)

	payload, err := svc.SaveMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "", "Recipe", "Flour, water")
	if err != nil {
		t.Fatalf("SaveMemo() error = %v", err)
	}
	if inserted.OwnerID != "usr_a" || inserted.Title != "Recipe" {
		t.Fatalf("unexpected inserted memo: %+v", inserted)
	}
	if payload["accessType"] != "owner" {
		t.Fatalf("accessType = %v, want owner", payload["accessType"])
	}
}

func TestSaveMemoRequiresTitle(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.SaveMemo(context.Background(), Session{UserID: "usr_a"}, "", "   ", "body")
	if status, code := domainStatus(t, err); status != http.StatusUnprocessableEntity || code != "VALIDATION_ERROR" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestSaveMemoSharedEditAppendsSnapshot(t *testing.T) {
	var snapshot *store.MemoUpdate
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_owner", nil },
		hasAcceptedShareFn: func(_ context.Context, _, userID string) (bool, error) {
			return userID == "usr_b", nil
		},
		updateMemoFn: func(_ context.Context, memoID, title, content string) (store.Memo, error) {
			return store.Memo{ID: memoID, OwnerID: "usr_owner", Title: title, Content: content}, nil
		},
		insertMemoUpdateFn: func(_ context.Context, update store.MemoUpdate) error {
			snapshot = &update
			return nil
		},
	}
	svc := newTestService(fake)

	payload, err := svc.SaveMemo(context.Background(), Session{UserID: "usr_b", Username: "bob"}, "memo_1", "Recipe v2", "More flour")
	if err != nil {
		t.Fatalf("SaveMemo() error = %v", err)
	}
	if snapshot == nil {
		t.Fatal("expected a history snapshot for a shared-access edit")
	}
	if snapshot.UpdatedBy != "usr_b" || snapshot.Title != "Recipe v2" || snapshot.Content != "More flour" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if payload["accessType"] != "shared" {
		t.Fatalf("accessType = %v, want shared", payload["accessType"])
	}
}

func TestSaveMemoOwnerEditSkipsSnapshot(t *testing.T) {
	snapshots := 0
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		updateMemoFn: func(_ context.Context, memoID, title, content string) (store.Memo, error) {
			return store.Memo{ID: memoID, OwnerID: "usr_a", Title: title, Content: content}, nil
		},
		insertMemoUpdateFn: func(context.Context, store.MemoUpdate) error {
			snapshots++
			return nil
		},
	}
	svc := newTestService(fake)

	if _, err := svc.SaveMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "Recipe", "Flour"); err != nil {
		t.Fatalf("SaveMemo() error = %v", err)
	}
	if snapshots != 0 {
		t.Fatalf("owner edits must not append history, got %d snapshots", snapshots)
	}
}

func TestSaveMemoWithoutAccess(t *testing.T) {
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_owner", nil },
	}
	svc := newTestService(fake)

	_, err := svc.SaveMemo(context.Background(), Session{UserID: "usr_x"}, "memo_1", "Hijack", "nope")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestDeleteMemoIsOwnerOnly(t *testing.T) {
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_owner", nil },
		hasAcceptedShareFn: func(_ context.Context, _, userID string) (bool, error) {
			return userID == "usr_b", nil
		},
	}
	svc := newTestService(fake)

	err := svc.DeleteMemo(context.Background(), Session{UserID: "usr_b"}, "memo_1")
	if status, code := domainStatus(t, err); status != http.StatusForbidden || code != "FORBIDDEN" {
		t.Fatalf("shared user delete: got %d %s", status, code)
	}

	err = svc.DeleteMemo(context.Background(), Session{UserID: "usr_x"}, "memo_1")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("stranger delete: got %d %s", status, code)
	}
}

func TestDeleteMemoByOwner(t *testing.T) {
	deleted := false
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		deleteMemoOwnedFn: func(_ context.Context, ownerID, memoID string) (bool, error) {
			deleted = ownerID == "usr_a" && memoID == "memo_1"
			return true, nil
		},
	}
	svc := newTestService(fake)

	if err := svc.DeleteMemo(context.Background(), Session{UserID: "usr_a"}, "memo_1"); err != nil {
		t.Fatalf("DeleteMemo() error = %v", err)
	}
	if !deleted {
		t.Fatal("expected owner-scoped delete")
	}
}

func TestShareMemoRejectsSelfShare(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.ShareMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "alice")
	if status, code := domainStatus(t, err); status != http.StatusUnprocessableEntity || code != "VALIDATION_ERROR" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestShareMemoUnknownTarget(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.ShareMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "ghost")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestShareMemoRequiresOwnership(t *testing.T) {
	fake := &fakeStore{
		getUserByUsernameFn: func(_ context.Context, username string) (store.User, error) {
			return store.User{ID: "usr_b", Username: username}, nil
		},
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_other", nil },
	}
	svc := newTestService(fake)

	_, err := svc.ShareMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "bob")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestShareMemoDuplicateIsConflict(t *testing.T) {
	fake := &fakeStore{
		getUserByUsernameFn: func(_ context.Context, username string) (store.User, error) {
			return store.User{ID: "usr_b", Username: username}, nil
		},
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		insertShareFn: func(context.Context, store.MemoShare) error {
			return uniqueViolation()
		},
	}
	svc := newTestService(fake)

	_, err := svc.ShareMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "bob")
	if status, code := domainStatus(t, err); status != http.StatusConflict || code != "CONFLICT" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestShareMemoCreatesPendingShareAndNotification(t *testing.T) {
	var share store.MemoShare
	var notification store.Notification
	fake := &fakeStore{
		getUserByUsernameFn: func(_ context.Context, username string) (store.User, error) {
			return store.User{ID: "usr_b", Username: username}, nil
		},
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		getMemoFn: func(_ context.Context, memoID string) (store.Memo, error) {
			return store.Memo{ID: memoID, OwnerID: "usr_a", Title: "Recipe"}, nil
		},
		insertShareFn: func(_ context.Context, sh store.MemoShare) error {
			share = sh
			return nil
		},
		insertNotificationFn: func(_ context.Context, n store.Notification) error {
			notification = n
			return nil
		},
	}
	svc := newTestService(fake)

	payload, err := svc.ShareMemo(context.Background(), Session{UserID: "usr_a", Username: "alice"}, "memo_1", "bob")
	if err != nil {
		t.Fatalf("ShareMemo() error = %v", err)
	}
	if share.Status != "pending" || share.SharedBy != "usr_a" || share.SharedWith != "usr_b" {
		t.Fatalf("unexpected share: %+v", share)
	}
	if notification.UserID != "usr_b" || notification.Type != "share_request" || notification.ShareID != share.ID {
		t.Fatalf("unexpected notification: %+v", notification)
	}
	if payload["status"] != "pending" {
		t.Fatalf("payload status = %v, want pending", payload["status"])
	}
}

func TestRespondToShareRequestValidatesAction(t *testing.T) {
	svc := newTestService(&fakeStore{})
	_, err := svc.RespondToShareRequest(context.Background(), Session{UserID: "usr_b"}, "shr_1", "maybe")
	if status, code := domainStatus(t, err); status != http.StatusUnprocessableEntity || code != "VALIDATION_ERROR" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestRespondToShareRequestRecipientOnly(t *testing.T) {
	fake := &fakeStore{
		getShareFn: func(_ context.Context, shareID string) (store.MemoShare, error) {
			return store.MemoShare{ID: shareID, MemoID: "memo_1", SharedWith: "usr_b", Status: "pending"}, nil
		},
	}
	svc := newTestService(fake)

	_, err := svc.RespondToShareRequest(context.Background(), Session{UserID: "usr_intruder"}, "shr_1", "accept")
	if status, code := domainStatus(t, err); status != http.StatusForbidden || code != "FORBIDDEN" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestRespondToShareRequestIsTerminal(t *testing.T) {
	fake := &fakeStore{
		getShareFn: func(_ context.Context, shareID string) (store.MemoShare, error) {
			return store.MemoShare{ID: shareID, MemoID: "memo_1", SharedWith: "usr_b", Status: "accepted"}, nil
		},
		setShareStatusFn: func(context.Context, string, string) (bool, error) {
			// Guarded update touches nothing once the share left pending.
			return false, nil
		},
	}
	svc := newTestService(fake)

	_, err := svc.RespondToShareRequest(context.Background(), Session{UserID: "usr_b"}, "shr_1", "reject")
	if status, code := domainStatus(t, err); status != http.StatusConflict || code != "CONFLICT" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestRespondToShareRequestAccept(t *testing.T) {
	var gotStatus string
	fake := &fakeStore{
		getShareFn: func(_ context.Context, shareID string) (store.MemoShare, error) {
			return store.MemoShare{ID: shareID, MemoID: "memo_1", SharedWith: "usr_b", Status: "pending"}, nil
		},
		setShareStatusFn: func(_ context.Context, _, status string) (bool, error) {
			gotStatus = status
			return true, nil
		},
	}
	svc := newTestService(fake)

	payload, err := svc.RespondToShareRequest(context.Background(), Session{UserID: "usr_b"}, "shr_1", "accept")
	if err != nil {
		t.Fatalf("RespondToShareRequest() error = %v", err)
	}
	if gotStatus != "accepted" || payload["status"] != "accepted" {
		t.Fatalf("status = %s / %v, want accepted", gotStatus, payload["status"])
	}
}

func TestMemoUpdatesRechecksAccess(t *testing.T) {
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_owner", nil },
	}
	svc := newTestService(fake)

	_, err := svc.MemoUpdates(context.Background(), Session{UserID: "usr_x"}, "memo_1")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestMemoUpdatesCapsAtTen(t *testing.T) {
	var gotLimit int
	fake := &fakeStore{
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		listMemoUpdatesFn: func(_ context.Context, _ string, limit int) ([]store.MemoUpdate, error) {
			gotLimit = limit
			return []store.MemoUpdate{{ID: "upd_1", MemoID: "memo_1", UpdatedBy: "usr_b", EditorUsername: "bob"}}, nil
		},
	}
	svc := newTestService(fake)

	items, err := svc.MemoUpdates(context.Background(), Session{UserID: "usr_a"}, "memo_1")
	if err != nil {
		t.Fatalf("MemoUpdates() error = %v", err)
	}
	if gotLimit != 10 {
		t.Fatalf("limit = %d, want 10", gotLimit)
	}
	if len(items) != 1 || items[0]["editorUsername"] != "bob" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListMemosAnnotatesAccess(t *testing.T) {
	fake := &fakeStore{
		listAccessibleMemosFn: func(context.Context, string) ([]store.AccessibleMemo, error) {
			return []store.AccessibleMemo{
				{Memo: store.Memo{ID: "memo_1", OwnerID: "usr_a"}, AccessType: "owner", OwnerUsername: "alice"},
				{Memo: store.Memo{ID: "memo_2", OwnerID: "usr_z"}, AccessType: "shared", OwnerUsername: "zoe"},
			}, nil
		},
	}
	svc := newTestService(fake)

	items, err := svc.ListMemos(context.Background(), "usr_a")
	if err != nil {
		t.Fatalf("ListMemos() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d memos, want 2", len(items))
	}
	if items[0]["accessType"] != "owner" || items[1]["accessType"] != "shared" {
		t.Fatalf("unexpected access annotations: %+v", items)
	}
	if items[1]["ownerUsername"] != "zoe" {
		t.Fatalf("ownerUsername = %v, want zoe", items[1]["ownerUsername"])
	}
}

func TestAddMemoToKnowledgeBaseChecksMemoAccess(t *testing.T) {
	fake := &fakeStore{
		getKnowledgeBaseFn: func(_ context.Context, userID, kbID string) (store.KnowledgeBase, error) {
			return store.KnowledgeBase{ID: kbID, UserID: userID}, nil
		},
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_other", nil },
	}
	svc := newTestService(fake)

	err := svc.AddMemoToKnowledgeBase(context.Background(), Session{UserID: "usr_a"}, "kb_1", "memo_1")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}

func TestMarkNotificationReadScopedToUser(t *testing.T) {
	fake := &fakeStore{
		markNotificationReadFn: func(_ context.Context, userID, notificationID string) (bool, error) {
			return userID == "usr_b" && notificationID == "ntf_1", nil
		},
	}
	svc := newTestService(fake)

	if err := svc.MarkNotificationRead(context.Background(), Session{UserID: "usr_b"}, "ntf_1"); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}
	err := svc.MarkNotificationRead(context.Background(), Session{UserID: "usr_a"}, "ntf_1")
	if status, code := domainStatus(t, err); status != http.StatusNotFound || code != "NOT_FOUND" {
		t.Fatalf("got %d %s", status, code)
	}
}
