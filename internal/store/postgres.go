package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint error.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users WHERE id=$1
	`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users WHERE username=$1
	`, username).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM users WHERE email=$1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) InsertMemo(ctx context.Context, memo Memo) (Memo, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO memos (id, owner_id, title, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, memo.ID, memo.OwnerID, memo.Title, memo.Content).Scan(&memo.CreatedAt, &memo.UpdatedAt)
	if err != nil {
		return Memo{}, fmt.Errorf("insert memo: %w", err)
	}
	return memo, nil
}

// UpdateMemo overwrites title and content, last write wins. Returns
// sql.ErrNoRows when the memo is gone.
func (s *PostgresStore) UpdateMemo(ctx context.Context, memoID, title, content string) (Memo, error) {
	var memo Memo
	err := s.db.QueryRowContext(ctx, `
		UPDATE memos
		SET title=$2, content=$3, updated_at=NOW()
		WHERE id=$1
		RETURNING id, owner_id, title, content, created_at, updated_at
	`, memoID, title, content).Scan(&memo.ID, &memo.OwnerID, &memo.Title, &memo.Content, &memo.CreatedAt, &memo.UpdatedAt)
	if err != nil {
		return Memo{}, err
	}
	return memo, nil
}

func (s *PostgresStore) GetMemo(ctx context.Context, memoID string) (Memo, error) {
	var memo Memo
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, content, created_at, updated_at
		FROM memos WHERE id=$1
	`, memoID).Scan(&memo.ID, &memo.OwnerID, &memo.Title, &memo.Content, &memo.CreatedAt, &memo.UpdatedAt)
	if err != nil {
		return Memo{}, err
	}
	return memo, nil
}

func (s *PostgresStore) GetMemoOwnerID(ctx context.Context, memoID string) (string, error) {
	var ownerID string
	err := s.db.QueryRowContext(ctx, `SELECT owner_id FROM memos WHERE id=$1`, memoID).Scan(&ownerID)
	if err != nil {
		return "", err
	}
	return ownerID, nil
}

func (s *PostgresStore) HasAcceptedShare(ctx context.Context, memoID, userID string) (bool, error) {
	var shared bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM memo_shares
			WHERE memo_id=$1 AND shared_with=$2 AND status='accepted'
		)
	`, memoID, userID).Scan(&shared)
	if err != nil {
		return false, fmt.Errorf("check accepted share: %w", err)
	}
	return shared, nil
}

// SharedUserIDs returns the users holding accepted shares of a memo.
func (s *PostgresStore) SharedUserIDs(ctx context.Context, memoID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT shared_with FROM memo_shares
		WHERE memo_id=$1 AND status='accepted'
		ORDER BY shared_with ASC
	`, memoID)
	if err != nil {
		return nil, fmt.Errorf("list shared users: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan shared user: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shared users: %w", err)
	}
	return ids, nil
}

// DeleteMemoOwned deletes only when ownerID actually owns the memo; cascades
// remove shares, history, and knowledge-base links.
func (s *PostgresStore) DeleteMemoOwned(ctx context.Context, ownerID, memoID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM memos WHERE id=$1 AND owner_id=$2`, memoID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete memo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete memo rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) DeleteMemosOwned(ctx context.Context, ownerID string, memoIDs []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch delete: %w", err)
	}
	deleted := 0
	for _, memoID := range memoIDs {
		result, err := tx.ExecContext(ctx, `DELETE FROM memos WHERE id=$1 AND owner_id=$2`, memoID, ownerID)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("batch delete memo %s: %w", memoID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("batch delete rows: %w", err)
		}
		deleted += int(affected)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch delete: %w", err)
	}
	return deleted, nil
}

func (s *PostgresStore) ListAccessibleMemos(ctx context.Context, userID string) ([]AccessibleMemo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.owner_id, m.title, m.content, m.created_at, m.updated_at,
			CASE WHEN m.owner_id=$1 THEN 'owner' ELSE 'shared' END AS access_type,
			u.username
		FROM memos m
		JOIN users u ON u.id = m.owner_id
		WHERE m.owner_id=$1
			OR EXISTS (
				SELECT 1 FROM memo_shares s
				WHERE s.memo_id=m.id AND s.shared_with=$1 AND s.status='accepted'
			)
		ORDER BY m.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accessible memos: %w", err)
	}
	defer rows.Close()

	items := make([]AccessibleMemo, 0)
	for rows.Next() {
		var item AccessibleMemo
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Title,
			&item.Content,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.AccessType,
			&item.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("scan accessible memo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accessible memos: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertShare(ctx context.Context, share MemoShare) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memo_shares (id, memo_id, shared_by, shared_with, status)
		VALUES ($1, $2, $3, $4, 'pending')
	`, share.ID, share.MemoID, share.SharedBy, share.SharedWith)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetShare(ctx context.Context, shareID string) (MemoShare, error) {
	var share MemoShare
	err := s.db.QueryRowContext(ctx, `
		SELECT id, memo_id, shared_by, shared_with, status, created_at, updated_at
		FROM memo_shares WHERE id=$1
	`, shareID).Scan(&share.ID, &share.MemoID, &share.SharedBy, &share.SharedWith, &share.Status, &share.CreatedAt, &share.UpdatedAt)
	if err != nil {
		return MemoShare{}, err
	}
	return share, nil
}

// SetShareStatus moves a pending share to accepted or rejected. Terminal
// states never change again: a resolved row is left untouched and false is
// returned.
func (s *PostgresStore) SetShareStatus(ctx context.Context, shareID, status string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE memo_shares
		SET status=$2, updated_at=NOW()
		WHERE id=$1 AND status='pending'
	`, shareID, status)
	if err != nil {
		return false, fmt.Errorf("set share status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set share status rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) ListShareRequests(ctx context.Context, userID string) ([]ShareRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.memo_id, s.shared_by, s.shared_with, s.status, s.created_at, s.updated_at,
			m.title, u.username
		FROM memo_shares s
		JOIN memos m ON m.id = s.memo_id
		JOIN users u ON u.id = s.shared_by
		WHERE s.shared_with=$1 AND s.status='pending'
		ORDER BY s.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list share requests: %w", err)
	}
	defer rows.Close()

	items := make([]ShareRequest, 0)
	for rows.Next() {
		var item ShareRequest
		if err := rows.Scan(
			&item.ID,
			&item.MemoID,
			&item.SharedBy,
			&item.SharedWith,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.MemoTitle,
			&item.SharerUsername,
		); err != nil {
			return nil, fmt.Errorf("scan share request: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate share requests: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertNotification(ctx context.Context, notification Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, share_id, type, message)
		VALUES ($1, $2, $3, $4, $5)
	`, notification.ID, notification.UserID, notification.ShareID, notification.Type, notification.Message)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListUnreadNotifications(ctx context.Context, userID string) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(share_id, ''), type, message, is_read, created_at
		FROM notifications
		WHERE user_id=$1 AND NOT is_read
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]Notification, 0)
	for rows.Next() {
		var item Notification
		if err := rows.Scan(&item.ID, &item.UserID, &item.ShareID, &item.Type, &item.Message, &item.IsRead, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return items, nil
}

// MarkNotificationRead flips the read flag, scoped to the recipient. The flag
// only ever moves false to true; notifications are never deleted.
func (s *PostgresStore) MarkNotificationRead(ctx context.Context, userID, notificationID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE notifications
		SET is_read=TRUE
		WHERE id=$1 AND user_id=$2
	`, notificationID, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark notification rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) InsertMemoUpdate(ctx context.Context, update MemoUpdate) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO memo_updates (id, memo_id, updated_by, title, content)
		VALUES ($1, $2, $3, $4, $5)
	`, update.ID, update.MemoID, update.UpdatedBy, update.Title, update.Content)
	if err != nil {
		return fmt.Errorf("insert memo update: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListMemoUpdates(ctx context.Context, memoID string, limit int) ([]MemoUpdate, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT mu.id, mu.memo_id, mu.updated_by, u.username, mu.title, mu.content, mu.created_at
		FROM memo_updates mu
		JOIN users u ON u.id = mu.updated_by
		WHERE mu.memo_id=$1
		ORDER BY mu.created_at DESC
		LIMIT $2
	`, memoID, limit)
	if err != nil {
		return nil, fmt.Errorf("list memo updates: %w", err)
	}
	defer rows.Close()

	items := make([]MemoUpdate, 0)
	for rows.Next() {
		var item MemoUpdate
		if err := rows.Scan(&item.ID, &item.MemoID, &item.UpdatedBy, &item.EditorUsername, &item.Title, &item.Content, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan memo update: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memo updates: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertKnowledgeBase(ctx context.Context, kb KnowledgeBase) (KnowledgeBase, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO knowledge_bases (id, user_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`, kb.ID, kb.UserID, kb.Name, kb.Description).Scan(&kb.CreatedAt, &kb.UpdatedAt)
	if err != nil {
		return KnowledgeBase{}, fmt.Errorf("insert knowledge base: %w", err)
	}
	return kb, nil
}

func (s *PostgresStore) UpdateKnowledgeBase(ctx context.Context, userID, kbID, name, description string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE knowledge_bases
		SET name=$3, description=$4, updated_at=NOW()
		WHERE id=$1 AND user_id=$2
	`, kbID, userID, name, description)
	if err != nil {
		return false, fmt.Errorf("update knowledge base: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update knowledge base rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) DeleteKnowledgeBase(ctx context.Context, userID, kbID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_bases WHERE id=$1 AND user_id=$2`, kbID, userID)
	if err != nil {
		return false, fmt.Errorf("delete knowledge base: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete knowledge base rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) ListKnowledgeBases(ctx context.Context, userID string) ([]KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kb.id, kb.user_id, kb.name, kb.description,
			(SELECT COUNT(*) FROM knowledge_base_memos l WHERE l.knowledge_base_id=kb.id) AS memo_count,
			kb.created_at, kb.updated_at
		FROM knowledge_bases kb
		WHERE kb.user_id=$1
		ORDER BY kb.updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list knowledge bases: %w", err)
	}
	defer rows.Close()

	items := make([]KnowledgeBase, 0)
	for rows.Next() {
		var item KnowledgeBase
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.MemoCount, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan knowledge base: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge bases: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) GetKnowledgeBase(ctx context.Context, userID, kbID string) (KnowledgeBase, error) {
	var item KnowledgeBase
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, 0, created_at, updated_at
		FROM knowledge_bases
		WHERE id=$1 AND user_id=$2
	`, kbID, userID).Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.MemoCount, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return KnowledgeBase{}, err
	}
	return item, nil
}

// AddMemoToKnowledgeBase links a memo into a knowledge base the user owns.
// Linking the same memo twice is a no-op at the storage layer.
func (s *PostgresStore) AddMemoToKnowledgeBase(ctx context.Context, linkID, userID, kbID, memoID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO knowledge_base_memos (id, knowledge_base_id, memo_id)
		SELECT $1, kb.id, $4
		FROM knowledge_bases kb
		WHERE kb.id=$3 AND kb.user_id=$2
		ON CONFLICT (knowledge_base_id, memo_id) DO NOTHING
	`, linkID, userID, kbID, memoID)
	if err != nil {
		return false, fmt.Errorf("add memo to knowledge base: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("add memo to knowledge base rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) RemoveMemoFromKnowledgeBase(ctx context.Context, userID, kbID, memoID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM knowledge_base_memos l
		USING knowledge_bases kb
		WHERE l.knowledge_base_id=kb.id
			AND kb.id=$2 AND kb.user_id=$1 AND l.memo_id=$3
	`, userID, kbID, memoID)
	if err != nil {
		return false, fmt.Errorf("remove memo from knowledge base: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove memo from knowledge base rows: %w", err)
	}
	return affected > 0, nil
}

func (s *PostgresStore) ListKnowledgeBaseMemos(ctx context.Context, userID, kbID string) ([]AccessibleMemo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.owner_id, m.title, m.content, m.created_at, m.updated_at,
			CASE WHEN m.owner_id=$1 THEN 'owner' ELSE 'shared' END AS access_type,
			u.username
		FROM knowledge_base_memos l
		JOIN knowledge_bases kb ON kb.id = l.knowledge_base_id
		JOIN memos m ON m.id = l.memo_id
		JOIN users u ON u.id = m.owner_id
		WHERE kb.id=$2 AND kb.user_id=$1
		ORDER BY l.created_at DESC
	`, userID, kbID)
	if err != nil {
		return nil, fmt.Errorf("list knowledge base memos: %w", err)
	}
	defer rows.Close()

	items := make([]AccessibleMemo, 0)
	for rows.Next() {
		var item AccessibleMemo
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Title,
			&item.Content,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.AccessType,
			&item.OwnerUsername,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge base memo: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate knowledge base memos: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) ListMemoKnowledgeBases(ctx context.Context, userID, memoID string) ([]KnowledgeBase, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kb.id, kb.user_id, kb.name, kb.description, 0, kb.created_at, kb.updated_at
		FROM knowledge_base_memos l
		JOIN knowledge_bases kb ON kb.id = l.knowledge_base_id
		WHERE l.memo_id=$2 AND kb.user_id=$1
		ORDER BY kb.name ASC
	`, userID, memoID)
	if err != nil {
		return nil, fmt.Errorf("list memo knowledge bases: %w", err)
	}
	defer rows.Close()

	items := make([]KnowledgeBase, 0)
	for rows.Next() {
		var item KnowledgeBase
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.MemoCount, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan memo knowledge base: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memo knowledge bases: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_sessions (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET user_id=EXCLUDED.user_id, expires_at=EXCLUDED.expires_at, revoked_at=NULL
	`, tokenHash, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("save refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) LookupRefreshSession(ctx context.Context, tokenHash string) (User, error) {
	const query = `
		SELECT u.id, u.username, u.email
		FROM refresh_sessions rs
		JOIN users u ON u.id = rs.user_id
		WHERE rs.token_hash = $1
			AND rs.revoked_at IS NULL
			AND rs.expires_at > NOW()
	`
	var user User
	err := s.db.QueryRowContext(ctx, query, tokenHash).Scan(&user.ID, &user.Username, &user.Email)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE refresh_sessions SET revoked_at=NOW() WHERE token_hash=$1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh session: %w", err)
	}
	return nil
}

func (s *PostgresStore) RevokeAccessToken(ctx context.Context, jti string, exp time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revoked_access_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`, jti, exp)
	if err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsAccessTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM revoked_access_tokens WHERE jti=$1)`, jti).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}

// Ping verifies the database connection is alive
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
