package app

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"memopad/api/internal/access"
	"memopad/api/internal/auth"
	"memopad/api/internal/authpw"
	"memopad/api/internal/config"
	"memopad/api/internal/email"
	"memopad/api/internal/export"
	"memopad/api/internal/search"
	"memopad/api/internal/store"
	"memopad/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	Username     string
	JTI          string
	ExpiresAt    time.Time
}

const shareUpdatesLimit = 10

type dataStore interface {
	GetUserByID(context.Context, string) (store.User, error)
	GetUserByUsername(context.Context, string) (store.User, error)

	InsertMemo(context.Context, store.Memo) (store.Memo, error)
	UpdateMemo(context.Context, string, string, string) (store.Memo, error)
	GetMemo(context.Context, string) (store.Memo, error)
	GetMemoOwnerID(context.Context, string) (string, error)
	HasAcceptedShare(context.Context, string, string) (bool, error)
	SharedUserIDs(context.Context, string) ([]string, error)
	DeleteMemoOwned(context.Context, string, string) (bool, error)
	DeleteMemosOwned(context.Context, string, []string) (int, error)
	ListAccessibleMemos(context.Context, string) ([]store.AccessibleMemo, error)

	InsertShare(context.Context, store.MemoShare) error
	GetShare(context.Context, string) (store.MemoShare, error)
	SetShareStatus(context.Context, string, string) (bool, error)
	ListShareRequests(context.Context, string) ([]store.ShareRequest, error)

	InsertNotification(context.Context, store.Notification) error
	ListUnreadNotifications(context.Context, string) ([]store.Notification, error)
	MarkNotificationRead(context.Context, string, string) (bool, error)

	InsertMemoUpdate(context.Context, store.MemoUpdate) error
	ListMemoUpdates(context.Context, string, int) ([]store.MemoUpdate, error)

	InsertKnowledgeBase(context.Context, store.KnowledgeBase) (store.KnowledgeBase, error)
	UpdateKnowledgeBase(context.Context, string, string, string, string) (bool, error)
	DeleteKnowledgeBase(context.Context, string, string) (bool, error)
	ListKnowledgeBases(context.Context, string) ([]store.KnowledgeBase, error)
	GetKnowledgeBase(context.Context, string, string) (store.KnowledgeBase, error)
	AddMemoToKnowledgeBase(context.Context, string, string, string, string) (bool, error)
	RemoveMemoFromKnowledgeBase(context.Context, string, string, string) (bool, error)
	ListKnowledgeBaseMemos(context.Context, string, string) ([]store.AccessibleMemo, error)
	ListMemoKnowledgeBases(context.Context, string, string) ([]store.KnowledgeBase, error)

	RevokeAccessToken(context.Context, string, time.Time) error
	IsAccessTokenRevoked(context.Context, string) (bool, error)

	Ping(ctx context.Context) error
}

// sessionStore holds refresh tokens. Backed by Redis when configured,
// otherwise by Postgres.
type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type Service struct {
	cfg      config.Config
	store    dataStore
	sessions sessionStore
	resolver *access.Resolver
	authpw   *authpw.Service
	search   *search.Service
	export   *export.Service
	email    *email.Service
}

func New(cfg config.Config, dataStore *store.PostgresStore, sessions sessionStore, searchSvc *search.Service, emailSvc *email.Service) *Service {
	if sessions == nil {
		sessions = dataStore
	}
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		sessions: sessions,
		resolver: access.NewResolver(dataStore),
		authpw:   authpw.NewService(dataStore),
		search:   searchSvc,
		export:   export.NewService(),
		email:    emailSvc,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) SMTPConfigured() bool {
	return s.email != nil && s.email.IsConfigured()
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, username, emailAddr, password string) (Session, error) {
	user, err := s.authpw.Register(ctx, authpw.RegisterRequest{
		Username: username,
		Email:    emailAddr,
		Password: password,
	})
	if err != nil {
		switch {
		case errors.Is(err, authpw.ErrMissingFields), errors.Is(err, authpw.ErrPasswordTooShort):
			return Session{}, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
		case errors.Is(err, authpw.ErrUsernameTaken), errors.Is(err, authpw.ErrEmailTaken):
			return Session{}, domainError(http.StatusConflict, "CONFLICT", err.Error(), nil)
		}
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.authpw.Login(ctx, authpw.LoginRequest{Username: username, Password: password})
	if err != nil {
		if errors.Is(err, authpw.ErrInvalidCredentials) || errors.Is(err, authpw.ErrMissingFields) {
			return Session{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Invalid username or password", nil)
		}
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

// Refresh rotates the refresh token and issues a fresh access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	found, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	user, err := s.store.GetUserByID(ctx, found.ID)
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "UNAUTHORIZED", "Refresh token invalid", nil)
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.TokenSecret), auth.Claims{
		Sub:      user.ID,
		Username: user.Username,
		JTI:      jti,
		Exp:      expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user.ID, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.TokenSecret), token)
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.store.IsAccessTokenRevoked(ctx, claims.JTI)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, auth.ErrInvalidToken
	}

	user, err := s.store.GetUserByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, session Session, refreshToken string) error {
	if session.JTI != "" {
		_ = s.store.RevokeAccessToken(ctx, session.JTI, session.ExpiresAt)
	}
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// ListMemos returns every memo the user owns plus every memo shared with them
// through an accepted share, newest activity first.
func (s *Service) ListMemos(ctx context.Context, userID string) ([]map[string]any, error) {
	memos, err := s.store.ListAccessibleMemos(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(memos))
	for _, memo := range memos {
		items = append(items, accessibleMemoPayload(memo))
	}
	return items, nil
}

// SaveMemo creates a memo when memoID is empty, otherwise updates one the
// caller can write to. Every write by a share recipient appends a history
// snapshot; access is resolved from the database on every call.
func (s *Service) SaveMemo(ctx context.Context, session Session, memoID, title, content string) (map[string]any, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required", nil)
	}

	if memoID == "" {
		memo, err := s.store.InsertMemo(ctx, store.Memo{
			ID:      util.NewID("memo"),
			OwnerID: session.UserID,
			Title:   title,
			Content: content,
		})
		if err != nil {
			return nil, err
		}
		s.indexMemo(ctx, memo, session.Username)
		return memoPayload(memo, access.LevelOwner, session.Username), nil
	}

	level, err := s.resolver.Resolve(ctx, session.UserID, memoID)
	if err != nil {
		return nil, err
	}
	if !level.CanWrite() {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}

	memo, err := s.store.UpdateMemo(ctx, memoID, title, content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
		}
		return nil, err
	}

	if level == access.LevelShared {
		if err := s.store.InsertMemoUpdate(ctx, store.MemoUpdate{
			ID:        util.NewID("upd"),
			MemoID:    memo.ID,
			UpdatedBy: session.UserID,
			Title:     memo.Title,
			Content:   memo.Content,
		}); err != nil {
			return nil, err
		}
	}

	ownerUsername := session.Username
	if level != access.LevelOwner {
		if owner, err := s.store.GetUserByID(ctx, memo.OwnerID); err == nil {
			ownerUsername = owner.Username
		}
	}
	s.indexMemo(ctx, memo, ownerUsername)
	return memoPayload(memo, level, ownerUsername), nil
}

// DeleteMemo removes a memo. Share recipients cannot delete, only the owner.
func (s *Service) DeleteMemo(ctx context.Context, session Session, memoID string) error {
	level, err := s.resolver.Resolve(ctx, session.UserID, memoID)
	if err != nil {
		return err
	}
	switch level {
	case access.LevelNone:
		return domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	case access.LevelShared:
		return domainError(http.StatusForbidden, "FORBIDDEN", "Only the owner can delete a memo", nil)
	}

	deleted, err := s.store.DeleteMemoOwned(ctx, session.UserID, memoID)
	if err != nil {
		return err
	}
	if !deleted {
		return domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}
	if s.search != nil {
		s.search.DeleteMemo(memoID)
	}
	return nil
}

// DeleteMemos removes a batch of owned memos, skipping the rest.
func (s *Service) DeleteMemos(ctx context.Context, session Session, memoIDs []string) (map[string]any, error) {
	if len(memoIDs) == 0 {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "memoIds is required", nil)
	}
	deleted, err := s.store.DeleteMemosOwned(ctx, session.UserID, memoIDs)
	if err != nil {
		return nil, err
	}
	if s.search != nil {
		for _, id := range memoIDs {
			s.search.DeleteMemo(id)
		}
	}
	return map[string]any{"deleted": deleted}, nil
}

// MemoUpdates lists history snapshots for a memo the caller can read,
// newest first, at most ten entries.
func (s *Service) MemoUpdates(ctx context.Context, session Session, memoID string) ([]map[string]any, error) {
	level, err := s.resolver.Resolve(ctx, session.UserID, memoID)
	if err != nil {
		return nil, err
	}
	if !level.CanRead() {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}

	updates, err := s.store.ListMemoUpdates(ctx, memoID, shareUpdatesLimit)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(updates))
	for _, update := range updates {
		items = append(items, map[string]any{
			"id":             update.ID,
			"memoId":         update.MemoID,
			"updatedBy":      update.UpdatedBy,
			"editorUsername": update.EditorUsername,
			"title":          update.Title,
			"content":        update.Content,
			"createdAt":      update.CreatedAt,
		})
	}
	return items, nil
}

// ShareMemo offers a memo to another user by username. The offer stays
// pending until the recipient responds; one offer per memo and recipient,
// ever.
func (s *Service) ShareMemo(ctx context.Context, session Session, memoID, targetUsername string) (map[string]any, error) {
	targetUsername = strings.TrimSpace(targetUsername)
	if targetUsername == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "username is required", nil)
	}
	if targetUsername == session.Username {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "You cannot share a memo with yourself", nil)
	}

	target, err := s.store.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainError(http.StatusNotFound, "NOT_FOUND", "User not found", nil)
		}
		return nil, err
	}
	if target.ID == session.UserID {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "You cannot share a memo with yourself", nil)
	}

	ownerID, err := s.store.GetMemoOwnerID(ctx, memoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
		}
		return nil, err
	}
	if ownerID != session.UserID {
		// Share recipients cannot re-share; respond as if the memo were absent.
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}

	share := store.MemoShare{
		ID:         util.NewID("shr"),
		MemoID:     memoID,
		SharedBy:   session.UserID,
		SharedWith: target.ID,
		Status:     "pending",
	}
	if err := s.store.InsertShare(ctx, share); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domainError(http.StatusConflict, "CONFLICT", "Memo already shared with this user", nil)
		}
		return nil, err
	}

	memo, err := s.store.GetMemo(ctx, memoID)
	if err != nil {
		return nil, err
	}

	if err := s.store.InsertNotification(ctx, store.Notification{
		ID:      util.NewID("ntf"),
		UserID:  target.ID,
		ShareID: share.ID,
		Type:    "share_request",
		Message: session.Username + " wants to share \"" + memo.Title + "\" with you",
	}); err != nil {
		return nil, err
	}

	if s.SMTPConfigured() && target.Email != "" {
		go func(to, targetName, sharerName, memoTitle string) {
			if err := s.email.SendShareRequestEmail(to, targetName, sharerName, memoTitle); err != nil {
				log.Printf("email: share request to %s: %v", to, err)
			}
		}(target.Email, target.Username, session.Username, memo.Title)
	}

	return map[string]any{
		"id":         share.ID,
		"memoId":     share.MemoID,
		"sharedWith": target.Username,
		"status":     share.Status,
	}, nil
}

// ListShareRequests returns pending offers addressed to the user.
func (s *Service) ListShareRequests(ctx context.Context, userID string) ([]map[string]any, error) {
	requests, err := s.store.ListShareRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(requests))
	for _, req := range requests {
		items = append(items, map[string]any{
			"id":             req.ID,
			"memoId":         req.MemoID,
			"memoTitle":      req.MemoTitle,
			"sharerUsername": req.SharerUsername,
			"status":         req.Status,
			"createdAt":      req.CreatedAt,
		})
	}
	return items, nil
}

// RespondToShareRequest accepts or rejects a pending offer. Only the
// recipient may respond, and a share that already left pending stays put.
func (s *Service) RespondToShareRequest(ctx context.Context, session Session, shareID, action string) (map[string]any, error) {
	var status string
	switch action {
	case "accept":
		status = "accepted"
	case "reject":
		status = "rejected"
	default:
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "action must be accept or reject", nil)
	}

	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Share request not found", nil)
		}
		return nil, err
	}
	if share.SharedWith != session.UserID {
		return nil, domainError(http.StatusForbidden, "FORBIDDEN", "Only the recipient can respond to a share request", nil)
	}

	updated, err := s.store.SetShareStatus(ctx, shareID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domainError(http.StatusConflict, "CONFLICT", "Share request already handled", nil)
	}

	if status == "accepted" {
		s.reindexMemo(ctx, share.MemoID)
	}

	return map[string]any{"id": shareID, "status": status}, nil
}

// Notifications returns the user's unread notifications, newest first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]map[string]any, error) {
	notifications, err := s.store.ListUnreadNotifications(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, map[string]any{
			"id":        n.ID,
			"shareId":   n.ShareID,
			"type":      n.Type,
			"message":   n.Message,
			"isRead":    n.IsRead,
			"createdAt": n.CreatedAt,
		})
	}
	return items, nil
}

func (s *Service) MarkNotificationRead(ctx context.Context, session Session, notificationID string) error {
	updated, err := s.store.MarkNotificationRead(ctx, session.UserID, notificationID)
	if err != nil {
		return err
	}
	if !updated {
		return domainError(http.StatusNotFound, "NOT_FOUND", "Notification not found", nil)
	}
	return nil
}

// CreateKnowledgeBase makes a new private grouping of memos.
func (s *Service) CreateKnowledgeBase(ctx context.Context, session Session, name, description string) (map[string]any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required", nil)
	}
	kb, err := s.store.InsertKnowledgeBase(ctx, store.KnowledgeBase{
		ID:          util.NewID("kb"),
		UserID:      session.UserID,
		Name:        name,
		Description: strings.TrimSpace(description),
	})
	if err != nil {
		return nil, err
	}
	return knowledgeBasePayload(kb), nil
}

func (s *Service) UpdateKnowledgeBase(ctx context.Context, session Session, kbID, name, description string) (map[string]any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required", nil)
	}
	updated, err := s.store.UpdateKnowledgeBase(ctx, session.UserID, kbID, name, strings.TrimSpace(description))
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Knowledge base not found", nil)
	}
	kb, err := s.store.GetKnowledgeBase(ctx, session.UserID, kbID)
	if err != nil {
		return nil, err
	}
	return knowledgeBasePayload(kb), nil
}

func (s *Service) DeleteKnowledgeBase(ctx context.Context, session Session, kbID string) error {
	deleted, err := s.store.DeleteKnowledgeBase(ctx, session.UserID, kbID)
	if err != nil {
		return err
	}
	if !deleted {
		return domainError(http.StatusNotFound, "NOT_FOUND", "Knowledge base not found", nil)
	}
	return nil
}

func (s *Service) ListKnowledgeBases(ctx context.Context, userID string) ([]map[string]any, error) {
	kbs, err := s.store.ListKnowledgeBases(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(kbs))
	for _, kb := range kbs {
		items = append(items, knowledgeBasePayload(kb))
	}
	return items, nil
}

// GetKnowledgeBase returns one knowledge base with its linked memos.
func (s *Service) GetKnowledgeBase(ctx context.Context, session Session, kbID string) (map[string]any, error) {
	kb, err := s.store.GetKnowledgeBase(ctx, session.UserID, kbID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Knowledge base not found", nil)
		}
		return nil, err
	}
	memos, err := s.store.ListKnowledgeBaseMemos(ctx, session.UserID, kbID)
	if err != nil {
		return nil, err
	}
	memoItems := make([]map[string]any, 0, len(memos))
	for _, memo := range memos {
		memoItems = append(memoItems, accessibleMemoPayload(memo))
	}
	payload := knowledgeBasePayload(kb)
	payload["memos"] = memoItems
	return payload, nil
}

// AddMemoToKnowledgeBase links a memo the caller can read into one of their
// knowledge bases.
func (s *Service) AddMemoToKnowledgeBase(ctx context.Context, session Session, kbID, memoID string) error {
	if _, err := s.store.GetKnowledgeBase(ctx, session.UserID, kbID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domainError(http.StatusNotFound, "NOT_FOUND", "Knowledge base not found", nil)
		}
		return err
	}
	level, err := s.resolver.Resolve(ctx, session.UserID, memoID)
	if err != nil {
		return err
	}
	if !level.CanRead() {
		return domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}

	added, err := s.store.AddMemoToKnowledgeBase(ctx, util.NewID("kbm"), session.UserID, kbID, memoID)
	if err != nil {
		return err
	}
	if !added {
		return domainError(http.StatusConflict, "CONFLICT", "Memo already in knowledge base", nil)
	}
	return nil
}

func (s *Service) RemoveMemoFromKnowledgeBase(ctx context.Context, session Session, kbID, memoID string) error {
	removed, err := s.store.RemoveMemoFromKnowledgeBase(ctx, session.UserID, kbID, memoID)
	if err != nil {
		return err
	}
	if !removed {
		return domainError(http.StatusNotFound, "NOT_FOUND", "Memo not in knowledge base", nil)
	}
	return nil
}

func (s *Service) ListMemoKnowledgeBases(ctx context.Context, session Session, memoID string) ([]map[string]any, error) {
	kbs, err := s.store.ListMemoKnowledgeBases(ctx, session.UserID, memoID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(kbs))
	for _, kb := range kbs {
		items = append(items, knowledgeBasePayload(kb))
	}
	return items, nil
}

// Search runs a full-text query over the memos the user can read.
func (s *Service) Search(ctx context.Context, userID, text string, limit, offset int) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: text}
	}
	return s.search.Search(search.Query{
		Text:   text,
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
}

// ExportMemo renders a memo the caller can read to a downloadable PDF.
func (s *Service) ExportMemo(ctx context.Context, session Session, memoID string) (*export.Result, error) {
	level, err := s.resolver.Resolve(ctx, session.UserID, memoID)
	if err != nil {
		return nil, err
	}
	if !level.CanRead() {
		return nil, domainError(http.StatusNotFound, "NOT_FOUND", "Memo not found", nil)
	}

	memo, err := s.store.GetMemo(ctx, memoID)
	if err != nil {
		return nil, err
	}
	ownerUsername := session.Username
	if level != access.LevelOwner {
		if owner, err := s.store.GetUserByID(ctx, memo.OwnerID); err == nil {
			ownerUsername = owner.Username
		}
	}

	result, err := s.export.ExportPDF(export.Memo{
		ID:            memo.ID,
		Title:         memo.Title,
		Content:       memo.Content,
		OwnerUsername: ownerUsername,
		AccessType:    string(level),
		UpdatedAt:     memo.UpdatedAt,
	})
	if err != nil {
		if errors.Is(err, export.ErrPDFDependencyMissing) {
			return nil, domainError(http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF export is not available", nil)
		}
		return nil, err
	}
	return result, nil
}

func (s *Service) indexMemo(ctx context.Context, memo store.Memo, ownerUsername string) {
	if s.search == nil {
		return
	}
	sharedWith, err := s.store.SharedUserIDs(ctx, memo.ID)
	if err != nil {
		log.Printf("search: load shared users for %s: %v", memo.ID, err)
		sharedWith = []string{}
	}
	s.search.IndexMemo(search.MemoRecord{
		ID:            memo.ID,
		Title:         memo.Title,
		Content:       memo.Content,
		OwnerID:       memo.OwnerID,
		OwnerUsername: ownerUsername,
		SharedWith:    sharedWith,
	})
}

func (s *Service) reindexMemo(ctx context.Context, memoID string) {
	if s.search == nil {
		return
	}
	memo, err := s.store.GetMemo(ctx, memoID)
	if err != nil {
		log.Printf("search: reload memo %s: %v", memoID, err)
		return
	}
	ownerUsername := ""
	if owner, err := s.store.GetUserByID(ctx, memo.OwnerID); err == nil {
		ownerUsername = owner.Username
	}
	s.indexMemo(ctx, memo, ownerUsername)
}

func memoPayload(memo store.Memo, level access.Level, ownerUsername string) map[string]any {
	return map[string]any{
		"id":            memo.ID,
		"title":         memo.Title,
		"content":       memo.Content,
		"ownerId":       memo.OwnerID,
		"ownerUsername": ownerUsername,
		"accessType":    string(level),
		"createdAt":     memo.CreatedAt,
		"updatedAt":     memo.UpdatedAt,
	}
}

func accessibleMemoPayload(memo store.AccessibleMemo) map[string]any {
	return map[string]any{
		"id":            memo.ID,
		"title":         memo.Title,
		"content":       memo.Content,
		"ownerId":       memo.OwnerID,
		"ownerUsername": memo.OwnerUsername,
		"accessType":    memo.AccessType,
		"createdAt":     memo.CreatedAt,
		"updatedAt":     memo.UpdatedAt,
	}
}

func knowledgeBasePayload(kb store.KnowledgeBase) map[string]any {
	return map[string]any{
		"id":          kb.ID,
		"name":        kb.Name,
		"description": kb.Description,
		"memoCount":   kb.MemoCount,
		"createdAt":   kb.CreatedAt,
		"updatedAt":   kb.UpdatedAt,
	}
}
