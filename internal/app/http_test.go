package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"memopad/api/internal/store"
)

func newTestServer(t *testing.T, fake *fakeStore) (*httptest.Server, *Service) {
	t.Helper()
	svc := newTestService(fake)
	server := httptest.NewServer(NewHTTPServer(svc, "*").Handler())
	t.Cleanup(server.Close)
	return server, svc
}

func authedRequest(t *testing.T, method, url, token, body string) *http.Request {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, payload
}

func testToken(t *testing.T, svc *Service, user store.User) string {
	t.Helper()
	session, err := svc.issueSession(context.Background(), user)
	if err != nil {
		t.Fatalf("issueSession: %v", err)
	}
	return session.Token
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{})

	status, payload := doJSON(t, authedRequest(t, http.MethodGet, server.URL+"/api/health", "", ""))
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if payload["ok"] != true {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestMemoRoutesRequireAuthorization(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{})

	status, payload := doJSON(t, authedRequest(t, http.MethodGet, server.URL+"/api/memos", "", ""))
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if payload["code"] != "UNAUTHORIZED" {
		t.Fatalf("code = %v", payload["code"])
	}
}

func TestCreateAndListMemos(t *testing.T) {
	memos := []store.AccessibleMemo{}
	fake := &fakeStore{
		getUserByIDFn: func(_ context.Context, userID string) (store.User, error) {
			return store.User{ID: userID, Username: "alice"}, nil
		},
		insertMemoFn: func(_ context.Context, memo store.Memo) (store.Memo, error) {
			memos = append(memos, store.AccessibleMemo{Memo: memo, AccessType: "owner", OwnerUsername: "alice"})
			return memo, nil
		},
		listAccessibleMemosFn: func(context.Context, string) ([]store.AccessibleMemo, error) {
			return memos, nil
		},
	}
	server, svc := newTestServer(t, fake)
	token := testToken(t, svc, store.User{ID: "usr_a", Username: "alice"})

	status, created := doJSON(t, authedRequest(t, http.MethodPost, server.URL+"/api/memos", token,
		`{"title":"Recipe","content":"Flour, water"}`))
	if status != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", status)
	}
	if created["accessType"] != "owner" || created["title"] != "Recipe" {
		t.Fatalf("created = %+v", created)
	}

	status, listed := doJSON(t, authedRequest(t, http.MethodGet, server.URL+"/api/memos", token, ""))
	if status != http.StatusOK {
		t.Fatalf("list status = %d, want 200", status)
	}
	items, ok := listed["memos"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("memos = %+v", listed["memos"])
	}
}

func TestShareRouteMapsDomainErrors(t *testing.T) {
	fake := &fakeStore{
		getUserByIDFn: func(_ context.Context, userID string) (store.User, error) {
			return store.User{ID: userID, Username: "alice"}, nil
		},
		getUserByUsernameFn: func(_ context.Context, username string) (store.User, error) {
			return store.User{ID: "usr_b", Username: username}, nil
		},
		getMemoOwnerIDFn: func(context.Context, string) (string, error) { return "usr_a", nil },
		insertShareFn: func(context.Context, store.MemoShare) error {
			return uniqueViolation()
		},
	}
	server, svc := newTestServer(t, fake)
	token := testToken(t, svc, store.User{ID: "usr_a", Username: "alice"})

	status, payload := doJSON(t, authedRequest(t, http.MethodPost, server.URL+"/api/memos/memo_1/share", token,
		`{"username":"bob"}`))
	if status != http.StatusConflict {
		t.Fatalf("status = %d, want 409", status)
	}
	if payload["code"] != "CONFLICT" {
		t.Fatalf("code = %v", payload["code"])
	}
}

func TestRespondRouteForbidsNonRecipient(t *testing.T) {
	fake := &fakeStore{
		getUserByIDFn: func(_ context.Context, userID string) (store.User, error) {
			return store.User{ID: userID, Username: "mallory"}, nil
		},
		getShareFn: func(_ context.Context, shareID string) (store.MemoShare, error) {
			return store.MemoShare{ID: shareID, MemoID: "memo_1", SharedWith: "usr_b", Status: "pending"}, nil
		},
	}
	server, svc := newTestServer(t, fake)
	token := testToken(t, svc, store.User{ID: "usr_m", Username: "mallory"})

	status, payload := doJSON(t, authedRequest(t, http.MethodPost, server.URL+"/api/share-requests/shr_1/respond", token,
		`{"action":"accept"}`))
	if status != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", status)
	}
	if payload["code"] != "FORBIDDEN" {
		t.Fatalf("code = %v", payload["code"])
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	fake := &fakeStore{
		getUserByIDFn: func(_ context.Context, userID string) (store.User, error) {
			return store.User{ID: userID, Username: "alice"}, nil
		},
	}
	server, svc := newTestServer(t, fake)
	token := testToken(t, svc, store.User{ID: "usr_a", Username: "alice"})

	status, payload := doJSON(t, authedRequest(t, http.MethodGet, server.URL+"/api/nope", token, ""))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if payload["code"] != "NOT_FOUND" {
		t.Fatalf("code = %v", payload["code"])
	}
}
