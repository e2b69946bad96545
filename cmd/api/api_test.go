package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/authgate/internal/config"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// TestAPI_RegisterLoginProtected is an integration test: it builds the full
// router with a sqlmock-backed DB and walks the whole credential lifecycle:
// register, duplicate register, failed logins, successful login, and access
// to the protected route with the issued token.
func TestAPI_RegisterLoginProtected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	storedHash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "alice", string(storedHash), time.Now())
	}

	// 1) register alice
	mock.ExpectQuery(`INSERT INTO users \(username, password_hash\)`).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnRows(userRows())
	// 2) register alice again -> unique violation
	mock.ExpectQuery(`INSERT INTO users \(username, password_hash\)`).
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})
	// 3) login with wrong password
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(userRows())
	// 4) login with unknown username
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	// 5) login with correct password
	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("alice").
		WillReturnRows(userRows())

	cfg := config.Config{
		JWTSecret:       "integration-test-signing-secret",
		TokenTTLMinutes: 60,
		Env:             "dev",
	}
	r := newRouter(db, cfg)
	srv := httptest.NewServer(r)
	defer srv.Close()

	// 1) Register -> 201
	resp := postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "alice", "password": "s3cret!"})
	if resp.status != http.StatusCreated {
		t.Fatalf("register status: got %d, want 201", resp.status)
	}

	// 2) Duplicate register -> 400
	resp = postJSON(t, srv.URL+"/auth/register", map[string]string{"username": "alice", "password": "other"})
	if resp.status != http.StatusBadRequest {
		t.Fatalf("duplicate register status: got %d, want 400", resp.status)
	}

	// 3) Wrong password -> 401
	wrongPass := postJSON(t, srv.URL+"/auth/login", map[string]string{"username": "alice", "password": "wrong"})
	if wrongPass.status != http.StatusUnauthorized {
		t.Fatalf("wrong-password login status: got %d, want 401", wrongPass.status)
	}

	// 4) Unknown username -> identical 401
	unknownUser := postJSON(t, srv.URL+"/auth/login", map[string]string{"username": "ghost", "password": "whatever"})
	if unknownUser.status != http.StatusUnauthorized {
		t.Fatalf("unknown-user login status: got %d, want 401", unknownUser.status)
	}
	if wrongPass.body != unknownUser.body {
		t.Errorf("login failure bodies must be identical: %q vs %q", wrongPass.body, unknownUser.body)
	}

	// 5) Correct login -> 200 + token
	resp = postJSON(t, srv.URL+"/auth/login", map[string]string{"username": "alice", "password": "s3cret!"})
	if resp.status != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", resp.status)
	}
	var loginOut struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal([]byte(resp.body), &loginOut); err != nil || loginOut.Token == "" {
		t.Fatalf("login response: %v (%s)", err, resp.body)
	}

	// 6) Protected route with the issued token -> 200, identity alice
	req, _ := http.NewRequest("GET", srv.URL+"/protected", nil)
	req.Header.Set("Authorization", "Bearer "+loginOut.Token)
	protResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("protected request: %v", err)
	}
	defer protResp.Body.Close()
	if protResp.StatusCode != http.StatusOK {
		t.Fatalf("protected status: got %d, want 200", protResp.StatusCode)
	}
	var protOut struct {
		Identity string `json:"identity"`
	}
	if err := json.NewDecoder(protResp.Body).Decode(&protOut); err != nil {
		t.Fatalf("decode protected response: %v", err)
	}
	if protOut.Identity != "alice" {
		t.Errorf("identity: got %q, want %q", protOut.Identity, "alice")
	}

	// 7) Tampered token -> 401
	tampered := loginOut.Token[:len(loginOut.Token)-1] + flipChar(loginOut.Token[len(loginOut.Token)-1])
	req, _ = http.NewRequest("GET", srv.URL+"/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	tampResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("tampered request: %v", err)
	}
	defer tampResp.Body.Close()
	if tampResp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("tampered token status: got %d, want 401", tampResp.StatusCode)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	cfg := config.Config{JWTSecret: "integration-test-signing-secret", TokenTTLMinutes: 60}
	srv := httptest.NewServer(newRouter(db, cfg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status: got %d, want 200", resp.StatusCode)
	}
}

type jsonResponse struct {
	status int
	body   string
}

func postJSON(t *testing.T, url string, payload map[string]string) jsonResponse {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return jsonResponse{status: resp.StatusCode, body: string(body)}
}

func flipChar(c byte) string {
	if c == 'x' {
		return "y"
	}
	return "x"
}
