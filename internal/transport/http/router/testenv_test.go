package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"maeul-forum/internal/core/auth"
	"maeul-forum/internal/core/config"
	"maeul-forum/internal/core/database"
	"maeul-forum/internal/domain"
	"maeul-forum/internal/storage"
)

type env struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
	tokens *auth.Tokens
}

// newEnv spins up the full engine against a throwaway sqlite database.
// Redis stays nil so caching is bypassed. Mutators tweak the config
// before the router is built.
func newEnv(t *testing.T, mutate ...func(*config.Config)) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := database.New(database.Opts{
		Driver:   "sqlite",
		DSN:      filepath.Join(dir, "test.db"),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Post{},
		&domain.Comment{},
		&domain.FileRecord{},
		&domain.PostLike{},
		&domain.PostVote{},
		&domain.VoteOption{},
		&domain.UserVote{},
		&domain.HelpRequest{},
		&domain.HelpApplication{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	tokens := &auth.Tokens{Secret: []byte("test-secret"), Issuer: "maeul-forum", TTL: time.Hour}
	blobs, err := storage.NewDiskStore(filepath.Join(dir, "blobs"))
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}

	cfg := &config.Config{}
	cfg.Upload.MaxSizeMB = 50
	for _, m := range mutate {
		m(cfg)
	}

	engine := New(Deps{
		Log:    zap.NewNop(),
		DB:     db,
		Tokens: tokens,
		Blobs:  blobs,
		Cache:  nil,
		Cfg:    cfg,
	})
	return &env{t: t, engine: engine, db: db, tokens: tokens}
}

// user inserts an account directly and returns it with a valid token.
func (e *env) user(phone, status, role string) (*domain.User, string) {
	e.t.Helper()
	hash, err := auth.HashPassword("pw-" + phone)
	if err != nil {
		e.t.Fatalf("hash password: %v", err)
	}
	u := domain.User{
		Phone:    phone,
		Password: hash,
		Nickname: "nick-" + phone,
		Dong:     "101",
		Ho:       "202",
		Status:   status,
		Role:     role,
	}
	if err := e.db.Create(&u).Error; err != nil {
		e.t.Fatalf("create user: %v", err)
	}
	tok, err := e.tokens.Issue(u.ID)
	if err != nil {
		e.t.Fatalf("issue token: %v", err)
	}
	return &u, tok
}

func (e *env) approved(phone string) (*domain.User, string) {
	return e.user(phone, domain.UserApproved, domain.RoleUser)
}

func (e *env) admin(phone string) (*domain.User, string) {
	return e.user(phone, domain.UserApproved, domain.RoleAdmin)
}

// do runs one request through the engine. body may be nil, a raw
// []byte/string, or anything JSON-encodable.
func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		rd = bytes.NewReader(b)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (e *env) decode(w *httptest.ResponseRecorder) envelope {
	e.t.Helper()
	var out envelope
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		e.t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	return out
}

// dataField pulls a single field out of the response data object.
func (e *env) dataField(w *httptest.ResponseRecorder, field string) json.RawMessage {
	e.t.Helper()
	var data map[string]json.RawMessage
	out := e.decode(w)
	if err := json.Unmarshal(out.Data, &data); err != nil {
		e.t.Fatalf("decode data from %q: %v", out.Data, err)
	}
	return data[field]
}

// post creates an active post for the given user and returns its id.
func (e *env) post(userID uint, category, title string) uint {
	e.t.Helper()
	p := domain.Post{
		UserID:   userID,
		Category: category,
		Title:    title,
		Content:  "content of " + title,
		Status:   domain.ContentActive,
	}
	if err := e.db.Create(&p).Error; err != nil {
		e.t.Fatalf("create post: %v", err)
	}
	return p.ID
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

func jsonNum(raw json.RawMessage) int64 {
	var n int64
	_ = json.Unmarshal(raw, &n)
	return n
}

func jsonBool(raw json.RawMessage) bool {
	var b bool
	_ = json.Unmarshal(raw, &b)
	return b
}

func jsonStr(raw json.RawMessage) string {
	var s string
	_ = json.Unmarshal(raw, &s)
	return s
}
