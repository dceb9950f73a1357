package server

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/agentdms/admin/email"
	"github.com/agentdms/admin/models"
	"github.com/agentdms/admin/permission"
	"github.com/agentdms/admin/store"
	"github.com/agentdms/admin/test/testdb"
)

const testPassword = "P@ssw0rd!"

// captureSender records outgoing mail instead of sending it.
type captureSender struct {
	mu     sync.Mutex
	resets []email.PasswordResetEmailData
}

func (s *captureSender) SendPasswordReset(_ context.Context, data email.PasswordResetEmailData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, data)
	return nil
}

func (s *captureSender) SendEmail(context.Context, email.EmailData) error { return nil }

func (s *captureSender) ProviderType() email.ProviderType { return email.ProviderTypeNoOp }

func (s *captureSender) lastReset() (email.PasswordResetEmailData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.resets) == 0 {
		return email.PasswordResetEmailData{}, false
	}
	return s.resets[len(s.resets)-1], true
}

type testEnv struct {
	srv  *Server
	e    *httpexpect.Expect
	mail *captureSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.Open(t)
	kv, err := store.NewMemoryKV()
	if err != nil {
		t.Fatalf("kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	cfg := DefaultConfig()
	cfg.JWT.Secret = "test-secret"
	cfg.Email.ResetURL = "https://dms.example.com/reset"
	log := logrus.New()
	log.SetOutput(io.Discard)
	mail := &captureSender{}

	srv, err := NewServer(cfg, db, kv, mail, log)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(NewGinEngine(srv))
	t.Cleanup(ts.Close)
	return &testEnv{srv: srv, e: httpexpect.New(t, ts.URL), mail: mail}
}

func (env *testEnv) createUser(t *testing.T, addr string, roleIDs ...string) *models.User {
	t.Helper()
	u, err := env.srv.Users.CreateUser(context.Background(), store.NewUser{Email: addr, Password: testPassword, RoleIDs: roleIDs}, "")
	if err != nil {
		t.Fatalf("create user %s: %v", addr, err)
	}
	return u
}

func (env *testEnv) createRole(t *testing.T, name string, perms ...string) *models.Role {
	t.Helper()
	r, err := env.srv.Roles.CreateRole(context.Background(), models.Role{Name: name, Permissions: perms}, "")
	if err != nil {
		t.Fatalf("create role %s: %v", name, err)
	}
	return r
}

func (env *testEnv) superAdmin(t *testing.T) *models.User {
	t.Helper()
	u, _, err := env.srv.Users.EnsureSuperAdmin(context.Background(), "root@example.com", testPassword)
	if err != nil {
		t.Fatalf("ensure super admin: %v", err)
	}
	return u
}

func (env *testEnv) login(addr string) string {
	return env.e.POST("/api/auth/login").
		WithJSON(map[string]string{"email": addr, "password": testPassword}).
		Expect().
		Status(200).
		JSON().Object().Value("token").String().Raw()
}

func (env *testEnv) as(token string) *httpexpect.Expect {
	return env.e.Builder(func(req *httpexpect.Request) {
		req.WithHeader("Authorization", "Bearer "+token)
	})
}

func principalFor(t *testing.T, env *testEnv, addr string) permission.Principal {
	t.Helper()
	u, err := env.srv.Users.GetUserByEmail(context.Background(), addr)
	if err != nil {
		t.Fatalf("get user %s: %v", addr, err)
	}
	roles, err := env.srv.Roles.RolesForUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("roles for %s: %v", addr, err)
	}
	return permission.Principal{UserID: u.ID, Email: u.Email, Roles: roles}
}
