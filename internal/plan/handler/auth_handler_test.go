package handler

import (
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
	"github.com/huynhhaigiang/cadico-api/internal/testutil"
)

func setupAuthTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil, testConfig(), zap.NewNop())
	h := NewAuthHandler(svcs.Auth)

	router := testutil.SetupRouter()
	router.POST("/api/v1/auth/login", h.Login)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/auth/me", h.Me)
	api.PUT("/auth/password", h.ChangePassword)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestLogin(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "u-001", "nvhai", "matkhau123", entity.RoleTeamLead)

	// valid credentials
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"username": "nvhai", "password": "matkhau123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	token := data["token"].(map[string]interface{})
	if token["access_token"].(string) == "" {
		t.Fatal("access_token is empty")
	}
	user := data["user"].(map[string]interface{})
	if user["username"].(string) != "nvhai" {
		t.Fatalf("wrong user: %v", user["username"])
	}
	if _, ok := user["password_hash"]; ok {
		t.Fatal("password hash leaked in response")
	}

	// wrong password
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"username": "nvhai", "password": "sai-mat-khau"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	// unknown user gets the same error
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"username": "khongco", "password": "matkhau123"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown user, got %d", w.Code)
	}
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	env := setupAuthTest(t)
	user := testutil.SeedTestUser(t, env.DB, "u-002", "bikhoa", "matkhau123", entity.RoleTeamLead)
	env.DB.Model(user).Update("status", entity.UserStatusInactive)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"username": "bikhoa", "password": "matkhau123"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for locked account, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	env := setupAuthTest(t)
	testutil.SeedTestUser(t, env.DB, "u-003", "doipass", "matkhaucu1", entity.RoleTeamLead)
	token := testutil.GenerateTestToken("u-003", "User u-003", "doipass@test.com", []string{entity.RoleTeamLead})

	// wrong old password
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/auth/password",
		map[string]interface{}{"old_password": "saimatkhau", "new_password": "matkhaumoi1"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong old password, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/auth/password",
		map[string]interface{}{"old_password": "matkhaucu1", "new_password": "matkhaumoi1"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("change password failed: %d %s", w.Code, w.Body.String())
	}

	// the new password works
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/auth/login",
		map[string]interface{}{"username": "doipass", "password": "matkhaumoi1"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login with new password failed: %d %s", w.Code, w.Body.String())
	}
}
