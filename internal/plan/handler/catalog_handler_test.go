package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/huynhhaigiang/cadico-api/internal/config"
	"github.com/huynhhaigiang/cadico-api/internal/plan/repository"
	"github.com/huynhhaigiang/cadico-api/internal/plan/service"
	"github.com/huynhhaigiang/cadico-api/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:             testutil.JWTSecret,
			AccessTokenExpire:  time.Hour,
			RefreshTokenExpire: 24 * time.Hour,
			Issuer:             "cadico-api",
		},
	}
}

func setupCatalogTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil, testConfig(), zap.NewNop())
	h := NewCatalogHandler(svcs.Catalog)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/constructions", h.ListConstructions)
	api.GET("/constructions/:id", h.GetConstruction)
	api.POST("/constructions", h.CreateConstruction)
	api.PUT("/constructions/:id", h.UpdateConstruction)
	api.DELETE("/constructions/:id", h.DeleteConstruction)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestConstructionCRUD(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	// create without a code: one is generated
	body := map[string]interface{}{
		"name":    "Cầu vượt Ngã Tư Sở",
		"address": "Hà Nội",
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/constructions", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	id := data["id"].(string)
	if data["code"].(string) != "CT-0001" {
		t.Fatalf("expected generated code CT-0001, got %v", data["code"])
	}

	// update
	body["name"] = "Cầu vượt Ngã Tư Sở (giai đoạn 2)"
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/constructions/"+id, body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// get reflects the update
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions/"+id, nil, token)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["name"].(string) != "Cầu vượt Ngã Tư Sở (giai đoạn 2)" {
		t.Fatalf("update not persisted: %v", data["name"])
	}

	// delete removes from the list
	w = testutil.DoRequest(env.Router, http.MethodDelete, "/api/v1/constructions/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions", nil, token)
	resp = testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	if len(items) != 0 {
		t.Fatalf("expected empty list after delete, got %d items", len(items))
	}

	// getting the deleted record is a 404
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestConstructionSearchIgnoresDiacritics(t *testing.T) {
	env := setupCatalogTest(t)
	token := testutil.DefaultTestToken()

	for _, name := range []string{"Công trình cầu Rồng", "Hầm chui Thanh Xuân"} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/constructions", map[string]interface{}{"name": name}, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed construction failed: %d %s", w.Code, w.Body.String())
		}
	}

	// unaccented lowercase query matches the accented name
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions?search=cau+rong", nil, token)
	resp := testutil.ParseResponse(w)
	items := resp["data"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 match for 'cau rong', got %d", len(items))
	}
	match := items[0].(map[string]interface{})
	if match["name"].(string) != "Công trình cầu Rồng" {
		t.Fatalf("wrong match: %v", match["name"])
	}

	// no match returns empty, not an error
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions?search=khong+ton+tai", nil, token)
	resp = testutil.ParseResponse(w)
	items = resp["data"].([]interface{})
	if len(items) != 0 {
		t.Fatalf("expected 0 matches, got %d", len(items))
	}
}

func TestCatalogRequiresAuth(t *testing.T) {
	env := setupCatalogTest(t)

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/constructions", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}
