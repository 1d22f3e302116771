package handler

import (
	"context"
	"net/http"
	"testing"

	"go.uber.org/zap"

	planentity "github.com/huynhhaigiang/cadico-api/internal/plan/entity"
	"github.com/huynhhaigiang/cadico-api/internal/supply/entity"
	"github.com/huynhhaigiang/cadico-api/internal/supply/repository"
	"github.com/huynhhaigiang/cadico-api/internal/supply/service"
	"github.com/huynhhaigiang/cadico-api/internal/testutil"
)

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, userID, title, content, typ, entityType, entityID string) {
}

type allowAllUsers struct{}

func (allowAllUsers) Exists(ctx context.Context, userID string) bool { return true }

func setupTicketTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, noopNotifier{}, allowAllUsers{}, zap.NewNop())
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/materials", h.Material.List)
	api.POST("/materials", h.Material.Create)
	api.POST("/materials/:id/compositions", h.Material.CreateComposition)
	api.GET("/supply-tickets/:id", h.Ticket.Get)
	api.POST("/supply-tickets", h.Ticket.Create)
	api.POST("/supply-tickets/:id/submit", h.Ticket.Submit)
	api.PUT("/supply-tickets/:id/approve", h.Ticket.Approve)
	api.GET("/supply-tickets/:id/items", h.Ticket.ListItems)
	api.POST("/supply-tickets/:id/items", h.Ticket.CreateItem)
	api.PUT("/supply-tickets/:id/items/:itemId", h.Ticket.UpdateItem)
	api.DELETE("/supply-tickets/:id/items/:itemId", h.Ticket.DeleteItem)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func createMaterial(t *testing.T, env *testutil.TestEnv, token string, body map[string]interface{}) string {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/materials", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create material failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})["id"].(string)
}

func createTicket(t *testing.T, env *testutil.TestEnv, token string) string {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets",
		map[string]interface{}{"construction_id": "ct-001", "content": "Cung ứng vật tư đợt 1"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create ticket failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})["id"].(string)
}

func TestTicketItemVATComputation(t *testing.T) {
	env := setupTicketTest(t)
	token := testutil.DefaultTestToken()

	materialID := createMaterial(t, env, token, map[string]interface{}{
		"name":          "Thép D16",
		"unit_name":     "kg",
		"default_price": 15000,
	})
	ticketID := createTicket(t, env, token)

	body := map[string]interface{}{
		"material_type_id": materialID,
		"quantity":         10,
		"unit_price":       1000,
		"vat_rate":         10,
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets/"+ticketID+"/items", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create item failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["amount"].(float64) != 10000 {
		t.Fatalf("amount = %v, want 10000", data["amount"])
	}
	if data["vat_amount"].(float64) != 1000 {
		t.Fatalf("vat_amount = %v, want 1000", data["vat_amount"])
	}
	if data["amount_with_vat"].(float64) != 11000 {
		t.Fatalf("amount_with_vat = %v, want 11000", data["amount_with_vat"])
	}
}

func TestMainMaterialDerivesSubLines(t *testing.T) {
	env := setupTicketTest(t)
	token := testutil.DefaultTestToken()

	mainID := createMaterial(t, env, token, map[string]interface{}{
		"name":          "Bê tông M300",
		"unit_name":     "m3",
		"default_price": 1200000,
		"is_main":       true,
	})
	cementID := createMaterial(t, env, token, map[string]interface{}{
		"name":          "Xi măng PC40",
		"unit_name":     "kg",
		"default_price": 1500,
	})
	sandID := createMaterial(t, env, token, map[string]interface{}{
		"name":          "Cát vàng",
		"unit_name":     "m3",
		"default_price": 300000,
	})

	// composition: 1 m3 concrete needs 350 kg cement and 0.45 m3 sand
	for _, comp := range []map[string]interface{}{
		{"sub_material_id": cementID, "ratio": 350},
		{"sub_material_id": sandID, "ratio": 0.45},
	} {
		w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/materials/"+mainID+"/compositions", comp, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("create composition failed: %d %s", w.Code, w.Body.String())
		}
	}

	ticketID := createTicket(t, env, token)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets/"+ticketID+"/items",
		map[string]interface{}{"material_type_id": mainID, "quantity": 10, "vat_rate": 8}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create main item failed: %d %s", w.Code, w.Body.String())
	}

	// the main line plus two derived sub-material lines
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/supply-tickets/"+ticketID+"/items", nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}

	derivedQty := map[string]float64{}
	for _, raw := range items {
		it := raw.(map[string]interface{})
		if it["is_derived"].(bool) {
			derivedQty[it["material_type_id"].(string)] = it["quantity"].(float64)
		}
	}
	if derivedQty[cementID] != 3500 {
		t.Fatalf("cement qty = %v, want 3500", derivedQty[cementID])
	}
	if derivedQty[sandID] != 4.5 {
		t.Fatalf("sand qty = %v, want 4.5", derivedQty[sandID])
	}

	// derived lines cannot be edited directly
	for _, raw := range items {
		it := raw.(map[string]interface{})
		if !it["is_derived"].(bool) {
			continue
		}
		w = testutil.DoRequest(env.Router, http.MethodPut,
			"/api/v1/supply-tickets/"+ticketID+"/items/"+it["id"].(string),
			map[string]interface{}{"material_type_id": cementID, "quantity": 1}, token)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 editing derived line, got %d", w.Code)
		}
		break
	}
}

func TestMainItemUpdateRederivesSubLines(t *testing.T) {
	env := setupTicketTest(t)
	token := testutil.DefaultTestToken()

	mainID := createMaterial(t, env, token, map[string]interface{}{
		"name": "Vữa xây", "unit_name": "m3", "default_price": 900000, "is_main": true,
	})
	subID := createMaterial(t, env, token, map[string]interface{}{
		"name": "Xi măng PC30", "unit_name": "kg", "default_price": 1400,
	})
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/materials/"+mainID+"/compositions",
		map[string]interface{}{"sub_material_id": subID, "ratio": 0.2}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create composition failed: %d %s", w.Code, w.Body.String())
	}

	ticketID := createTicket(t, env, token)
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets/"+ticketID+"/items",
		map[string]interface{}{"material_type_id": mainID, "quantity": 100}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create main item failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	itemID := resp["data"].(map[string]interface{})["id"].(string)

	// 100 * 0.2 = 20
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/supply-tickets/"+ticketID+"/items", nil, token)
	resp = testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}

	// update the parent quantity: the derived line follows
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supply-tickets/"+ticketID+"/items/"+itemID,
		map[string]interface{}{"material_type_id": mainID, "quantity": 50}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update main item failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/supply-tickets/"+ticketID+"/items", nil, token)
	resp = testutil.ParseResponse(w)
	items = resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 lines after update, got %d", len(items))
	}
	for _, raw := range items {
		it := raw.(map[string]interface{})
		if it["is_derived"].(bool) && it["quantity"].(float64) != 10 {
			t.Fatalf("derived qty after update = %v, want 10", it["quantity"])
		}
	}
}

func TestTicketApprovalFlow(t *testing.T) {
	env := setupTicketTest(t)
	creatorToken := testutil.GenerateTestToken("creator-001", "Creator", "creator@test.com", []string{planentity.RoleSupplyStaff})
	leadToken := testutil.GenerateTestToken("lead-001", "Lead", "lead@test.com", []string{planentity.RoleTeamLead})
	managerToken := testutil.GenerateTestToken("manager-001", "Manager", "manager@test.com", []string{planentity.RoleDeptManager})

	ticketID := createTicket(t, env, creatorToken)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets/"+ticketID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}

	// reject without reason is refused
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supply-tickets/"+ticketID+"/approve",
		map[string]interface{}{"approved": false}, leadToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without reject reason, got %d", w.Code)
	}

	// lead forwards to the manager
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supply-tickets/"+ticketID+"/approve",
		map[string]interface{}{"approved": true, "next_approver_id": "manager-001"}, leadToken)
	if w.Code != http.StatusOK {
		t.Fatalf("lead approve failed: %d %s", w.Code, w.Body.String())
	}

	// manager's approval is terminal on the two-tier ladder
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/supply-tickets/"+ticketID+"/approve",
		map[string]interface{}{"approved": true}, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("manager approve failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/supply-tickets/"+ticketID, nil, creatorToken)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"].(float64) != float64(entity.TicketStatusApproved) {
		t.Fatalf("status = %v, want approved", data["status"])
	}

	// approved tickets lock their line items
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/supply-tickets/"+ticketID+"/items",
		map[string]interface{}{"material_type_id": "any", "quantity": 1}, creatorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 editing an approved ticket, got %d", w.Code)
	}
}
