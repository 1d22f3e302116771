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

func setupPlanTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil, testConfig(), zap.NewNop())
	h := NewPlanHandler(svcs.Plan)
	nh := NewNotificationHandler(svcs.Notification)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/plans", h.List)
	api.GET("/plans/:id", h.Get)
	api.POST("/plans", h.Create)
	api.PUT("/plans/:id", h.Update)
	api.DELETE("/plans/:id", h.Delete)
	api.POST("/plans/:id/submit", h.Submit)
	api.PUT("/plans/:id/approve", h.Approve)
	api.GET("/plans/:id/workloads", h.ListWorkloads)
	api.POST("/plans/:id/workloads", h.CreateWorkload)
	api.GET("/notifications", nh.List)
	api.PUT("/notifications/:id/read", nh.MarkRead)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedPlanTestData(t *testing.T, env *testutil.TestEnv) (constructionID string) {
	t.Helper()
	testutil.SeedTestUser(t, env.DB, "lead-001", "lead", "pass123", entity.RoleTeamLead)
	testutil.SeedTestUser(t, env.DB, "manager-001", "manager", "pass123", entity.RoleDeptManager)
	testutil.SeedTestUser(t, env.DB, "director-001", "director", "pass123", entity.RoleDirector)
	c := testutil.SeedTestConstruction(t, env.DB, "ct-001", "CT-0001", "Cầu vượt số 1")
	return c.ID
}

func createDraftPlan(t *testing.T, env *testutil.TestEnv, token, constructionID string) string {
	t.Helper()
	body := map[string]interface{}{
		"name":            "Phương án thi công mố cầu",
		"construction_id": constructionID,
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create plan failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["id"].(string)
}

func planStatus(t *testing.T, env *testutil.TestEnv, token, id string) float64 {
	t.Helper()
	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/plans/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get plan failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["status"].(float64)
}

func TestPlanApprovalFlow(t *testing.T) {
	env := setupPlanTest(t)
	creatorToken := testutil.GenerateTestToken("creator-001", "Creator", "creator@test.com", []string{entity.RoleProgressStaff})
	leadToken := testutil.GenerateTestToken("lead-001", "Lead", "lead@test.com", []string{entity.RoleTeamLead})
	managerToken := testutil.GenerateTestToken("manager-001", "Manager", "manager@test.com", []string{entity.RoleDeptManager})
	directorToken := testutil.GenerateTestToken("director-001", "Director", "director@test.com", []string{entity.RoleDirector})

	constructionID := seedPlanTestData(t, env)
	planID := createDraftPlan(t, env, creatorToken, constructionID)

	// submit into the first queue
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusPendingLead) {
		t.Fatalf("status after submit = %v", got)
	}

	// approving a non-terminal tier without the next approver is a 400
	// and must not move the plan
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true}, leadToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without next approver, got %d: %s", w.Code, w.Body.String())
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusPendingLead) {
		t.Fatalf("status changed on failed approve: %v", got)
	}

	// lead approves forward to the manager
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true, "next_approver_id": "manager-001"}, leadToken)
	if w.Code != http.StatusOK {
		t.Fatalf("lead approve failed: %d %s", w.Code, w.Body.String())
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusPendingManager) {
		t.Fatalf("status after lead approve = %v", got)
	}

	// only the assigned approver may act
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true, "next_approver_id": "director-001"}, leadToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong approver, got %d", w.Code)
	}

	// manager forwards to the director
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true, "next_approver_id": "director-001"}, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("manager approve failed: %d %s", w.Code, w.Body.String())
	}

	// director's approval is terminal, no next approver needed
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true}, directorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("director approve failed: %d %s", w.Code, w.Body.String())
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusApproved) {
		t.Fatalf("status after director approve = %v", got)
	}

	// approved plans reject further approvals
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": true}, directorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 approving an approved plan, got %d", w.Code)
	}
}

func TestPlanRejectRequiresReason(t *testing.T) {
	env := setupPlanTest(t)
	creatorToken := testutil.GenerateTestToken("creator-001", "Creator", "creator@test.com", []string{entity.RoleProgressStaff})
	leadToken := testutil.GenerateTestToken("lead-001", "Lead", "lead@test.com", []string{entity.RoleTeamLead})

	constructionID := seedPlanTestData(t, env)
	planID := createDraftPlan(t, env, creatorToken, constructionID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}

	// rejection without a reason is a 400, no state change
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": false}, leadToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without reject reason, got %d", w.Code)
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusPendingLead) {
		t.Fatalf("status changed on failed reject: %v", got)
	}

	// rejection with a reason lands in rejected and stores the reason
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/plans/"+planID+"/approve",
		map[string]interface{}{"approved": false, "reject_reason": "Thiếu dự toán chi tiết"}, leadToken)
	if w.Code != http.StatusOK {
		t.Fatalf("reject failed: %d %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/plans/"+planID, nil, creatorToken)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"].(float64) != float64(entity.PlanStatusRejected) {
		t.Fatalf("status after reject = %v", data["status"])
	}
	if data["reject_reason"].(string) != "Thiếu dự toán chi tiết" {
		t.Fatalf("reject reason = %v", data["reject_reason"])
	}

	// a rejected plan can be revised and resubmitted
	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("resubmit failed: %d %s", w.Code, w.Body.String())
	}
	if got := planStatus(t, env, creatorToken, planID); got != float64(entity.PlanStatusPendingLead) {
		t.Fatalf("status after resubmit = %v", got)
	}
}

func TestPlanWorkloadAmountComputed(t *testing.T) {
	env := setupPlanTest(t)
	token := testutil.DefaultTestToken()

	constructionID := seedPlanTestData(t, env)
	planID := createDraftPlan(t, env, token, constructionID)

	body := map[string]interface{}{
		"quantity":   12.5,
		"unit_price": 200000,
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/workloads", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create workload failed: %d %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["amount"].(float64) != 2500000 {
		t.Fatalf("amount = %v, want 2500000", data["amount"])
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/plans/"+planID+"/workloads", nil, token)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["total_amount"].(float64) != 2500000 {
		t.Fatalf("total_amount = %v, want 2500000", data["total_amount"])
	}
}

func TestSubmittedPlanLocksLineItems(t *testing.T) {
	env := setupPlanTest(t)
	creatorToken := testutil.GenerateTestToken("creator-001", "Creator", "creator@test.com", []string{entity.RoleProgressStaff})

	constructionID := seedPlanTestData(t, env)
	planID := createDraftPlan(t, env, creatorToken, constructionID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/workloads",
		map[string]interface{}{"quantity": 1, "unit_price": 1000}, creatorToken)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 editing a pending plan, got %d", w.Code)
	}
}

func TestApprovalCreatesNotification(t *testing.T) {
	env := setupPlanTest(t)
	creatorToken := testutil.GenerateTestToken("creator-001", "Creator", "creator@test.com", []string{entity.RoleProgressStaff})
	leadToken := testutil.GenerateTestToken("lead-001", "Lead", "lead@test.com", []string{entity.RoleTeamLead})

	constructionID := seedPlanTestData(t, env)
	planID := createDraftPlan(t, env, creatorToken, constructionID)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/plans/"+planID+"/submit",
		map[string]interface{}{"next_approver_id": "lead-001"}, creatorToken)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d %s", w.Code, w.Body.String())
	}

	// the assigned approver got an unread notification
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/notifications", nil, leadToken)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["unread_count"].(float64) != 1 {
		t.Fatalf("unread_count = %v, want 1", data["unread_count"])
	}
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(items))
	}
	n := items[0].(map[string]interface{})
	if n["entity_id"].(string) != planID {
		t.Fatalf("notification entity_id = %v", n["entity_id"])
	}

	// mark-as-read persists
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/notifications/"+n["id"].(string)+"/read", nil, leadToken)
	if w.Code != http.StatusOK {
		t.Fatalf("mark read failed: %d %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/notifications", nil, leadToken)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["unread_count"].(float64) != 0 {
		t.Fatalf("unread_count after mark read = %v, want 0", data["unread_count"])
	}

	// another user cannot mark it read
	w = testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/notifications/"+n["id"].(string)+"/read", nil, creatorToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 marking another user's notification, got %d", w.Code)
	}
}
