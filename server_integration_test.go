package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"manager/pkg/store"
)

// helper to perform JSON requests against the engine
func performRequest(r http.Handler, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	OK    bool            `json:"ok"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope %q: %v", rec.Body.String(), err)
	}
	return env
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &Config{}
	cfg.Orders.LedgerOnDone = true
	cfg.Web.Root = "public"
	cfg.Auth.Scheme = "plain"

	log := logrus.New()
	log.SetOutput(io.Discard)

	app, err := buildApp(cfg, store.OpenVolatile(), log)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	setupRoutes(r, app)
	r.NoRoute(spaFallback(cfg.Web.Root))
	return r
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func TestHealthRoute(t *testing.T) {
	r := setupTestServer(t)
	resp := performRequest(r, http.MethodGet, "/", nil)
	if resp.Code != 200 || resp.Body.String() != "Manager 1.0 API OK" {
		t.Fatalf("health failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestLoginFlow(t *testing.T) {
	r := setupTestServer(t)

	// seeded admin
	resp := performRequest(r, http.MethodPost, "/api/login", jsonBody(t, map[string]string{"login": "Gracjan", "password": "Gracjan33201"}))
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	var id struct {
		Login string `json:"login"`
		Role  string `json:"role"`
	}
	_ = json.Unmarshal(env.Data, &id)
	if !env.OK || id.Login != "Gracjan" || id.Role != "admin" {
		t.Fatalf("unexpected login payload: %s", resp.Body.String())
	}
	if bytes.Contains(env.Data, []byte("password")) || bytes.Contains(env.Data, []byte("Gracjan33201")) {
		t.Fatalf("login response leaks credentials: %s", env.Data)
	}

	// wrong password: failure envelope, no user data
	resp = performRequest(r, http.MethodPost, "/api/login", jsonBody(t, map[string]string{"login": "Gracjan", "password": "wrong"}))
	if resp.Code != 400 {
		t.Fatalf("expected 400 for bad credentials, got %d", resp.Code)
	}
	env = decodeEnvelope(t, resp)
	if env.OK || env.Error == "" || len(env.Data) != 0 {
		t.Fatalf("unexpected failure envelope: %s", resp.Body.String())
	}
}

func TestUserFlow(t *testing.T) {
	r := setupTestServer(t)

	resp := performRequest(r, http.MethodPost, "/api/users", jsonBody(t, map[string]string{"login": "alice", "password": "pw"}))
	if resp.Code != 200 {
		t.Fatalf("create user failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	var created struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	_ = json.Unmarshal(env.Data, &created)
	if created.ID == "" || created.Role != "employee" {
		t.Fatalf("unexpected created user: %s", env.Data)
	}
	if bytes.Contains(env.Data, []byte(`"password"`)) {
		t.Fatalf("user payload must not serialize the password: %s", env.Data)
	}

	// duplicate login rejected
	resp = performRequest(r, http.MethodPost, "/api/users", jsonBody(t, map[string]string{"login": "alice", "password": "pw2"}))
	if resp.Code != 400 {
		t.Fatalf("expected 400 for duplicate login, got %d body=%s", resp.Code, resp.Body.String())
	}

	// profile
	resp = performRequest(r, http.MethodPost, "/api/users/alice/profile", jsonBody(t, map[string]any{"fullname": "Alice A", "phone": "123"}))
	if resp.Code != 200 {
		t.Fatalf("set profile failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	env = decodeEnvelope(t, resp)
	var updated struct {
		Fullname    string         `json:"fullname"`
		ProfileDone bool           `json:"profileDone"`
		Profile     map[string]any `json:"profile"`
	}
	_ = json.Unmarshal(env.Data, &updated)
	if !updated.ProfileDone || updated.Fullname != "Alice A" || updated.Profile["phone"] != "123" {
		t.Fatalf("unexpected profile payload: %s", env.Data)
	}

	resp = performRequest(r, http.MethodGet, "/api/users", nil)
	if resp.Code != 200 {
		t.Fatalf("list users failed status=%d", resp.Code)
	}
}

func TestOrderToggleWritesLedger(t *testing.T) {
	r := setupTestServer(t)

	resp := performRequest(r, http.MethodPost, "/api/orders", jsonBody(t, map[string]any{"title": "Repair", "amount": 500}))
	if resp.Code != 200 {
		t.Fatalf("create order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	var order struct {
		ID   string `json:"id"`
		Done bool   `json:"done"`
	}
	_ = json.Unmarshal(env.Data, &order)
	if order.ID == "" || order.Done {
		t.Fatalf("unexpected created order: %s", env.Data)
	}

	resp = performRequest(r, http.MethodPost, "/api/orders/"+order.ID+"/toggle", nil)
	env = decodeEnvelope(t, resp)
	_ = json.Unmarshal(env.Data, &order)
	if resp.Code != 200 || !order.Done {
		t.Fatalf("toggle failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	resp = performRequest(r, http.MethodGet, "/api/finance", nil)
	env = decodeEnvelope(t, resp)
	var summary struct {
		Sum     float64 `json:"sum"`
		History []struct {
			Type   string  `json:"type"`
			Amount float64 `json:"amount"`
		} `json:"history"`
	}
	_ = json.Unmarshal(env.Data, &summary)
	if summary.Sum != 500 || len(summary.History) != 1 || summary.History[0].Type != "income" || summary.History[0].Amount != 500 {
		t.Fatalf("unexpected finance summary after toggle: %s", env.Data)
	}

	// toggle back: done=false and no new ledger entry
	resp = performRequest(r, http.MethodPost, "/api/orders/"+order.ID+"/toggle", nil)
	env = decodeEnvelope(t, resp)
	_ = json.Unmarshal(env.Data, &order)
	if resp.Code != 200 || order.Done {
		t.Fatalf("second toggle failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/finance", nil)
	env = decodeEnvelope(t, resp)
	_ = json.Unmarshal(env.Data, &summary)
	if len(summary.History) != 1 {
		t.Fatalf("toggling back must not write another entry: %s", env.Data)
	}

	// unknown id
	resp = performRequest(r, http.MethodPost, "/api/orders/o_missing/toggle", nil)
	if resp.Code != 400 {
		t.Fatalf("expected 400 for unknown order id, got %d", resp.Code)
	}
}

func TestFinanceValidationAndOrdering(t *testing.T) {
	r := setupTestServer(t)

	resp := performRequest(r, http.MethodPost, "/api/finance", jsonBody(t, map[string]any{"amount": "abc"}))
	if resp.Code != 400 {
		t.Fatalf("expected 400 for bad amount, got %d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/finance", nil)
	env := decodeEnvelope(t, resp)
	var summary struct {
		History []json.RawMessage `json:"history"`
	}
	_ = json.Unmarshal(env.Data, &summary)
	if len(summary.History) != 0 {
		t.Fatalf("rejected amount must not create a record: %s", env.Data)
	}

	for i := 0; i < 5; i++ {
		resp = performRequest(r, http.MethodPost, "/api/finance", jsonBody(t, map[string]any{"amount": float64(i + 1), "note": fmt.Sprintf("n%d", i)}))
		if resp.Code != 200 {
			t.Fatalf("record finance failed status=%d", resp.Code)
		}
	}
	resp = performRequest(r, http.MethodGet, "/api/finance", nil)
	env = decodeEnvelope(t, resp)
	var ordered struct {
		Sum     float64 `json:"sum"`
		History []struct {
			Note string `json:"note"`
		} `json:"history"`
	}
	_ = json.Unmarshal(env.Data, &ordered)
	if ordered.Sum != 15 || len(ordered.History) != 5 || ordered.History[0].Note != "n4" || ordered.History[4].Note != "n0" {
		t.Fatalf("unexpected finance ordering: %s", env.Data)
	}
}

func TestFinanceRejectsNonFiniteAmountAndStaysReadable(t *testing.T) {
	r := setupTestServer(t)

	for _, amount := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		resp := performRequest(r, http.MethodPost, "/api/finance", jsonBody(t, map[string]any{"amount": amount}))
		if resp.Code != 400 {
			t.Fatalf("expected 400 for amount %q, got %d body=%s", amount, resp.Code, resp.Body.String())
		}
		env := decodeEnvelope(t, resp)
		if env.OK || env.Error == "" {
			t.Fatalf("expected failure envelope for amount %q, got %s", amount, resp.Body.String())
		}
	}

	// the ledger must still marshal and keep the envelope shape afterwards
	resp := performRequest(r, http.MethodGet, "/api/finance", nil)
	if resp.Code != 200 || resp.Body.Len() == 0 {
		t.Fatalf("ledger unreadable after rejected amounts: status=%d body=%q", resp.Code, resp.Body.String())
	}
	env := decodeEnvelope(t, resp)
	var summary struct {
		Sum     float64           `json:"sum"`
		History []json.RawMessage `json:"history"`
	}
	_ = json.Unmarshal(env.Data, &summary)
	if !env.OK || summary.Sum != 0 || len(summary.History) != 0 {
		t.Fatalf("rejected amounts must not persist: %s", resp.Body.String())
	}
}

func TestProjectNotesScenario(t *testing.T) {
	r := setupTestServer(t)

	// missing name rejected
	resp := performRequest(r, http.MethodPost, "/api/projects", jsonBody(t, map[string]any{}))
	if resp.Code != 400 {
		t.Fatalf("expected 400 for project without name, got %d", resp.Code)
	}

	resp = performRequest(r, http.MethodPost, "/api/projects", jsonBody(t, map[string]string{"name": "Website"}))
	env := decodeEnvelope(t, resp)
	var project struct {
		ID    string   `json:"id"`
		Notes []string `json:"notes"`
	}
	_ = json.Unmarshal(env.Data, &project)
	if resp.Code != 200 || project.ID == "" || len(project.Notes) != 0 {
		t.Fatalf("unexpected created project: %s", resp.Body.String())
	}

	resp = performRequest(r, http.MethodPost, "/api/projects/"+project.ID+"/notes", jsonBody(t, map[string]string{"text": "call client"}))
	env = decodeEnvelope(t, resp)
	_ = json.Unmarshal(env.Data, &project)
	if resp.Code != 200 || len(project.Notes) != 1 || project.Notes[0] != "call client" {
		t.Fatalf("unexpected notes after first add: %s", env.Data)
	}

	resp = performRequest(r, http.MethodPost, "/api/projects/"+project.ID+"/notes", jsonBody(t, map[string]string{"text": "sent invoice"}))
	env = decodeEnvelope(t, resp)
	_ = json.Unmarshal(env.Data, &project)
	if len(project.Notes) != 2 || project.Notes[0] != "sent invoice" || project.Notes[1] != "call client" {
		t.Fatalf("unexpected notes after second add: %s", env.Data)
	}

	// empty text rejected
	resp = performRequest(r, http.MethodPost, "/api/projects/"+project.ID+"/notes", jsonBody(t, map[string]string{}))
	if resp.Code != 400 {
		t.Fatalf("expected 400 for empty note text, got %d", resp.Code)
	}
}

func TestTaskFilterAndEarningsSummary(t *testing.T) {
	r := setupTestServer(t)

	for _, body := range []map[string]string{
		{"title": "t1", "assignedTo": "alice"},
		{"title": "t2", "assignedTo": "bob"},
		{"title": "t3", "assignedTo": "alice"},
	} {
		resp := performRequest(r, http.MethodPost, "/api/tasks", jsonBody(t, body))
		if resp.Code != 200 {
			t.Fatalf("create task failed status=%d body=%s", resp.Code, resp.Body.String())
		}
	}

	resp := performRequest(r, http.MethodGet, "/api/tasks?user=alice", nil)
	env := decodeEnvelope(t, resp)
	var tasks []struct {
		AssignedTo string `json:"assignedTo"`
	}
	_ = json.Unmarshal(env.Data, &tasks)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks for alice, got %s", env.Data)
	}
	for _, task := range tasks {
		if task.AssignedTo != "alice" {
			t.Fatalf("filter returned foreign task: %s", env.Data)
		}
	}

	for _, body := range []map[string]any{
		{"user": "alice", "amount": 100},
		{"user": "bob", "amount": 40},
		{"user": "alice", "amount": 60},
	} {
		resp = performRequest(r, http.MethodPost, "/api/earnings", jsonBody(t, body))
		if resp.Code != 200 {
			t.Fatalf("record earning failed status=%d body=%s", resp.Code, resp.Body.String())
		}
	}

	resp = performRequest(r, http.MethodGet, "/api/earnings?user=alice", nil)
	env = decodeEnvelope(t, resp)
	var summary struct {
		Sum  float64           `json:"sum"`
		List []json.RawMessage `json:"list"`
	}
	_ = json.Unmarshal(env.Data, &summary)
	if summary.Sum != 160 || len(summary.List) != 2 {
		t.Fatalf("unexpected earnings summary for alice: %s", env.Data)
	}
}

func TestSPAFallback(t *testing.T) {
	r := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/some/client/route", nil)
	if resp.Code != 200 || !bytes.Contains(resp.Body.Bytes(), []byte("<html")) {
		t.Fatalf("spa fallback failed status=%d", resp.Code)
	}

	resp = performRequest(r, http.MethodGet, "/api/nope", nil)
	if resp.Code != 404 {
		t.Fatalf("expected 404 envelope for unknown api path, got %d", resp.Code)
	}
	env := decodeEnvelope(t, resp)
	if env.OK || env.Error == "" {
		t.Fatalf("unexpected api 404 body: %s", resp.Body.String())
	}
}
