package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"simpeg/internal/app/server"
	"simpeg/internal/domain/auth"
	"simpeg/internal/platform/config"
	"simpeg/internal/platform/db"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		Addr:                 ":0",
		DatabaseURL:          dbURL,
		JWTSecret:            "test-secret",
		Environment:          "test",
		SeedAdminUsername:    "admin",
		SeedAdminEmail:       "admin@test.local",
		SeedAdminPassword:    "ChangeMe123!",
		BadgePrefix:          "EMP",
		WorkdayStart:         "08:00",
		LeaveAllowRedecision: true,
		SessionTTL:           8 * time.Hour,
		MaxBodyBytes:         1048576,
		RateLimitPerMinute:   1000,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server) {
	return startAppWith(t, nil)
}

func startAppWith(t *testing.T, mutate func(*config.Config)) (*server.App, *httptest.Server) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	if mutate != nil {
		mutate(&cfg)
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		t.Fatalf("db connect failed: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, "../../../../migrations"); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	app := server.New(cfg, pool)
	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts
}

func TestEmployeeLifecycleJourney(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("journey%d", suffix)
	password := "Budi12345!"
	resp := postJSON(t, client, ts.URL+"/api/v1/admin/employees", adminToken, map[string]any{
		"username":   username,
		"email":      fmt.Sprintf("%s@example.com", username),
		"firstName":  "Budi",
		"lastName":   "Santoso",
		"password":   password,
		"position":   "Engineer",
		"department": "IT",
		"salary":     4200,
		"joinDate":   "2026-01-05",
	})
	var created map[string]any
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode provision response: %v", err)
	}
	badge, _ := created["badgeNo"].(string)
	if badge == "" {
		t.Fatal("expected badge number on provisioned employee")
	}

	empToken := login(t, client, ts.URL, username, password)

	// Staff accounts are not employees.
	getJSONStatus(t, client, ts.URL+"/api/v1/attendance/today", adminToken, http.StatusForbidden)

	// Mark attendance twice the same day; the second write replaces the
	// first instead of adding a row.
	postJSON(t, client, ts.URL+"/api/v1/attendance", empToken, map[string]any{
		"checkIn": "07:55",
		"status":  "present",
	})
	markResp := postJSON(t, client, ts.URL+"/api/v1/attendance", empToken, map[string]any{
		"checkOut": "17:05",
		"status":   "present",
		"notes":    "normal day",
	})
	var mark map[string]any
	if err := json.Unmarshal(markResp.Data, &mark); err != nil {
		t.Fatalf("failed to decode attendance response: %v", err)
	}
	if in, _ := mark["checkIn"].(string); in == "" {
		t.Fatal("expected second mark to keep the stored check-in")
	}

	historyResp := getJSON(t, client, ts.URL+"/api/v1/attendance/history", empToken)
	var history struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(historyResp.Data, &history); err != nil {
		t.Fatalf("failed to decode history response: %v", err)
	}
	if history.Total != 1 {
		t.Fatalf("expected exactly one attendance row, got %d", history.Total)
	}

	// Leave request: submit as employee, approve as admin.
	submitResp := postJSON(t, client, ts.URL+"/api/v1/leave/requests", empToken, map[string]any{
		"type":      "annual",
		"startDate": "2026-09-07",
		"endDate":   "2026-09-09",
		"reason":    "family visit",
	})
	var request map[string]any
	if err := json.Unmarshal(submitResp.Data, &request); err != nil {
		t.Fatalf("failed to decode leave response: %v", err)
	}
	if days, _ := request["durationDays"].(float64); days != 3 {
		t.Fatalf("expected inclusive duration of 3 days, got %v", request["durationDays"])
	}
	requestID := int64(request["id"].(float64))

	// While the request is pending it shows up on the admin dashboard
	// queue alongside the counters.
	pendingDash := getJSON(t, client, ts.URL+"/api/v1/admin/dashboard", adminToken)
	var queue struct {
		PendingLeaves   int              `json:"pendingLeaves"`
		PendingRequests []map[string]any `json:"pendingRequests"`
	}
	if err := json.Unmarshal(pendingDash.Data, &queue); err != nil {
		t.Fatalf("failed to decode admin dashboard: %v", err)
	}
	if queue.PendingLeaves < 1 {
		t.Fatalf("expected at least one pending leave, got %d", queue.PendingLeaves)
	}
	foundPending := false
	for _, req := range queue.PendingRequests {
		if id, _ := req["id"].(float64); int64(id) == requestID {
			foundPending = true
		}
	}
	if !foundPending {
		t.Fatal("expected the submitted request in the dashboard pending queue")
	}

	decideResp := postJSON(t, client, ts.URL+fmt.Sprintf("/api/v1/admin/leave/requests/%d/decision", requestID), adminToken, map[string]any{
		"decision": "approve",
		"notes":    "enjoy",
	})
	var decided map[string]any
	if err := json.Unmarshal(decideResp.Data, &decided); err != nil {
		t.Fatalf("failed to decode decision response: %v", err)
	}
	if status, _ := decided["status"].(string); status != "approved" {
		t.Fatalf("expected approved, got %v", decided["status"])
	}
	if decided["decidedBy"] == nil {
		t.Fatal("expected decision to stamp the acting admin")
	}

	// With re-decision allowed a later ruling overwrites the first.
	redecideResp := postJSON(t, client, ts.URL+fmt.Sprintf("/api/v1/admin/leave/requests/%d/decision", requestID), adminToken, map[string]any{
		"decision": "reject",
		"notes":    "coverage conflict",
	})
	var redecided map[string]any
	if err := json.Unmarshal(redecideResp.Data, &redecided); err != nil {
		t.Fatalf("failed to decode second decision response: %v", err)
	}
	if status, _ := redecided["status"].(string); status != "rejected" {
		t.Fatalf("expected second decision to overwrite status, got %v", redecided["status"])
	}
	if redecided["decidedBy"] == nil {
		t.Fatal("expected second decision to stamp the acting admin")
	}

	// Salary: admin records a month, employee sees it; repeat save for
	// the same month replaces the row and recomputes the total.
	employeeID := int64(created["id"].(float64))
	postJSON(t, client, ts.URL+"/api/v1/admin/salaries", adminToken, map[string]any{
		"employeeId":  employeeID,
		"month":       "2026-08",
		"basicSalary": 4000,
		"allowance":   500,
	})
	salaryResp := postJSON(t, client, ts.URL+"/api/v1/admin/salaries", adminToken, map[string]any{
		"employeeId":  employeeID,
		"month":       "2026-08",
		"basicSalary": 4000,
		"allowance":   500,
		"bonus":       250,
		"deduction":   100,
	})
	var salaryRec map[string]any
	if err := json.Unmarshal(salaryResp.Data, &salaryRec); err != nil {
		t.Fatalf("failed to decode salary response: %v", err)
	}
	if total, _ := salaryRec["totalSalary"].(float64); total != 4650 {
		t.Fatalf("expected recomputed total 4650, got %v", salaryRec["totalSalary"])
	}

	ownSalary := getJSON(t, client, ts.URL+"/api/v1/salary", empToken)
	var ownPayload struct {
		Salaries []map[string]any `json:"salaries"`
	}
	if err := json.Unmarshal(ownSalary.Data, &ownPayload); err != nil {
		t.Fatalf("failed to decode own salary response: %v", err)
	}
	if len(ownPayload.Salaries) != 1 {
		t.Fatalf("expected one salary row, got %d", len(ownPayload.Salaries))
	}

	// Dashboards on both sides; the admin one carries the month's
	// attendance tally, which includes today's mark.
	getJSON(t, client, ts.URL+"/api/v1/dashboard", empToken)
	adminDash := getJSON(t, client, ts.URL+"/api/v1/admin/dashboard", adminToken)
	var dash struct {
		MonthAttendance struct {
			Total int `json:"total"`
		} `json:"monthAttendance"`
	}
	if err := json.Unmarshal(adminDash.Data, &dash); err != nil {
		t.Fatalf("failed to decode admin dashboard: %v", err)
	}
	if dash.MonthAttendance.Total < 1 {
		t.Fatalf("expected monthly attendance tally to count today's mark, got %d", dash.MonthAttendance.Total)
	}

	// Monthly export in both formats, covering the row marked above.
	month := time.Now().UTC().Format("2006-01")
	csvBody := getRaw(t, client, ts.URL+"/api/v1/admin/attendance/export?month="+month+"&format=csv", adminToken, http.StatusOK)
	if !bytes.Contains(csvBody, []byte(badge)) {
		t.Fatal("expected csv export to list the employee badge")
	}
	xlsxBody := getRaw(t, client, ts.URL+"/api/v1/admin/attendance/export?month="+month+"&format=xlsx", adminToken, http.StatusOK)
	if !bytes.HasPrefix(xlsxBody, []byte("PK")) {
		t.Fatal("expected xlsx export to be a zip container")
	}

	_ = app
}

func TestLeaveRedecisionDisabled(t *testing.T) {
	_, ts := startAppWith(t, func(cfg *config.Config) {
		cfg.LeaveAllowRedecision = false
	})
	client := ts.Client()

	adminToken := login(t, client, ts.URL, "admin", "ChangeMe123!")

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("final%d", suffix)
	password := "Final12345!"
	postJSON(t, client, ts.URL+"/api/v1/admin/employees", adminToken, map[string]any{
		"username":   username,
		"email":      fmt.Sprintf("%s@example.com", username),
		"firstName":  "Sari",
		"password":   password,
		"position":   "Analyst",
		"department": "Finance",
		"salary":     3800,
		"joinDate":   "2026-02-02",
	})
	empToken := login(t, client, ts.URL, username, password)

	submitResp := postJSON(t, client, ts.URL+"/api/v1/leave/requests", empToken, map[string]any{
		"type":      "sick",
		"startDate": "2026-09-14",
		"endDate":   "2026-09-15",
		"reason":    "flu",
	})
	var request map[string]any
	if err := json.Unmarshal(submitResp.Data, &request); err != nil {
		t.Fatalf("failed to decode leave response: %v", err)
	}
	requestID := int64(request["id"].(float64))
	decisionURL := ts.URL + fmt.Sprintf("/api/v1/admin/leave/requests/%d/decision", requestID)

	postJSON(t, client, decisionURL, adminToken, map[string]any{"decision": "approve"})

	// The first ruling is final; a second one conflicts and changes
	// nothing.
	conflict := postJSONStatus(t, client, decisionURL, adminToken, map[string]any{
		"decision": "reject",
	}, http.StatusConflict)
	errBody, _ := conflict.Error.(map[string]any)
	if code, _ := errBody["code"].(string); code != "already_decided" {
		t.Fatalf("expected already_decided, got %v", conflict.Error)
	}

	stillApproved := getJSON(t, client, ts.URL+"/api/v1/leave/requests", empToken)
	var own struct {
		Requests []map[string]any `json:"requests"`
	}
	if err := json.Unmarshal(stillApproved.Data, &own); err != nil {
		t.Fatalf("failed to decode own requests: %v", err)
	}
	for _, req := range own.Requests {
		if id, _ := req["id"].(float64); int64(id) == requestID {
			if status, _ := req["status"].(string); status != "approved" {
				t.Fatalf("expected rejected re-decision to leave status approved, got %v", req["status"])
			}
			return
		}
	}
	t.Fatal("expected to find the decided request in the employee's list")
}

func TestUnlinkedUserIsForcedOut(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()
	ctx := context.Background()

	suffix := time.Now().UnixNano()
	username := fmt.Sprintf("orphan%d", suffix)
	password := "Orphan123!"
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := app.DB.Exec(ctx, `
    INSERT INTO users (username, email, first_name, password_hash, is_staff, is_active)
    VALUES ($1, $2, 'Orphan', $3, false, true)
  `, username, fmt.Sprintf("%s@example.com", username), hash); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token := login(t, client, ts.URL, username, password)

	// An employee-scoped route forces the orphaned account out.
	getJSONStatus(t, client, ts.URL+"/api/v1/attendance/today", token, http.StatusUnauthorized)

	// The session was revoked, so even a benign route now rejects it.
	getJSONStatus(t, client, ts.URL+"/api/v1/auth/me", token, http.StatusUnauthorized)
}

func TestPublicTeamPage(t *testing.T) {
	app, ts := startApp(t)
	client := ts.Client()
	ctx := context.Background()

	name := fmt.Sprintf("Dev %d", time.Now().UnixNano())
	if _, err := app.DB.Exec(ctx, `
    INSERT INTO developers (name, role, rank, is_active)
    VALUES ($1, 'Backend', 1, true)
  `, name); err != nil {
		t.Fatalf("failed to seed developer: %v", err)
	}

	resp := getJSON(t, client, ts.URL+"/api/v1/team", "")
	var payload struct {
		Developers []map[string]any `json:"developers"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode team response: %v", err)
	}
	found := false
	for _, dev := range payload.Developers {
		if dev["name"] == name {
			found = true
		}
	}
	if !found {
		t.Fatal("expected seeded developer on the public team page")
	}
}

func login(t *testing.T, client *http.Client, baseURL, username, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatal("expected token")
	}
	return token
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) envelope {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(raw))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(payload))
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func getRaw(t *testing.T, client *http.Client, url, token string, want int) []byte {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
	return raw
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func getJSONStatus(t *testing.T, client *http.Client, url, token string, want int) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}
