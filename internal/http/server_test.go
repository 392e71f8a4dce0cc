package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/internal/services"
	"fintrack/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	st := memory.New()
	balances := services.NewBalanceService(st)
	ledger := services.NewLedgerService(st, nil, balances)
	svc := Services{
		Ledger:   ledger,
		Reports:  services.NewReportService(st),
		Goals:    services.NewGoalService(st),
		Import:   services.NewImportService(ledger, st),
		Balances: balances,
		Store:    st,
	}

	s := NewServer(":0", svc, 64, time.Minute)
	ts := httptest.NewServer(s.Server.Handler)
	t.Cleanup(func() {
		ts.Close()
		s.cacheManager.Stop()
		s.rateLimiter.stop()
	})
	return s, ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, owner, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if owner != "" {
		req.Header.Set(ownerHeader, owner)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	return v
}

func TestHealthEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		status, _ := doRequest(t, ts, http.MethodGet, path, "", "")
		if status != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, status)
		}
	}
}

func TestMissingOwnerHeader(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodGet, "/transactions", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":2500},"category":"groceries","description":"weekly shop","date":"2024-03-05"}`)
	if status != http.StatusCreated {
		t.Fatalf("create = %d: %s", status, body)
	}
	created := decode[transactionJSON](t, body)
	if created.ID == "" {
		t.Error("created transaction should get an id")
	}
	if created.Type != "expense" {
		t.Errorf("type = %q, want derived expense", created.Type)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/transactions/"+created.ID, "u1", "")
	if status != http.StatusOK {
		t.Fatalf("get = %d: %s", status, body)
	}

	status, body = doRequest(t, ts, http.MethodPut, "/transactions/"+created.ID, "u1",
		`{"amount":{"cents":3000},"category":"groceries","description":"weekly shop","date":"2024-03-05"}`)
	if status != http.StatusOK {
		t.Fatalf("update = %d: %s", status, body)
	}
	updated := decode[transactionJSON](t, body)
	if updated.Amount.Cents != 3000 {
		t.Errorf("amount after update = %d, want 3000", updated.Amount.Cents)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/transactions", "u1", "")
	if status != http.StatusOK {
		t.Fatalf("list = %d", status)
	}
	if list := decode[[]transactionJSON](t, body); len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}

	status, _ = doRequest(t, ts, http.MethodDelete, "/transactions/"+created.ID, "u1", "")
	if status != http.StatusNoContent {
		t.Fatalf("delete = %d, want 204", status)
	}
	status, _ = doRequest(t, ts, http.MethodGet, "/transactions/"+created.ID, "u1", "")
	if status != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", status)
	}
}

func TestTransactionValidationRejected(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":2500},"category":"no-such","description":"x","date":"2024-03-05"}`)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", status)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":2500},"category":"groceries","description":"mine","date":"2024-03-05"}`)
	if status != http.StatusCreated {
		t.Fatalf("create = %d", status)
	}
	created := decode[transactionJSON](t, body)

	status, _ = doRequest(t, ts, http.MethodGet, "/transactions/"+created.ID, "u2", "")
	if status != http.StatusNotFound {
		t.Fatalf("cross-owner get = %d, want 404", status)
	}
	status, body = doRequest(t, ts, http.MethodGet, "/transactions", "u2", "")
	if status != http.StatusOK {
		t.Fatalf("list = %d", status)
	}
	if list := decode[[]transactionJSON](t, body); len(list) != 0 {
		t.Fatalf("other owner sees %d transactions, want 0", len(list))
	}
}

func TestCardBalanceRefreshedOnWrite(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, ts, http.MethodPost, "/cards", "u1",
		`{"name":"Visa","limit":{"cents":500000},"startingBalance":{"cents":10000},"startDate":"2024-01-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("create card = %d: %s", status, body)
	}
	card := decode[cardJSON](t, body)
	if card.Balance.Cents != 10000 {
		t.Errorf("fresh card balance = %d, want starting balance 10000", card.Balance.Cents)
	}

	status, _ = doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":2500},"category":"dining","description":"dinner","date":"2024-03-05","creditCard":true,"creditCardId":"`+card.ID+`"}`)
	if status != http.StatusCreated {
		t.Fatalf("create transaction = %d", status)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/cards/"+card.ID, "u1", "")
	if status != http.StatusOK {
		t.Fatalf("get card = %d", status)
	}
	card = decode[cardJSON](t, body)
	if card.Balance.Cents != 12500 {
		t.Errorf("card balance = %d, want 12500", card.Balance.Cents)
	}
}

func TestLoanItemStartsAtInitialAmount(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, ts, http.MethodPost, "/items", "u1",
		`{"type":"liability","category":"loan","name":"Car loan","initialAmount":{"cents":1000000},"date":"2024-01-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("create item = %d: %s", status, body)
	}
	item := decode[itemJSON](t, body)
	if item.Amount.Cents != 1000000 {
		t.Errorf("loan amount = %d, want initial 1000000", item.Amount.Cents)
	}
}

func TestGoalRecurringPropagation(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, ts, http.MethodPut, "/goals", "u1",
		`{"category":"groceries","year":2024,"month":3,"amount":{"cents":40000},"isRecurring":true}`)
	if status != http.StatusOK {
		t.Fatalf("set goal = %d: %s", status, body)
	}

	status, body = doRequest(t, ts, http.MethodGet, "/goals?year=2024", "u1", "")
	if status != http.StatusOK {
		t.Fatalf("list goals = %d", status)
	}
	goals := decode[[]goalJSON](t, body)
	if len(goals) != 10 {
		t.Fatalf("goal count = %d, want months 3..12", len(goals))
	}

	status, _ = doRequest(t, ts, http.MethodDelete, "/goals/groceries/2024/12", "u1", "")
	if status != http.StatusNoContent {
		t.Fatalf("delete goal = %d, want 204", status)
	}
	_, body = doRequest(t, ts, http.MethodGet, "/goals?year=2024", "u1", "")
	if goals := decode[[]goalJSON](t, body); len(goals) != 9 {
		t.Fatalf("goal count after delete = %d, want 9", len(goals))
	}
}

func TestReportEndpointAndCacheInvalidation(t *testing.T) {
	s, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":100000},"category":"salary","description":"march pay","date":"2024-03-01"}`)
	if status != http.StatusCreated {
		t.Fatalf("create = %d", status)
	}

	const path = "/reports/monthly-summary?start=2024-03-01&end=2024-03-31"
	status, body := doRequest(t, ts, http.MethodGet, path, "u1", "")
	if status != http.StatusOK {
		t.Fatalf("report = %d: %s", status, body)
	}
	summary := decode[map[string]any](t, body)
	totals := summary["totals"].(map[string]any)
	income := totals["totalIncome"].(map[string]any)
	if income["cents"].(float64) != 100000 {
		t.Errorf("totalIncome = %v, want 100000", income["cents"])
	}
	if s.reportCache.Size() != 1 {
		t.Fatalf("cache size = %d, want 1", s.reportCache.Size())
	}

	// A write must drop the cached report so the next read sees it.
	status, _ = doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":20000},"category":"groceries","description":"shop","date":"2024-03-10"}`)
	if status != http.StatusCreated {
		t.Fatalf("create = %d", status)
	}
	if s.reportCache.Size() != 0 {
		t.Fatalf("cache size after write = %d, want 0", s.reportCache.Size())
	}

	_, body = doRequest(t, ts, http.MethodGet, path, "u1", "")
	summary = decode[map[string]any](t, body)
	totals = summary["totals"].(map[string]any)
	expenses := totals["totalExpenses"].(map[string]any)
	if expenses["cents"].(float64) != 20000 {
		t.Errorf("totalExpenses = %v, want 20000", expenses["cents"])
	}
}

func TestReportCSVEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodPost, "/transactions", "u1",
		`{"amount":{"cents":20000},"category":"groceries","description":"shop","date":"2024-03-10"}`)
	if status != http.StatusCreated {
		t.Fatalf("create = %d", status)
	}

	req, err := http.NewRequest(http.MethodGet,
		ts.URL+"/reports/category-breakdown/csv?start=2024-03-01&end=2024-03-31", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(ownerHeader, "u1")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.HasPrefix(string(data), "start,end,category,name,amount\n") {
		t.Errorf("unexpected csv head: %q", string(data)[:50])
	}
}

func TestUnknownReportType(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodGet, "/reports/quarterly-vibes", "u1", "")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestInvertedRangeRejected(t *testing.T) {
	_, ts := newTestServer(t)

	status, _ := doRequest(t, ts, http.MethodGet,
		"/reports/monthly-summary?start=2024-03-31&end=2024-03-01", "u1", "")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", status)
	}
}

func TestImportEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	csv := "amount,category,date,description,type,creditCard,creditCardName,isCardPayment\n" +
		"1000.00,salary,2024-03-01,march pay,income,false,,false\n" +
		"25.00,dining,2024-03-05,dinner,expense,true,Visa,false\n" +
		"nope,dining,2024-03-06,bad row,expense,false,,false\n"

	status, body := doRequest(t, ts, http.MethodPost, "/import", "u1", csv)
	if status != http.StatusOK {
		t.Fatalf("import = %d: %s", status, body)
	}
	result := decode[map[string]any](t, body)
	if result["imported"].(float64) != 2 {
		t.Errorf("imported = %v, want 2", result["imported"])
	}
	if result["failed"].(float64) != 1 {
		t.Errorf("failed = %v, want 1", result["failed"])
	}

	// The card referenced by name must exist afterwards.
	status, body = doRequest(t, ts, http.MethodGet, "/cards", "u1", "")
	if status != http.StatusOK {
		t.Fatalf("list cards = %d", status)
	}
	cards := decode[[]cardJSON](t, body)
	if len(cards) != 1 || cards[0].Name != "Visa" {
		t.Fatalf("cards = %+v, want one auto-created Visa", cards)
	}
}
