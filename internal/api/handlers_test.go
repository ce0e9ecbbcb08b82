package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rachaconta/backend/internal/service"
	"github.com/rachaconta/backend/internal/settlement"
	"github.com/rachaconta/backend/internal/storage/sqlite"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "rachaconta-api-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	handler := NewHandler(
		service.NewGroupService(store),
		service.NewExpenseService(store, nil),
		service.NewDebtService(store, nil),
		settlement.NewFormatter(settlement.BRL),
	)
	server := httptest.NewServer(NewRouter(handler, nil, []string{"*"}))
	t.Cleanup(server.Close)

	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func createGroup(t *testing.T, server *httptest.Server) groupResponse {
	t.Helper()
	var group groupResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/groups", createGroupRequest{
		Name:    "Churrasco",
		Members: []string{"Ana", "Bruno", "Carla"},
	}, &group)
	if status != http.StatusCreated {
		t.Fatalf("create group status = %d, want 201", status)
	}
	return group
}

func TestGroupEndpoints(t *testing.T) {
	server := setupTestServer(t)

	group := createGroup(t, server)
	if group.ID == "" {
		t.Fatal("expected group ID")
	}
	if len(group.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(group.Members))
	}
	if group.AdminID != group.Members[0].ID {
		t.Errorf("admin = %s, want first member", group.AdminID)
	}

	var fetched groupResponse
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/"+group.ID, nil, &fetched); status != http.StatusOK {
		t.Fatalf("get group status = %d, want 200", status)
	}
	if fetched.Name != "Churrasco" {
		t.Errorf("name = %s, want Churrasco", fetched.Name)
	}

	var listed []groupResponse
	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups", nil, &listed); status != http.StatusOK {
		t.Fatalf("list groups status = %d, want 200", status)
	}
	if len(listed) != 1 {
		t.Errorf("expected 1 group, got %d", len(listed))
	}

	if status := doJSON(t, http.MethodGet, server.URL+"/api/groups/nonexistent", nil, nil); status != http.StatusNotFound {
		t.Errorf("get unknown group status = %d, want 404", status)
	}

	if status := doJSON(t, http.MethodPost, server.URL+"/api/groups", createGroupRequest{Name: ""}, nil); status != http.StatusBadRequest {
		t.Errorf("create invalid group status = %d, want 400", status)
	}
}

func TestExpenseAndDebtEndpoints(t *testing.T) {
	server := setupTestServer(t)
	group := createGroup(t, server)
	ana := group.Members[0]

	var expense expenseResponse
	status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/groups/%s/expenses", server.URL, group.ID), addExpenseRequest{
		PayerID:     ana.ID,
		Amount:      "90.00",
		Description: "Carne",
	}, &expense)
	if status != http.StatusCreated {
		t.Fatalf("add expense status = %d, want 201", status)
	}
	if expense.Display != "R$ 90,00" {
		t.Errorf("display = %q, want R$ 90,00", expense.Display)
	}

	var debts []debtResponse
	if status := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/groups/%s/debts", server.URL, group.ID), nil, &debts); status != http.StatusOK {
		t.Fatalf("list debts status = %d, want 200", status)
	}
	if len(debts) != 2 {
		t.Fatalf("expected 2 debts, got %d", len(debts))
	}
	for _, d := range debts {
		if d.CreditorID != ana.ID {
			t.Errorf("creditor = %s, want %s", d.CreditorID, ana.ID)
		}
		if d.Amount != "30.00" {
			t.Errorf("amount = %s, want 30.00", d.Amount)
		}
		if d.Status != "pending" {
			t.Errorf("status = %s, want pending", d.Status)
		}
		if d.Display != "R$ 30,00" {
			t.Errorf("display = %q, want R$ 30,00", d.Display)
		}
	}

	var balances []balanceResponse
	if status := doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/groups/%s/balances", server.URL, group.ID), nil, &balances); status != http.StatusOK {
		t.Fatalf("balances status = %d, want 200", status)
	}
	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	if balances[0].Net != "60.00" {
		t.Errorf("Ana net = %s, want 60.00", balances[0].Net)
	}

	t.Run("settle accept", func(t *testing.T) {
		var settled debtResponse
		status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/debts/%s/settle", server.URL, debts[0].ID), settleDebtRequest{Accept: true}, &settled)
		if status != http.StatusOK {
			t.Fatalf("settle status = %d, want 200", status)
		}
		if settled.Status != "settled" {
			t.Errorf("status = %s, want settled", settled.Status)
		}
	})

	t.Run("settle terminal conflicts", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/debts/%s/settle", server.URL, debts[0].ID), settleDebtRequest{Accept: false}, nil)
		if status != http.StatusConflict {
			t.Errorf("settle terminal status = %d, want 409", status)
		}
	})

	t.Run("settle unknown debt", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, server.URL+"/api/debts/nonexistent/settle", settleDebtRequest{Accept: true}, nil)
		if status != http.StatusNotFound {
			t.Errorf("settle unknown status = %d, want 404", status)
		}
	})

	t.Run("invalid expense payloads", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/groups/%s/expenses", server.URL, group.ID)
		if status := doJSON(t, http.MethodPost, url, addExpenseRequest{PayerID: ana.ID, Amount: "abc"}, nil); status != http.StatusBadRequest {
			t.Errorf("bad amount status = %d, want 400", status)
		}
		if status := doJSON(t, http.MethodPost, url, addExpenseRequest{PayerID: ana.ID, Amount: "-1"}, nil); status != http.StatusBadRequest {
			t.Errorf("negative amount status = %d, want 400", status)
		}
		if status := doJSON(t, http.MethodPost, url, addExpenseRequest{PayerID: "stranger", Amount: "10"}, nil); status != http.StatusBadRequest {
			t.Errorf("stranger payer status = %d, want 400", status)
		}
	})
}

func TestDebtsReplacedOnNewExpense(t *testing.T) {
	server := setupTestServer(t)
	group := createGroup(t, server)
	ana, bruno := group.Members[0], group.Members[1]

	addExpense := func(payerID, amount string) {
		t.Helper()
		url := fmt.Sprintf("%s/api/groups/%s/expenses", server.URL, group.ID)
		if status := doJSON(t, http.MethodPost, url, addExpenseRequest{PayerID: payerID, Amount: amount}, nil); status != http.StatusCreated {
			t.Fatalf("add expense status = %d, want 201", status)
		}
	}

	addExpense(ana.ID, "90.00")

	var debts []debtResponse
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/groups/%s/debts", server.URL, group.ID), nil, &debts)
	doJSON(t, http.MethodPost, fmt.Sprintf("%s/api/debts/%s/settle", server.URL, debts[0].ID), settleDebtRequest{Accept: true}, nil)

	addExpense(bruno.ID, "30.00")

	var after []debtResponse
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/groups/%s/debts", server.URL, group.ID), nil, &after)
	for _, d := range after {
		if d.Status != "pending" {
			t.Errorf("status = %s, want pending after recompute", d.Status)
		}
		if d.ID == debts[0].ID {
			t.Error("settled debt survived recompute")
		}
	}
}
