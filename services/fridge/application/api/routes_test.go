package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/smartfridge/pkg/logger"
	"github.com/ghuser/smartfridge/services/fridge/application/api"
	appsvcs "github.com/ghuser/smartfridge/services/fridge/application/services"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
	"github.com/ghuser/smartfridge/services/fridge/infrastructure/persistence/memory"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svcs := &appsvcs.Services{
		Inventory: appsvcs.NewInventoryManager(memory.New(), logger.Nop()),
	}
	r := chi.NewRouter()
	api.Mount(r, svcs, false)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, api.BasePath+path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, api.BasePath+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func addItem(t *testing.T, h http.Handler, typeID int, id string, name string, fill float64) {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"type_id": typeID, "item_id": id, "type_name": name, "fill_factor": fill,
	})
	if rr := do(t, h, http.MethodPost, "/items", string(body)); rr.Code != http.StatusNoContent {
		t.Fatalf("add %s: expected 204, got %d: %s", id, rr.Code, rr.Body.String())
	}
}

func TestPostItem(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "valid",
			body:       `{"type_id":1,"item_id":"` + id + `","type_name":"Bacon","fill_factor":0.5}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "malformed JSON",
			body:       `{"type_id":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid JSON",
		},
		{
			name:       "malformed item id",
			body:       `{"type_id":1,"item_id":"abc","type_name":"Bacon","fill_factor":0.5}`,
			wantStatus: http.StatusBadRequest,
			wantError:  `invalid item id "abc"`,
		},
		{
			name:       "every violation reported",
			body:       `{"type_id":0,"item_id":"` + uuid.NewString() + `","type_name":" ","fill_factor":2}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "type_id",
		},
		{
			name:       "missing fill factor",
			body:       `{"type_id":1,"item_id":"` + uuid.NewString() + `","type_name":"Bacon"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "fill_factor",
		},
	}

	h := newRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/items", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantError != "" && !strings.Contains(rr.Body.String(), tt.wantError) {
				t.Errorf("expected %q in body, got %s", tt.wantError, rr.Body.String())
			}
		})
	}

	t.Run("every violation reported lists all fields", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/items",
			`{"type_id":0,"item_id":"`+uuid.NewString()+`","type_name":" ","fill_factor":2}`)
		for _, field := range []string{"type_id", "type_name", "fill_factor"} {
			if !strings.Contains(rr.Body.String(), field) {
				t.Errorf("expected %s in body, got %s", field, rr.Body.String())
			}
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		rr := do(t, h, http.MethodPost, "/items",
			`{"type_id":2,"item_id":"`+id+`","type_name":"Eggs","fill_factor":0.1}`)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
		}
	})
}

func TestDeleteItem(t *testing.T) {
	h := newRouter(t)
	id := uuid.NewString()
	addItem(t, h, 1, id, "Bacon", 0.5)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"existing", "/items/" + id, http.StatusNoContent},
		{"already removed", "/items/" + id, http.StatusNoContent},
		{"unknown", "/items/" + uuid.NewString(), http.StatusNoContent},
		{"malformed", "/items/fridge-42", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rr := do(t, h, http.MethodDelete, tt.path, ""); rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestGetItems(t *testing.T) {
	h := newRouter(t)
	addItem(t, h, 1, uuid.NewString(), "Bacon", 0.2)
	addItem(t, h, 1, uuid.NewString(), "Bacon", 0.6)
	addItem(t, h, 2, uuid.NewString(), "Eggs", 0.8)

	tests := []struct {
		name        string
		query       string
		wantBuckets []int
	}{
		{"below 0.3", "?fill_factor=0.3", []int{1}},
		{"all", "?fill_factor=1", []int{2, 1}},
		{"missing", "", nil},
		{"unparseable", "?fill_factor=half", nil},
		{"zero", "?fill_factor=0", nil},
		{"above one", "?fill_factor=1.5", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, "/items"+tt.query, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
			}
			var buckets [][]models.FillFactorResult
			if err := json.Unmarshal(rr.Body.Bytes(), &buckets); err != nil {
				t.Fatalf("decode %s: %v", rr.Body.String(), err)
			}
			if buckets == nil {
				t.Fatalf("expected a JSON array, got %s", rr.Body.String())
			}
			if len(buckets) != len(tt.wantBuckets) {
				t.Fatalf("expected %d buckets, got %s", len(tt.wantBuckets), rr.Body.String())
			}
			for i, n := range tt.wantBuckets {
				if len(buckets[i]) != n {
					t.Errorf("bucket %d: expected %d items, got %d", i, n, len(buckets[i]))
				}
			}
		})
	}

	t.Run("wire format", func(t *testing.T) {
		rr := do(t, h, http.MethodGet, "/items?fill_factor=0.2", "")
		if got := strings.TrimSpace(rr.Body.String()); got != `[[{"type_id":1,"fill_factor":0.2}]]` {
			t.Errorf("unexpected body %s", got)
		}
	})
}

func TestGetItemType(t *testing.T) {
	h := newRouter(t)
	addItem(t, h, 1, uuid.NewString(), "Bacon", 0.2)
	addItem(t, h, 1, uuid.NewString(), "Bacon", 0.6)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"average", "/item-types/1", http.StatusOK, "0.4"},
		{"unknown type", "/item-types/99", http.StatusOK, "0"},
		{"non-integer", "/item-types/bacon", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.path, "")
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if tt.wantBody == "" {
				return
			}
			var got, want float64
			_ = json.Unmarshal(rr.Body.Bytes(), &got)
			_ = json.Unmarshal([]byte(tt.wantBody), &want)
			if diff := got - want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("expected %v, got %s", want, rr.Body.String())
			}
		})
	}
}

func TestDeleteItemType(t *testing.T) {
	h := newRouter(t)
	addItem(t, h, 1, uuid.NewString(), "Bacon", 0.2)
	addItem(t, h, 2, uuid.NewString(), "Eggs", 0.8)

	if rr := do(t, h, http.MethodDelete, "/item-types/1", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, "/item-types/99", ""); rr.Code != http.StatusNoContent {
		t.Fatalf("unknown type: expected 204, got %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, "/item-types/x", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("non-integer: expected 400, got %d", rr.Code)
	}

	rr := do(t, h, http.MethodGet, "/items?fill_factor=1", "")
	if got := strings.TrimSpace(rr.Body.String()); got != `[[{"type_id":2,"fill_factor":0.8}]]` {
		t.Errorf("expected only the eggs left, got %s", got)
	}
}
