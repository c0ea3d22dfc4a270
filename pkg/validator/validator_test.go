package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/smartfridge/pkg/validator"
)

type sampleStruct struct {
	ItemID     string   `json:"item_id"     validate:"required,uuid"`
	TypeName   string   `json:"type_name"   validate:"notblank,max=10"`
	TypeID     int64    `json:"type_id"     validate:"gt=0"`
	FillFactor *float64 `json:"fill_factor" validate:"required,gte=0,lte=1"`
}

func ptr[T any](v T) *T { return &v }

func validSample() sampleStruct {
	return sampleStruct{
		ItemID:     "77c82f1f-be67-43e2-88e8-d1b436335005",
		TypeName:   "Eggs",
		TypeID:     1,
		FillFactor: ptr(0.5),
	}
}

func TestValidate_valid(t *testing.T) {
	s := validSample()
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_zeroFillFactorPointerIsPresent(t *testing.T) {
	s := validSample()
	s.FillFactor = ptr(0.0)
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected 0.0 to satisfy required, got %v", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sampleStruct)
		field   string
		message string
	}{
		{"missing item id", func(s *sampleStruct) { s.ItemID = "" }, "item_id", "This field is required"},
		{"malformed item id", func(s *sampleStruct) { s.ItemID = "not-a-uuid" }, "item_id", "Must be a valid UUID"},
		{"blank type name", func(s *sampleStruct) { s.TypeName = "   " }, "type_name", "Must not be blank"},
		{"long type name", func(s *sampleStruct) { s.TypeName = "Eggless Mayonnaise" }, "type_name", "Maximum length is 10"},
		{"zero type id", func(s *sampleStruct) { s.TypeID = 0 }, "type_id", "Must be greater than 0"},
		{"nil fill factor", func(s *sampleStruct) { s.FillFactor = nil }, "fill_factor", "This field is required"},
		{"negative fill factor", func(s *sampleStruct) { s.FillFactor = ptr(-0.1) }, "fill_factor", "Must be greater than or equal to 0"},
		{"fill factor above one", func(s *sampleStruct) { s.FillFactor = ptr(1.5) }, "fill_factor", "Must be less than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)
			m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&s))
			if m[tt.field] != tt.message {
				t.Errorf("%s: got %q, want %q (all: %v)", tt.field, m[tt.field], tt.message, m)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestViolations_AccumulatesInFieldOrder(t *testing.T) {
	s := sampleStruct{TypeName: " ", TypeID: -5, FillFactor: ptr(1.5)}
	got := pkgvalidator.Violations(pkgvalidator.Validate(&s))

	want := []string{
		"item_id: This field is required",
		"type_name: Must not be blank",
		"type_id: Must be greater than 0",
		"fill_factor: Must be less than or equal to 1",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d violations, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("violation %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestViolations_nilForOtherErrors(t *testing.T) {
	if v := pkgvalidator.Violations(nil); v != nil {
		t.Errorf("expected nil for nil error, got %v", v)
	}
	if v := pkgvalidator.Violations(http.ErrNoCookie); v != nil {
		t.Errorf("expected nil for non-validation error, got %v", v)
	}
}

// --- ValidateRequest ---

type listReq struct {
	FillFactor *float64 `json:"fill_factor" validate:"required,gt=0,lte=1"`
}

func TestValidateRequest_valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fill_factor":0.5}`))
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[listReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.FillFactor != 0.5 {
		t.Errorf("unexpected fill factor: %v", *req.FillFactor)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[listReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_failedTag(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fill_factor":0}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[listReq](w, r)
	if ok {
		t.Fatal("expected ok=false for zero fill factor")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fill_factor") {
		t.Errorf("expected fill_factor in body, got: %s", w.Body.String())
	}
}

func TestDecodeRequest_skipsFieldRules(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fill_factor":0}`))
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.DecodeRequest[listReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.FillFactor == nil || *req.FillFactor != 0 {
		t.Errorf("unexpected fill factor: %v", req.FillFactor)
	}
}

func TestDecodeRequest_wrongType(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fill_factor":"half"}`))
	w := httptest.NewRecorder()

	if _, ok := pkgvalidator.DecodeRequest[listReq](w, r); ok {
		t.Fatal("expected ok=false for a string fill factor")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
