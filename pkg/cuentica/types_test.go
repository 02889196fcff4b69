package cuentica

import (
	"encoding/json"
	"testing"

	"github.com/Sternrassler/cuentica-client/pkg/cache"
)

func TestAmount_JSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"number", `{"v":12.5}`, "12.5"},
		{"string", `{"v":"1210.50"}`, "1210.5"},
		{"integer", `{"v":100}`, "100"},
		{"null", `{"v":null}`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V Amount `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.V.String() != tt.want {
				t.Errorf("amount = %s, want %s", got.V.String(), tt.want)
			}
		})
	}

	t.Run("encodes as number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			V Amount `json:"v"`
		}{MustAmount("1210.50")})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if string(data) != `{"v":1210.5}` {
			t.Errorf("Marshal() = %s", data)
		}
	})
}

func TestAmount_TaxOn(t *testing.T) {
	tests := []struct {
		base string
		rate VATRate
		want string
	}{
		{"100", VATGeneral, "21"},
		{"10.05", VATGeneral, "2.11"},
		{"250", VATReduced, "25"},
		{"80", VATExempt, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got := MustAmount(tt.base).TaxOn(tt.rate)
			if !got.Equal(MustAmount(tt.want).Decimal) {
				t.Errorf("TaxOn(%d) = %s, want %s", tt.rate, got, tt.want)
			}
		})
	}
}

func TestAmountFromCents(t *testing.T) {
	a := AmountFromCents(12150)
	if got := a.Plus(AmountFromCents(50)).StringFixed(2); got != "122.00" {
		t.Errorf("sum = %s, want 122.00", got)
	}
}

func TestNewAmount_Invalid(t *testing.T) {
	if _, err := NewAmount("12,50"); err == nil {
		t.Error("NewAmount() expected error for comma decimal")
	}
}

func TestInferBusinessType(t *testing.T) {
	tests := []struct {
		taxID string
		want  BusinessType
	}{
		{"B12345678", BusinessCompany},
		{"a12345678", BusinessCompany},
		{"W1234567J", BusinessCompany},
		{"12345678Z", BusinessIndividual},
		{"X1234567L", BusinessIndividual},
		{"K1234567L", BusinessIndividual},
		{"", BusinessIndividual},
	}

	for _, tt := range tests {
		t.Run(tt.taxID, func(t *testing.T) {
			if got := InferBusinessType(tt.taxID); got != tt.want {
				t.Errorf("InferBusinessType(%q) = %q, want %q", tt.taxID, got, tt.want)
			}
		})
	}
}

func TestExpenseTypes(t *testing.T) {
	tests := []struct {
		code     string
		valid    bool
		wantDesc string
	}{
		{"6280006", true, "Teléfono y comunicaciones"},
		{"6290004", true, "Hosting y servicios web"},
		{"520", true, ""},
		{"628", false, ""},
		{"", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := IsValidExpenseType(tt.code); got != tt.valid {
				t.Errorf("IsValidExpenseType(%q) = %v, want %v", tt.code, got, tt.valid)
			}
			desc, ok := ExpenseTypeDescription(tt.code)
			if ok != (tt.wantDesc != "") || desc != tt.wantDesc {
				t.Errorf("ExpenseTypeDescription(%q) = %q, %v", tt.code, desc, ok)
			}
		})
	}

	for _, cat := range ExpenseCategories() {
		for _, code := range cat.Codes {
			if !IsValidExpenseType(code) {
				t.Errorf("category %s lists unknown code %s", cat.Key, code)
			}
		}
	}
	if n := len(ExpenseTypeCodes()); n != 42 {
		t.Errorf("len(ExpenseTypeCodes()) = %d, want 42", n)
	}
}

func TestAmount_QueryValue(t *testing.T) {
	var unset *Amount
	amount := MustAmount("12.50")

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil pointer is unset", unset, "expense?page=1"},
		{"pointer", &amount, "expense?amount=12.5&page=1"},
		{"value", amount, "expense?amount=12.5&page=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cache.KeyFor("/expense", map[string]any{"page": 1, "amount": tt.value})
			if got != tt.want {
				t.Errorf("KeyFor() = %q, want %q", got, tt.want)
			}
		})
	}
}
