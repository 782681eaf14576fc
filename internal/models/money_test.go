package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyJSONForms(t *testing.T) {
	var m Money
	if err := m.UnmarshalJSON([]byte(`"59.1"`)); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	if m.String() != "59.10" {
		t.Fatalf("expected 59.10, got %s", m.String())
	}

	if err := m.UnmarshalJSON([]byte(`118`)); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if m.String() != "118.00" {
		t.Fatalf("expected 118.00, got %s", m.String())
	}

	var zero Money
	if err := zero.UnmarshalJSON([]byte(`null`)); err != nil {
		t.Fatalf("unmarshal null failed: %v", err)
	}
	if zero.String() != "0.00" {
		t.Fatalf("expected null kept as zero, got %s", zero.String())
	}

	out, err := NewMoneyFromDecimal(decimal.RequireFromString("118")).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `"118.00"` {
		t.Fatalf("expected quoted two-decimal output, got %s", out)
	}
}
