package env

import "testing"

func TestGet(t *testing.T) {
	t.Setenv("STOCKFLOW_TEST_VALUE", "set")
	if got := Get("STOCKFLOW_TEST_VALUE", "fallback"); got != "set" {
		t.Fatalf("expected set, got %q", got)
	}

	t.Setenv("STOCKFLOW_TEST_VALUE", "  ")
	if got := Get("STOCKFLOW_TEST_VALUE", "fallback"); got != "fallback" {
		t.Fatalf("blank value should fall back, got %q", got)
	}

	if got := Get("STOCKFLOW_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("missing value should fall back, got %q", got)
	}
}
