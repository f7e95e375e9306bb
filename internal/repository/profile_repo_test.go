package repository

import (
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestBuildPartialUpdateOrdersColumnsAndArgs(t *testing.T) {
	patch := map[string]*string{
		"city": strPtr("Oslo"),
		"age":  strPtr("30"),
	}

	query, args := buildPartialUpdate(42, patch)

	want := "UPDATE profiles SET age = $1, city = $2, updated_at = NOW() WHERE user_id = $3"
	if query != want {
		t.Fatalf("expected query %q, got %q", want, query)
	}
	if !reflect.DeepEqual(args, []any{"30", "Oslo", int64(42)}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestBuildPartialUpdateIgnoresUnknownColumns(t *testing.T) {
	patch := map[string]*string{
		"age":                        strPtr("30"),
		"password_hash":              strPtr("owned"),
		"role":                       strPtr("admin"),
		"notes; DROP TABLE profiles": strPtr("x"),
	}

	query, args := buildPartialUpdate(7, patch)

	want := "UPDATE profiles SET age = $1, updated_at = NOW() WHERE user_id = $2"
	if query != want {
		t.Fatalf("expected query %q, got %q", want, query)
	}
	if !reflect.DeepEqual(args, []any{"30", int64(7)}) {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestBuildPartialUpdateSkipsNullValues(t *testing.T) {
	patch := map[string]*string{
		"age":    nil,
		"gender": strPtr("female"),
	}

	query, args := buildPartialUpdate(7, patch)

	want := "UPDATE profiles SET gender = $1, updated_at = NOW() WHERE user_id = $2"
	if query != want {
		t.Fatalf("expected query %q, got %q", want, query)
	}
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %#v", args)
	}
}

func TestBuildPartialUpdateNoEligibleColumnsIsNoOp(t *testing.T) {
	for name, patch := range map[string]map[string]*string{
		"empty":        {},
		"all null":     {"age": nil, "city": nil},
		"unknown only": {"not_a_column": strPtr("v")},
	} {
		query, args := buildPartialUpdate(1, patch)
		if query != "" || args != nil {
			t.Errorf("%s: expected no-op, got query %q args %#v", name, query, args)
		}
	}
}

func TestBuildPartialUpdateCoversEveryAllowedColumn(t *testing.T) {
	patch := make(map[string]*string, len(ProfileColumns))
	for _, col := range ProfileColumns {
		patch[col] = strPtr("v-" + col)
	}

	query, args := buildPartialUpdate(9, patch)

	if len(args) != len(ProfileColumns)+1 {
		t.Fatalf("expected %d args, got %d", len(ProfileColumns)+1, len(args))
	}
	for i, col := range ProfileColumns {
		placeholder := i + 1
		if !strings.Contains(query, col+" = $") {
			t.Errorf("query missing assignment for %s", col)
		}
		if args[i] != "v-"+col {
			t.Errorf("arg %d: expected %q, got %#v", placeholder, "v-"+col, args[i])
		}
	}
}
