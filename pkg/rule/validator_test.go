package rule

import (
	"testing"
)

type stageRequest struct {
	Kind     string `rule:"required,oneof=profile photo video content conservation"`
	GroupTag string `rule:"omitempty,max=64"`
}

func TestValidateStruct(t *testing.T) {
	ok := stageRequest{Kind: "photo", GroupTag: "acc-2026-001"}
	if err := ValidateStruct(ok); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	bad := stageRequest{Kind: "hologram"}
	if err := ValidateStruct(bad); err == nil {
		t.Fatal("expected validation error for unknown kind")
	}
}

func TestValidateVar(t *testing.T) {
	if err := ValidateVar("photo", "oneof=profile photo video content conservation"); err != nil {
		t.Fatalf("expected valid var, got %v", err)
	}

	if err := ValidateVar("", "required"); err == nil {
		t.Fatal("expected required error for empty string")
	}
}

func TestErrors(t *testing.T) {
	err := ValidateStruct(stageRequest{})
	if err == nil {
		t.Fatal("expected validation error")
	}

	m := Errors(err)
	if m == nil {
		t.Fatal("expected parsed validation errors")
	}

	if _, ok := m["Kind"]; !ok {
		t.Fatalf("expected Kind in errors, got %v", m)
	}
}

func TestRegisterAlias(t *testing.T) {
	RegisterAlias("media_kind", "oneof=profile photo video content conservation")

	if err := ValidateVar("conservation", "media_kind"); err != nil {
		t.Fatalf("alias validation failed: %v", err)
	}

	if err := ValidateVar("sculpture", "media_kind"); err == nil {
		t.Fatal("expected alias validation to reject unknown kind")
	}
}
