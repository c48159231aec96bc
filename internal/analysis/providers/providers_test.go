package providers

import (
	"context"
	"reflect"
	"testing"

	"github.com/yildizm/phishscan/internal/analysis"
)

func TestRegisterAll(t *testing.T) {
	reg := analysis.NewRegistry()
	if err := RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	want := []string{"flask", "http", "huggingface", "mock", "ollama"}
	if got := reg.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if err := RegisterAll(reg); err == nil {
		t.Error("Expected error when registering twice")
	}
}

func TestDefault(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	again, err := Default()
	if err != nil || again != reg {
		t.Errorf("Default should be idempotent, err=%v", err)
	}

	cfg := analysis.DefaultConfig()
	cfg.MockDelay = 0
	client, err := analysis.Open(cfg, reg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := client.Analyze(context.Background(), "Salam, kal milte hain"); err != nil {
		t.Errorf("Analyze failed: %v", err)
	}
}
