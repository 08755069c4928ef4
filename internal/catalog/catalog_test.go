package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/insurehub/insurehub/internal/domain"
)

func TestLoad_EmbeddedDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	// Every plan type in the taxonomy should be represented.
	types := make(map[string]bool)
	for _, p := range c.List() {
		types[p.Type] = true
	}
	for _, want := range []string{"Health", "Life", "Auto", "Home", "Travel"} {
		if !types[want] {
			t.Errorf("embedded catalog has no %s plan", want)
		}
	}
}

func TestCatalog_Get(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	plan, err := c.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error: %v", err)
	}
	if plan.ID != 1 {
		t.Errorf("Get(1).ID = %d; want 1", plan.ID)
	}

	if _, err := c.Get(99999); !errors.Is(err, domain.ErrPlanNotFound) {
		t.Errorf("Get(99999) error = %v; want ErrPlanNotFound", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	data := `plans:
  - id: 1
    provider: Test Provider
    type: Health
    price: 10
    region: ON
    rating: 4
    term: 1 year
    benefits: [Dental]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d; want 1", c.Len())
	}
}

func TestLoad_RejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "plans: []"},
		{"duplicate id", "plans:\n  - id: 1\n    provider: A\n  - id: 1\n    provider: B\n"},
		{"invalid id", "plans:\n  - id: 0\n    provider: A\n"},
		{"not yaml", "{{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plans.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() = nil error; want failure")
			}
		})
	}
}

func TestCatalog_ListReturnsCopy(t *testing.T) {
	c := New([]domain.Plan{{ID: 1, Provider: "P"}})
	list := c.List()
	list[0].Provider = "mutated"

	if got, _ := c.Get(1); got.Provider != "P" {
		t.Error("mutating List() result changed the catalog")
	}
}
