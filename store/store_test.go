package store

import "testing"

func setTestConfigDir(t *testing.T) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", root)
}

func TestRememberCustomer_MostRecentFirst(t *testing.T) {
	setTestConfigDir(t)

	customers, err := LoadRecentCustomers()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(customers) != 0 {
		t.Fatalf("expected no customers, got %+v", customers)
	}

	if err := RememberCustomer("Ada", "ada@example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberCustomer("Grace", "555-0100"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := RememberCustomer(" ada ", "ADA@example.com"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	customers, err = LoadRecentCustomers()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %+v", customers)
	}
	if customers[0].Name != "ada" || customers[1].Name != "Grace" {
		t.Fatalf("unexpected order: %+v", customers)
	}
}

func TestRememberCustomer_Capped(t *testing.T) {
	setTestConfigDir(t)

	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		if err := RememberCustomer(name, name+"@example.com"); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	}
	customers, err := LoadRecentCustomers()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(customers) != maxRecentCustomers {
		t.Fatalf("expected %d customers, got %d", maxRecentCustomers, len(customers))
	}
	if customers[0].Name != "j" {
		t.Fatalf("expected most recent customer first, got %+v", customers[0])
	}
}

func TestRememberCustomer_InvalidInput(t *testing.T) {
	setTestConfigDir(t)

	if err := RememberCustomer("", "x"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := RememberCustomer("x", " "); err == nil {
		t.Fatal("expected error for empty contact")
	}
}
