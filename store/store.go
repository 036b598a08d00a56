package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDirName         = "cinema-booking-cli"
	maxRecentCustomers = 8
)

// RecentCustomer is remembered after checkout to prefill the next one.
type RecentCustomer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type customerHistory struct {
	Customers []RecentCustomer `json:"customers"`
}

func LoadRecentCustomers() ([]RecentCustomer, error) {
	path, err := ConfigPath("customers.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history customerHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid customer history format")
	}
	return history.Customers, nil
}

// RememberCustomer moves the customer to the front of the history.
func RememberCustomer(name string, contact string) error {
	name = strings.TrimSpace(name)
	contact = strings.TrimSpace(contact)
	if name == "" || contact == "" {
		return errors.New("name and contact are required")
	}

	history, _ := LoadRecentCustomers()
	next := []RecentCustomer{{Name: name, Contact: contact}}
	for _, existing := range history {
		if stringsEqualFold(existing.Name, name) && stringsEqualFold(existing.Contact, contact) {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentCustomers {
			break
		}
	}
	return saveRecentCustomers(next)
}

func saveRecentCustomers(customers []RecentCustomer) error {
	path, err := ConfigPath("customers.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := customerHistory{Customers: customers}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// ConfigPath returns the location of name inside the per-user config dir.
func ConfigPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func stringsEqualFold(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
