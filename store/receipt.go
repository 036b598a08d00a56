package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinema-booking-cli/model"
)

// RenderReceipt formats a booking as a printable receipt.
func RenderReceipt(b model.Booking) string {
	var sb strings.Builder
	sb.WriteString("******** Cinema Receipt ********\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", b.Timestamp)
	fmt.Fprintf(&sb, "Name: %s\n", b.Name)
	fmt.Fprintf(&sb, "Contact: %s\n", b.Contact)
	fmt.Fprintf(&sb, "Movie: %s\n", b.Movie)
	fmt.Fprintf(&sb, "Showtime: %s\n", b.Showtime)
	fmt.Fprintf(&sb, "Seats: %s\n", strings.Join(b.Seats, ", "))
	fmt.Fprintf(&sb, "Total: %s\n", b.Total)
	sb.WriteString("********************************\n")
	return sb.String()
}

// ReceiptFileName suggests a file name derived from the booking timestamp.
func ReceiptFileName(b model.Booking) string {
	stamp := strings.NewReplacer(":", "_", " ", "_").Replace(b.Timestamp)
	if stamp == "" {
		stamp = "booking"
	}
	return "receipt_" + stamp + ".txt"
}

// WriteReceipt writes the receipt to path, replacing any existing file.
func WriteReceipt(path string, b model.Booking) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("receipt path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create receipt directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderReceipt(b)), 0o644); err != nil {
		return fmt.Errorf("write receipt: %w", err)
	}
	return nil
}
