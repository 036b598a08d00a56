package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"cinema-booking-cli/store"
)

func newBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "Show past bookings",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			renderBookings(cmd.OutOrStdout(), a.session.Bookings())
			return nil
		}),
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Save all bookings, rewriting the bookings file",
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.session.ExportAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to save bookings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All bookings saved to: %s\n", a.storageLocation())
			return nil
		}),
	}
}

func newReceiptCmd() *cobra.Command {
	var out string

	receiptCmd := &cobra.Command{
		Use:   "receipt <booking number>",
		Short: "Print a booking receipt or save it as text",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			bookings := a.session.Bookings()
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > len(bookings) {
				return fmt.Errorf("booking number must be between 1 and %d", len(bookings))
			}
			b := bookings[n-1]
			if out == "" {
				fmt.Fprint(cmd.OutOrStdout(), store.RenderReceipt(b))
				return nil
			}
			path := out
			if path == "." || filepath.Ext(path) == "" {
				path = filepath.Join(path, store.ReceiptFileName(b))
			}
			if err := store.WriteReceipt(path, b); err != nil {
				return fmt.Errorf("failed to save receipt: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Receipt saved to %s\n", path)
			return nil
		}),
	}
	receiptCmd.Flags().StringVarP(&out, "out", "o", "", "file or directory to save the receipt to")
	return receiptCmd
}
