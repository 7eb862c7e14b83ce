package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store"
	"github.com/Rorical/flightai/internal/store/boltdb"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings [reference]",
	Short: "List bookings made through the assistant, or show one by reference",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		db, err := boltdb.Open(cfg.Bookings.Path)
		if err != nil {
			log.Fatalf("Failed to open bookings store: %v", err)
		}
		defer db.Close()

		bookingStore := boltdb.NewBookingStore(db)
		if len(args) == 1 {
			reference := strings.ToUpper(strings.TrimSpace(args[0]))
			booking, err := bookingStore.Get(context.Background(), reference)
			if errors.Is(err, store.ErrBookingNotFound) {
				log.Fatalf("No booking with reference %s", reference)
			}
			if err != nil {
				log.Fatalf("Failed to load booking: %v", err)
			}
			printBooking(booking)
			return
		}

		bookings, err := bookingStore.List(context.Background())
		if err != nil {
			log.Fatalf("Failed to list bookings: %v", err)
		}
		if len(bookings) == 0 {
			fmt.Println("No bookings yet")
			return
		}

		table := uitable.New()
		table.MaxColWidth = 40
		table.AddRow("REFERENCE", "DESTINATION", "CUSTOMER", "CUSTOMER ID", "PRICE", "BOOKED AT")
		for _, b := range bookings {
			table.AddRow(
				color.CyanString(b.Reference),
				b.DestinationCity,
				b.CustomerName,
				b.CustomerID,
				b.Price,
				b.CreatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		fmt.Println(table)
	},
}

func printBooking(b *models.Booking) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("Reference:", color.CyanString(b.Reference))
	table.AddRow("Destination:", b.DestinationCity)
	table.AddRow("Customer:", b.CustomerName)
	table.AddRow("Customer ID:", b.CustomerID)
	table.AddRow("Price:", b.Price)
	table.AddRow("Booked at:", b.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Println(table)
}

func init() {
	rootCmd.AddCommand(bookingsCmd)
}
