package view

import (
	"fmt"
	"strings"

	"slotify/internal/models"
)

// AdminStats renders the dashboard counters block.
func AdminStats(s models.AdminStats) string {
	var sb strings.Builder
	sb.WriteString("📊 Dashboard\n\n")
	sb.WriteString(fmt.Sprintf("Events:     %d\n", s.TotalEvents))
	sb.WriteString(fmt.Sprintf("Vendors:    %d\n", s.TotalVendors))
	sb.WriteString(fmt.Sprintf("Categories: %d\n", s.TotalCategories))
	sb.WriteString(fmt.Sprintf("Bookings:   %d (%d pending)\n", s.TotalBookings, s.PendingBookings))
	return sb.String()
}

// AdminEventTable renders the events tab.
func AdminEventTable(events []models.Event) string {
	var sb strings.Builder
	sb.WriteString("🎫 Events\n\n")
	if len(events) == 0 {
		sb.WriteString("No events.\n")
		return sb.String()
	}
	for i, e := range events {
		cat := NotAvailable
		if c, ok := e.Category.Populated(); ok {
			cat = c.Name
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s] %s %s", i+1, e.Name, cat, e.Date, e.Status))
		if e.IsFeatured {
			sb.WriteString(" ⭐")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// AdminVendorTable renders the vendors tab.
func AdminVendorTable(vendors []models.Vendor) string {
	var sb strings.Builder
	sb.WriteString("🏷 Vendors\n\n")
	if len(vendors) == 0 {
		sb.WriteString("No vendors.\n")
		return sb.String()
	}
	for i, v := range vendors {
		cat := NotAvailable
		if c, ok := v.Category.Populated(); ok {
			cat = c.Name
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s] %s\n", i+1, v.Name, cat, vendorPrice(v)))
	}
	return sb.String()
}

// AdminCategoryTable renders the categories tab.
func AdminCategoryTable(categories []models.Category) string {
	var sb strings.Builder
	sb.WriteString("📂 Categories\n\n")
	if len(categories) == 0 {
		sb.WriteString("No categories.\n")
		return sb.String()
	}
	for i, c := range categories {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, c.Name))
		if c.Description != "" {
			sb.WriteString(" - " + c.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// AdminBookingTable renders the bookings tab with customer contact details.
func AdminBookingTable(bookings []models.Booking) string {
	var sb strings.Builder
	sb.WriteString("📋 Bookings\n\n")
	if len(bookings) == 0 {
		sb.WriteString("No bookings.\n")
		return sb.String()
	}
	for i, b := range bookings {
		sb.WriteString(fmt.Sprintf("%d. %s %s - %s - %s (%s)\n",
			i+1, statusIcon(b.Status), bookingVendorName(b), b.UserName, b.EventDate, b.Status))
	}
	return sb.String()
}
