package view

import (
	"fmt"
	"strings"

	"slotify/internal/models"
)

// Fallback text shown when a populated reference never arrived.
const (
	UnknownVendor     = "Unknown Vendor"
	NotAvailable      = "N/A"
	ContactForDetails = "Contact for details"
)

func statusIcon(status string) string {
	switch status {
	case models.StatusConfirmed:
		return "✅"
	case models.StatusCancelled:
		return "❌"
	default:
		return "⏳"
	}
}

// CategoryGrid renders the browse grid. demoMode marks the fixed fallback
// set shown when the backend returned no categories.
func CategoryGrid(categories []models.Category, demoMode bool) string {
	var sb strings.Builder
	sb.WriteString("📂 Categories\n\n")
	if demoMode {
		sb.WriteString("(demo data, backend returned no categories)\n\n")
	}
	for i, c := range categories {
		sb.WriteString(fmt.Sprintf("%d. %s", i+1, c.Name))
		if c.Description != "" {
			sb.WriteString(" - " + c.Description)
		}
		sb.WriteString("\n")
	}
	if len(categories) == 0 {
		sb.WriteString("No categories available.\n")
	}
	return sb.String()
}

func vendorPrice(v models.Vendor) string {
	if v.Price <= 0 {
		return ContactForDetails
	}
	if v.MaxPrice > v.Price {
		return fmt.Sprintf("₹%.0f - ₹%.0f", v.Price, v.MaxPrice)
	}
	return fmt.Sprintf("₹%.0f", v.Price)
}

// VendorCard renders a single vendor entry for the listing.
func VendorCard(v models.Vendor) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏷 %s\n", v.Name))
	if cat, ok := v.Category.Populated(); ok {
		sb.WriteString(fmt.Sprintf("   Category: %s\n", cat.Name))
	}
	sb.WriteString(fmt.Sprintf("   Price: %s\n", vendorPrice(v)))
	if v.Rating > 0 {
		sb.WriteString(fmt.Sprintf("   Rating: %.1f ⭐\n", v.Rating))
	}
	return sb.String()
}

// VendorDetail renders the full vendor page shown before booking.
func VendorDetail(v models.Vendor) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏷 %s\n\n", v.Name))
	if cat, ok := v.Category.Populated(); ok {
		sb.WriteString(fmt.Sprintf("Category: %s\n", cat.Name))
	}
	if v.Description != "" {
		sb.WriteString(v.Description + "\n")
	}
	sb.WriteString(fmt.Sprintf("Price: %s\n", vendorPrice(v)))
	if len(v.Services) > 0 {
		sb.WriteString("Services: " + strings.Join(v.Services, ", ") + "\n")
	}
	contact := NotAvailable
	if v.Phone != "" {
		contact = v.Phone
	} else if v.Email != "" {
		contact = v.Email
	}
	sb.WriteString(fmt.Sprintf("Contact: %s\n", contact))
	return sb.String()
}

func bookingVendorName(b models.Booking) string {
	if v, ok := b.Vendor.Populated(); ok && v.Name != "" {
		return v.Name
	}
	return UnknownVendor
}

// UserBookingLine renders one row of the customer's own booking list.
func UserBookingLine(i int, b models.Booking) string {
	date := b.EventDate
	if date == "" {
		date = NotAvailable
	}
	return fmt.Sprintf("%d. %s %s - %s (%s)\n", i+1, statusIcon(b.Status), bookingVendorName(b), date, b.Status)
}

// VendorBookingLine renders one row of the incoming-request list a vendor
// sees, including the customer contact needed to confirm or cancel.
func VendorBookingLine(i int, b models.Booking) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, statusIcon(b.Status), b.UserName, b.EventDate))
	sb.WriteString(fmt.Sprintf("   📧 %s", b.UserEmail))
	if b.UserPhone != "" {
		sb.WriteString("  📱 " + b.UserPhone)
	}
	sb.WriteString("\n")
	if b.Notes != "" {
		sb.WriteString("   📝 " + b.Notes + "\n")
	}
	if b.Status == models.StatusPending {
		sb.WriteString("   Actions: confirm / cancel\n")
	}
	return sb.String()
}

// Navbar renders the persistent header. The badge reflects the unread
// notification count and disappears at zero.
func Navbar(user *models.User, unread int) string {
	var sb strings.Builder
	sb.WriteString("Slotify")
	if user != nil {
		sb.WriteString(" | " + user.Name)
		if unread > 0 {
			sb.WriteString(fmt.Sprintf(" 🔔(%d)", unread))
		} else {
			sb.WriteString(" 🔔")
		}
		if user.Role == "admin" {
			sb.WriteString(" | admin")
		}
	} else {
		sb.WriteString(" | login")
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 40))
	sb.WriteString("\n")
	return sb.String()
}

// NotificationList renders the dropdown feed, newest first.
func NotificationList(feed []models.Notification, unread int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔔 Notifications (%d unread)\n\n", unread))
	if len(feed) == 0 {
		sb.WriteString("Nothing here yet.\n")
		return sb.String()
	}
	for i, n := range feed {
		marker := "  "
		if !n.Read {
			marker = "● "
		}
		sb.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, marker, n.Message))
	}
	return sb.String()
}

// BookingSummary renders the review step shown before paying, or the
// confirmation after a pay-later submission.
func BookingSummary(vendor models.Vendor, userName, email, phone, eventDate, notes string) string {
	var sb strings.Builder
	sb.WriteString("📋 Booking summary\n\n")
	sb.WriteString(fmt.Sprintf("Vendor: %s\n", vendor.Name))
	sb.WriteString(fmt.Sprintf("Name: %s\n", userName))
	sb.WriteString(fmt.Sprintf("Email: %s\n", email))
	if phone != "" {
		sb.WriteString(fmt.Sprintf("Phone: %s\n", phone))
	}
	sb.WriteString(fmt.Sprintf("Date: %s\n", eventDate))
	if notes != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", notes))
	}
	sb.WriteString(fmt.Sprintf("Amount: %s\n", vendorPrice(vendor)))
	return sb.String()
}

// PaymentSummary renders the order the widget is about to charge.
func PaymentSummary(order models.PaymentOrder) string {
	return fmt.Sprintf("💳 Order %s\nAmount: %d %s\n", order.ID, order.Amount, order.Currency)
}
