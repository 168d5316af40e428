package app

import (
	"context"
	"strconv"
	"strings"

	"slotify/internal/models"
	"slotify/internal/view"
)

// showAdminDashboard is the management surface: aggregate stats plus one
// tab per entity. Only the admin role gets in.
func (a *App) showAdminDashboard(ctx context.Context) {
	user := a.store.Auth.User()
	if user == nil || user.Role != "admin" {
		a.printf("Admin access required.\n")
		return
	}

	for {
		a.printNavbar()
		stats, err := a.admin.Stats(ctx)
		if err != nil {
			a.alert(err.Error())
			return
		}
		a.printf("%s\n", view.AdminStats(*stats))
		a.printf("Tabs: events, vendors, categories, bookings, export (or enter to go back)\n")

		switch a.prompt("tab") {
		case "":
			return
		case "events":
			a.adminEvents(ctx)
		case "vendors":
			a.adminVendors(ctx)
		case "categories":
			a.adminCategories(ctx)
		case "bookings":
			a.adminBookings(ctx)
		case "export":
			path, err := a.exportBookings(ctx)
			if err != nil {
				a.alert("Export failed: " + err.Error())
				continue
			}
			a.printf("💾 Exported to %s\n", path)
		default:
			a.printf("No such tab.\n")
		}
	}
}

func (a *App) adminEvents(ctx context.Context) {
	for {
		events, err := a.admin.ListEvents(ctx)
		if err != nil {
			a.alert(err.Error())
			return
		}
		a.printf("%s\n", view.AdminEventTable(events))

		choice := a.prompt("add / edit N / delete N (or enter to go back)")
		if choice == "" {
			return
		}
		verb, idx, ok := a.parseAction(choice, len(events))
		if !ok && verb != "add" {
			continue
		}
		switch verb {
		case "add":
			event := a.promptEvent(models.Event{})
			if _, err := a.admin.CreateEvent(ctx, &event); err != nil {
				a.alert(err.Error())
			}
		case "edit":
			event := a.promptEvent(events[idx])
			if _, err := a.admin.UpdateEvent(ctx, events[idx].ID, &event); err != nil {
				a.alert(err.Error())
			}
		case "delete":
			if !a.confirm("delete event " + events[idx].Name + "?") {
				continue
			}
			if err := a.admin.DeleteEvent(ctx, events[idx].ID); err != nil {
				a.alert(err.Error())
			}
		}
	}
}

func (a *App) promptEvent(base models.Event) models.Event {
	if name := a.prompt("name [" + base.Name + "]"); name != "" {
		base.Name = name
	}
	if id := a.prompt("category id"); id != "" {
		base.Category = models.CategoryID(id)
	}
	if venue := a.prompt("venue [" + base.Venue + "]"); venue != "" {
		base.Venue = venue
	}
	if city := a.prompt("city [" + base.City + "]"); city != "" {
		base.City = city
	}
	if date := a.prompt("date [" + base.Date + "]"); date != "" {
		base.Date = date
	}
	if price := a.prompt("ticket price"); price != "" {
		if v, err := strconv.ParseFloat(price, 64); err == nil {
			base.TicketPrice = v
		}
	}
	if capacity := a.prompt("capacity"); capacity != "" {
		if v, err := strconv.Atoi(capacity); err == nil {
			base.Capacity = v
		}
	}
	base.IsFeatured = a.prompt("featured? (yes/no)") == "yes"
	return base
}

func (a *App) adminVendors(ctx context.Context) {
	for {
		vendors, err := a.admin.ListVendors(ctx)
		if err != nil {
			a.alert(err.Error())
			return
		}
		a.printf("%s\n", view.AdminVendorTable(vendors))

		choice := a.prompt("add / edit N / delete N (or enter to go back)")
		if choice == "" {
			return
		}
		verb, idx, ok := a.parseAction(choice, len(vendors))
		if !ok && verb != "add" {
			continue
		}
		switch verb {
		case "add":
			vendor := a.promptVendor(models.Vendor{})
			if _, err := a.admin.CreateVendor(ctx, &vendor); err != nil {
				a.alert(err.Error())
			}
		case "edit":
			vendor := a.promptVendor(vendors[idx])
			if _, err := a.admin.UpdateVendor(ctx, vendors[idx].ID, &vendor); err != nil {
				a.alert(err.Error())
			}
		case "delete":
			if !a.confirm("delete vendor " + vendors[idx].Name + "?") {
				continue
			}
			if err := a.admin.DeleteVendor(ctx, vendors[idx].ID); err != nil {
				a.alert(err.Error())
			}
		}
	}
}

func (a *App) promptVendor(base models.Vendor) models.Vendor {
	if name := a.prompt("name [" + base.Name + "]"); name != "" {
		base.Name = name
	}
	if id := a.prompt("category id"); id != "" {
		base.Category = models.CategoryID(id)
	}
	if email := a.prompt("email [" + base.Email + "]"); email != "" {
		base.Email = email
	}
	if phone := a.prompt("phone [" + base.Phone + "]"); phone != "" {
		base.Phone = phone
	}
	if price := a.prompt("price"); price != "" {
		if v, err := strconv.ParseFloat(price, 64); err == nil {
			base.Price = v
		}
	}
	if desc := a.prompt("description"); desc != "" {
		base.Description = desc
	}
	return base
}

func (a *App) adminCategories(ctx context.Context) {
	for {
		categories, err := a.admin.ListCategories(ctx)
		if err != nil {
			a.alert(err.Error())
			return
		}
		a.printf("%s\n", view.AdminCategoryTable(categories))

		choice := a.prompt("add / edit N / delete N (or enter to go back)")
		if choice == "" {
			return
		}
		verb, idx, ok := a.parseAction(choice, len(categories))
		if !ok && verb != "add" {
			continue
		}
		switch verb {
		case "add":
			category := a.promptCategory(models.Category{})
			if _, err := a.admin.CreateCategory(ctx, &category); err != nil {
				a.alert(err.Error())
			}
		case "edit":
			category := a.promptCategory(categories[idx])
			if _, err := a.admin.UpdateCategory(ctx, categories[idx].ID, &category); err != nil {
				a.alert(err.Error())
			}
		case "delete":
			if !a.confirm("delete category " + categories[idx].Name + "?") {
				continue
			}
			if err := a.admin.DeleteCategory(ctx, categories[idx].ID); err != nil {
				a.alert(err.Error())
			}
		}
	}
}

func (a *App) promptCategory(base models.Category) models.Category {
	if name := a.prompt("name [" + base.Name + "]"); name != "" {
		base.Name = name
	}
	if desc := a.prompt("description"); desc != "" {
		base.Description = desc
	}
	if image := a.prompt("image url"); image != "" {
		base.Image = image
	}
	return base
}

// adminBookings lists every booking; a status change refetches both the
// list and the dashboard stats so the pending counter stays honest.
func (a *App) adminBookings(ctx context.Context) {
	for {
		bookings, err := a.admin.ListBookings(ctx)
		if err != nil {
			a.alert(err.Error())
			return
		}
		a.printf("%s\n", view.AdminBookingTable(bookings))

		choice := a.prompt("status N / delete N (or enter to go back)")
		if choice == "" {
			return
		}
		verb, idx, ok := a.parseAction(choice, len(bookings))
		if !ok {
			continue
		}
		switch verb {
		case "status":
			status := a.prompt("new status (pending/confirmed/cancelled)")
			if !models.ValidBookingStatus(status) {
				a.printf("No such status.\n")
				continue
			}
			if err := a.admin.SetBookingStatus(ctx, bookings[idx].ID, status); err != nil {
				a.alert(err.Error())
			}
		case "delete":
			if !a.confirm("delete booking by " + bookings[idx].UserName + "?") {
				continue
			}
			if err := a.admin.DeleteBooking(ctx, bookings[idx].ID); err != nil {
				a.alert(err.Error())
			}
		}
	}
}

// parseAction splits "verb N" commands. "add" carries no index.
func (a *App) parseAction(choice string, total int) (verb string, idx int, ok bool) {
	parts := strings.Fields(choice)
	verb = parts[0]
	if verb == "add" {
		return verb, 0, len(parts) == 1
	}
	if len(parts) != 2 {
		a.printf("Say e.g. edit 1 or delete 2.\n")
		return verb, 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > total {
		a.printf("No such entry.\n")
		return verb, 0, false
	}
	return verb, n - 1, true
}
