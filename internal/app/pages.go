package app

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"slotify/internal/flow"
	"slotify/internal/models"
	"slotify/internal/view"

	"github.com/rs/zerolog"
)

func (a *App) showCategories(ctx context.Context) {
	a.printNavbar()
	if err := a.store.Categories.Fetch(ctx); err != nil {
		// Закешированные данные остаются на экране
		a.printf("⚠️  %s\n", a.store.Categories.Err())
	}
	categories, demoMode := a.store.Categories.Display()
	a.printf("%s", view.CategoryGrid(categories, demoMode))

	choice := a.prompt("category number (or enter to go back)")
	if choice == "" {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(categories) {
		a.printf("No such category.\n")
		return
	}
	a.page = 0
	a.showVendors(ctx, categories[idx-1])
}

// showAllVendors is the browse-everything page: the full vendor list with no
// category filter.
func (a *App) showAllVendors(ctx context.Context) {
	a.showVendors(ctx, models.Category{Name: "All"})
}

func (a *App) showAbout() {
	a.printNavbar()
	a.printf("About Slotify\n\n")
	a.printf("We connect you with trusted event professionals: verified vendors,\n")
	a.printf("transparent pricing and instant booking. Browse a category, pick a\n")
	a.printf("vendor and book your slot.\n")
}

func (a *App) showVendors(ctx context.Context, category models.Category) {
	for {
		a.printNavbar()
		if err := a.store.Vendors.FetchByCategory(ctx, category.ID); err != nil {
			a.printf("⚠️  %s\n", a.store.Vendors.Err())
		}
		vendors := a.store.Vendors.Vendors()

		body, page := view.Paginate(view.PageParams{
			Page:     a.page,
			PerPage:  a.config.UI.PaginationSize,
			Title:    "🏷 Vendors: " + category.Name,
			ShowHint: true,
		}, len(vendors), func(startIdx, endIdx int) string {
			var sb strings.Builder
			for i := startIdx; i < endIdx; i++ {
				sb.WriteString(strconv.Itoa(i+1) + ". ")
				sb.WriteString(view.VendorCard(vendors[i]))
			}
			if len(vendors) == 0 {
				sb.WriteString("No vendors in this category yet.\n")
			}
			return sb.String()
		})
		a.page = page.Number
		a.printf("%s", body)

		choice := a.prompt("vendor number, n/p for pages (or enter to go back)")
		switch choice {
		case "":
			return
		case "n":
			if a.page < page.TotalPages-1 {
				a.page++
			}
			continue
		case "p":
			if a.page > 0 {
				a.page--
			}
			continue
		}
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(vendors) {
			a.printf("No such vendor.\n")
			continue
		}
		a.showVendorDetail(ctx, vendors[idx-1].ID)
	}
}

func (a *App) showVendorDetail(ctx context.Context, vendorID string) {
	a.printNavbar()
	if err := a.store.Vendors.FetchByID(ctx, vendorID); err != nil {
		a.alert(a.store.Vendors.Err())
		return
	}
	vendor := a.store.Vendors.Selected()
	if vendor == nil {
		return
	}
	defer a.store.Vendors.ClearSelected()

	a.printf("%s\n", view.VendorDetail(*vendor))

	if !a.store.Auth.Authenticated() {
		a.printf("Log in to book this vendor.\n")
		return
	}
	if a.confirm("book this vendor?") {
		a.bookingWizard(ctx, vendor)
	}
}

// bookingWizard collects the form and runs either the paid or the
// pay-later path. Name and email are prefilled from the profile.
func (a *App) bookingWizard(ctx context.Context, vendor *models.Vendor) {
	user := a.store.Auth.User()

	form := flow.BookingForm{UserName: user.Name, UserEmail: user.Email, UserPhone: user.Phone}
	if name := a.prompt("name [" + form.UserName + "]"); name != "" {
		form.UserName = name
	}
	if email := a.prompt("email [" + form.UserEmail + "]"); email != "" {
		form.UserEmail = email
	}
	if phone := a.prompt("phone [" + form.UserPhone + "]"); phone != "" {
		form.UserPhone = phone
	}
	form.EventDate = a.prompt("event date (YYYY-MM-DD)")
	form.Notes = a.prompt("notes")

	a.printf("\n%s\n", view.BookingSummary(*vendor, form.UserName, form.UserEmail, form.UserPhone, form.EventDate, form.Notes))

	switch a.prompt("pay now or later? (now/later)") {
	case "now":
		a.payNow(ctx, vendor, form)
	case "later":
		booking, err := a.payment.PayLater(ctx, vendor.ID, form)
		if err != nil {
			a.alert("Booking failed: " + err.Error())
			return
		}
		a.printf("✅ Booking %s created, status %s. The vendor will confirm shortly.\n", booking.ID, booking.Status)
	default:
		a.printf("Booking cancelled.\n")
	}
}

func (a *App) payNow(ctx context.Context, vendor *models.Vendor, form flow.BookingForm) {
	defer func() { _ = a.payment.Reset(ctx) }()

	order, err := a.payment.Start(ctx, vendor, form)
	if err != nil {
		a.alert("Payment failed: " + err.Error())
		return
	}
	a.printf("%s\n", view.PaymentSummary(*order))

	// Виджет провайдера возвращает подписанный ответ; здесь он вводится
	// оператором и пересылается на верификацию как есть.
	callback := &models.PaymentCallback{
		OrderID:   order.ID,
		PaymentID: a.prompt("payment id"),
		Signature: a.prompt("signature"),
	}

	booking, err := a.payment.HandleCallback(ctx, callback)
	switch {
	case errors.Is(err, flow.ErrContactSupport):
		a.alert(err.Error())
	case err != nil:
		a.alert(err.Error())
	default:
		a.printf("✅ Payment verified, booking %s confirmed.\n", booking.ID)
	}
}

func (a *App) handleLogin(ctx context.Context) {
	if a.store.Auth.Authenticated() {
		a.printf("Already logged in as %s.\n", a.store.Auth.User().Email)
		return
	}

	_ = a.authFlow.Reset(ctx)
	email := a.prompt("email")
	if err := a.authFlow.SubmitEmail(ctx, email); err != nil {
		a.printf("⚠️  %s\n", err.Error())
		return
	}
	a.printf("OTP sent to %s.\n", email)

	otp := a.prompt("otp")
	user, err := a.authFlow.SubmitOTP(ctx, otp)
	if err != nil {
		a.printf("⚠️  %s\n", err.Error())
		return
	}
	a.printf("Welcome, %s!\n", user.Name)

	if err := a.store.Notifications.Fetch(ctx); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("notification fetch after login failed")
	}
}

func (a *App) handleLogout(ctx context.Context) {
	a.store.Auth.Logout(ctx)
	_ = a.authFlow.Reset(ctx)
	a.printf("Logged out.\n")
}

func (a *App) showProfile(ctx context.Context) {
	a.printNavbar()
	user := a.store.Auth.User()
	if user == nil {
		a.printf("Not logged in.\n")
		return
	}
	a.printf("Name:  %s\nEmail: %s\nPhone: %s\nRole:  %s\n", user.Name, user.Email, user.Phone, user.Role)

	if !a.confirm("edit profile?") {
		return
	}
	updated := *user
	if name := a.prompt("name [" + user.Name + "]"); name != "" {
		updated.Name = name
	}
	if phone := a.prompt("phone [" + user.Phone + "]"); phone != "" {
		updated.Phone = phone
	}
	if _, err := a.store.Auth.UpdateProfile(ctx, &updated); err != nil {
		a.printf("⚠️  %s\n", a.store.Auth.Err())
		return
	}
	a.printf("Profile updated.\n")
}

func (a *App) showMyBookings(ctx context.Context) {
	a.printNavbar()
	if !a.store.Auth.Authenticated() {
		a.printf("Log in to see your bookings.\n")
		return
	}
	if err := a.store.Bookings.FetchAsUser(ctx); err != nil {
		a.printf("⚠️  %s\n", a.store.Bookings.Err())
	}
	bookings := a.store.Bookings.Bookings()

	body, _ := view.Paginate(view.PageParams{Page: a.page, PerPage: a.config.UI.PaginationSize, Title: "📊 My bookings"},
		len(bookings), func(startIdx, endIdx int) string {
			var sb strings.Builder
			for i := startIdx; i < endIdx; i++ {
				sb.WriteString(view.UserBookingLine(i, bookings[i]))
			}
			if len(bookings) == 0 {
				sb.WriteString("No bookings yet.\n")
			}
			return sb.String()
		})
	a.printf("%s", body)
}

// showVendorBookings is the vendor-side inbox: incoming requests with
// confirm/cancel actions on pending ones.
func (a *App) showVendorBookings(ctx context.Context) {
	a.printNavbar()
	user := a.store.Auth.User()
	if user == nil {
		a.printf("Log in first.\n")
		return
	}
	if err := a.store.Bookings.FetchAsVendor(ctx, user.ID); err != nil {
		a.printf("⚠️  %s\n", a.store.Bookings.Err())
	}
	bookings := a.store.Bookings.Bookings()

	body, _ := view.Paginate(view.PageParams{Page: a.page, PerPage: a.config.UI.PaginationSize, Title: "👨‍💼 Booking requests"},
		len(bookings), func(startIdx, endIdx int) string {
			var sb strings.Builder
			for i := startIdx; i < endIdx; i++ {
				sb.WriteString(view.VendorBookingLine(i, bookings[i]))
			}
			if len(bookings) == 0 {
				sb.WriteString("No requests yet.\n")
			}
			return sb.String()
		})
	a.printf("%s", body)

	choice := a.prompt("confirm N / cancel N (or enter to go back)")
	if choice == "" {
		return
	}
	parts := strings.Fields(choice)
	if len(parts) != 2 {
		a.printf("Say e.g. confirm 1 or cancel 2.\n")
		return
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 1 || idx > len(bookings) {
		a.printf("No such booking.\n")
		return
	}
	var status string
	switch parts[0] {
	case "confirm":
		status = models.StatusConfirmed
	case "cancel":
		status = models.StatusCancelled
	default:
		a.printf("Say e.g. confirm 1 or cancel 2.\n")
		return
	}
	if _, err := a.store.Bookings.ChangeStatus(ctx, bookings[idx-1].ID, status); err != nil {
		a.alert(a.store.Bookings.Err())
		return
	}
	a.printf("Booking %s.\n", status)
}

func (a *App) showNotifications(ctx context.Context) {
	a.printNavbar()
	if !a.store.Auth.Authenticated() {
		a.printf("Log in to see notifications.\n")
		return
	}
	if err := a.store.Notifications.Fetch(ctx); err != nil {
		a.printf("⚠️  %s\n", a.store.Notifications.Err())
	}
	items := a.store.Notifications.Items()
	a.printf("%s", view.NotificationList(items, a.store.Notifications.UnreadCount()))

	choice := a.prompt("read N / read all / delete N (or enter to go back)")
	if choice == "" {
		return
	}
	if choice == "read all" {
		if err := a.store.Notifications.MarkAllRead(ctx); err != nil {
			a.printf("⚠️  %s\n", a.store.Notifications.Err())
		}
		return
	}
	parts := strings.Fields(choice)
	if len(parts) != 2 {
		a.printf("Say e.g. read 1, read all or delete 2.\n")
		return
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 1 || idx > len(items) {
		a.printf("No such notification.\n")
		return
	}
	switch parts[0] {
	case "read":
		err = a.store.Notifications.MarkRead(ctx, items[idx-1].ID)
	case "delete":
		err = a.store.Notifications.Delete(ctx, items[idx-1].ID)
	default:
		a.printf("Say e.g. read 1, read all or delete 2.\n")
		return
	}
	if err != nil {
		a.printf("⚠️  %s\n", a.store.Notifications.Err())
	}
}
