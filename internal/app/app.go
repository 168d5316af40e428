package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"slotify/internal/api"
	"slotify/internal/config"
	"slotify/internal/domain"
	"slotify/internal/events"
	"slotify/internal/flow"
	"slotify/internal/store"
	"slotify/internal/view"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// App is the interactive shell: one session, one read loop, dispatching
// commands against the store and the wizard flows.
type App struct {
	config    *config.Config
	store     *store.Store
	authFlow  *flow.AuthFlow
	payment   *flow.PaymentFlow
	admin     *api.AdminClient
	flows     domain.FlowRepository
	eventBus  *events.EventBus
	logger    *zerolog.Logger
	sessionID string

	in  *bufio.Scanner
	out io.Writer

	// текущая страница списков
	page int
}

func New(cfg *config.Config, st *store.Store, authFlow *flow.AuthFlow, payment *flow.PaymentFlow, admin *api.AdminClient, flows domain.FlowRepository, bus *events.EventBus, sessionID string, in io.Reader, out io.Writer, logger *zerolog.Logger) *App {
	if bus == nil {
		bus = events.NewEventBus()
	}
	return &App{
		config:    cfg,
		store:     st,
		authFlow:  authFlow,
		payment:   payment,
		admin:     admin,
		flows:     flows,
		eventBus:  bus,
		logger:    logger,
		sessionID: sessionID,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run reads commands until the input closes or the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	_ = a.eventBus.PublishJSON(events.EventSessionStarted, map[string]string{"session_id": a.sessionID})
	defer func() {
		_ = a.eventBus.PublishJSON(events.EventSessionEnded, map[string]string{"session_id": a.sessionID})
	}()

	a.showHome(ctx)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info().Msg("App stopping...")
			return ctx.Err()
		default:
		}

		a.printf("\n> ")
		if !a.in.Scan() {
			return a.in.Err()
		}
		text := strings.TrimSpace(a.in.Text())
		if text == "" {
			continue
		}

		// Создаем контекст для обработки каждой команды
		cmdCtx, cancel := context.WithTimeout(ctx, 30*time.Second)

		requestID := uuid.New().String()
		l := a.logger.With().Str("request_id", requestID).Str("command", text).Logger()
		cmdCtx = l.WithContext(cmdCtx)

		allowed, err := a.flows.CheckRateLimit(cmdCtx, a.sessionID, a.config.UI.RateLimitCommands, time.Duration(a.config.UI.RateLimitWindow)*time.Second)
		if err != nil {
			l.Warn().Err(err).Msg("rate limit check failed")
		}
		if !allowed {
			a.printf("Too many commands, slow down.\n")
			cancel()
			continue
		}

		if text == "quit" || text == "exit" {
			cancel()
			return nil
		}
		a.handleCommand(cmdCtx, text)
		cancel()
	}
}

func (a *App) handleCommand(ctx context.Context, text string) {
	l := zerolog.Ctx(ctx)
	l.Debug().Msg("Handling command")

	switch strings.ToLower(text) {
	case "home", "/start":
		a.page = 0
		a.showHome(ctx)
	case "categories", "browse":
		a.page = 0
		a.showCategories(ctx)
	case "events", "vendors":
		a.page = 0
		a.showAllVendors(ctx)
	case "about":
		a.showAbout()
	case "login":
		a.handleLogin(ctx)
	case "logout":
		a.handleLogout(ctx)
	case "profile":
		a.showProfile(ctx)
	case "bookings", "my bookings":
		a.page = 0
		a.showMyBookings(ctx)
	case "requests":
		a.page = 0
		a.showVendorBookings(ctx)
	case "notifications":
		a.showNotifications(ctx)
	case "admin":
		a.showAdminDashboard(ctx)
	case "help":
		a.showHelp()
	default:
		a.printf("Unknown command, type help for the list.\n")
	}
}

func (a *App) showHome(ctx context.Context) {
	a.printNavbar()
	a.printf("Welcome to Slotify. Book trusted vendors for your events.\n\n")
	a.showHelp()
}

func (a *App) showHelp() {
	a.printf("Commands: categories, events, bookings, requests, notifications, profile, about, login, logout")
	if user := a.store.Auth.User(); user != nil && user.Role == "admin" {
		a.printf(", admin")
	}
	a.printf(", quit\n")
}

func (a *App) printNavbar() {
	a.printf("%s", view.Navbar(a.store.Auth.User(), a.store.Notifications.UnreadCount()))
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// prompt reads one line for the given label. Empty input is returned as-is;
// callers decide whether it is acceptable.
func (a *App) prompt(label string) string {
	a.printf("%s: ", label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

// confirm blocks until the operator answers. Only an explicit "yes"
// proceeds; anything else aborts.
func (a *App) confirm(label string) bool {
	return a.prompt(label+" (yes/no)") == "yes"
}

// alert surfaces a failure the way the blocking dialogs do: the message,
// then a pause until acknowledged. The cache behind the current view is
// untouched.
func (a *App) alert(message string) {
	a.printf("⚠️  %s\n", message)
	a.prompt("press enter to continue")
}
