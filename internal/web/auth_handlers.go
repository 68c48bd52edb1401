package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourismBooking/internal/apperrors"
	"tourismBooking/internal/auth"
	"tourismBooking/models"
	"tourismBooking/repository"
)

const (
	noticeThrottled            = "Too many login attempts. Please try again shortly."
	noticeRegistrationDisabled = "Registration is disabled."
)

// Dashboard shows the headline counters. Anonymous visitors are served with
// the fallback credentials.
func (h *Handler) Dashboard(c *gin.Context) {
	id, _ := currentSession(c).CurrentIdentity()
	counts := h.dashboardCounts(c, id.Role)
	h.view.Render(c, "index", gin.H{
		"total_customers": counts.TotalCustomers,
		"total_bookings":  counts.TotalBookings,
		"total_payments":  counts.TotalPayments,
	})
}

// dashboardCounts returns zero counters when the connection or the query
// fails; the failure is flashed.
func (h *Handler) dashboardCounts(c *gin.Context, role models.Role) models.Dashboard {
	conn, ok := h.open(c, h.creds.Resolve(string(role)))
	if !ok {
		return models.Dashboard{}
	}
	defer conn.Close()
	counts, err := repository.NewReportRepository(conn, h.driver).Dashboard(c.Request.Context())
	if err != nil {
		h.log.ErrorErr("dashboard query failed", err)
		h.flash(c, auth.FlashError, fmt.Sprintf("Dashboard Error: Failed to load dashboard data: %v", err))
		return models.Dashboard{}
	}
	return counts
}

func (h *Handler) LoginPage(c *gin.Context) {
	h.view.Render(c, "login", gin.H{})
}

// Login verifies the password against AppUser and establishes the session
// with the role stored on the account.
func (h *Handler) Login(c *gin.Context) {
	if err := h.throttle.Check(c.ClientIP()); err != nil {
		if errors.Is(err, apperrors.ErrRateLimited) {
			h.log.Warn("login throttled", "client_ip", c.ClientIP())
			h.flash(c, auth.FlashError, noticeThrottled)
		}
		h.redirect(c, "/login")
		return
	}
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		h.flash(c, auth.FlashError, "Username and password are required.")
		h.redirect(c, "/login")
		return
	}

	conn, ok := h.open(c, h.creds.Resolve(""))
	if !ok {
		h.redirect(c, "/login")
		return
	}
	defer conn.Close()

	id, err := h.authenticate(c.Request.Context(), conn, username, password)
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		h.log.Info("login rejected", "user", username, "client_ip", c.ClientIP())
		h.flash(c, auth.FlashError, "Invalid username or password.")
	case err != nil:
		h.log.ErrorErr("login failed", err, "user", username)
		h.flash(c, auth.FlashError, fmt.Sprintf("Login error: %v", err))
	default:
		if err := currentSession(c).Establish(id); err != nil {
			h.flash(c, auth.FlashError, fmt.Sprintf("Login error: %v", err))
			break
		}
		h.log.Info("user logged in", "user", id.Username, "role", id.Role.String())
		h.flash(c, auth.FlashSuccess, fmt.Sprintf("Welcome back, %s!", id.Username))
		h.redirect(c, "/")
		return
	}
	h.redirect(c, "/login")
}

func (h *Handler) authenticate(ctx context.Context, q repository.DBTX, username, password string) (models.Identity, error) {
	u, err := repository.NewUserRepository(q).GetByUsername(ctx, username)
	if err != nil {
		return models.Identity{}, err
	}
	if u == nil {
		return models.Identity{}, apperrors.ErrInvalidCredentials
	}
	if err := auth.CheckPassword(u.PasswordHash, password); err != nil {
		return models.Identity{}, err
	}
	role, err := models.ParseRole(u.Role)
	if err != nil {
		return models.Identity{}, fmt.Errorf("account %s has role %q: %w", u.Username, u.Role, apperrors.ErrUnknownRole)
	}
	return models.Identity{UserID: u.ID, Username: u.Username, Role: role}, nil
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.view.Render(c, "register", gin.H{"registration_open": h.allowRegistration})
}

func (h *Handler) Register(c *gin.Context) {
	if !h.allowRegistration {
		h.flash(c, auth.FlashError, noticeRegistrationDisabled)
		h.redirect(c, "/login")
		return
	}
	username := c.PostForm("username")
	password := c.PostForm("password")
	rawRole := c.PostForm("role")
	if username == "" || password == "" || rawRole == "" {
		h.flash(c, auth.FlashError, "All fields are required.")
		h.redirect(c, "/register")
		return
	}
	role, err := models.ParseRole(rawRole)
	if err != nil {
		h.flash(c, auth.FlashError, "Role must be one of admin, agent, accountant.")
		h.redirect(c, "/register")
		return
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		h.log.ErrorErr("password hashing failed", err)
		h.flash(c, auth.FlashError, fmt.Sprintf("Registration error: %v", err))
		h.redirect(c, "/register")
		return
	}

	conn, ok := h.open(c, h.creds.Resolve(""))
	if !ok {
		h.redirect(c, "/register")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	err = conn.InTx(ctx, func(tx *sql.Tx) error {
		repo := repository.NewUserRepository(tx)
		existing, err := repo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.ErrUserExists
		}
		_, err = repo.Create(ctx, username, hash, role)
		return err
	})
	switch {
	case errors.Is(err, apperrors.ErrUserExists):
		h.flash(c, auth.FlashError, "Username already exists.")
	case err != nil:
		h.log.ErrorErr("registration failed", err, "user", username)
		h.flash(c, auth.FlashError, fmt.Sprintf("Registration error: %v", err))
	default:
		h.log.Info("user registered", "user", username, "role", role.String())
		h.flash(c, auth.FlashSuccess, "Registration successful! Please login.")
		h.redirect(c, "/login")
		return
	}
	h.redirect(c, "/register")
}

func (h *Handler) Logout(c *gin.Context) {
	sess := currentSession(c)
	if id, ok := sess.CurrentIdentity(); ok {
		h.log.Info("user logged out", "user", id.Username)
	}
	sess.Clear()
	h.flash(c, auth.FlashSuccess, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
