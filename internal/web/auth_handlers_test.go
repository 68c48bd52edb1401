package web

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourismBooking/internal/auth"
	"tourismBooking/models"
)

func TestLoginEstablishesRoleFromAccount(t *testing.T) {
	a := newTestApp(t)
	// The role comes from the account, never from the user name.
	a.seedUser("admin", "s3cret", models.RoleAccountant)

	requireRedirect(t, a.post("/login", url.Values{"username": {"admin"}, "password": {"s3cret"}}), "/")
	p := decodePage(t, a.get("/login"))
	assert.Equal(t, []string{"Welcome back, admin!"}, messages(p.Notices))
	require.NotNil(t, p.Identity)
	assert.Equal(t, models.RoleAccountant, p.Identity.Role)
	assert.Equal(t, []string{"admin"}, a.opener.users(), "login runs under the fallback credentials")
	assert.True(t, a.opener.allReleased())
}

func TestLoginFailures(t *testing.T) {
	a := newTestApp(t)
	a.seedUser("ravi", "right", models.RoleAgent)

	requireRedirect(t, a.post("/login", url.Values{"username": {"ravi"}}), "/login")
	assert.Equal(t, []string{"Username and password are required."}, messages(a.notices()))

	requireRedirect(t, a.post("/login", url.Values{"username": {"ravi"}, "password": {"wrong"}}), "/login")
	assert.Equal(t, []string{"Invalid username or password."}, messages(a.notices()))

	requireRedirect(t, a.post("/login", url.Values{"username": {"nobody"}, "password": {"x"}}), "/login")
	assert.Equal(t, []string{"Invalid username or password."}, messages(a.notices()))

	assert.Nil(t, decodePage(t, a.get("/login")).Identity)
}

func TestLoginIsThrottledPerClient(t *testing.T) {
	a := newTestApp(t, func(o *Options) { o.Throttle = auth.NewLoginThrottle(0.001, 2) })
	bad := url.Values{"username": {"ravi"}, "password": {"x"}}

	a.post("/login", bad)
	a.post("/login", bad)
	a.notices()
	opens := a.opener.opens()

	requireRedirect(t, a.post("/login", bad), "/login")
	assert.Equal(t, []string{"Too many login attempts. Please try again shortly."}, messages(a.notices()))
	assert.Equal(t, opens, a.opener.opens())
}

func TestLoginThrottleIgnoresForwardedFor(t *testing.T) {
	a := newTestApp(t, func(o *Options) { o.Throttle = auth.NewLoginThrottle(0.001, 2) })
	bad := url.Values{"username": {"ravi"}, "password": {"x"}}

	for i := 0; i < 2; i++ {
		a.header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		a.post("/login", bad)
	}
	a.notices()
	opens := a.opener.opens()

	a.header.Set("X-Forwarded-For", "203.0.113.99")
	requireRedirect(t, a.post("/login", bad), "/login")
	assert.Equal(t, []string{"Too many login attempts. Please try again shortly."}, messages(a.notices()))
	assert.Equal(t, opens, a.opener.opens())
}

func TestLogoutClearsIdentity(t *testing.T) {
	a := newTestApp(t)
	a.loginAs("ravi", models.RoleAgent)

	requireRedirect(t, a.get("/logout"), "/")
	p := decodePage(t, a.get("/login"))
	assert.Equal(t, []string{"You have been logged out."}, messages(p.Notices))
	assert.Nil(t, p.Identity)

	requireRedirect(t, a.get("/customers"), "/login")
}

func TestRegister(t *testing.T) {
	a := newTestApp(t)
	form := url.Values{"username": {"neha"}, "password": {"pw"}, "role": {"Agent"}}

	requireRedirect(t, a.post("/register", form), "/login")
	assert.Equal(t, []string{"Registration successful! Please login."}, messages(a.notices()))

	requireRedirect(t, a.post("/register", form), "/register")
	assert.Equal(t, []string{"Username already exists."}, messages(a.notices()))

	requireRedirect(t, a.post("/register", url.Values{"username": {"x"}, "password": {"pw"}, "role": {"owner"}}), "/register")
	assert.Equal(t, []string{"Role must be one of admin, agent, accountant."}, messages(a.notices()))

	requireRedirect(t, a.post("/register", url.Values{"username": {"x"}, "password": {"pw"}}), "/register")
	assert.Equal(t, []string{"All fields are required."}, messages(a.notices()))

	var role string
	require.NoError(t, a.db.QueryRow(`SELECT Role FROM AppUser WHERE Username = 'neha'`).Scan(&role))
	assert.Equal(t, "agent", role)

	requireRedirect(t, a.post("/login", url.Values{"username": {"neha"}, "password": {"pw"}}), "/")
}

func TestRegistrationCanBeDisabled(t *testing.T) {
	a := newTestApp(t, func(o *Options) { o.AllowRegistration = false })

	requireRedirect(t, a.post("/register", url.Values{"username": {"neha"}, "password": {"pw"}, "role": {"agent"}}), "/login")
	assert.Equal(t, []string{"Registration is disabled."}, messages(a.notices()))
	assert.Zero(t, a.count("AppUser"))
	assert.Zero(t, a.opener.opens())
}

func TestDashboard(t *testing.T) {
	a := newTestApp(t)
	a.exec(`INSERT INTO Customer (CustomerID, Cname, Refers) VALUES (1, 'Kiran', 1), (2, 'Devi', 1)`)

	p := decodePage(t, a.get("/"))
	var total int64
	p.field(t, "total_customers", &total)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []string{"admin"}, a.opener.users())
	assert.True(t, a.opener.allReleased())

	a.loginAs("meera", models.RoleAccountant)
	decodePage(t, a.get("/"))
	assert.Equal(t, []string{"accountant"}, a.opener.users())
	assert.True(t, a.opener.allReleased())

	a.opener.fail = errDown
	p = decodePage(t, a.get("/"))
	p.field(t, "total_customers", &total)
	assert.Zero(t, total)
	assert.Len(t, p.Notices, 1)
}

func TestStatus(t *testing.T) {
	a := newTestApp(t)
	rec := a.get("/status")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"ok","driver":"sqlite3"}`, rec.Body.String())

	a.opener.fail = errDown
	assert.Equal(t, 503, a.get("/status").Code)
}
