package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tourismBooking/internal/apperrors"
	"tourismBooking/internal/auth"
	"tourismBooking/internal/catalog"
	"tourismBooking/internal/db"
	"tourismBooking/internal/testutil"
	"tourismBooking/models"
	"tourismBooking/pkg/logger"
	"tourismBooking/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingOpener wraps a real connector and remembers every connection it
// hands out, so tests can count datastore access and check release.
type recordingOpener struct {
	inner *db.Connector

	mu     sync.Mutex
	fail   error
	params []db.Params
	conns  []*db.Conn
}

func (o *recordingOpener) Open(ctx context.Context, p db.Params) (*db.Conn, error) {
	o.mu.Lock()
	o.params = append(o.params, p)
	fail := o.fail
	o.mu.Unlock()
	if fail != nil {
		return nil, &apperrors.ConnectionError{Cause: fail}
	}
	conn, err := o.inner.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	o.mu.Lock()
	o.conns = append(o.conns, conn)
	o.mu.Unlock()
	return conn, nil
}

func (o *recordingOpener) opens() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.params)
}

func (o *recordingOpener) users() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, 0, len(o.params))
	for _, p := range o.params {
		out = append(out, p.User)
	}
	return out
}

func (o *recordingOpener) allReleased() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, c := range o.conns {
		if !c.Released() {
			return false
		}
	}
	return true
}

func (o *recordingOpener) reset() {
	o.mu.Lock()
	o.params, o.conns, o.fail = nil, nil, nil
	o.mu.Unlock()
}

// testApp drives the full engine with a cookie jar of one client.
type testApp struct {
	t       *testing.T
	db      *sql.DB
	opener  *recordingOpener
	handler *Handler
	engine  *gin.Engine
	cookies map[string]*http.Cookie
	header  http.Header // sent with every request
}

func newTestApp(t *testing.T, configure ...func(*Options)) *testApp {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	d := testutil.OpenInMemoryDB(t, name)
	creds := testutil.SQLiteRouter(t, name)
	connector := db.NewConnector(db.DriverSQLite)
	opener := &recordingOpener{inner: connector}

	opts := Options{
		Log:               logger.Discard(),
		Credentials:       creds,
		Opener:            opener,
		Driver:            db.DriverSQLite,
		Catalog:           catalog.New(CatalogLoader(connector, creds.Resolve("")), time.Minute),
		StrictRoles:       true,
		AllowRegistration: true,
	}
	for _, fn := range configure {
		fn(&opts)
	}
	store, err := auth.NewCookieStore("test-secret", auth.CookieOptions{Name: "tourism_session", TTL: time.Hour})
	require.NoError(t, err)

	h := NewHandler(opts)
	return &testApp{
		t:       t,
		db:      d,
		opener:  opener,
		handler: h,
		engine:  NewRouter(logger.Discard(), h, store, RouterOptions{}),
		cookies: map[string]*http.Cookie{},
		header:  http.Header{},
	}
}

func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range a.header {
		req.Header[k] = v
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(a.cookies, c.Name)
			continue
		}
		a.cookies[c.Name] = c
	}
	return rec
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(http.MethodGet, path, nil)
}

func (a *testApp) post(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, form)
}

type page struct {
	Page     string           `json:"page"`
	Notices  []auth.Flash     `json:"notices"`
	Identity *models.Identity `json:"identity"`

	raw map[string]json.RawMessage
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) page {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p.raw))
	return p
}

// field decodes one data key of the page into dst.
func (p page) field(t *testing.T, key string, dst any) {
	t.Helper()
	raw, ok := p.raw[key]
	require.True(t, ok, "page %s has no %q", p.Page, key)
	require.NoError(t, json.Unmarshal(raw, dst))
}

// notices fetches a page that needs no datastore and returns the pending
// notices it consumed.
func (a *testApp) notices() []auth.Flash {
	a.t.Helper()
	return decodePage(a.t, a.get("/login")).Notices
}

func messages(fl []auth.Flash) []string {
	out := make([]string, 0, len(fl))
	for _, f := range fl {
		out = append(out, f.Message)
	}
	return out
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, to, rec.Header().Get("Location"))
}

func (a *testApp) seedUser(username, password string, role models.Role) {
	a.t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(a.t, err)
	_, err = repository.NewUserRepository(a.db).Create(context.Background(), username, hash, role)
	require.NoError(a.t, err)
}

// loginAs seeds an account with role, logs in through the form and clears
// the welcome notice and the opener history.
func (a *testApp) loginAs(username string, role models.Role) {
	a.t.Helper()
	a.seedUser(username, "pw-"+username, role)
	requireRedirect(a.t, a.post("/login", url.Values{"username": {username}, "password": {"pw-" + username}}), "/")
	a.notices()
	a.opener.reset()
}

func (a *testApp) count(table string) int {
	a.t.Helper()
	var n int
	require.NoError(a.t, a.db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func (a *testApp) exec(query string, args ...any) {
	a.t.Helper()
	_, err := a.db.Exec(query, args...)
	require.NoError(a.t, err)
}

var errDown = errors.New("connection refused")
