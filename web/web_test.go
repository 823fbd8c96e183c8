package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"shopfront/database"
	"shopfront/database/model"
	"shopfront/web/entity"
	"shopfront/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()

	dbPath := "test.db"
	os.Remove(dbPath)
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() {
		db, _ := database.GetDB().DB()
		db.Close()
		os.Remove(dbPath)
	})

	settingService := service.SettingService{}
	require.NoError(t, settingService.SetUploadFolder(t.TempDir()))

	server := NewServer()
	engine, err := server.initRouter()
	require.NoError(t, err)
	return engine
}

// client carries cookies between requests like a browser would.
type client struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, engine *gin.Engine) *client {
	return &client{t: t, engine: engine, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	c.t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil, "")
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
}

func (c *client) loginAsAdmin() {
	c.t.Helper()
	w := c.postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"admin"},
	})
	require.Equal(c.t, http.StatusSeeOther, w.Code)
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) entity.Msg {
	t.Helper()
	var m entity.Msg
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestHomeIsPublic(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	m := decodeMsg(t, w)
	assert.True(t, m.Success)
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.get("/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Fprofile", w.Header().Get("Location"))
}

func TestLogoutWithoutSessionIsHarmless(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=%2Flogout", w.Header().Get("Location"))
}

func TestLoginWrongPassword(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// No session was established.
	w = c.get("/profile")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestLoginAndProfile(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)
	c.loginAsAdmin()

	w := c.get("/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin"`)
}

func TestLoginRedirectsToNext(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/login?next=%2Fadmin%2Fdashboard", url.Values{
		"email":    {"admin@example.com"},
		"password": {"admin"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
}

func TestLoginRejectsExternalNext(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/login?next=%2F%2Fevil.example", url.Values{
		"email":    {"admin@example.com"},
		"password": {"admin"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRegisterMismatchPersistsNothing(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	var before int64
	database.GetDB().Model(model.User{}).Count(&before)

	w := c.postForm("/register", url.Values{
		"username":         {"mallory"},
		"email":            {"mallory@example.com"},
		"password":         {"one"},
		"confirm_password": {"two"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var after int64
	database.GetDB().Model(model.User{}).Count(&after)
	assert.Equal(t, before, after)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/register", url.Values{
		"username":         {"second-admin"},
		"email":            {"admin@example.com"},
		"password":         {"pw"},
		"confirm_password": {"pw"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAdminForbiddenForNonAdmin(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/register", url.Values{
		"username":         {"visitor"},
		"email":            {"visitor@example.com"},
		"password":         {"pw"},
		"confirm_password": {"pw"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.postForm("/login", url.Values{
		"email":    {"visitor@example.com"},
		"password": {"pw"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	for _, path := range []string{"/admin/dashboard", "/admin/products", "/admin/add_product", "/admin/broadcast"} {
		w = c.get(path)
		assert.Equal(t, http.StatusForbidden, w.Code, "path %s", path)
	}
}

func TestAdminAllowedForAdmin(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)
	c.loginAsAdmin()

	for _, path := range []string{"/admin/dashboard", "/admin/products", "/admin/add_product", "/admin/broadcast"} {
		w := c.get(path)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}

func TestAddProductWithDisallowedUpload(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)
	c.loginAsAdmin()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Sneakers"))
	require.NoError(t, mw.WriteField("description", "Fast shoes."))
	require.NoError(t, mw.WriteField("price", "49.90"))
	require.NoError(t, mw.WriteField("category", "kids"))
	part, err := mw.CreateFormFile("image", "payload.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := c.do(http.MethodPost, "/admin/add_product", &body, mw.FormDataContentType())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/products", w.Header().Get("Location"))

	// The product was created with the placeholder image, not rejected.
	catalogService := service.CatalogService{}
	products, err := catalogService.ListProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sneakers", products[0].Name)
	assert.Equal(t, model.DefaultProductImage, products[0].Image)

	// The success notice shows up once on the next page.
	w = c.get("/admin/products")
	assert.Contains(t, w.Body.String(), "Product added successfully!")
	w = c.get("/admin/products")
	assert.NotContains(t, w.Body.String(), "Product added successfully!")
}

func TestAddProductValidationFailure(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)
	c.loginAsAdmin()

	w := c.postForm("/admin/add_product", url.Values{
		"name":        {"Hat"},
		"description": {"A hat."},
		"price":       {"9.50"},
		"category":    {"hats"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	m := decodeMsg(t, w)
	assert.False(t, m.Success)

	catalogService := service.CatalogService{}
	products, err := catalogService.ListProducts()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestBroadcastWorkflow(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)
	c.loginAsAdmin()

	w := c.postForm("/admin/broadcast", url.Values{"message": {"Summer sale!"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	w = c.get("/")
	assert.Contains(t, w.Body.String(), "Summer sale!")
}

func TestRegisterLoginLogoutRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	c := newClient(t, engine)

	w := c.postForm("/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"s3cret"},
		"confirm_password": {"s3cret"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = c.postForm("/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"s3cret"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.get("/profile")
	assert.Equal(t, http.StatusOK, w.Code)

	w = c.get("/logout")
	assert.Equal(t, http.StatusFound, w.Code)

	w = c.get("/profile")
	assert.Equal(t, http.StatusFound, w.Code)
}
