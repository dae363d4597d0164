package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/priyadarshi/darzi/app/models"
	"github.com/priyadarshi/darzi/pkg/database"
	"github.com/priyadarshi/darzi/pkg/hash"
	"github.com/priyadarshi/darzi/pkg/router"
	"github.com/priyadarshi/darzi/pkg/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Order{},
		&models.OrderProgress{},
		&models.Measurement{},
	))

	r := router.New()
	Register(r, db, ws.NewHub())

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv, db
}

// call issues a request and decodes the JSON response body into a map.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (int, map[string]interface{}, http.Header) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded, resp.Header
}

func registerCustomer(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	status, body, _ := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":  "meena",
		"email":     "meena@example.com",
		"password":  "stitch-in-time",
		"firstName": "Meena",
		"lastName":  "Kapoor",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body["token"])
	return body["token"].(string)
}

func seedAdmin(t *testing.T, srv *httptest.Server, db *gorm.DB) string {
	t.Helper()

	hashed, err := hash.Password("admin-pass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username:     "boss",
		Email:        "boss@example.com",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}).Error)

	status, body, _ := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "boss",
		"password": "admin-pass",
	})
	require.Equal(t, http.StatusOK, status)
	return body["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	srv, _ := setup(t)

	token := registerCustomer(t, srv)

	// Login with the email as identifier.
	status, body, _ := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "meena@example.com",
		"password": "stitch-in-time",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "meena", body["username"])
	assert.Equal(t, "Customer", body["role"])
	assert.NotEmpty(t, body["expiresAt"])

	// Wrong password: 401 with a bare message.
	status, body, _ = call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "meena",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["message"])

	// Token echo.
	status, body, _ = call(t, srv, http.MethodGet, "/api/auth/validate", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "meena", body["username"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := setup(t)

	status, _, _ := call(t, srv, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = call(t, srv, http.MethodGet, "/api/orders", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRoleGates(t *testing.T) {
	srv, db := setup(t)
	customerToken := registerCustomer(t, srv)
	adminToken := seedAdmin(t, srv, db)

	orderBody := map[string]interface{}{
		"customer": map[string]string{
			"firstName": "Ravi", "lastName": "Singh", "email": "ravi@example.com",
		},
		"garmentType": "Suit",
		"dueDate":     "2099-01-01",
		"totalAmount": 500,
		"advancePaid": 200,
	}

	// Customers can read but not write orders.
	status, _, _ := call(t, srv, http.MethodGet, "/api/orders", customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _, _ = call(t, srv, http.MethodPost, "/api/orders", customerToken, orderBody)
	assert.Equal(t, http.StatusForbidden, status)

	// Admins can write.
	status, body, headers := call(t, srv, http.MethodPost, "/api/orders", adminToken, orderBody)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, headers.Get("Location"), "/api/orders/")
	assert.Contains(t, body["orderNumber"], "ORD-")

	// Customer listing is admin-only, but a single customer is readable.
	status, _, _ = call(t, srv, http.MethodGet, "/api/customers", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _, _ = call(t, srv, http.MethodGet, "/api/customers/1", customerToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	srv, db := setup(t)
	adminToken := seedAdmin(t, srv, db)

	status, body, _ := call(t, srv, http.MethodPost, "/api/orders", adminToken, map[string]interface{}{
		"customer": map[string]string{
			"firstName": "Asha", "lastName": "Verma", "email": "asha@example.com",
		},
		"garmentType": "Lehenga",
		"dueDate":     "2099-06-01",
		"totalAmount": 500,
		"advancePaid": 200,
		"chest":       38,
	})
	require.Equal(t, http.StatusCreated, status)
	orderID := int(body["id"].(float64))

	// Status body is the bare numeric code.
	status, body, _ = call(t, srv, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), adminToken, "1")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["status"])

	// Skipping a step is a 400 with itemized errors.
	status, body, _ = call(t, srv, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), adminToken, "4")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["errors"])

	// Non-numeric body.
	status, _, _ = call(t, srv, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), adminToken, `"Confirmed"`)
	assert.Equal(t, http.StatusBadRequest, status)

	// Progress history lists the transition.
	req, _ := http.NewRequest(http.MethodGet, srv.URL+fmt.Sprintf("/api/orders/%d/progress", orderID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var history []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 2) // initial Pending + Confirmed
	assert.EqualValues(t, 1, history[1]["status"])

	// Delete, then 404.
	status, _, _ = call(t, srv, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _, _ = call(t, srv, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestOrderListEnvelope(t *testing.T) {
	srv, db := setup(t)
	adminToken := seedAdmin(t, srv, db)

	customer := models.Customer{FirstName: "Asha", LastName: "Verma", Email: "asha@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	for i := 0; i < 12; i++ {
		status, _, _ := call(t, srv, http.MethodPost, "/api/orders", adminToken, map[string]interface{}{
			"customerId":  customer.ID,
			"garmentType": "Kurta",
			"dueDate":     "2099-06-01",
			"totalAmount": 100,
		})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body, _ := call(t, srv, http.MethodGet, "/api/orders?pageNumber=2&pageSize=5&sortBy=duedate", adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	assert.EqualValues(t, 12, body["totalCount"])
	assert.EqualValues(t, 2, body["pageNumber"])
	assert.EqualValues(t, 5, body["pageSize"])
	assert.EqualValues(t, 3, body["totalPages"])

	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 5)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "Asha Verma", first["customerName"])
	assert.Contains(t, first, "balance")
}

func TestValidationErrorShape(t *testing.T) {
	srv, _ := setup(t)

	status, body, _ := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "x",
		"email":    "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body["message"])

	errs, ok := body["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := setup(t)

	// Generate at least one sample before scraping.
	status, _, _ := call(t, srv, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "darzi_http_requests_total")
}
