package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/doctors-portal-api/internal/auth"
	"github.com/clinicware/doctors-portal-api/internal/booking"
	"github.com/clinicware/doctors-portal-api/internal/metrics"
	"github.com/clinicware/doctors-portal-api/internal/models"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIntents struct {
	secret string
	err    error
}

func (f fakeIntents) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	return f.secret, f.err
}

type testAPI struct {
	router *gin.Engine
	store  *store.Memory
	tokens *auth.Manager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	mem := store.NewMemory()
	logger := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	tokens, err := auth.NewManager("test-secret")
	require.NoError(t, err)

	engine := booking.NewEngine(mem, logger, m)
	h := NewHandler(mem, engine, tokens, fakeIntents{secret: "cs_test_123"}, logger)

	r := gin.New()
	h.RegisterRoutes(r)
	return &testAPI{router: r, store: mem, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := a.tokens.Generate(email)
	require.NoError(t, err)
	return token
}

func (a *testAPI) makeAdmin(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()
	_, err := a.store.UpsertUser(ctx, models.User{Email: email})
	require.NoError(t, err)
	require.NoError(t, a.store.SetUserRole(ctx, email, models.RoleAdmin))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetServices(t *testing.T) {
	api := newTestAPI(t)
	api.store.SeedServices([]models.Service{
		{Name: "Cleaning", Price: 50, Slots: []string{"9am", "10am"}},
	})

	w := api.do(t, http.MethodGet, "/service", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, "Cleaning", services[0].Name)
}

func TestGetAvailable(t *testing.T) {
	api := newTestAPI(t)
	api.store.SeedServices([]models.Service{
		{Name: "Cleaning", Slots: []string{"9am", "10am"}},
	})

	w := api.do(t, http.MethodPost, "/booking",
		`{"email":"a@x.com","treatment":"Cleaning","appointmentDate":"2024-01-01","slot":"9am"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/available?date=2024-01-01", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var services []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &services))
	require.Len(t, services, 1)
	assert.Equal(t, []string{"10am"}, services[0].Slots)
}

func TestGetAvailableMissingDate(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/available", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingDuplicate(t *testing.T) {
	api := newTestAPI(t)
	body := `{"email":"a@x.com","treatment":"Cleaning","appointmentDate":"2024-01-01","slot":"9am"}`

	w := api.do(t, http.MethodPost, "/booking", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	assert.Equal(t, true, first["success"])

	w = api.do(t, http.MethodPost, "/booking", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := decode(t, w)
	assert.Equal(t, false, second["success"])
	assert.Contains(t, second["message"], "2024-01-01")

	firstBooking := first["booking"].(map[string]any)
	secondBooking := second["booking"].(map[string]any)
	assert.Equal(t, firstBooking["_id"], secondBooking["_id"])
}

func TestMyAppointments(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokenFor(t, "a@x.com")

	w := api.do(t, http.MethodGet, "/myappointment?email=a@x.com", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/myappointment?email=b@x.com", "", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	api.do(t, http.MethodPost, "/booking",
		`{"email":"a@x.com","treatment":"Cleaning","appointmentDate":"2024-01-01","slot":"9am"}`, "")

	w = api.do(t, http.MethodGet, "/myappointment?email=a@x.com", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "Cleaning", bookings[0].Treatment)
}

func TestUpsertUserIssuesToken(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodPut, "/user/a@x.com", `{"name":"Ana"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	token, ok := resp["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// The issued token passes the guard.
	w = api.do(t, http.MethodGet, "/users", "", token)
	require.Equal(t, http.StatusOK, w.Code)

	var users []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ana", users[0].Name)

	// A second upsert updates in place instead of duplicating.
	w = api.do(t, http.MethodPut, "/user/a@x.com", `{"name":"Ana B"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(t, http.MethodGet, "/users", "", token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestAdminElevation(t *testing.T) {
	api := newTestAPI(t)
	api.makeAdmin(t, "admin@x.com")
	adminToken := api.tokenFor(t, "admin@x.com")
	userToken := api.tokenFor(t, "user@x.com")

	_, err := api.store.UpsertUser(context.Background(), models.User{Email: "target@x.com"})
	require.NoError(t, err)

	w := api.do(t, http.MethodPut, "/user/admin/target@x.com", "", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPut, "/user/admin/target@x.com", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/admin/target@x.com", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["admin"])

	w = api.do(t, http.MethodGet, "/admin/nobody@x.com", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["admin"])
}

func TestAdminElevationUnknownUser(t *testing.T) {
	api := newTestAPI(t)
	api.makeAdmin(t, "admin@x.com")

	w := api.do(t, http.MethodPut, "/user/admin/ghost@x.com", "", api.tokenFor(t, "admin@x.com"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoctorRoutes(t *testing.T) {
	api := newTestAPI(t)
	api.makeAdmin(t, "admin@x.com")
	adminToken := api.tokenFor(t, "admin@x.com")
	userToken := api.tokenFor(t, "user@x.com")

	w := api.do(t, http.MethodGet, "/doctor", "", userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPost, "/doctor",
		`{"name":"Dr. Rivera","email":"rivera@clinic.com","specialty":"Orthodontics"}`, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/doctor", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	var doctors []models.Doctor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	require.Len(t, doctors, 1)

	w = api.do(t, http.MethodDelete, "/doctor/rivera@clinic.com", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["deletedCount"])

	w = api.do(t, http.MethodGet, "/doctor", "", adminToken)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	assert.Empty(t, doctors)
}

func TestCreatePaymentIntent(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokenFor(t, "a@x.com")

	w := api.do(t, http.MethodPost, "/create-payment-intent", `{"treatmentPrice":50}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/create-payment-intent", `{"treatmentPrice":0}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/create-payment-intent", `{"treatmentPrice":50}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cs_test_123", decode(t, w)["clientSecret"])
}

func TestBookingPaymentFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokenFor(t, "a@x.com")

	w := api.do(t, http.MethodPost, "/booking",
		`{"email":"a@x.com","treatment":"Cleaning","appointmentDate":"2024-01-01","slot":"9am","price":50}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)["booking"].(map[string]any)
	id := created["_id"].(string)

	w = api.do(t, http.MethodGet, "/booking/"+id, "", token)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPatch, "/booking/"+id, `{"transactionId":"txn_123","amount":50}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode(t, w)
	assert.Equal(t, true, updated["paid"])
	assert.Equal(t, "txn_123", updated["transactionId"])

	require.Len(t, api.store.Payments(), 1)
}

func TestBookingPaymentBadID(t *testing.T) {
	api := newTestAPI(t)
	token := api.tokenFor(t, "a@x.com")

	w := api.do(t, http.MethodPatch, "/booking/not-hex", `{"transactionId":"txn_1"}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/booking/64b000000000000000000000", "", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
