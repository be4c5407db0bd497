package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/clinicware/doctors-portal-api/internal/auth"
	"github.com/clinicware/doctors-portal-api/internal/booking"
	"github.com/clinicware/doctors-portal-api/internal/middleware"
	"github.com/clinicware/doctors-portal-api/internal/payments"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

// Handler carries the capabilities the routes need: the store, the booking
// engine, the token manager and the payment processor client.
type Handler struct {
	Store   store.Store
	Engine  *booking.Engine
	Tokens  *auth.Manager
	Intents payments.IntentCreator
	Log     zerolog.Logger
}

func NewHandler(s store.Store, e *booking.Engine, tokens *auth.Manager, intents payments.IntentCreator, log zerolog.Logger) *Handler {
	return &Handler{
		Store:   s,
		Engine:  e,
		Tokens:  tokens,
		Intents: intents,
		Log:     log.With().Str("component", "handlers").Logger(),
	}
}

// RegisterRoutes wires every endpoint onto the router with its guards.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	authed := middleware.RequireAuth(h.Tokens)
	admin := middleware.RequireAdmin(h.Store)

	r.GET("/", h.Welcome)
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/service", h.GetServices)
	r.GET("/available", h.GetAvailable)

	r.POST("/booking", h.CreateBooking)
	r.GET("/booking/:id", authed, h.GetBookingByID)
	r.PATCH("/booking/:id", authed, h.UpdateBookingPayment)
	r.GET("/myappointment", authed, h.GetMyAppointments)

	// gin's routing tree cannot hold /user/:email next to /user/admin/:email,
	// so the PUT /user surface dispatches off one wildcard route. The admin
	// branch runs the same guard chain the other admin routes use.
	r.PUT("/user/*email", h.dispatchUserPut(authed, admin))
	r.GET("/admin/:email", h.CheckAdmin)
	r.GET("/users", authed, h.ListUsers)

	r.POST("/doctor", authed, admin, h.CreateDoctor)
	r.GET("/doctor", authed, admin, h.ListDoctors)
	r.DELETE("/doctor/:email", authed, admin, h.DeleteDoctor)

	r.POST("/create-payment-intent", authed, h.CreatePaymentIntent)
}

func (h *Handler) dispatchUserPut(guards ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimPrefix(c.Param("email"), "/")
		if rest, isAdminRoute := strings.CutPrefix(email, "admin/"); isAdminRoute {
			for _, guard := range guards {
				guard(c)
				if c.IsAborted() {
					return
				}
			}
			h.makeAdmin(c, rest)
			return
		}
		h.upsertUser(c, email)
	}
}

func (h *Handler) Welcome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Doctors Portal.")
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
