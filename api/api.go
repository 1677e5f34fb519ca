package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velokiez/cargoshare-backend/bike"
	"github.com/velokiez/cargoshare-backend/challenge"
	"github.com/velokiez/cargoshare-backend/internal/middleware"
	"github.com/velokiez/cargoshare-backend/internal/o11y"
	"github.com/velokiez/cargoshare-backend/mailer"
	"github.com/velokiez/cargoshare-backend/rent"
	"github.com/velokiez/cargoshare-backend/supporter"
)

const (
	apiName    = "cargoshare-backend"
	apiVersion = "2.0.0"
)

// Store interfaces are defined on the consumer side so handlers can be
// wired against in-memory doubles at construction time.

type BikeStore interface {
	GetBikes(ctx context.Context) ([]bike.Translatable, error)
}

type RentStore interface {
	GetRents(ctx context.Context, asOf time.Time) ([]rent.Rent, error)
	CreateBooking(ctx context.Context, booking rent.Booking) error
	RevokeBooking(ctx context.Context, token uuid.UUID) error
}

type ChallengeStore interface {
	GetRandomChallenge(ctx context.Context, locale string) (challenge.Translatable, error)
	VerifyChallenge(ctx context.Context, resp challenge.Response) (challenge.Token, error)
}

type SupporterStore interface {
	GetSupporters(ctx context.Context) ([]supporter.SupporterWithTypeAndTranslatable, error)
}

type API struct {
	r            *gin.Engine
	bikes        BikeStore
	rents        RentStore
	challenges   ChallengeStore
	supporters   SupporterStore
	mail         mailer.Sender
	sendRentMail bool

	bookingsTotal *prometheus.CounterVec
}

type Config struct {
	SendRentMail    bool
	MetricsUsername string
	MetricsPassword string
}

func New(bs BikeStore, rs RentStore, cs ChallengeStore, ss SupporterStore, mail mailer.Sender, obs *o11y.Observability, cfg Config) *API {
	a := &API{
		r:            gin.New(),
		bikes:        bs,
		rents:        rs,
		challenges:   cs,
		supporters:   ss,
		mail:         mail,
		sendRentMail: cfg.SendRentMail,
	}

	a.bookingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by outcome",
		},
		[]string{"outcome"},
	)
	obs.Registry.MustRegister(a.bookingsTotal)

	a.r.Use(gin.Recovery())
	a.r.Use(middleware.Tracing())
	a.r.Use(middleware.Logging(obs.Logger))
	a.r.Use(middleware.Metrics(obs.Registry))

	a.r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"name": apiName, "version": apiVersion})
	})
	a.r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	a.r.GET("/bikes", a.bikesHandler)
	a.r.GET("/rents", a.getRentsHandler)
	a.r.POST("/rents", a.createRentHandler)
	a.r.POST("/rents/:token/revoke", a.revokeRentHandler)
	a.r.GET("/challenges/:locale/random", a.randomChallengeHandler)
	a.r.POST("/challenges/test", a.testChallengeHandler)
	a.r.GET("/supporters", a.supportersHandler)

	metrics := a.r.Group("/metrics")
	if cfg.MetricsUsername != "" {
		metrics.Use(gin.BasicAuth(gin.Accounts{cfg.MetricsUsername: cfg.MetricsPassword}))
	}
	metrics.GET("", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))

	return a
}

func (a *API) Router() *gin.Engine {
	return a.r
}
