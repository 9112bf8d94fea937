package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quicklinkhq/quicklink-backend/api/controllers"
	"github.com/quicklinkhq/quicklink-backend/api/middleware"
	"github.com/quicklinkhq/quicklink-backend/internal/auth"
	"github.com/quicklinkhq/quicklink-backend/internal/cart"
	"github.com/quicklinkhq/quicklink-backend/internal/notifications"
	"github.com/quicklinkhq/quicklink-backend/internal/orders"
	"github.com/quicklinkhq/quicklink-backend/internal/products"
	"github.com/quicklinkhq/quicklink-backend/internal/properties"
	"github.com/quicklinkhq/quicklink-backend/internal/restaurants"
	"github.com/quicklinkhq/quicklink-backend/internal/rides"
	"github.com/quicklinkhq/quicklink-backend/internal/users"
	"github.com/quicklinkhq/quicklink-backend/pkg/auth/session"
	"github.com/quicklinkhq/quicklink-backend/pkg/config"
	"github.com/quicklinkhq/quicklink-backend/pkg/db"
	"github.com/quicklinkhq/quicklink-backend/pkg/logger"
	"github.com/quicklinkhq/quicklink-backend/pkg/metrics"
	"github.com/quicklinkhq/quicklink-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth          auth.Service
	Register      auth.RegisterService
	Users         *users.Repository
	Cart          cart.Service
	Products      products.Service
	Restaurants   restaurants.Service
	Rides         rides.Service
	Properties    properties.Service
	Orders        orders.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Register, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, cfg.JWT, logg))
	})

	// browse surfaces are public
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductsList(svcs.Products, logg))
		r.Get("/{productID}", controllers.ProductsGet(svcs.Products, logg))
	})
	r.Route("/api/v1/restaurants", func(r chi.Router) {
		r.Get("/", controllers.RestaurantsList(svcs.Restaurants, logg))
		r.Get("/{restaurantID}/menu", controllers.RestaurantsMenu(svcs.Restaurants, logg))
	})
	r.Route("/api/v1/properties", func(r chi.Router) {
		r.Get("/", controllers.PropertiesList(svcs.Properties, logg))
		r.Get("/{propertyID}", controllers.PropertiesGet(svcs.Properties, logg))
	})
	r.Route("/api/v1/rides/quote", func(r chi.Router) {
		r.Get("/tariffs", controllers.RidesTariffs(svcs.Rides, logg))
		r.Post("/estimate", controllers.RidesEstimate(svcs.Rides, logg))
	})

	// the cart is usable both by guests (X-Guest-Key) and signed-in users
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, sessions, logg))
		r.Use(middleware.CartIdentity(logg))
		r.Get("/", controllers.CartGet(svcs.Cart, logg))
		r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		r.Post("/items", controllers.CartAddItem(svcs.Cart, logg))
		r.Patch("/items/{itemID}", controllers.CartUpdateItem(svcs.Cart, logg))
		r.Delete("/items/{itemID}", controllers.CartRemoveItem(svcs.Cart, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(svcs.Users, logg))
			r.Patch("/", controllers.ProfileUpdate(svcs.Users, logg))
		})

		r.Route("/api/v1/rides", func(r chi.Router) {
			r.Post("/", controllers.RidesRequest(svcs.Rides, logg))
			r.Get("/", controllers.RidesListMine(svcs.Rides, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Post("/checkout", controllers.OrdersCheckout(svcs.Orders, logg))
			r.Get("/", controllers.OrdersListMine(svcs.Orders, logg))
			r.Get("/{orderID}", controllers.OrdersGet(svcs.Orders, logg))
		})

		r.Route("/api/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationsList(svcs.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.NotificationsMarkRead(svcs.Notifications, logg))
			r.Post("/read-all", controllers.NotificationsMarkAllRead(svcs.Notifications, logg))
		})
	})

	return r
}
