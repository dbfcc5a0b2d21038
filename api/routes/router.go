package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunakids/lunakids-backend/api/controllers"
	"github.com/lunakids/lunakids-backend/api/middleware"
	cartsvc "github.com/lunakids/lunakids-backend/internal/cart"
	chatsvc "github.com/lunakids/lunakids-backend/internal/chat"
	checkoutsvc "github.com/lunakids/lunakids-backend/internal/checkout"
	ordersvc "github.com/lunakids/lunakids-backend/internal/orders"
	productsvc "github.com/lunakids/lunakids-backend/internal/products"
	promosvc "github.com/lunakids/lunakids-backend/internal/promos"
	settingssvc "github.com/lunakids/lunakids-backend/internal/settings"
	wishlistsvc "github.com/lunakids/lunakids-backend/internal/wishlist"
	"github.com/lunakids/lunakids-backend/pkg/config"
	"github.com/lunakids/lunakids-backend/pkg/db"
	"github.com/lunakids/lunakids-backend/pkg/logger"
	"github.com/lunakids/lunakids-backend/pkg/redis"
)

// RouterParams carries every dependency the HTTP surface needs.
type RouterParams struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Redis    *redis.Client
	Products productsvc.Service
	Cart     cartsvc.Service
	Wishlist wishlistsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
	Settings settingssvc.Service
	Promos   promosvc.Service
	Chat     chatsvc.Service
}

// NewRouter wires the storefront and admin route trees.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(p.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(p.Products, logg))
		})
		r.Get("/settings", controllers.PublicSettings(p.Settings, logg))

		// Everything below keys state to the shopper's session header.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(p.Cart, logg))
				r.Post("/items", controllers.CartAdd(p.Cart, p.Products, logg))
				r.Patch("/items/{productId}", controllers.CartSetQuantity(p.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveLine(p.Cart, logg))
				r.Post("/refresh", controllers.CartRefresh(p.Cart, logg))
				r.Delete("/", controllers.CartClear(p.Cart, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistFetch(p.Wishlist, logg))
				r.Get("/ids", controllers.WishlistIDs(p.Wishlist, logg))
				r.Post("/{productId}", controllers.WishlistAdd(p.Wishlist, logg))
				r.Delete("/{productId}", controllers.WishlistRemove(p.Wishlist, logg))
			})

			r.Route("/promos", func(r chi.Router) {
				r.Post("/spin", controllers.PromoSpin(p.Promos, logg))
				r.Post("/exit-intent", controllers.PromoExitIntent(p.Promos, logg))
				r.Get("/active", controllers.PromoActive(p.Promos, logg))
			})

			r.Post("/checkout", controllers.Checkout(p.Checkout, logg))
			r.Post("/chat", controllers.ChatAsk(p.Chat, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.With(middleware.LoginRateLimit(cfg.AdminRateLimit, p.Redis, logg)).
			Post("/auth/login", controllers.AdminLogin(p.Settings, cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Get("/ping", controllers.AdminPing())
			r.Post("/auth/change-password", controllers.AdminChangePassword(p.Settings, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminListProducts(p.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(p.Products, logg))
				r.Get("/{productId}", controllers.AdminGetProduct(p.Products, logg))
				r.Put("/{productId}", controllers.AdminUpdateProduct(p.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(p.Products, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(p.Orders, logg))
				r.Get("/{orderId}", controllers.AdminGetOrder(p.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(p.Orders, logg))
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.AdminListSettings(p.Settings, logg))
				r.Put("/", controllers.AdminSetSetting(p.Settings, logg))
			})
		})
	})

	return r
}
