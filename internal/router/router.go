package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/developeragency5/InkjetProGuide-sub002/internal/cart"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/catalog"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/checkout"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/logger"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/middleware"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/order"
	"github.com/developeragency5/InkjetProGuide-sub002/internal/user"
)

func NewRouter(
	userH *user.Handler,
	catalogH *catalog.Handler,
	cartH *cart.Handler,
	checkoutH *checkout.Handler,
	orderH *order.Handler,
	jwtSecret []byte,
	userRepo user.UserRepository,
) chi.Router {
	r := chi.NewRouter()

	r.Use(logger.WithLogging)
	r.Use(chiMiddleware.Recoverer)

	r.Use(middleware.GzipHandler)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/login", userH.Login)
	})

	r.Get("/api/products", catalogH.List)
	r.Get("/api/products/{productID}", catalogH.Get)

	// guest order tracking: the full order ID is the only credential
	r.Get("/api/orders/{orderID}", orderH.Lookup)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(jwtSecret, userRepo))

		r.Get("/api/user/cart", cartH.List)
		r.Post("/api/user/cart/items", cartH.AddItem)
		r.Patch("/api/user/cart/items/{lineID}", cartH.UpdateQuantity)
		r.Delete("/api/user/cart/items/{lineID}", cartH.RemoveItem)

		r.Route("/api/user/checkout", func(r chi.Router) {
			r.Post("/", checkoutH.Start)
			r.Get("/", checkoutH.Current)
			r.Post("/shipping-info", checkoutH.SubmitShippingInfo)
			r.Post("/shipping-method", checkoutH.SelectShippingMethod)
			r.Post("/payment-method", checkoutH.SelectPaymentMethod)
			r.Post("/payment-intent", checkoutH.CreatePaymentIntent)
			r.Post("/confirm", checkoutH.Confirm)
			r.Post("/back", checkoutH.Back)
		})

		r.Get("/api/user/orders", orderH.ListMine)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)

			r.Get("/api/admin/orders", orderH.ListAll)
			r.Post("/api/admin/orders/{orderID}/status", orderH.UpdateStatus)
			r.Post("/api/admin/products", catalogH.Upsert)
		})
	})

	return r
}
