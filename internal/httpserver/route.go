package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/biblion/pkg/middleware/auth"
	"github.com/Skotchmaster/biblion/pkg/middleware/csrf"
)

const APIPrefix = "/api/v1"

type Deps struct {
	Books    *BookHTTP
	Auth     *AuthHTTP
	Cart     *CartHTTP
	Wishlist *WishlistHTTP
	Checkout *CheckoutHTTP
	Session  *SessionHTTP

	AuthMW *middleware.AutoRefreshMiddleware
	Ready  func(ctx context.Context) error

	// CSRF is nil when the check is disabled.
	CSRF *csrf.Config

	// SamplesDir is served under /books/ for the reader fallbacks.
	SamplesDir string
}

func Register(e *echo.Echo, d *Deps) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.SamplesDir != "" {
		e.Static("/books", d.SamplesDir)
	}

	api := e.Group(APIPrefix)
	if d.CSRF != nil {
		api.Use(csrf.Middleware(*d.CSRF))
	}
	user := d.AuthMW.RequireAuth
	admin := d.AuthMW.RequireAdmin

	books := api.Group("/books")
	books.GET("", d.Books.ListBooks)
	books.GET("/bestsellers", d.Books.Bestsellers)
	books.GET("/:id", d.Books.GetBook)
	books.GET("/:id/related", d.Books.Related)
	books.GET("/:id/reader", d.Books.ReaderDescriptor)
	books.GET("/:id/file", d.Books.ReaderFile)
	books.PATCH("/:id", d.Books.PatchBook, admin)

	api.GET("/categories", d.Books.Categories)
	api.GET("/search/suggestions", d.Books.Suggestions)

	recent := api.Group("/search/recent", user)
	recent.GET("", d.Session.ListRecent)
	recent.POST("", d.Session.AddRecent)
	recent.DELETE("", d.Session.ClearRecent)

	api.GET("/collections", d.Books.Collections)
	api.GET("/collections/seasonal/current", d.Books.CurrentSeason)
	api.GET("/collections/:id", d.Books.Collection)
	api.GET("/adaptations", d.Books.Adaptations)

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)
	auth.GET("/me", d.Auth.Me, user)

	cart := api.Group("/cart", user)
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.ClearCart)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:bookId", d.Cart.UpdateQuantity)
	cart.DELETE("/items/:bookId", d.Cart.RemoveItem)
	cart.POST("/items/:bookId/decrement", d.Cart.DecrementItem)

	wishlist := api.Group("/wishlist", user)
	wishlist.GET("", d.Wishlist.List)
	wishlist.POST("/items", d.Wishlist.Add)
	wishlist.GET("/items/:bookId", d.Wishlist.Contains)
	wishlist.DELETE("/items/:bookId", d.Wishlist.Remove)
	wishlist.POST("/items/:bookId/toggle", d.Wishlist.Toggle)

	co := api.Group("/checkout", user)
	co.GET("", d.Checkout.Get)
	co.DELETE("", d.Checkout.Reset)
	co.POST("/start", d.Checkout.Start)
	co.POST("/back", d.Checkout.Back)
	co.PUT("/shipping", d.Checkout.Shipping)
	co.POST("/payment", d.Checkout.Payment)

	orders := api.Group("/orders", user)
	orders.GET("", d.Checkout.ListOrders)
	orders.GET("/:number", d.Checkout.GetOrder)

	api.POST("/session/import", d.Session.ImportSnapshot, user)
}
