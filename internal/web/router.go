package web

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tourismBooking/internal/auth"
	"tourismBooking/models"
	"tourismBooking/pkg/logger"
)

// RouterOptions configures the optional parts of the engine.
type RouterOptions struct {
	Templates   string   // glob of HTML templates; empty keeps the handler's view
	CORSOrigins []string // empty disables CORS
	// TrustedProxies lists the proxy addresses or CIDRs whose forwarding
	// headers set the client IP. Empty trusts none, so the login throttle
	// keys on the socket address.
	TrustedProxies []string
}

// NewRouter builds the engine with every page and its role guard.
func NewRouter(l logger.Log, h *Handler, store auth.Store, o RouterOptions) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(o.TrustedProxies); err != nil {
		l.ErrorErr("invalid trusted proxies, trusting none", err, "proxies", o.TrustedProxies)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())

	if len(o.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     o.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if o.Templates != "" {
		r.LoadHTMLGlob(o.Templates)
		h.view = HTMLView{}
	}

	r.GET("/status", h.Status)

	app := r.Group("", LoggingMiddleware(l), SessionMiddleware(store, l))
	{
		app.GET("/", h.Dashboard)
		app.GET("/login", h.LoginPage)
		app.POST("/login", h.Login)
		app.GET("/register", h.RegisterPage)
		app.POST("/register", h.Register)
		app.GET("/logout", h.Logout)

		all := []models.Role{models.RoleAdmin, models.RoleAgent, models.RoleAccountant}
		guard := func(roles ...models.Role) gin.HandlerFunc { return RequireRoles(h.strict, roles...) }

		customers := app.Group("/customers")
		{
			read := customers.Group("", guard(all...))
			read.GET("", h.Customers)
			read.GET("/view", h.ViewCustomers)
			read.GET("/view_dependents", h.ViewDependents)

			write := customers.Group("", guard(models.RoleAdmin, models.RoleAgent))
			write.POST("/add", h.AddCustomer)
			write.POST("/update", h.UpdateCustomer)
			write.GET("/update", redirectTo(customersPage))
			write.POST("/delete", h.DeleteCustomer)
			write.POST("/add_dependent", h.AddDependent)
			write.POST("/update_dependent", h.UpdateDependent)
			write.GET("/update_dependent", redirectTo(customersPage))
			write.POST("/delete_dependent", h.DeleteDependent)
		}

		bookings := app.Group("/bookings")
		{
			read := bookings.Group("", guard(all...))
			read.GET("", h.Bookings)
			read.GET("/view", h.ViewBookings)

			write := bookings.Group("", guard(models.RoleAdmin, models.RoleAgent))
			write.POST("/add", h.AddBooking)
			write.POST("/update", h.UpdateBooking)
			write.GET("/update", redirectTo(bookingsPage))
			write.POST("/delete", h.DeleteBooking)
		}

		payments := app.Group("/payments")
		{
			read := payments.Group("", guard(all...))
			read.GET("", h.Payments)
			read.GET("/view", h.ViewPayments)

			write := payments.Group("", guard(models.RoleAdmin, models.RoleAccountant))
			write.POST("/add", h.AddPayment)
			write.POST("/update", h.UpdatePayment)
			write.GET("/update", redirectTo(paymentsPage))
			write.POST("/delete", h.DeletePayment)
		}

		packages := app.Group("/packages")
		{
			read := packages.Group("", guard(all...))
			read.GET("", h.Packages)
			read.GET("/view", h.ViewPackages)

			write := packages.Group("", guard(models.RoleAdmin, models.RoleAgent))
			write.POST("/add", h.AddPackage)
			write.POST("/update", h.UpdatePackage)
			write.GET("/update", redirectTo(packagesPage))
			write.POST("/delete", h.DeletePackage)
		}

		travel := []struct {
			base                     string
			list, view               gin.HandlerFunc
			add, update, deleteEntry gin.HandlerFunc
		}{
			{destinationsPage, h.Destinations, h.ViewDestinations, h.AddDestination, h.UpdateDestination, h.DeleteDestination},
			{hotelsPage, h.Hotels, h.ViewHotels, h.AddHotel, h.UpdateHotel, h.DeleteHotel},
			{transportsPage, h.Transports, h.ViewTransports, h.AddTransport, h.UpdateTransport, h.DeleteTransport},
		}
		for _, t := range travel {
			g := app.Group(t.base)
			read := g.Group("", guard(all...))
			read.GET("", t.list)
			read.GET("/view", t.view)

			write := g.Group("", guard(models.RoleAdmin))
			write.POST("/add", t.add)
			write.POST("/update", t.update)
			write.GET("/update", redirectTo(t.base))
			write.POST("/delete", t.deleteEntry)
		}

		reports := app.Group("", guard(all...))
		{
			reports.GET(proceduresPage, h.Procedures)
			reports.POST(proceduresPage+"/run_procedure", h.RunProcedure)
			reports.POST(proceduresPage+"/run_function", h.RunFunction)
			reports.GET(queriesPage, h.Queries)
			reports.GET(queriesPage+"/run_a", h.QueryA)
			reports.GET(queriesPage+"/run_b", h.QueryB)
			reports.GET(queriesPage+"/run_c", h.QueryC)
		}
	}
	return r
}
