package routes

import (
	"github.com/gofiber/fiber/v2"

	"consultancy-backend/controllers"
	"consultancy-backend/middlewares"
	"consultancy-backend/planner"
)

// Options carries the optional collaborators routes depend on.
type Options struct {
	// Parser backs the plan text endpoints; nil makes them answer 503.
	Parser planner.Parser
	// StripeWebhookSecret enables the Stripe webhook when set.
	StripeWebhookSecret string
}

// Register wires all HTTP routes.
func Register(app *fiber.App, opts Options) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Webhooks carry their own signature and are not idempotency-keyed.
	if opts.StripeWebhookSecret != "" {
		api.Post("/webhooks/stripe", controllers.StripeWebhook(opts.StripeWebhookSecret))
	}

	api.Use(middlewares.Idempotency())

	// Projects
	api.Post("/projects", controllers.CreateProject)
	api.Get("/projects", controllers.GetProjects)
	api.Get("/projects/:id", controllers.GetProject)
	api.Patch("/projects/:id", controllers.UpdateProject)
	api.Delete("/projects/:id", controllers.DeleteProject)

	// Tasks
	api.Post("/tasks", controllers.CreateTask)
	api.Get("/tasks", controllers.GetTasks)
	api.Get("/tasks/:id", controllers.GetTask)
	api.Patch("/tasks/:id", controllers.UpdateTask)
	api.Delete("/tasks/:id", controllers.DeleteTask)

	// Clients
	api.Post("/clients", controllers.CreateClient)
	api.Get("/clients", controllers.GetClients)
	api.Get("/clients/:id", controllers.GetClient)
	api.Patch("/clients/:id", controllers.UpdateClient)
	api.Delete("/clients/:id", controllers.DeleteClient)

	// Deals
	api.Post("/deals", controllers.CreateDeal)
	api.Get("/deals", controllers.GetDeals)
	api.Get("/deals/:id", controllers.GetDeal)
	api.Patch("/deals/:id", controllers.UpdateDeal)
	api.Delete("/deals/:id", controllers.DeleteDeal)

	// Invoices
	api.Post("/invoices", controllers.CreateInvoice)
	api.Get("/invoices", controllers.GetInvoices)
	api.Get("/invoices/next-number", controllers.NextInvoiceNumber)
	api.Get("/invoices/:id", controllers.GetInvoice)
	api.Patch("/invoices/:id", controllers.UpdateInvoice)
	api.Delete("/invoices/:id", controllers.DeleteInvoice)
	api.Post("/invoices/:id/status", controllers.SetInvoiceStatus)
	api.Post("/invoices/:id/revenue", controllers.GenerateInvoiceRevenue)
	api.Get("/invoices/:id/versions", controllers.GetInvoiceVersions)

	// Expenses
	api.Post("/expenses", controllers.CreateExpense)
	api.Get("/expenses", controllers.GetExpenses)
	api.Get("/expenses/:id", controllers.GetExpense)
	api.Patch("/expenses/:id", controllers.UpdateExpense)
	api.Delete("/expenses/:id", controllers.DeleteExpense)

	// Revenue
	api.Post("/revenue", controllers.CreateRevenue)
	api.Get("/revenue", controllers.GetRevenueItems)
	api.Get("/revenue/:id", controllers.GetRevenueItem)
	api.Patch("/revenue/:id", controllers.UpdateRevenue)
	api.Delete("/revenue/:id", controllers.DeleteRevenue)

	// Plans
	api.Post("/plans/parse", controllers.ParsePlan(opts.Parser))
	api.Post("/plans/import", controllers.ImportPlan(opts.Parser))

	// Finance
	api.Get("/finance/summary", controllers.GetFinanceSummary)
}
