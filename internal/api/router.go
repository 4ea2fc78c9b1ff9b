package api

import (
	"askhub/docs"
	"askhub/internal/api/handlers"
	"askhub/pkg/auth"
	"askhub/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	chatHandler *handlers.ChatHandler,
	knowledgeHandler *handlers.KnowledgeHandler,
	submissionHandler *handlers.SubmissionHandler,
	authHandler *handlers.AuthHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the generated documentation
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Public API
	api := app.Group("/api/v1")
	api.Post("/chat", chatHandler.Ask)
	api.Get("/domains", knowledgeHandler.ListDomains)
	api.Get("/domains/:name/knowledge", knowledgeHandler.GetKnowledge)
	api.Get("/search", knowledgeHandler.Search)
	api.Get("/stats", knowledgeHandler.Stats)
	api.Get("/export", knowledgeHandler.Export)
	api.Post("/submissions", submissionHandler.Submit)
	api.Get("/submissions", submissionHandler.List)

	// Reviewer-only routes
	protected := api.Use(middleware.AuthMiddleware(jwtManager, appLogger))
	protected.Post("/domains", knowledgeHandler.CreateDomain)
	protected.Post("/domains/:name/knowledge", knowledgeHandler.UpsertKnowledge)
	protected.Post("/submissions/:index/verify", submissionHandler.Verify)
	protected.Delete("/submissions/:index", submissionHandler.Reject)
	protected.Post("/import", knowledgeHandler.Import)

	return app
}
