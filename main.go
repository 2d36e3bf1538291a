package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/cache"
	"github.com/victtorciferri/business-management-system-sub005/controllers"
	"github.com/victtorciferri/business-management-system-sub005/cron"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/notifications"
	"github.com/victtorciferri/business-management-system-sub005/redis"
	"github.com/victtorciferri/business-management-system-sub005/routes"
	"github.com/victtorciferri/business-management-system-sub005/store"
)

func main() {
	app := fiber.New()
	db.Migrate()
	redis.InitRedis()

	notifier := notifications.NewEmailNotifier(db.DB)
	engine := booking.NewEngine(store.New(db.DB), booking.WithNotifier(notifier))
	controllers.Init(engine, cache.NewSlotCache(redis.Client))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})
	routes.SetupPortalRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupWebhookRoutes(app)

	cron.StartCronJobs(notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	app.Listen(":" + port)
	fmt.Println("Server started on port " + port)
}
