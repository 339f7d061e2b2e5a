package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/FlorianHaas/TenantDesk/app/controllers"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/activity"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/env"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/lifecycle"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/router"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/session"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/tenantsync"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/workflow"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	kv := storage.NewFromEnv()
	repos := repository.NewFactory(kv).GetRepositories()

	syncService := tenantsync.NewService(tenantsync.NewClientFromEnv(), repos.Tenant)
	engine := workflow.NewEngine(repos.Request, repos.Subscription, repos.Renewal, repos.Audit)
	recorder := activity.NewRecorder(repos.Activity)
	lifecycleService := lifecycle.NewService(repos.Subscription, repos.Renewal)

	adminSessions := session.NewAdminManagerFromEnv(kv, repos.Audit)
	customerSessions := session.NewCustomerManager(kv, repos.Tenant, repos.User, syncService, recorder)

	app := fiber.New(fiber.Config{
		AppName: "TenantDesk",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	router.InstallRouter(app, router.Deps{
		Auth:             controllers.NewAuthController(adminSessions, customerSessions, lifecycleService),
		Admin:            controllers.NewAdminController(repos.Tenant, repos.User, repos.Audit, repos.Activity, syncService, engine),
		Portal:           controllers.NewPortalController(repos.User, repos.Subscription, repos.Renewal, engine, recorder),
		AdminSessions:    adminSessions,
		CustomerSessions: customerSessions,
	})

	// Warm the mirror on boot when an external source is configured. A failing
	// source must not keep the app from serving.
	if env.GetEnv("SHEET_ENDPOINT", "") != "" {
		go func() {
			if synced, err := syncService.SyncFromExternal(context.Background()); err != nil {
				log.Printf("startup sync failed: %v", err)
			} else {
				log.Printf("startup sync: %d tenants reconciled", len(synced))
			}
		}()
	}

	return app
}
