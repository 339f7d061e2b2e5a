package main

import (
	"log"
	"os"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/env"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/lifecycle"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// Seeds a demo tenant with a primary account so a fresh install can be
// explored without an external source. Safe to run repeatedly.
func main() {
	env.SetupEnvFile()

	tenantCode := env.GetEnv("SEED_TENANT_CODE", "demo")
	tenantName := env.GetEnv("SEED_TENANT_NAME", "Demo Corp")
	email := env.GetEnv("SEED_USER_EMAIL", "owner@demo.example")
	password := env.GetEnv("SEED_USER_PASSWORD", "changeme")

	kv := storage.NewFromEnv()
	repos := repository.NewFactory(kv).GetRepositories()

	tenant, err := repos.Tenant.Resolve(tenantCode)
	if err != nil {
		tenant = &models.Tenant{TenantCode: tenantCode, Name: tenantName}
		if err := repos.Tenant.Create(tenant); err != nil {
			log.Printf("seed: create tenant: %v", err)
			os.Exit(1)
		}
		log.Printf("seed: created tenant %s (%s)", tenant.TenantID, tenant.Name)
	} else {
		log.Printf("seed: tenant %s already exists", tenant.TenantID)
	}

	if _, err := repos.User.FindByTenantAndEmail(tenant.TenantID, email); err == nil {
		log.Printf("seed: user %s already exists", email)
	} else {
		user, err := models.NewUser(tenant.TenantID, email, password, models.ROLE_CUSTOMER_PRIMARY)
		if err != nil {
			log.Printf("seed: build user: %v", err)
			os.Exit(1)
		}
		if err := repos.User.Create(user); err != nil {
			log.Printf("seed: create user: %v", err)
			os.Exit(1)
		}
		log.Printf("seed: created primary user %s", user.Email)
	}

	if err := lifecycle.NewService(repos.Subscription, repos.Renewal).Ensure(*tenant); err != nil {
		log.Printf("seed: lifecycle records: %v", err)
		os.Exit(1)
	}
	log.Printf("seed: done")
}
