// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"kassa/internal/core/apperror"
	"kassa/internal/core/types"
	"kassa/internal/domain/catalogs/account"
	"kassa/internal/domain/catalogs/location"
	"kassa/internal/domain/catalogs/paymethod"
	"kassa/internal/infrastructure/storage/postgres"
	"kassa/internal/infrastructure/storage/postgres/catalog_repo"
	"kassa/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("KASSA_DATABASE_DSN")
	if dsn == "" {
		log.Fatal("KASSA_DATABASE_DSN environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := postgres.Bootstrap(ctx, pool); err != nil {
		log.Fatalw("failed to bootstrap schema", "error", err)
	}

	txManager := postgres.NewTxManager(pool)

	accountRepo := catalog_repo.NewAccountRepo(txManager)
	methodRepo := catalog_repo.NewPaymentMethodRepo(txManager)
	locationRepo := catalog_repo.NewLocationRepo(txManager)

	accountService := account.NewService(accountRepo, txManager)
	methodService := paymethod.NewService(methodRepo, accountService, txManager)
	locationService := location.NewService(locationRepo, txManager)

	if err := seedAccounts(ctx, accountService, log); err != nil {
		log.Fatalw("failed to seed accounts", "error", err)
	}
	if err := seedPaymentMethods(ctx, accountRepo, methodService, log); err != nil {
		log.Fatalw("failed to seed payment methods", "error", err)
	}
	if err := seedLocations(ctx, locationService, log); err != nil {
		log.Fatalw("failed to seed locations", "error", err)
	}

	log.Info("seeding complete")
}

func seedAccounts(ctx context.Context, svc *account.Service, log *logger.Logger) error {
	defaults := []struct {
		name    string
		accType account.Type
	}{
		{"Cash register", account.TypeCash},
		{"Bank account", account.TypeBank},
		{"Card terminal", account.TypeBank},
	}

	for _, d := range defaults {
		acc := account.NewAccount(d.name, d.accType)
		if err := svc.Create(ctx, acc); err != nil {
			if apperror.IsDuplicate(err) {
				log.Infow("account already exists, skipping", "name", d.name)
				continue
			}
			return err
		}
		log.Infow("account created", "name", d.name, "type", d.accType)
	}
	return nil
}

func seedPaymentMethods(
	ctx context.Context,
	accounts *catalog_repo.AccountRepo,
	svc *paymethod.Service,
	log *logger.Logger,
) error {
	terminalAcc, err := accounts.GetByName(ctx, "Card terminal")
	if err != nil {
		return fmt.Errorf("terminal account missing: %w", err)
	}
	bankAcc, err := accounts.GetByName(ctx, "Bank account")
	if err != nil {
		return fmt.Errorf("bank account missing: %w", err)
	}

	seeds := []struct {
		name       string
		methodType paymethod.MethodType
		commission string
		account    *account.Account
		order      int
	}{
		{"Terminal", paymethod.TypeTerminal, "0.2", terminalAcc, 1},
		{"Payme", paymethod.TypeOnline, "1", bankAcc, 2},
		{"Click", paymethod.TypeOnline, "1", bankAcc, 3},
		{"Uzum", paymethod.TypeOnline, "1", bankAcc, 4},
		{"Delivery", paymethod.TypeDelivery, "0", bankAcc, 5},
	}

	for _, s := range seeds {
		commission, err := types.NewMoneyFromString(s.commission)
		if err != nil {
			return err
		}

		m := paymethod.NewPaymentMethod(s.name, s.methodType, s.account.ID, commission)
		m.DisplayOrder = s.order

		if err := svc.Create(ctx, m); err != nil {
			if apperror.IsDuplicate(err) {
				log.Infow("payment method already exists, skipping", "name", s.name)
				continue
			}
			return err
		}
		log.Infow("payment method created", "name", s.name, "commission", s.commission)
	}
	return nil
}

func seedLocations(ctx context.Context, svc *location.Service, log *logger.Logger) error {
	for _, name := range []string{"Main store"} {
		loc := location.NewLocation(name)
		if err := svc.Create(ctx, loc); err != nil {
			if apperror.IsDuplicate(err) {
				log.Infow("location already exists, skipping", "name", name)
				continue
			}
			return err
		}
		log.Infow("location created", "name", name)
	}
	return nil
}
