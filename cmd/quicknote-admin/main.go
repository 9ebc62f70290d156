package main

import (
	"context"
	"fmt"
	"os"

	"quicknote/internal/admin/cli"
	"quicknote/internal/gateway/app"
	"quicknote/internal/gateway/config"
	"quicknote/migrations"
	"quicknote/pkg/db/postgres"
)

func main() {
	root := cli.NewRootCommand(cli.Options{
		Connect: connect,
		Migrate: migrate,
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*cli.Services, func(context.Context) error, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	container, err := app.NewContainer(ctx, cfg, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &cli.Services{
		Notes: container.Notes,
		Users: container.Users,
		Auth:  container.Auth,
	}, container.Close, nil
}

func migrate(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	return postgres.MigrateFS(ctx, cfg.Postgres.GetConnectionURL(), migrations.FS)
}
