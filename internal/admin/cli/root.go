// Package cli содержит команды административной утилиты quicknote-admin.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	authapi "quicknote/internal/auth/ports/api"
	notesapi "quicknote/internal/notes/ports/api"
	"quicknote/pkg/logger"
)

// Services - прикладные сервисы, с которыми работают команды.
type Services struct {
	Notes notesapi.NoteAdminService
	Users authapi.UserUseCase
	Auth  authapi.AuthUseCase
}

// ConnectFunc подключается к хранилищам; close освобождает ресурсы.
type ConnectFunc func(ctx context.Context) (svc *Services, closeFn func(context.Context) error, err error)

// MigrateFunc применяет миграции схемы.
type MigrateFunc func(ctx context.Context) error

// Options задает зависимости команд.
type Options struct {
	Connect ConnectFunc
	Migrate MigrateFunc
}

type runner struct {
	opts Options
}

// NewRootCommand создает корневую команду quicknote-admin.
func NewRootCommand(opts Options) *cobra.Command {
	r := &runner{opts: opts}

	var verbose bool
	root := &cobra.Command{
		Use:   "quicknote-admin",
		Short: "Administrative tooling for the QuickNote API",
		Long: `quicknote-admin inspects and maintains QuickNote data directly in the database:
notes, users, refresh tokens and the schema itself.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := "info"
			if verbose {
				level = "debug"
			}
			log, err := logger.NewLogger(logger.Development, level)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.SetGlobalLogger(log)
			cmd.SetContext(logger.NewContext(cmd.Context(), log))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		r.notesCommand(),
		r.usersCommand(),
		r.tokensCommand(),
		r.migrateCommand(),
	)
	return root
}

// withServices подключается, выполняет fn и закрывает соединения.
func (r *runner) withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *Services) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeFn, err := r.opts.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if closeFn == nil {
			return
		}
		if err := closeFn(ctx); err != nil {
			logger.Log(ctx).Warn(ctx, "failed to close connections", zap.Error(err))
		}
	}()

	return fn(ctx, svc)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}
