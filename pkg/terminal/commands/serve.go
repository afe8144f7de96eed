package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mcp-analytics/resort-dmr/pkg/server"
)

type ServeCmd struct {
	profilePath string
	addr        string
}

func NewServeCmd() *cobra.Command {
	sc := &ServeCmd{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the report web API",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&sc.addr, "addr", ":8080", "Address to listen on")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (sc *ServeCmd) run(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	service, _, db, err := buildService(sc.profilePath)
	if err != nil {
		return err
	}
	defer db.Close()

	api := server.NewWebAPI(logger, server.Config{
		Addr:            sc.addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports: service,
		},
	})

	return api.Start()
}
