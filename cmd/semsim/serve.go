package main

import (
	"os"

	"github.com/DjordjeVuckovic/semsim/internal/api/router"
	"github.com/DjordjeVuckovic/semsim/internal/api/server"
	"github.com/DjordjeVuckovic/semsim/internal/bench/spec"
	"github.com/DjordjeVuckovic/semsim/internal/provider"
	"github.com/DjordjeVuckovic/semsim/internal/storage/factory"
	"github.com/DjordjeVuckovic/semsim/internal/storage/in_mem"
	pkgserver "github.com/DjordjeVuckovic/semsim/pkg/server"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

// recentRuns bounds the runs kept for GET /v1/runs/:id.
const recentRuns = 100

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the evaluation HTTP API",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	f := serveCmd.Flags()
	f.String("port", "", "Listen port (overrides PORT)")
	f.String("provider-url", "", "Provider endpoint (overrides "+providerURLEnv+")")
	f.String("spec", "", "YAML run spec; only its provider and sinks sections are used")
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		if cfg, err = cfg.WithPort(port); err != nil {
			return err
		}
	}

	s := &spec.RunSpec{}
	if path, _ := cmd.Flags().GetString("spec"); path != "" {
		if s, err = spec.ReadFile(path); err != nil {
			return err
		}
	}
	if s.Provider.URL == "" {
		s.Provider.URL = os.Getenv(providerURLEnv)
	}
	if cmd.Flags().Changed("provider-url") {
		s.Provider.URL, _ = cmd.Flags().GetString("provider-url")
	}
	// the API receives cases in requests
	s.Corpus.Path = "-"
	factory.ApplyEnv(&s.Sinks)
	if err := s.Validate(); err != nil {
		return err
	}

	client, err := provider.NewHTTPClient(s.Provider.URL, provider.WithTimeout(s.Provider.Timeout))
	if err != nil {
		return err
	}

	health := pkgserver.NewCompositeHealthChecker(pkgserver.NewOkHealthChecker())
	srv := server.New(cfg, health).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks(server.HealthPath)

	storers, closeAll, err := factory.NewStorers(srv.Context(), s.Sinks)
	defer closeAll()
	if err != nil {
		return err
	}
	for _, st := range storers {
		if hc, ok := st.(pkgserver.HealthChecker); ok {
			health.Add(hc)
		}
	}

	srv.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "semsim API is running")
	})

	router.NewEvaluateRouter(srv.Echo, client, in_mem.NewInMemStorer(recentRuns),
		router.WithStorers(storers...),
		router.WithOptions(s.Provider.Options),
	).Bind()

	return srv.Start()
}
