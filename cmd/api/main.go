package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/backoffice-api/internal/application/analytics"
	"github.com/jhoicas/backoffice-api/internal/application/billing"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/backoffice-api/internal/infrastructure/pdf"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/backoffice-api/pkg/config"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg, log.Component("gateway"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer st.Close()

	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de reportes")
	}

	ucLog := log.Component("usecase")
	repos := st.Repos
	deps := httpRouter.RouterDeps{
		BranchUC:   usecase.NewBranchUseCase(repos.Branches, repos.Staff, ucLog),
		StaffUC:    usecase.NewStaffUseCase(repos.Branches, repos.Staff, ucLog),
		CustomerUC: usecase.NewCustomerUseCase(repos.Branches, repos.Customers, ucLog),
		CategoryUC: usecase.NewCategoryUseCase(repos.Branches, repos.Categories, ucLog),
		ProductUC:  usecase.NewProductUseCase(repos, st.Tx, ucLog),
		InvoiceUC:  billing.NewInvoiceUseCase(repos, st.Tx, ucLog),
		// PDF: representación gráfica de la factura
		InvoicePDF: billing.NewPDFUseCase(repos, infrapdf.NewMarotoPDFGenerator(), ucLog),
		ReportUC: analytics.NewReportUseCase(repos, analytics.ReportConfig{
			Location:    loc,
			DefaultDays: cfg.Report.DefaultDays,
		}, ucLog),
		Auth: httpRouter.AuthConfig{
			Secret: cfg.JWT.Secret,
			Issuer: cfg.JWT.Issuer,
		},
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name: cfg.App.Name,
		Log:  log.Component("http"),
	}, deps)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Backoffice API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
