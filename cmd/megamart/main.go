package main

import (
	"context"
	"log/slog"
	"os"

	"megamart/config"
	"megamart/internal/delivery"
	"megamart/internal/delivery/http"
	"megamart/internal/delivery/http/middleware"
	"megamart/internal/delivery/http/router/handler"
	"megamart/internal/domain/service"
	"megamart/internal/infra/auth"
	"megamart/internal/infra/backend"
	logs "megamart/internal/infra/log"
	"megamart/internal/infra/qrcode"
	"megamart/internal/infra/storage"
	"megamart/internal/usecase"
	"megamart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
	Session    usecase.SessionUsecase
	Client     *backend.Client
	Creds      service.CredentialSource
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		storage.New,
		backend.NewClient,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenInspector,
			newQRCodeService,
			newAuthBackend,
			newCatalogBackend,
			newUserBackend,
			newWishlistBackend,
			newOrderBackend,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// The REST client serves every backend port; fx needs the interface views.
func newAuthBackend(client *backend.Client) service.AuthBackend { return client }

func newCatalogBackend(client *backend.Client) service.CatalogBackend { return client }

func newUserBackend(client *backend.Client) service.UserBackend { return client }

func newWishlistBackend(client *backend.Client) service.WishlistBackend { return client }

func newOrderBackend(client *backend.Client) service.OrderBackend { return client }

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			newIdentitySource,
			impl.NewCartService,
			impl.NewCatalogService,
			impl.NewProfileService,
			impl.NewWishlistService,
			impl.NewOrderService,
		),
	)
}

func newIdentitySource(session usecase.SessionUsecase) usecase.IdentitySource {
	return session
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCartHandler,
			handler.NewCatalogHandler,
			handler.NewProfileHandler,
			handler.NewWishlistHandler,
			handler.NewOrderHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	// The session is both the state container and the client's token
	// source; bind them before any request can go out.
	params.Client.BindCredentials(params.Creds)

	if err := params.Session.Restore(ctx); err != nil {
		slog.Error("Failed to restore session", slog.Any("error", err))
	}

	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
