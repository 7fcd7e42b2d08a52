package initialize

import (
	"errors"
	"fmt"
	"net/http"

	"feedgate/backend/app/cache"
	"feedgate/backend/app/controllers"
	"feedgate/backend/app/db"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/payment"
	"feedgate/backend/app/repo"
	"feedgate/backend/app/services"
	"feedgate/backend/config"
	"feedgate/backend/global"
	"feedgate/backend/router"
)

// Options overrides the external collaborators Build would otherwise create
// from the config.
type Options struct {
	Processor payment.Processor
	Cache     cache.Store
}

type App struct {
	Cfg    *config.Config
	Store  *db.Store
	Cache  cache.Store
	Signer *jwtutil.Signer
	Router http.Handler
}

// Close releases the database pool and the cache client.
func (a *App) Close() error {
	var errs []error
	if a.Cache != nil {
		errs = append(errs, a.Cache.Close())
	}
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

func Build(cfg *config.Config, opts Options) (*App, error) {
	store, err := db.Open(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN, Debug: cfg.DB.Debug})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	app := &App{Cfg: cfg, Store: store}

	app.Cache = opts.Cache
	if app.Cache == nil {
		if cfg.Redis.Addr != "" {
			rc, err := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				_ = app.Close()
				return nil, err
			}
			app.Cache = rc
		} else {
			global.Logger.Warn().Msg("redis.addr not set, using in-process cache (single instance only)")
			app.Cache = cache.NewMemory()
		}
	}

	proc := opts.Processor
	if proc == nil {
		if cfg.Payment.SecretKey != "" {
			proc = payment.NewStripe(cfg.Payment.SecretKey)
		} else {
			global.Logger.Warn().Msg("payment.secret_key not set, payments go to the sandbox processor")
			proc = payment.NewSandbox()
		}
	}
	gateway := payment.NewGateway(proc, payment.GatewayConfig{
		Charge: payment.Charge{
			AmountCents: cfg.Payment.AmountCents,
			Currency:    cfg.Payment.Currency,
			Description: cfg.Payment.Description,
		},
		FailureThreshold: cfg.Payment.FailureThreshold,
		OpenTimeout:      cfg.Payment.OpenTimeout,
	})

	if cfg.JWT.Secret == config.DevJWTSecret {
		global.Logger.Warn().Msg("jwt.secret not set (JWT_SECRET), signing tokens with the development secret")
	}
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	app.Signer = signer
	revocation := services.Revocation{Store: app.Cache, TokenTTL: signer.TTL()}

	// Repositories
	userRepo := repo.NewUserRepository(store.DB)
	moderatorRepo := repo.NewModeratorRepository(store.DB)
	postRepo := repo.NewPostRepository(store.DB)
	followRepo := repo.NewFollowRepository(store.DB)

	// Services
	authSvc := services.NewAuthService(userRepo, moderatorRepo, signer)
	userSvc := services.NewUserService(userRepo, followRepo, revocation)
	moderatorSvc := services.NewModeratorService(moderatorRepo, revocation)
	postSvc := services.NewPostService(postRepo, userRepo)
	feedSvc := services.NewFeedService(postRepo, userRepo)
	paymentSvc := services.NewPaymentService(userRepo, gateway, app.Cache, cfg.Payment.LockTTL)

	// Controllers
	mw := &middleware.Auth{Signer: signer, Revoked: app.Cache, Header: cfg.JWT.Header}
	ctrls := router.Controllers{
		HTTP:      controllers.NewHTTPController(),
		Auth:      controllers.NewAuthController(authSvc, mw.TokenHeader()),
		Users:     controllers.NewUserController(userSvc),
		Moderator: controllers.NewModeratorController(moderatorSvc),
		Posts:     controllers.NewPostController(postSvc),
		Feed:      controllers.NewFeedController(feedSvc),
		Payment:   controllers.NewPaymentController(paymentSvc),
	}

	app.Router = router.NewRouter(ctrls, mw, router.Options{
		CORSOrigins:   cfg.HTTP.CORSOrigins,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
		Feed:          middleware.FeedParams{DefaultLimit: cfg.Feed.DefaultLimit, MaxLimit: cfg.Feed.MaxLimit},
	})
	return app, nil
}
