// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/dalemusser/dailyhub/internal/app/features/account"
	auditlogfeature "github.com/dalemusser/dailyhub/internal/app/features/auditlog"
	healthfeature "github.com/dalemusser/dailyhub/internal/app/features/health"
	remindersfeature "github.com/dalemusser/dailyhub/internal/app/features/reminders"
	todosfeature "github.com/dalemusser/dailyhub/internal/app/features/todos"
	weatherfeature "github.com/dalemusser/dailyhub/internal/app/features/weather"
	auditstore "github.com/dalemusser/dailyhub/internal/app/store/audit"
	reminderstore "github.com/dalemusser/dailyhub/internal/app/store/reminders"
	todostore "github.com/dalemusser/dailyhub/internal/app/store/todos"
	userstore "github.com/dalemusser/dailyhub/internal/app/store/users"
	"github.com/dalemusser/dailyhub/internal/app/system/apierr"
	"github.com/dalemusser/dailyhub/internal/app/system/auditlog"
	"github.com/dalemusser/dailyhub/internal/app/system/auth"
	"github.com/dalemusser/dailyhub/internal/app/system/httpmw"
	"github.com/dalemusser/dailyhub/internal/app/system/inputval"
	"github.com/dalemusser/dailyhub/internal/app/system/metrics"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Layout:
//
//	/metrics            Prometheus scrape endpoint
//	/api/health         liveness + database ping
//	/api/auth/*         register, login, password reset, me
//	/api/reminders/*    bearer only
//	/api/todos/*        bearer only
//	/api/weather        bearer only
//	/api/activity       bearer only, caller's own auth events
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenService(appCfg.JWTSecret, appCfg.SessionTTL)
	if err != nil {
		logger.Error("token service init failed", zap.Error(err))
		return nil, err
	}
	hasher := auth.NewPasswordHasher(appCfg.BcryptCost)
	val := inputval.New()
	m := metrics.New("dailyhub")

	db := deps.MongoDatabase
	users := userstore.New(db)
	gate := auth.NewGate(tokens, userstore.NewFetcher(db), logger)
	events := auditstore.New(db)
	audit := auditlog.New(events, logger, auditlog.Config{Auth: appCfg.AuditLogAuth}).WithMetrics(m)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpmw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(httpmw.CORS(httpmw.ParseOrigins(appCfg.CORSAllowedOrigins)))
	r.Use(m.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		apierr.JSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		apierr.JSON(w, http.StatusMethodNotAllowed, map[string]string{"detail": "Method Not Allowed"})
	})

	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(api chi.Router) {
		healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
		api.Mount("/health", healthfeature.Routes(healthHandler))

		accountHandler := accountfeature.NewHandler(users, tokens, hasher, val, audit, logger)
		api.Mount("/auth", accountfeature.Routes(accountHandler, gate, deps.AuthLimiter))

		// Everything below needs a session token.
		api.Group(func(pr chi.Router) {
			pr.Use(gate.RequireBearer)

			remindersHandler := remindersfeature.NewHandler(reminderstore.New(db), val, logger)
			pr.Mount("/reminders", remindersfeature.Routes(remindersHandler))

			todosHandler := todosfeature.NewHandler(todostore.New(db), val, logger)
			pr.Mount("/todos", todosfeature.Routes(todosHandler))

			weatherHandler := weatherfeature.NewHandler(logger)
			pr.Mount("/weather", weatherfeature.Routes(weatherHandler))

			activityHandler := auditlogfeature.NewHandler(events, logger)
			pr.Mount("/activity", auditlogfeature.Routes(activityHandler))
		})
	})

	return r, nil
}
