package startup

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"homerent_service/authorization"
	"homerent_service/domain"
	"homerent_service/handlers"
	"homerent_service/metrics"
	application "homerent_service/service"
	"homerent_service/startup/config"
	store2 "homerent_service/store"
)

type Server struct {
	config *config.Config
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) Start() {
	logger := server.initLogger()

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("homerent_service")

	db := server.initPostgresClient()
	defer db.Close()

	userStore := server.initUserStore(db, tracer)
	homeStore := server.initHomeStore(db, tracer)
	bookingStore := server.initBookingStore(db, tracer)

	// A missing signing secret is fatal here, never a per-request error.
	tokenService, err := application.NewTokenService([]byte(server.config.SecretKey), 60*time.Minute)
	if err != nil {
		log.Fatal(err)
	}

	authService := application.NewAuthService(userStore, tokenService, tracer, logger)
	userService := application.NewUserService(userStore, tokenService, tracer)
	homeService := application.NewHomeService(homeStore, userStore, tracer)
	bookingService := application.NewBookingService(bookingStore, homeStore, tracer, logger)

	collector := metrics.NewCollector()
	limiter := handlers.NewRateLimiter(rate.Limit(10.0/60.0), 10)
	defer limiter.Stop()

	authHandler := handlers.NewAuthHandler(authService, tracer, logger, limiter)
	userHandler := handlers.NewUserHandler(userService, tracer)
	homeHandler := handlers.NewHomeHandler(homeService, tracer, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, tracer, logger, collector)

	authorizer := authorization.NewAuthorizer(tokenService)

	enforcer, err := casbin.NewEnforcerSafe(server.config.CasbinModel, server.config.CasbinPolicy)
	if err != nil {
		log.Fatal(err)
	}

	server.start(logger, collector, authorizer, enforcer, authHandler, userHandler, homeHandler, bookingHandler)
}

func (server *Server) initLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   server.config.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}))
	return logger
}

func (server *Server) initPostgresClient() *sql.DB {
	db, err := store2.GetClient(server.config.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	err = store2.RunMigrations(server.config.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	return db
}

func (server *Server) initUserStore(db *sql.DB, tracer trace.Tracer) domain.UserStore {
	return store2.NewUserPostgresStore(db, tracer, log.New(os.Stdout, "[user-store] ", log.LstdFlags))
}

func (server *Server) initHomeStore(db *sql.DB, tracer trace.Tracer) domain.HomeStore {
	return store2.NewHomePostgresStore(db, tracer, log.New(os.Stdout, "[home-store] ", log.LstdFlags))
}

func (server *Server) initBookingStore(db *sql.DB, tracer trace.Tracer) domain.BookingStore {
	return store2.NewBookingPostgresStore(db, tracer, log.New(os.Stdout, "[booking-store] ", log.LstdFlags))
}

func (server *Server) start(logger *logrus.Logger, collector *metrics.Collector,
	authorizer *authorization.Authorizer, enforcer *casbin.Enforcer,
	authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler,
	homeHandler *handlers.HomeHandler, bookingHandler *handlers.BookingHandler) {

	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(collector.Middleware)
	router.Use(authorizer.Middleware)
	router.Use(authorization.CasbinMiddleware(enforcer, authorizer, logger))

	authHandler.Init(router)
	userHandler.Init(router)
	homeHandler.Init(router)
	bookingHandler.Init(router)
	router.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: cors(router),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("homerent_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}
