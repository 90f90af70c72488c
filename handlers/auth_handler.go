package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
	application "homerent_service/service"
)

type AuthHandler struct {
	service *application.AuthService
	tracer  trace.Tracer
	logger  *logrus.Logger
	limiter *RateLimiter
}

func NewAuthHandler(service *application.AuthService, tracer trace.Tracer, logger *logrus.Logger, limiter *RateLimiter) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
		limiter: limiter,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	registerRouter := router.Methods(http.MethodPost).Subrouter()
	registerRouter.HandleFunc("/register", handler.Register)
	registerRouter.Use(handler.limiter.Middleware)

	loginRouter := router.Methods(http.MethodPost).Subrouter()
	loginRouter.HandleFunc("/login", handler.Login)
	loginRouter.Use(handler.limiter.Middleware)
}

func (handler *AuthHandler) Register(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Register")
	defer span.End()

	var request domain.RegisterRequest
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Register(ctx, &request)
	if err != nil {
		handler.logger.WithField("username", request.Username).Warn("Registration failed")
		writeError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(map[string]interface{}{
		"success": "success",
		"message": "User registered successfully",
		"id":      user.ID,
		"token":   token,
	}, writer)
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var request domain.LoginRequest
	err := json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Login(ctx, &request)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(map[string]interface{}{
		"success": "success",
		"message": "Login successful",
		"token":   token,
		"user":    user,
	}, writer)
}
