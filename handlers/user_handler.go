package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
	application "homerent_service/service"
)

type UserHandler struct {
	service *application.UserService
	tracer  trace.Tracer
}

func NewUserHandler(service *application.UserService, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/users/{id}", handler.Get).Methods(http.MethodGet)
	router.HandleFunc("/edit/{id}", handler.Update).Methods(http.MethodPut)
}

func (handler *UserHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Get")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		http.Error(writer, "Invalid user ID", http.StatusBadRequest)
		return
	}

	user, err := handler.service.Get(ctx, id)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(user, writer)
}

func (handler *UserHandler) Update(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Update")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		http.Error(writer, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var request domain.UpdateUserRequest
	err = json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, token, err := handler.service.Update(ctx, id, &request)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(map[string]interface{}{
		"success": "success",
		"token":   token,
		"user":    user,
	}, writer)
}
