package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
	application "homerent_service/service"
)

type HomeHandler struct {
	service *application.HomeService
	tracer  trace.Tracer
	logger  *logrus.Logger
}

func NewHomeHandler(service *application.HomeService, tracer trace.Tracer, logger *logrus.Logger) *HomeHandler {
	return &HomeHandler{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}

func (handler *HomeHandler) Init(router *mux.Router) {
	router.HandleFunc("/homes", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/homes/search", handler.Search).Methods(http.MethodGet)
	router.HandleFunc("/homes/{id}", handler.GetByID).Methods(http.MethodGet)
	router.HandleFunc("/listing/{id}", handler.CreateListing).Methods(http.MethodPost)
}

func (handler *HomeHandler) CreateListing(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "HomeHandler.CreateListing")
	defer span.End()

	ownerID, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		http.Error(writer, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var request domain.ListingRequest
	err = json.NewDecoder(req.Body).Decode(&request)
	if err != nil {
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	home, err := handler.service.CreateListing(ctx, ownerID, &request)
	if err != nil {
		handler.logger.WithField("owner", ownerID).Warn("Listing creation failed")
		writeError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(map[string]interface{}{
		"success": "success",
		"id":      home.ID,
		"message": "The Home is listed Successfully",
	}, writer)
}

// GetAll keeps the observed behavior of answering 404 when no homes are
// listed yet.
func (handler *HomeHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "HomeHandler.GetAll")
	defer span.End()

	homes, err := handler.service.GetAll(ctx)
	if err != nil {
		writeError(writer, err)
		return
	}

	if len(homes) == 0 {
		http.Error(writer, errors.NoHomesFound, http.StatusNotFound)
		return
	}

	jsonResponse(map[string]interface{}{
		"success": "success",
		"homes":   homes,
	}, writer)
}

func (handler *HomeHandler) GetByID(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "HomeHandler.GetByID")
	defer span.End()

	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		http.Error(writer, "Invalid home ID", http.StatusBadRequest)
		return
	}

	home, err := handler.service.GetByID(ctx, id)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(home, writer)
}

func (handler *HomeHandler) Search(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "HomeHandler.Search")
	defer span.End()

	location := req.URL.Query().Get("location")

	homes, err := handler.service.Search(ctx, location)
	if err != nil {
		writeError(writer, err)
		return
	}

	jsonResponse(map[string]interface{}{
		"success": "success",
		"homes":   homes,
	}, writer)
}
