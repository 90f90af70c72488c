package application

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"homerent_service/domain"
	"homerent_service/errors"
)

type HomeService struct {
	homes  domain.HomeStore
	users  domain.UserStore
	tracer trace.Tracer
}

func NewHomeService(homes domain.HomeStore, users domain.UserStore, tracer trace.Tracer) *HomeService {
	return &HomeService{
		homes:  homes,
		users:  users,
		tracer: tracer,
	}
}

// CreateListing lists a home for an existing owner together with its first
// advertised availability window.
func (service *HomeService) CreateListing(ctx context.Context, ownerID int64, request *domain.ListingRequest) (*domain.Home, error) {
	ctx, span := service.tracer.Start(ctx, "HomeService.CreateListing")
	defer span.End()

	if err := request.Validate(); err != nil {
		return nil, err
	}

	owner, err := service.users.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, &errors.NotFoundError{Message: errors.UserNotFoundError}
	}

	home := &domain.Home{
		UserID:       owner.ID,
		Location:     request.Location,
		Title:        request.Title,
		Description:  request.Description,
		Rent:         request.Rent,
		Images:       request.Images,
		Contact:      request.Contact,
		PropertyType: request.PropertyType,
		Requirements: request.Requirements,
	}

	window := &domain.AvailableDate{
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
	}

	return service.homes.Insert(ctx, home, window)
}

func (service *HomeService) GetAll(ctx context.Context) ([]*domain.Home, error) {
	ctx, span := service.tracer.Start(ctx, "HomeService.GetAll")
	defer span.End()

	return service.homes.GetAll(ctx)
}

func (service *HomeService) GetByID(ctx context.Context, id int64) (*domain.Home, error) {
	ctx, span := service.tracer.Start(ctx, "HomeService.GetByID")
	defer span.End()

	home, err := service.homes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, &errors.NotFoundError{Message: errors.HomeNotFoundError}
	}

	return home, nil
}

// Search matches homes whose location contains the given fragment,
// case-insensitively.
func (service *HomeService) Search(ctx context.Context, location string) ([]*domain.Home, error) {
	ctx, span := service.tracer.Start(ctx, "HomeService.Search")
	defer span.End()

	return service.homes.Search(ctx, location)
}
