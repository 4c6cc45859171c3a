package service

import (
	"context"
	"encoding/json"

	"ai-voiceshop-be/internal/dto"
	"ai-voiceshop-be/internal/pkg/logger"
	"ai-voiceshop-be/pkg/catalog"
	"ai-voiceshop-be/pkg/events"
	pktNats "ai-voiceshop-be/pkg/nats"
)

type ICatalogService interface {
	GetAll(ctx context.Context) ([]*dto.ProductResponse, error)
	Show(ctx context.Context, id string) (*dto.ProductResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	store            catalog.Store
	publisherService IPublisherService
	natsPub          *pktNats.Publisher
	log              logger.ILogger
}

func NewCatalogService(
	store catalog.Store,
	publisherService IPublisherService,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) ICatalogService {
	return &catalogService{
		store:            store,
		publisherService: publisherService,
		natsPub:          natsPub,
		log:              log,
	}
}

func (s *catalogService) GetAll(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

func (s *catalogService) Show(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(product), nil
}

func (s *catalogService) Upsert(ctx context.Context, req *dto.UpsertProductRequest) (*dto.ProductResponse, error) {
	product := req.ToEntity()
	if err := s.store.Upsert(ctx, product); err != nil {
		return nil, err
	}

	// Hand the row to the embedding worker; the catalog write already stands.
	if s.publisherService != nil {
		payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: product.Id})
		if err == nil {
			err = s.publisherService.Publish(ctx, payload)
		}
		if err != nil {
			s.log.Warn("catalog", "failed to queue product for embedding", map[string]interface{}{
				"product_id": product.Id,
				"error":      err.Error(),
			})
		}
	}

	s.publishEvent(ctx, events.NewProductCreated(product.Id))
	return dto.NewProductResponse(product), nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewProductDeleted(id))
	return nil
}

func (s *catalogService) publishEvent(ctx context.Context, evt events.Event) {
	if s.natsPub == nil {
		return
	}
	if err := s.natsPub.Publish(ctx, evt); err != nil {
		s.log.Warn("catalog", "failed to publish catalog event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
