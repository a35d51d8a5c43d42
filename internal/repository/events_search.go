package repository

import (
	"context"

	"unifest/internal/models"
	"unifest/internal/search"
)

// EventSearchRepository exposes the Elasticsearch discovery read model
// behind the same repository surface as the Postgres repositories.
type EventSearchRepository struct {
	es *search.ElasticsearchClient
}

func NewEventSearchRepository(es *search.ElasticsearchClient) *EventSearchRepository {
	return &EventSearchRepository{es: es}
}

func (r *EventSearchRepository) Search(ctx context.Context, params search.SearchParams) ([]models.Event, error) {
	return r.es.Search(ctx, params)
}

func (r *EventSearchRepository) Index(ctx context.Context, event *models.Event) error {
	return r.es.IndexEvent(ctx, event)
}

func (r *EventSearchRepository) Update(ctx context.Context, event *models.Event) error {
	return r.es.UpdateEvent(ctx, event)
}

func (r *EventSearchRepository) Delete(ctx context.Context, id string) error {
	return r.es.DeleteEvent(ctx, id)
}
