package usecase

import (
	"context"

	"github.com/eggnunes/crmidea-sub000/internal/entity"
	"github.com/eggnunes/crmidea-sub000/internal/infra/queue"
)

type LeadRepositoryInterface interface {
	BulkInsert(ctx context.Context, ownerID string, leads []*entity.Lead) error
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, product *entity.Product) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type QueueProducerInterface interface {
	PublishFollowUp(ctx context.Context, payload queue.FollowUpPayload) error
}
