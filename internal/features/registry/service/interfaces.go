package service

import (
	"context"

	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/models"
)

// RegistryService defines the operations over the shared gift list.
type RegistryService interface {
	List(ctx context.Context) ([]models.Gift, error)
	Get(ctx context.Context, id int) (*models.Gift, error)
	Add(ctx context.Context, input *models.GiftCreate) (*models.Gift, error)
	Claim(ctx context.Context, id int, claimant *models.ClaimantInput) (*models.Gift, error)
	Release(ctx context.Context, id int) (*models.Gift, error)
	Update(ctx context.Context, id int, input *models.GiftUpdate) (*models.Gift, error)
	UpdateImages(ctx context.Context, id int, images []string) (*models.Gift, error)
	Delete(ctx context.Context, id int) (*models.Gift, error)
}
