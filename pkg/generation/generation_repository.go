package generation

import (
	"PixGen-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	GenerationRepository interface {
		CreateGeneration(ctx context.Context, generation *entities.Generation) error
		GetGenerationsByUser(ctx context.Context, userID string) ([]*entities.Generation, error)
		GetGenerationByID(ctx context.Context, id string, userID string) (*entities.Generation, error)
		DeleteGeneration(ctx context.Context, id string, userID string) error
	}

	generationRepository struct {
		db *gorm.DB
	}
)

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{
		db: db,
	}
}

func (r *generationRepository) CreateGeneration(ctx context.Context, generation *entities.Generation) error {
	return r.db.WithContext(ctx).Create(generation).Error
}

func (r *generationRepository) GetGenerationsByUser(ctx context.Context, userID string) ([]*entities.Generation, error) {
	var generations []*entities.Generation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&generations).Error; err != nil {
		return nil, err
	}
	return generations, nil
}

func (r *generationRepository) GetGenerationByID(ctx context.Context, id string, userID string) (*entities.Generation, error) {
	var generation entities.Generation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&generation).Error; err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *generationRepository) DeleteGeneration(ctx context.Context, id string, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Generation{}).Error
}
