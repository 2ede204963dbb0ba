package generation

import (
	"PixGen-Backend/domain"
	"PixGen-Backend/entities"
	"PixGen-Backend/internal/utils/storage"
	"PixGen-Backend/pkg/credit"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

const imageDataPrefix = "data:image/png;base64,"

type (
	GenerationService interface {
		// GenerateForUser debits one credit, calls the backend, and
		// persists the result. On backend failure the debited credit is
		// refunded to the pool it came from before the call returns.
		GenerateForUser(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerateResponse, error)

		// GenerateForGuest calls the backend without touching the ledger;
		// the guest quota is enforced by the handler via cookies.
		GenerateForGuest(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error)

		GetUserGenerations(ctx context.Context, userID string) ([]*domain.GenerationItem, error)
		DeleteGeneration(ctx context.Context, userID string, generationID string) error
	}

	generationService struct {
		generationRepository GenerationRepository
		creditService        credit.CreditService
		client               BackendClient
		s3                   storage.AwsS3

		// Only one generation may be in flight system-wide; a second
		// concurrent request is rejected, not queued.
		gate *semaphore.Weighted
	}
)

func NewGenerationService(
	generationRepository GenerationRepository,
	creditService credit.CreditService,
	client BackendClient,
	s3 storage.AwsS3,
) GenerationService {
	return &generationService{
		generationRepository: generationRepository,
		creditService:        creditService,
		client:               client,
		s3:                   s3,
		gate:                 semaphore.NewWeighted(1),
	}
}

func (s *generationService) GenerateForUser(ctx context.Context, userID string, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	if !s.gate.TryAcquire(1) {
		return nil, domain.ErrGenerationBusy
	}
	defer s.gate.Release(1)

	// Parsed up front so no post-debit exit can skip the refund path.
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// The debit is a hard gate: on failure the backend is never called.
	charge, err := s.creditService.DebitOneCredit(ctx, userID)
	if err != nil {
		return nil, err
	}

	images, err := s.client.Generate(ctx, req)
	if err != nil {
		if cbErr := s.creditService.CreditOneBack(ctx, userID, charge); cbErr != nil {
			// The user paid and got nothing; this must never be silent.
			log.Printf("credit-back failed for user %s: %v", userID, cbErr)
			return nil, cbErr
		}
		return nil, err
	}

	result := make([]string, 0, len(images))
	for _, b64 := range images {
		result = append(result, imageDataPrefix+b64)

		data, decErr := base64.StdEncoding.DecodeString(b64)
		if decErr != nil {
			log.Printf("skipping undecodable image payload for user %s: %v", userID, decErr)
			continue
		}

		key := fmt.Sprintf("generations/%s.png", uuid.New().String())
		if _, upErr := s.s3.UploadBytes(ctx, key, data, "image/png"); upErr != nil {
			log.Printf("failed to upload generation for user %s: %v", userID, upErr)
			continue
		}

		generation := &entities.Generation{
			ID:          uuid.New(),
			UserID:      userUUID,
			Prompt:      req.Prompt,
			ImageKey:    key,
			ImageURL:    s.s3.GetPublicLinkKey(key),
			AspectRatio: req.Aspect,
		}
		if dbErr := s.generationRepository.CreateGeneration(ctx, generation); dbErr != nil {
			log.Printf("failed to record generation for user %s: %v", userID, dbErr)
		}
	}

	return &domain.GenerateResponse{Images: result}, nil
}

func (s *generationService) GenerateForGuest(ctx context.Context, req domain.GenerateRequest) (*domain.GenerateResponse, error) {
	if !s.gate.TryAcquire(1) {
		return nil, domain.ErrGenerationBusy
	}
	defer s.gate.Release(1)

	images, err := s.client.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(images))
	for _, b64 := range images {
		result = append(result, imageDataPrefix+b64)
	}
	return &domain.GenerateResponse{Images: result}, nil
}

func (s *generationService) GetUserGenerations(ctx context.Context, userID string) ([]*domain.GenerationItem, error) {
	generations, err := s.generationRepository.GetGenerationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.GenerationItem, 0, len(generations))
	for _, g := range generations {
		result = append(result, &domain.GenerationItem{
			ID:          g.ID.String(),
			Prompt:      g.Prompt,
			ImageURL:    g.ImageURL,
			AspectRatio: g.AspectRatio,
			CreatedAt:   g.CreatedAt,
		})
	}
	return result, nil
}

func (s *generationService) DeleteGeneration(ctx context.Context, userID string, generationID string) error {
	generation, err := s.generationRepository.GetGenerationByID(ctx, generationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGenerationNotFound
		}
		return err
	}

	if err := s.s3.DeleteObject(ctx, generation.ImageKey); err != nil {
		log.Printf("failed to delete object %s: %v", generation.ImageKey, err)
	}

	return s.generationRepository.DeleteGeneration(ctx, generationID, userID)
}
