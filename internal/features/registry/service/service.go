package service

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	apperrors "github.com/erickmmolina/baby-shower-registry/internal/common/errors"
	"github.com/erickmmolina/baby-shower-registry/internal/common/logger"
	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/codec"
	"github.com/erickmmolina/baby-shower-registry/internal/features/registry/models"
	"github.com/erickmmolina/baby-shower-registry/internal/platform/blob"
)

// KeyGifts is the store key holding the whole registry document.
const KeyGifts = "gifts"

// Options bounds the optimistic-retry loop.
type Options struct {
	// MaxRetries caps the number of read-modify-write attempts per call.
	MaxRetries int
	// RetryWait is the base backoff between attempts; the actual wait is
	// jittered so colliding writers spread out.
	RetryWait time.Duration
	// Timeout bounds the total wall-clock time of one call.
	Timeout time.Duration
}

// DefaultOptions returns the retry bounds used when none are configured.
func DefaultOptions() Options {
	return Options{MaxRetries: 5, RetryWait: 10 * time.Millisecond, Timeout: 2 * time.Second}
}

type registryService struct {
	store blob.Store
	opts  Options
}

// NewRegistryService builds the registry core over an injected blob store.
func NewRegistryService(store blob.Store, opts Options) RegistryService {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultOptions().MaxRetries
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = DefaultOptions().RetryWait
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	return &registryService{store: store, opts: opts}
}

// load reads and decodes the current registry document.
func (s *registryService) load(ctx context.Context) (*codec.Document, blob.Revision, error) {
	data, rev, err := s.store.Get(ctx, KeyGifts)
	if err != nil {
		return nil, blob.NoRevision, apperrors.NewStoreError("get", err)
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, blob.NoRevision, apperrors.NewCorruptStateError(err)
	}
	return doc, rev, nil
}

// mutate runs one registry operation as a compare-and-swap cycle: read the
// document and its revision, apply the change in memory, then write back
// only if the revision is unchanged. A lost race re-reads and re-applies,
// so business rules are always re-checked against fresh state; exhausted
// retries surface as contention. Business errors never retry.
func (s *registryService) mutate(ctx context.Context, apply func(doc *codec.Document) (*models.Gift, error)) (*models.Gift, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < s.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := s.backoff(ctx, attempt); err != nil {
				return nil, apperrors.NewContentionError(lastErr)
			}
		}

		doc, rev, err := s.load(ctx)
		if err != nil {
			// The loop's own deadline expiring is contention, not a
			// store failure.
			if ctx.Err() != nil {
				return nil, apperrors.NewContentionError(lastErr)
			}
			return nil, err
		}

		gift, err := apply(doc)
		if err != nil {
			return nil, err
		}

		encoded, err := codec.Encode(doc)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode registry document")
		}

		err = s.store.CompareAndSwap(ctx, KeyGifts, encoded, rev)
		if err == nil {
			return gift, nil
		}
		if errors.Is(err, blob.ErrRevisionMismatch) {
			lastErr = err
			logger.Debug().Int("attempt", attempt+1).Msg("registry write lost the race, retrying")
			continue
		}
		return nil, apperrors.NewStoreError("compare-and-swap", err)
	}

	return nil, apperrors.NewContentionError(lastErr)
}

// backoff sleeps a jittered multiple of RetryWait or fails when the
// operation deadline expires first.
func (s *registryService) backoff(ctx context.Context, attempt int) error {
	wait := time.Duration(attempt)*s.opts.RetryWait + time.Duration(rand.Int63n(int64(s.opts.RetryWait)))
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *registryService) List(ctx context.Context) ([]models.Gift, error) {
	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Gifts, nil
}

func (s *registryService) Get(ctx context.Context, id int) (*models.Gift, error) {
	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	gift := doc.Find(id)
	if gift == nil {
		return nil, apperrors.NewNotFoundError("gift", id)
	}
	return gift, nil
}

func (s *registryService) Add(ctx context.Context, input *models.GiftCreate) (*models.Gift, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}

	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		gift := models.Gift{
			ID:          doc.NextID,
			Name:        name,
			Description: strings.TrimSpace(input.Description),
			Link1:       strings.TrimSpace(input.Link1),
			Link2:       strings.TrimSpace(input.Link2),
			Price1:      input.Price1,
			Price2:      input.Price2,
			Images:      []string{},
			Status:      models.StatusAvailable,
			ClaimedBy:   nil,
		}
		doc.NextID++
		doc.Gifts = append(doc.Gifts, gift)
		return &gift, nil
	})
}

func (s *registryService) Claim(ctx context.Context, id int, claimant *models.ClaimantInput) (*models.Gift, error) {
	if err := validateClaimant(claimant); err != nil {
		return nil, err
	}

	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		gift := doc.Find(id)
		if gift == nil {
			return nil, apperrors.NewNotFoundError("gift", id)
		}
		// Re-checked on every retry: the loser of a claim race re-reads
		// the winner's write and lands here instead of overwriting it.
		if gift.Status == models.StatusClaimed {
			return nil, apperrors.NewConflictError("gift already claimed")
		}
		gift.Status = models.StatusClaimed
		gift.ClaimedBy = &models.Claimant{
			FirstName: strings.TrimSpace(claimant.FirstName),
			LastName:  strings.TrimSpace(claimant.LastName),
			Email:     strings.TrimSpace(claimant.Email),
			Phone:     strings.TrimSpace(claimant.Phone),
			ClaimedAt: time.Now().UTC(),
		}
		return gift, nil
	})
}

func (s *registryService) Release(ctx context.Context, id int) (*models.Gift, error) {
	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		gift := doc.Find(id)
		if gift == nil {
			return nil, apperrors.NewNotFoundError("gift", id)
		}
		// Releasing an available gift is a no-op, not an error.
		gift.Status = models.StatusAvailable
		gift.ClaimedBy = nil
		return gift, nil
	})
}

func (s *registryService) Update(ctx context.Context, id int, input *models.GiftUpdate) (*models.Gift, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}

	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		gift := doc.Find(id)
		if gift == nil {
			return nil, apperrors.NewNotFoundError("gift", id)
		}
		gift.Name = name
		gift.Description = strings.TrimSpace(input.Description)
		gift.Link1 = strings.TrimSpace(input.Link1)
		gift.Link2 = strings.TrimSpace(input.Link2)
		gift.Price1 = input.Price1
		gift.Price2 = input.Price2
		return gift, nil
	})
}

func (s *registryService) UpdateImages(ctx context.Context, id int, images []string) (*models.Gift, error) {
	if images == nil {
		return nil, apperrors.NewValidationError("images", "must be an array of strings")
	}

	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		gift := doc.Find(id)
		if gift == nil {
			return nil, apperrors.NewNotFoundError("gift", id)
		}
		gift.Images = images
		return gift, nil
	})
}

func (s *registryService) Delete(ctx context.Context, id int) (*models.Gift, error) {
	return s.mutate(ctx, func(doc *codec.Document) (*models.Gift, error) {
		removed := doc.Remove(id)
		if removed == nil {
			return nil, apperrors.NewNotFoundError("gift", id)
		}
		return removed, nil
	})
}

func validateClaimant(claimant *models.ClaimantInput) error {
	if claimant == nil {
		return apperrors.NewValidationError("claimant", "is required")
	}
	if strings.TrimSpace(claimant.FirstName) == "" {
		return apperrors.NewValidationError("firstName", "cannot be empty")
	}
	if strings.TrimSpace(claimant.LastName) == "" {
		return apperrors.NewValidationError("lastName", "cannot be empty")
	}
	if strings.TrimSpace(claimant.Email) == "" {
		return apperrors.NewValidationError("email", "cannot be empty")
	}
	return nil
}
