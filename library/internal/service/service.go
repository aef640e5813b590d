package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-resource/library/internal/model"
	libraryRepo "github.com/Astemirdum/library-resource/library/internal/repository"
	"github.com/Astemirdum/library-resource/pkg/kafka"
	"github.com/Astemirdum/library-resource/pkg/pagination"
)

type Service struct {
	log       *zap.Logger
	repo      libraryRepo.Repository
	publisher kafka.Publisher
	now       func() time.Time
}

func NewService(repo libraryRepo.Repository, publisher kafka.Publisher, log *zap.Logger) *Service {
	if publisher == nil {
		publisher = kafka.NopPublisher()
	}
	return &Service{
		log:       log.Named("service"),
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// Save inserts lib when it has no id and upserts it otherwise.
func (s *Service) Save(ctx context.Context, lib model.Library) (model.Library, error) {
	if lib.LibraryUid == "" {
		lib.LibraryUid = uuid.NewString()
	}

	var (
		res   model.Library
		err   error
		event = kafka.EventUpdated
	)
	if lib.HasID() {
		res, err = s.repo.Upsert(ctx, lib)
	} else {
		res, err = s.repo.Insert(ctx, lib)
		event = kafka.EventCreated
	}
	if err != nil {
		return model.Library{}, err
	}
	s.publish(ctx, event, res)
	return res, nil
}

func (s *Service) FindAll(ctx context.Context, p pagination.Pageable) (model.ListLibraries, error) {
	return s.repo.FindAll(ctx, p)
}

func (s *Service) FindOne(ctx context.Context, id int64) (model.Library, error) {
	return s.repo.FindOne(ctx, id)
}

// Delete is idempotent: deleting a missing library succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.publish(ctx, kafka.EventDeleted, model.Library{ID: &id})
	} else {
		s.log.Debug("delete: library not found", zap.Int64("id", id))
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType kafka.EventType, lib model.Library) {
	if lib.ID == nil {
		return
	}
	s.publisher.Publish(ctx, kafka.LibraryEvent{
		Timestamp:  s.now().UTC(),
		EventType:  eventType,
		LibraryID:  *lib.ID,
		LibraryUid: lib.LibraryUid,
	})
}
