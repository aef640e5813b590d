package handler

import (
	"context"

	"github.com/Astemirdum/library-resource/library/internal/model"
	"github.com/Astemirdum/library-resource/library/internal/service"
	"github.com/Astemirdum/library-resource/pkg/pagination"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	Save(ctx context.Context, lib model.Library) (model.Library, error)
	FindAll(ctx context.Context, p pagination.Pageable) (model.ListLibraries, error)
	FindOne(ctx context.Context, id int64) (model.Library, error)
	Delete(ctx context.Context, id int64) error
}

var _ LibraryService = (*service.Service)(nil)
