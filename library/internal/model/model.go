package model

import (
	"strconv"

	"github.com/Astemirdum/library-resource/pkg/pagination"
)

type Library struct {
	ID         *int64 `json:"id" db:"id" validate:"omitempty,min=1"`
	LibraryUid string `json:"libraryUid,omitempty" db:"library_uid" validate:"omitempty,uuid"`
	Name       string `json:"name" db:"name" validate:"required,max=255"`
	Address    string `json:"address" db:"address" validate:"max=255"`
	City       string `json:"city" db:"city" validate:"max=255"`
}

func (l Library) HasID() bool {
	return l.ID != nil
}

func (l Library) IDString() string {
	if l.ID == nil {
		return ""
	}
	return strconv.FormatInt(*l.ID, 10)
}

type ListLibraries struct {
	Pageable      pagination.Pageable `json:"-"`
	TotalElements int64               `json:"totalElements"`
	Items         []Library           `json:"items"`
}

// SortProperties maps public sort keys to columns.
var SortProperties = map[string]string{
	"id":         "id",
	"libraryUid": "library_uid",
	"name":       "name",
	"address":    "address",
	"city":       "city",
}
