package alert_test

import (
	"testing"

	"github.com/Astemirdum/library-resource/pkg/alert"
	"github.com/stretchr/testify/require"
)

func TestEntity(t *testing.T) {
	h := alert.Entity("library", alert.Deleted, "42")
	require.Equal(t, "libraryApp.library.deleted", h.Get(alert.HeaderAlert))
	require.Equal(t, "42", h.Get(alert.HeaderParams))
	require.Empty(t, h.Get(alert.HeaderError))
}

func TestFailure(t *testing.T) {
	h := alert.Failure("library", "idexists")
	require.Equal(t, "error.idexists", h.Get(alert.HeaderError))
	require.Equal(t, "library", h.Get(alert.HeaderParams))
	require.Empty(t, h.Get(alert.HeaderAlert))
}
