package repository

import (
	"testing"

	"unifest/internal/search"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositoriesWithSearchNilClient(t *testing.T) {
	repos := NewRepositoriesWithSearch(nil, nil)

	// Callers branch on EventSearch being nil for the Postgres fallback
	assert.Nil(t, repos.EventSearch)
	assert.NotNil(t, repos.Events)
	assert.NotNil(t, repos.Registrations)
}

func TestNewRepositoriesWithSearchLiveClient(t *testing.T) {
	repos := NewRepositoriesWithSearch(nil, &search.ElasticsearchClient{})

	assert.NotNil(t, repos.EventSearch)
}
