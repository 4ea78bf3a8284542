package port

import (
	"database/sql"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStorageError(t *testing.T) {
	err := errors.WithStack(NewStorageError("insert story", sql.ErrConnDone))

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, sql.ErrConnDone))
	assert.False(t, errors.Is(err, ErrNotFound))

	var storageErr *StorageError
	if assert.True(t, errors.As(err, &storageErr)) {
		assert.Equal(t, "insert story", storageErr.Op)
	}

	assert.Contains(t, err.Error(), "insert story")
}
