package gorm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestStatementResultsFirstErrorWins(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	results := StatementResults{
		{Statement: "delete tags"},
		{Statement: "insert tag a", Err: first},
		{Statement: "insert tag b"},
		{Statement: "insert tag c", Err: second},
	}

	assert.Equal(t, first, results.Err())
	assert.Equal(t, 2, results.Failed())

	assert.NoError(t, StatementResults{{Statement: "delete tags"}}.Err())
	assert.NoError(t, StatementResults(nil).Err())
}
