package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
)

func TestRunCompleted_Fields(t *testing.T) {
	summary := &driving.RunSummary{Files: 1, Results: []domain.ReportResult{{Name: "average-gdp"}}}

	ok := RunCompleted{Summary: summary}
	failed := RunCompleted{Err: errors.New("boom")}

	assert.Equal(t, "average-gdp", ok.Summary.Results[0].Name)
	assert.NoError(t, ok.Err)
	assert.Nil(t, failed.Summary)
	assert.EqualError(t, failed.Err, "boom")
}

func TestReportSelected_Index(t *testing.T) {
	msg := ReportSelected{Index: 2}

	assert.Equal(t, 2, msg.Index)
}
