package dashboard

import (
	"testing"
	"time"

	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Jurisdiction{
		{Slug: "texas", DrawTime: "11:00:00 AM"},
		{Slug: "ohio", DrawTime: "12:29:00 PM"},
		{Slug: "district-of-columbia", DisplayName: "WASHINGTON DC", DrawTime: "1:50:00 PM"},
		{Slug: "new-york", DrawTime: "2:30:00 PM"},
	})
	require.NoError(t, err)
	return c
}

// noonEastern is 12:00 in New York on a winter day
var noonEastern = time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)

func ohioSnapshot() models.Snapshot {
	return models.Snapshot{
		Results: models.ResultsMapping{
			"ohio-Pick 4":  {Result: strPtr("1234"), Date: strPtr("01/01/2024, 11:30:00 AM")},
			"texas-Pick 3": {Result: nil, Date: strPtr("stale")},
		},
		Messages: models.MessagesMapping{
			"ohio-Pick 4": models.MessageAvailable,
		},
		LastUpdateTime: "2024-01-01T16:59:00Z",
	}
}

func TestBuildRowsOrdersFoundFirst(t *testing.T) {
	rows := BuildRows(testCatalog(t), ohioSnapshot(), "", noonEastern)
	require.Len(t, rows, 4)

	var slugs []string
	for _, r := range rows {
		slugs = append(slugs, r.Jurisdiction)
	}
	assert.Equal(t, []string{"ohio", "texas", "district-of-columbia", "new-york"}, slugs)

	assert.Equal(t, StatusFound, rows[0].Status)
	assert.Equal(t, StatusMessageFound, rows[0].StatusMessage)
	assert.Equal(t, "1234", *rows[0].Pick4.Result)
	assert.Equal(t, models.MessageAvailable, rows[0].Pick4.Message)
	assert.Nil(t, rows[0].Pick3.Result)
	assert.Equal(t, models.MessageUnavailable, rows[0].Pick3.Message)
}

func TestBuildRowsStatus(t *testing.T) {
	rows := BuildRows(testCatalog(t), ohioSnapshot(), "", noonEastern)
	byslug := make(map[string]Row)
	for _, r := range rows {
		byslug[r.Jurisdiction] = r
	}

	// texas drew at 11:00 with nothing posted
	assert.Equal(t, StatusNotAvailable, byslug["texas"].Status)
	assert.Equal(t, StatusMessageNotAvailable, byslug["texas"].StatusMessage)
	assert.Equal(t, StatusNotTime, byslug["new-york"].Status)
	assert.Equal(t, StatusMessageNotTime, byslug["new-york"].StatusMessage)
	assert.Equal(t, "WASHINGTON DC", byslug["district-of-columbia"].DisplayName)
	assert.Equal(t, "New York", byslug["new-york"].DisplayName)
}

func TestBuildRowsNeverShowsDateWithoutResult(t *testing.T) {
	rows := BuildRows(testCatalog(t), ohioSnapshot(), "texas", noonEastern)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Pick3.Result)
	assert.Nil(t, rows[0].Pick3.Date)
}

func TestBuildRowsFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{name: "display name", filter: "washington", want: []string{"district-of-columbia"}},
		{name: "display name with space", filter: "new y", want: []string{"new-york"}},
		{name: "slug case insensitive", filter: "NEW-", want: []string{"new-york"}},
		{name: "whitespace only", filter: "  ", want: []string{"ohio", "texas", "district-of-columbia", "new-york"}},
		{name: "no match", filter: "alaska", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRows(testCatalog(t), ohioSnapshot(), tt.filter, noonEastern)
			var got []string
			for _, r := range rows {
				got = append(got, r.Jurisdiction)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
