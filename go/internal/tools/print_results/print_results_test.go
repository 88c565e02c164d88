package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mcdev12/lotterydash/go/internal/dashboard"
	"github.com/mcdev12/lotterydash/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRender(t *testing.T) {
	rows := []dashboard.Row{
		{
			DisplayName:   "Ohio",
			DrawTime:      "12:29:00 PM",
			Pick3:         dashboard.Cell{Result: strPtr("123"), Date: strPtr("01/01/2024, 12:30:00 PM")},
			Pick4:         dashboard.Cell{},
			Status:        dashboard.StatusFound,
			StatusMessage: dashboard.StatusMessageFound,
		},
		{
			DisplayName:   "WASHINGTON DC",
			Pick3:         dashboard.Cell{},
			Pick4:         dashboard.Cell{},
			Status:        dashboard.StatusNotTime,
			StatusMessage: dashboard.StatusMessageNotTime,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, models.Snapshot{LastUpdateTime: "2024-01-01T17:31:00Z"}, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "JURISDICTION"))
	assert.Contains(t, lines[1], "123 (01/01/2024, 12:30:00 PM)")
	assert.Contains(t, lines[1], "N/A")
	assert.Contains(t, lines[2], "WASHINGTON DC")
	assert.Contains(t, lines[2], " - ")
	assert.Equal(t, "Results: 1 of 2 found, server time 2024-01-01T17:31:00Z", lines[4])

	// columns line up
	assert.Equal(t, strings.Index(lines[0], "DRAW TIME"), strings.Index(lines[1], "12:29:00 PM"))
}
