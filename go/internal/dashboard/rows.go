package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/mcdev12/lotterydash/go/internal/catalog"
	"github.com/mcdev12/lotterydash/go/internal/models"
)

// RowStatus classifies a jurisdiction row
type RowStatus string

const (
	StatusFound        RowStatus = "found"
	StatusNotTime      RowStatus = "not_time"
	StatusNotAvailable RowStatus = "not_available"
)

// Status messages shown next to each row
const (
	StatusMessageFound        = "Resultado encontrado"
	StatusMessageNotTime      = "Aún no es hora del sorteo"
	StatusMessageNotAvailable = "Resultado no disponible"
)

// Message returns the user-visible text for the status
func (s RowStatus) Message() string {
	switch s {
	case StatusFound:
		return StatusMessageFound
	case StatusNotTime:
		return StatusMessageNotTime
	default:
		return StatusMessageNotAvailable
	}
}

// Cell is one game column of a row
type Cell struct {
	Result  *string `json:"result"`
	Date    *string `json:"date"`
	Message string  `json:"message"`
}

// Row is one jurisdiction as rendered by the dashboard
type Row struct {
	Jurisdiction  string    `json:"jurisdiction"`
	DisplayName   string    `json:"displayName"`
	DrawTime      string    `json:"drawTime,omitempty"`
	Pick3         Cell      `json:"pick3"`
	Pick4         Cell      `json:"pick4"`
	Status        RowStatus `json:"status"`
	StatusMessage string    `json:"statusMessage"`
}

// BuildRows renders snapshot in catalog order with found rows first, keeping
// only jurisdictions whose slug or display name contains filter
func BuildRows(c *catalog.Catalog, snapshot models.Snapshot, filter string, now time.Time) []Row {
	needle := strings.ToLower(strings.TrimSpace(filter))

	rows := make([]Row, 0, c.Len())
	for _, j := range c.Jurisdictions() {
		name := c.DisplayName(j.Slug)
		if needle != "" &&
			!strings.Contains(strings.ToLower(j.Slug), needle) &&
			!strings.Contains(strings.ToLower(name), needle) {
			continue
		}

		row := Row{
			Jurisdiction: j.Slug,
			DisplayName:  name,
			DrawTime:     j.DrawTime,
			Pick3:        buildCell(snapshot, j.Slug, models.GamePick3),
			Pick4:        buildCell(snapshot, j.Slug, models.GamePick4),
		}
		row.Status = rowStatus(c, row, now)
		row.StatusMessage = row.Status.Message()
		rows = append(rows, row)
	}

	// Rows are already in catalog order, a stable sort keeps it within each group
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Status == StatusFound && rows[b].Status != StatusFound
	})
	return rows
}

func buildCell(snapshot models.Snapshot, slug string, game models.Game) Cell {
	key := models.Key(slug, game)
	record := snapshot.Results[key]

	cell := Cell{Result: record.Result, Message: snapshot.Messages[key]}
	if record.Available() {
		cell.Date = record.Date
	}
	if cell.Message == "" {
		cell.Message = models.MessageUnavailable
		if record.Available() {
			cell.Message = models.MessageAvailable
		}
	}
	return cell
}

func rowStatus(c *catalog.Catalog, row Row, now time.Time) RowStatus {
	if row.Pick3.Result != nil || row.Pick4.Result != nil {
		return StatusFound
	}
	if drawAt, ok := c.DrawAt(row.Jurisdiction, now); ok && now.Before(drawAt) {
		return StatusNotTime
	}
	return StatusNotAvailable
}
