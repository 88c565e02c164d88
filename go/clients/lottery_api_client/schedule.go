package lottery_api_client

import (
	"context"
	"errors"
	"fmt"

	"github.com/mcdev12/lotterydash/go/clients"
	"github.com/tidwall/gjson"
)

// GetSchedule fetches the jurisdiction to draw time table
func (c *LotteryApiClient) GetSchedule(ctx context.Context) (map[string]string, error) {
	body, err := c.Get(ctx, ScheduleEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return nil, &clients.ParseError{Endpoint: ScheduleEndpoint, Err: errors.New("body is not valid JSON")}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &clients.ParseError{Endpoint: ScheduleEndpoint, Err: errors.New("body is not a JSON object")}
	}

	schedule := make(map[string]string)
	root.ForEach(func(jurisdiction, drawTime gjson.Result) bool {
		if drawTime.Type == gjson.String {
			schedule[jurisdiction.String()] = drawTime.Str
		}
		return true
	})

	return schedule, nil
}
