package lottery_api_client

import (
	"time"

	"github.com/mcdev12/lotterydash/go/clients"
)

type LotteryApiClient struct {
	*clients.BaseClient
}

func NewLotteryApiClient(baseURL string, timeout time.Duration) *LotteryApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := &LotteryApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader(AcceptHeader, "application/json")
	client.SetHeader(UserAgentHeader, UserAgent)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return client
}
