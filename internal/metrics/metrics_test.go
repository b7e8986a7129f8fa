package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, SearchesTotal)
	assert.NotNil(t, SearchDuration)
	assert.NotNil(t, SearchesDropped)
	assert.NotNil(t, AgentAPICallsTotal)
	assert.NotNil(t, AgentDailyLimitHits)
	assert.NotNil(t, ResolverAttemptsTotal)
	assert.NotNil(t, ResolverExhaustedTotal)
	assert.NotNil(t, PriceRefreshItemsTotal)
	assert.NotNil(t, PriceRefreshErrorsTotal)
	assert.NotNil(t, PriceRefreshDuration)
	assert.NotNil(t, RateRefreshFailuresTotal)
	assert.NotNil(t, ExchangeRate)
}
