package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/top", "200"))

	RecordAPIRequest("GET", "/top", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/top", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordUpstreamRequest(t *testing.T) {
	RecordUpstreamRequest("googlebooks", nil, time.Millisecond)
	RecordUpstreamRequest("googlebooks", errors.New("boom"), time.Millisecond)

	// One series per outcome label.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(UpstreamRequestDuration), 2)
}
