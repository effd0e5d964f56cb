package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcoord/internal/domain"
)

func TestRecorder_Counters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.ObserveNotification("invitation", true)
	r.ObserveNotification("invitation", true)
	r.ObserveNotification("invitation", false)
	r.ObserveRSVP(domain.RSVPStatusAccepted)
	r.ObserveRSVP(domain.RSVPStatusWaitlist)
	r.ObserveTransition(domain.EventStatusApproved)
	r.ObserveStaffAssignment("conflict")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.notifications.WithLabelValues("invitation", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notifications.WithLabelValues("invitation", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rsvps.WithLabelValues("ACCEPTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rsvps.WithLabelValues("WAITLIST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.staffAssignments.WithLabelValues("conflict")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New(prometheus.NewRegistry())
	r.ObserveTransition(domain.EventStatusLocked)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `eventcoord_event_transitions_total{status="LOCKED"} 1`)
}
