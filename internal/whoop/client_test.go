package whoop

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, srv.Client()), srv
}

func TestLatestRecovery(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/recovery", r.URL.Path)
		io.WriteString(w, `{"records":[{"score":{"recovery_score":67.5,"hrv_rmssd_milli":48.2}},{"score":{"recovery_score":12}}]}`)
	})
	defer srv.Close()

	rec, err := client.LatestRecovery(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 67.5, rec.Score)
	assert.Equal(t, 48.2, rec.HRVMilli)
}

func TestLatestRecoveryNoRecords(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"records":[]}`)
	})
	defer srv.Close()

	_, err := client.LatestRecovery(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLatestRecoveryMissingScore(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"records":[{}]}`)
	})
	defer srv.Close()

	_, err := client.LatestRecovery(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestLatestRecoveryServerError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	_, err := client.LatestRecovery(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whoop status 502")
}

func TestLatestSleepPerformance(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/activity/sleep", r.URL.Path)
		io.WriteString(w, `{"records":[{"score":{"sleep_performance_percentage":91}}]}`)
	})
	defer srv.Close()

	sleep, err := client.LatestSleepPerformance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 91.0, sleep)
}

func TestLatestStrain(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cycle", r.URL.Path)
		io.WriteString(w, `{"records":[{"score":{"strain":14.3}}]}`)
	})
	defer srv.Close()

	strain, err := client.LatestStrain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 14.3, strain)
}

func TestGetMalformedBody(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not json`)
	})
	defer srv.Close()

	_, err := client.LatestRecovery(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whoop response parse")
}
