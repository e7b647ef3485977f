package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/brightsky/pkg/brightsky"
	"github.com/vzahanych/brightsky/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithLogger(zaptest.NewLogger(t)),
	)
	return srv, c
}

func TestCurrentWeather(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current_weather", r.URL.Path)
		assert.Equal(t, "lat=52.52&lon=13.4", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"weather": {"source_id": 1234, "timestamp": "2023-08-07T12:00:00+00:00",
				"temperature": 22.3, "condition": "rain", "icon": "rain", "precipitation_60": 1.5},
			"sources": [{"id": 1234, "dwd_station_id": "01766", "observation_type": "synop",
				"lat": 52.52, "lon": 13.4, "height": 34.0, "distance": 5420.3,
				"first_record": "2010-01-01T00:00:00+00:00", "last_record": "2023-08-07T12:00:00+00:00"}]
		}`))
	})

	q, err := brightsky.NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).Build()
	require.NoError(t, err)

	resp, err := c.CurrentWeather(context.Background(), q)
	require.NoError(t, err)

	require.NotNil(t, resp.Weather.Temperature)
	assert.Equal(t, 22.3, *resp.Weather.Temperature)
	assert.Equal(t, brightsky.ConditionRain, *resp.Weather.Condition)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "01766", *resp.Sources[0].DWDStationID)
}

func TestWeather(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "2023-08-07", r.URL.Query().Get("date"))
		w.Write([]byte(`{"weather": [{"timestamp": "2023-08-07T00:00:00+00:00", "source_id": 1,
			"temperature": 25.7, "condition": "dry"}], "sources": []}`))
	})

	q, err := brightsky.NewWeatherQueryBuilder().
		WithLatLon(52.52, 13.4).
		WithDate(brightsky.NewDate(2023, 8, 7)).
		Build()
	require.NoError(t, err)

	resp, err := c.Weather(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Weather, 1)
	assert.Equal(t, 25.7, *resp.Weather[0].Temperature)
	assert.Equal(t, brightsky.ConditionDry, *resp.Weather[0].Condition)
}

func TestEmptyWeather(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [], "sources": []}`))
	})

	q, err := brightsky.NewWeatherQueryBuilder().
		WithDWDStationIDs("01766").
		WithDate(brightsky.NewDate(2023, 8, 7)).
		Build()
	require.NoError(t, err)

	resp, err := c.Weather(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, resp.Weather)
}

func TestRadar(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/radar", r.URL.Path)
		assert.Equal(t, "plain", r.URL.Query().Get("format"))
		w.Write([]byte(`{
			"radar": [{"timestamp": "2023-08-07T12:00:00+00:00", "source": "RADOLAN::RV",
				"precipitation_5": [[0, 5, 10], [15, 20, 25]]}],
			"bbox": [0, 0, 1, 2],
			"latlon_position": {"x": 1.5, "y": 1.2}
		}`))
	})

	q, err := brightsky.NewRadarQueryBuilder().
		WithLatLon(52.52, 13.4).
		WithFormat(brightsky.FormatPlain).
		Build()
	require.NoError(t, err)

	resp, err := c.Radar(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Radar, 1)
	assert.Equal(t, [][]uint16{{0, 5, 10}, {15, 20, 25}}, resp.Radar[0].Precipitation5.Grid)

	width, height, ok := resp.Dimensions()
	require.True(t, ok)
	assert.Equal(t, 3, width)
	assert.Equal(t, 2, height)
}

func TestAlerts(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alerts", r.URL.Path)
		assert.Equal(t, "warn_cell_id=804159000", r.URL.RawQuery)
		w.Write([]byte(`{
			"alerts": [{"id": 9876, "status": "actual", "category": "met", "severity": "moderate",
				"effective": "2023-08-07T10:00:00+00:00", "onset": "2023-08-07T12:00:00+00:00",
				"expires": "2023-08-07T20:00:00+00:00", "headline_en": "Wind", "headline_de": "Wind",
				"description_en": "", "description_de": ""}],
			"location": {"warn_cell_id": 804159000, "name": "Stadt Berlin", "name_short": "Berlin",
				"district": "Berlin", "state": "Berlin", "state_short": "BL"}
		}`))
	})

	q, err := brightsky.NewLocalAlertsQueryBuilder().WithWarnCellID(804159000).Build()
	require.NoError(t, err)

	resp, err := c.Alerts(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, int64(9876), resp.Alerts[0].ID)
	assert.Equal(t, brightsky.AlertSeverityModerate, *resp.Alerts[0].Severity)
	assert.Equal(t, "Berlin", resp.Location.NameShort)
}

func TestStatusError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Invalid"}`))
	})

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Alerts(context.Background(), q)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.Code)
	assert.Equal(t, "Invalid", statusErr.Detail)
	assert.JSONEq(t, `{"detail": "Invalid"}`, string(statusErr.Body))
	assert.Equal(t, "brightsky: 400 Bad Request: Invalid", statusErr.Error())
}

func TestStatusErrorWithoutDetail(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream down"))
	})

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), q)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Empty(t, statusErr.Detail)
	assert.Equal(t, "upstream down", string(statusErr.Body))
}

func TestDecodeError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Alerts(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode /alerts response")
}

func TestInvalidBaseURL(t *testing.T) {
	c := New(WithBaseURL("not a url"), WithLogger(zaptest.NewLogger(t)))

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), q)
	assert.ErrorIs(t, err, brightsky.ErrURLConstruction)
}

func TestContextCancelled(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alerts": []}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Fetch(ctx, q)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingDoer struct {
	requests []*http.Request
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.requests = append(d.requests, req)
	return nil, errors.New("offline")
}

func TestCustomDoer(t *testing.T) {
	doer := &recordingDoer{}
	c := New(WithHTTPClient(doer), WithUserAgent("test-agent"))

	q, err := brightsky.NewRadarQueryBuilder().WithBBox(47, 5, 55, 16).Build()
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), q)
	require.Error(t, err)

	require.Len(t, doer.requests, 1)
	assert.Equal(t, "https://api.brightsky.dev/radar?bbox=47%2C5%2C55%2C16", doer.requests[0].URL.String())
	assert.Equal(t, "test-agent", doer.requests[0].Header.Get("User-Agent"))
}

func TestWithTimeout(t *testing.T) {
	c := New(WithTimeout(5 * time.Second))

	hc, ok := c.http.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 5*time.Second, hc.Timeout)
}

func newRecordedTelemetry(t *testing.T) (*telemetry.Telemetry, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tele := telemetry.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)), "test")
	t.Cleanup(func() { _ = tele.Shutdown(context.Background()) })
	return tele, sr
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, s := range sr.Ended() {
		if s.Name() == name {
			return s
		}
	}
	t.Fatalf("span %q not recorded", name)
	return nil
}

func hasExceptionEvent(s sdktrace.ReadOnlySpan) bool {
	for _, e := range s.Events() {
		if e.Name == "exception" {
			return true
		}
	}
	return false
}

func TestFetchRecordsErrorOnSpan(t *testing.T) {
	tele, sr := newRecordedTelemetry(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail": "Invalid"}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithLogger(zaptest.NewLogger(t)), WithTelemetry(tele))

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), q)
	require.Error(t, err)

	span := endedSpan(t, sr, "brightsky.Fetch")
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.True(t, hasExceptionEvent(span))
	assert.Contains(t, span.Attributes(), attribute.String("brightsky.endpoint", "/alerts"))
}

func TestFetchSuccessLeavesSpanUnset(t *testing.T) {
	tele, sr := newRecordedTelemetry(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alerts": [], "location": null}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithLogger(zaptest.NewLogger(t)), WithTelemetry(tele))

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Alerts(context.Background(), q)
	require.NoError(t, err)

	fetch := endedSpan(t, sr, "brightsky.Fetch")
	assert.Equal(t, codes.Unset, fetch.Status().Code)
	assert.False(t, hasExceptionEvent(fetch))

	decode := endedSpan(t, sr, "brightsky.Decode")
	assert.Equal(t, codes.Unset, decode.Status().Code)
	assert.Contains(t, decode.Attributes(), attribute.String("brightsky.endpoint", "/alerts"))
}

func TestDecodeErrorRecordedOnSpan(t *testing.T) {
	tele, sr := newRecordedTelemetry(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL), WithLogger(zaptest.NewLogger(t)), WithTelemetry(tele))

	q, err := brightsky.NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	_, err = c.Alerts(context.Background(), q)
	require.Error(t, err)

	decode := endedSpan(t, sr, "brightsky.Decode")
	assert.Equal(t, codes.Error, decode.Status().Code)
	assert.True(t, hasExceptionEvent(decode))
}
