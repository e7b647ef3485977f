package brightsky

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLMatchesURLString(t *testing.T) {
	current, err := NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).WithTZ("Europe/Berlin").Build()
	require.NoError(t, err)
	weather, err := NewWeatherQueryBuilder().WithDWDStationIDs("01766", "01767").WithDate(NewDate(2025, 1, 15)).Build()
	require.NoError(t, err)
	radar, err := NewRadarQueryBuilder().WithBBox(47.0, 5.0, 55.0, 16.0).Build()
	require.NoError(t, err)
	alerts, err := NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	for _, q := range []Query{current, weather, radar, alerts} {
		t.Run(q.Path(), func(t *testing.T) {
			u, err := URL(DefaultBaseURL, q)
			require.NoError(t, err)
			assert.Equal(t, URLString(DefaultBaseURL, q), u.String())
		})
	}
}

func TestURLBaseWithPath(t *testing.T) {
	q, err := NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).Build()
	require.NoError(t, err)

	for _, base := range []string{"http://localhost:5000/api", "http://localhost:5000/api/"} {
		u, err := q.URL(base)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:5000/api/current_weather?lat=52.52&lon=13.4", u.String())
		assert.Equal(t, u.String(), q.URLString(base))
	}
}

func TestURLKeepsEscapedBasePath(t *testing.T) {
	q, err := NewWeatherQueryBuilder().WithLatLon(52.52, 13.4).WithDate(NewDate(2025, 1, 15)).Build()
	require.NoError(t, err)

	for _, base := range []string{"https://h/a%2Fb", "https://h/a%2Fb/", "https://h/caf%C3%A9%20x"} {
		t.Run(base, func(t *testing.T) {
			u, err := q.URL(base)
			require.NoError(t, err)
			assert.Equal(t, q.URLString(base), u.String())
		})
	}

	u, err := q.URL("https://h/a%2Fb")
	require.NoError(t, err)
	assert.Equal(t, "/a%2Fb/weather", u.EscapedPath())
	assert.Equal(t, "/a/b/weather", u.Path)
}

func TestURLQueryRoundTrip(t *testing.T) {
	q, err := NewWeatherQueryBuilder().
		WithDWDStationIDs("01766", "01767").
		WithDate(NewDate(2025, 1, 15)).
		WithTZ("Europe/Berlin").
		Build()
	require.NoError(t, err)

	u, err := q.URL(DefaultBaseURL)
	require.NoError(t, err)

	values := u.Query()
	assert.Equal(t, "01766,01767", values.Get("dwd_station_id"))
	assert.Equal(t, "Europe/Berlin", values.Get("tz"))
	assert.Equal(t, "2025-01-15", values.Get("date"))
}

func TestURLInvalidBase(t *testing.T) {
	q, err := NewAlertsQueryBuilder().Build()
	require.NoError(t, err)

	for _, base := range []string{
		"",
		"not a url",
		"/relative/path",
		"http://",
		"http://host/?q=1",
		"http://host/#frag",
		"mailto:someone@example.com",
		"http://[::1",
	} {
		_, err := URL(base, q)
		require.Error(t, err, "base %q", base)
		assert.ErrorIs(t, err, ErrURLConstruction)

		var uerr *URLError
		require.True(t, errors.As(err, &uerr))
		assert.Equal(t, base, uerr.Base)
	}
}

func TestURLStringNeverFails(t *testing.T) {
	q, err := NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).Build()
	require.NoError(t, err)

	assert.Equal(t, "not a url/current_weather?lat=52.52&lon=13.4", q.URLString("not a url"))
}

func TestEncodeIsDeterministic(t *testing.T) {
	q, err := NewRadarQueryBuilder().
		WithLatLon(52.52, 13.4).
		WithDistance(50000).
		WithFormat(FormatBytes).
		Build()
	require.NoError(t, err)

	first := q.Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, q.Encode())
	}
	assert.Equal(t, "lat=52.52&lon=13.4&distance=50000&format=bytes", first)
}

func TestAppendQueryReusesBuffer(t *testing.T) {
	q, err := NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).Build()
	require.NoError(t, err)

	buf := []byte("prefix?")
	buf = q.AppendQuery(buf)
	assert.Equal(t, "prefix?lat=52.52&lon=13.4", string(buf))
}

func TestNegativeAndFractionalCoordinates(t *testing.T) {
	q, err := NewCurrentWeatherQueryBuilder().WithLatLon(-33.8688, 151.2093).Build()
	require.NoError(t, err)
	assert.Equal(t, "lat=-33.8688&lon=151.2093", q.Encode())

	q, err = NewCurrentWeatherQueryBuilder().WithLatLon(52, 13).Build()
	require.NoError(t, err)
	assert.Equal(t, "lat=52&lon=13", q.Encode())
}

func TestValidationErrorMessage(t *testing.T) {
	_, err := NewCurrentWeatherQueryBuilder().WithLatLon(52.52, 13.4).WithMaxDist(500001).Build()
	require.Error(t, err)
	assert.Equal(t, "max_dist: max_dist must be between 0 and 500000, got 500001", err.Error())

	_, err = NewWeatherQueryBuilder().WithLatLon(52.52, 13.4).Build()
	require.Error(t, err)
	assert.Equal(t, "date: date is required but not set", err.Error())
}
