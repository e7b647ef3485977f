// Package brightsky builds validated queries for the Bright Sky weather API
// (DWD open data) and serializes them into canonical URLs.
//
// Each endpoint has a builder with chained setters and a single Build call that
// validates and returns an immutable query:
//
//	q, err := brightsky.NewCurrentWeatherQueryBuilder().
//		WithLatLon(52.52, 13.4).
//		Build()
//	if err != nil {
//		return err
//	}
//	u := q.URLString(brightsky.DefaultBaseURL)
//	// https://api.brightsky.dev/current_weather?lat=52.52&lon=13.4
//
// The package does no I/O. Pass the URL to any HTTP client and decode the body
// into the matching response type, e.g. CurrentWeatherResponse. pkg/client does
// both for net/http.
package brightsky
