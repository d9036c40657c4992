package hub

import "errors"

var (
	// ErrModelNotFound is returned when the hub has no model with the given ID.
	ErrModelNotFound = errors.New("hub: model not found")

	// ErrHubDown is returned when the hub is reachable but unresponsive.
	ErrHubDown = errors.New("hub: hub is down")

	// ErrNoInternet is returned when the hub cannot be reached at all.
	ErrNoInternet = errors.New("hub: no internet connection")

	// ErrUnsupportedFramework is returned for models whose framework the
	// harness cannot benchmark (spaCy, TensorFlow/Keras).
	ErrUnsupportedFramework = errors.New("hub: unsupported framework")
)
