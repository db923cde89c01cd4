// posthog_client.go wraps posthog.Client so callers never have to care
// whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper wraps the posthog client and degrades to a no-op when
// no API key is configured.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient creates the wrapper; an empty API key yields a
// disabled client.
func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogClientWrapper{}
	}
	wrapper := PosthogClientWrapper{logger: logger}
	wrapper.posthogClient, _ = posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	return &wrapper
}

// IsInitialized reports whether a real client is backing the wrapper.
func (w *PosthogClientWrapper) IsInitialized() bool {
	return w.posthogClient != nil
}

// Enqueue captures an event for the given user.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if w.posthogClient == nil {
		return
	}
	w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
}

// Close flushes and shuts down the underlying client.
func (w *PosthogClientWrapper) Close() {
	if w.posthogClient == nil {
		return
	}
	w.posthogClient.Close()
}
