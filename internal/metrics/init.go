package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, status := range []string{"success", "http_error", "network_error", "decode_error"} {
		ArchiveRequestsTotal.WithLabelValues(status)
	}

	for _, outcome := range []string{"ready", "empty", "parse_error", "fetch_error"} {
		ResolutionsTotal.WithLabelValues(outcome)
	}

	for _, grouping := range []string{"flat", "grouped"} {
		TracksResolved.WithLabelValues(grouping)
	}

	for _, result := range []string{"kept", "skipped"} {
		FilesFilteredTotal.WithLabelValues(result)
	}

	for _, mode := range []string{"iframe", "video"} {
		PlaybacksTotal.WithLabelValues(mode)
	}

	for _, kind := range []string{"missing", "unreadable", "malformed"} {
		PlaylistLoadErrors.WithLabelValues(kind)
	}

	for _, op := range []string{"read", "stat"} {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
		FilesystemOperationDuration.WithLabelValues(op)
	}
}
