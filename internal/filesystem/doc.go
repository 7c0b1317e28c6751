// Package filesystem reads local files with retry logic for NFS stale file
// handles.
//
// The playlist file is frequently mounted from network storage in container
// deployments. An NFS server restart or export change can make open handles
// stale (ESTALE); such reads are retried with exponential backoff instead of
// failing the playlist load:
//
//	data, err := filesystem.ReadFileWithRetry(path, filesystem.DefaultRetryConfig())
//
// Any other error, including os.ErrNotExist, is returned on the first
// attempt. Retry metrics are reported through an Observer registered with
// SetObserver; the metrics package supplies the Prometheus implementation.
package filesystem
