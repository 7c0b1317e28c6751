// Package memory applies a container-aware Go soft memory limit at startup.
//
// Set MEMORY_LIMIT to the container limit in bytes (for Kubernetes, through
// the Downward API from limits.memory) and the heap is capped at
// MEMORY_RATIO of it. An explicit GOMEMLIMIT always takes precedence.
package memory
