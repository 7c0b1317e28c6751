// Package middleware provides HTTP middleware for the playlist viewer.
//
// It includes:
//   - Request logging in W3C Extended Log Format, tagged with a short
//     viewer session id
//   - Prometheus request metrics labelled by route template
//   - Configurable filtering for static files and health checks
package middleware
