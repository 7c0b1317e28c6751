// Package logging provides a simple leveled logging interface for the
// playlist viewer.
//
// It supports the following log levels:
//   - DEBUG: Verbose debugging information
//   - INFO: General operational messages
//   - WARN: Warning conditions
//   - ERROR: Error conditions
//   - FATAL: Fatal errors that terminate the application
//
// The log level is configured via the LOG_LEVEL environment variable, or
// forced to DEBUG with DEBUG=true. Scope adds a fixed "[key=value]" prefix
// so that everything logged while serving one viewer session can be
// grepped together.
package logging
