// Package logger is a standardized event logging framework for the
// interpreter. Events are written as newline delimited JSON so a session can
// be summarized after the fact.
package logger
