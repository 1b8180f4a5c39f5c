// Package logger wraps zap with a global sugared logger and context helpers.
//
// Services receive a context and log through the logger stored in it, so
// names and key-value fields added upstream (WithName, WithKV) follow every
// message. When the context carries no logger the global one is used.
package logger
