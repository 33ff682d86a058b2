// Package api handles incoming HTTP requests, request validation and response
// formatting. It acts as an adapter between HTTP clients and the stores and
// services: handlers decode typed request DTOs, call into the application and
// write the shared success or error envelope.
//
// Every handler ends in exactly one response. Failures go through
// HandleAPIError, which sends operational errors verbatim and masks anything
// else behind the handler's fallback message.
package api
