// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the generation, session, settings,
// profile and account services.
package api
