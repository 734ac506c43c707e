// Package service contains the application use cases. Services orchestrate
// domain objects, the generation pipeline and the store interfaces; they
// never depend on a concrete storage or provider implementation.
//
// Every method that touches user-owned data takes the acting user's ID as
// an explicit argument. The API layer resolves it from the access token.
package service
