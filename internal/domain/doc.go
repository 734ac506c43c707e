// Package domain contains the core entities of flashdeck: generation requests,
// canonical flashcards, persisted study sessions and the per-user profile and
// settings records. It is independent of any storage or transport mechanism.
package domain
