// Package generation turns a validated GenerationRequest into canonical
// flashcards. It owns the prompt contract sent to LLM providers, the
// Provider adapter interface implemented by the platform packages, the
// tolerant Normalizer for untrusted provider text and the per-mode field
// mapping onto domain.Flashcard.
//
// The Pipeline type ties these steps together and performs exactly one
// provider call per Generate invocation; nothing in this package retries.
package generation
