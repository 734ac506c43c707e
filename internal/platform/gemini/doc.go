// Package gemini implements generation.Provider for Google's generateContent
// protocol using the google.golang.org/genai client.
//
// The adapter sends the combined system and user prompt as a single text
// part and asks for an application/json response. It reads the text of the
// first part of the first candidate and leaves parsing to the generation
// package. A client is created per call because API keys belong to users.
//
// The genai client transmits the key in the x-goog-api-key header rather than
// the key query parameter; the endpoint accepts both.
package gemini
