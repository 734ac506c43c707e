package generation

import (
	"fmt"
	"strings"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Prompt is the pair of messages sent to a provider.
type Prompt struct {
	System string
	User   string
}

// Combined joins both messages for providers without a system role.
func (p Prompt) Combined() string {
	return p.System + "\n\n" + p.User
}

// BuildPrompt renders the system and user prompts for req.
// The system prompt declares the exact envelope the Normalizer expects,
// and the user prompt carries topic, count and difficulty verbatim.
func BuildPrompt(req domain.GenerationRequest) Prompt {
	return Prompt{
		System: systemPrompt(req.Mode),
		User:   userPrompt(req),
	}
}

func systemPrompt(mode domain.GenerationMode) string {
	m := MappingFor(mode)

	var b strings.Builder
	b.WriteString("You are an experienced teacher who writes concise, accurate study flashcards.\n")
	if mode == domain.ModeVocabulary {
		b.WriteString("Each card teaches one German word with its English meaning and an example sentence in German.\n")
	} else {
		b.WriteString("Each card asks one focused question or term on the front and gives a short, correct answer on the back.\n")
	}
	b.WriteString("Respond with a single JSON object and nothing else. Do not add prose or markdown.\n")
	b.WriteString("The object must have exactly this shape:\n")
	fmt.Fprintf(&b,
		`{"%s":[{"%s":"...","%s":"...","%s":"...","%s":"easy|medium|hard"}]}`,
		EnvelopeKey, m.Front[0], m.Back[0], m.AdditionalInfo[0], m.Difficulty[0])
	b.WriteString("\n")
	fmt.Fprintf(&b, "Every card must have a non-empty %q and %q. ", m.Front[0], m.Back[0])
	fmt.Fprintf(&b, "Use %q for optional context or an example and leave it empty when there is none. ", m.AdditionalInfo[0])
	fmt.Fprintf(&b, "Set %q to one of easy, medium or hard for each card.", m.Difficulty[0])
	return b.String()
}

func userPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create exactly %d flashcards.\n", req.Count)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	if req.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.Category)
	}
	if req.AdditionalContext != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", req.AdditionalContext)
	}
	return b.String()
}
