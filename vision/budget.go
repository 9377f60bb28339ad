package vision

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// PromptBudget caps how much free-text context (development guide
// excerpts, edge-case descriptions) gets folded into a vision prompt
// before the image itself, so a verbose site guide can't silently
// crowd out the image analysis instructions.
type PromptBudget struct {
	encoding   *tiktoken.Tiktoken
	maxTokens  int
}

// NewPromptBudget builds a budget counting tokens the way the
// target model would, using tiktoken-go's cl100k_base encoding as the
// closest available approximation for a non-OpenAI model.
func NewPromptBudget(maxTokens int) (*PromptBudget, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("vision: load token encoding: %w", err)
	}
	return &PromptBudget{encoding: enc, maxTokens: maxTokens}, nil
}

// Fits reports whether text fits within the remaining budget.
func (b *PromptBudget) Fits(text string) bool {
	return len(b.encoding.Encode(text, nil, nil)) <= b.maxTokens
}

// Truncate trims text to the budget by keeping only its first maxTokens
// tokens, preserving the earliest (and usually most relevant) context.
// The cut falls at a token boundary, which can be mid-line or mid-word.
func (b *PromptBudget) Truncate(text string) string {
	tokens := b.encoding.Encode(text, nil, nil)
	if len(tokens) <= b.maxTokens {
		return text
	}
	return b.encoding.Decode(tokens[:b.maxTokens])
}
