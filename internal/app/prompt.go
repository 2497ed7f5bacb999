package app

import "strings"

// PromptTurn is one prior exchange folded into the prompt.
type PromptTurn struct {
	UserMessage string
	AIResponse  string
}

// PromptInput carries everything the assembler concatenates. All fields are
// optional except that callers validate Text/FileText presence upstream.
type PromptInput struct {
	Text        string
	FileText    string
	Instruction string
	History     []PromptTurn
}

// BuildPrompt assembles the final prompt text. The order is fixed: file text
// forms the base block, the keyword instruction follows on an "Instruksi:"
// line, a question alongside file text on a "Pertanyaan:" line. With history
// present, prior turns are rendered as "User:"/"AI:" pairs in chronological
// order and the new turn ends with a bare "AI:" cue for the model.
func BuildPrompt(in PromptInput) string {
	current := assembleCurrent(in)
	if len(in.History) == 0 {
		return current
	}

	var b strings.Builder
	for _, turn := range in.History {
		b.WriteString("User: ")
		b.WriteString(turn.UserMessage)
		b.WriteString("\nAI: ")
		b.WriteString(turn.AIResponse)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(current)
	b.WriteString("\nAI:")
	return b.String()
}

func assembleCurrent(in PromptInput) string {
	if in.FileText != "" {
		var b strings.Builder
		b.WriteString(in.FileText)
		if in.Instruction != "" {
			b.WriteString("\nInstruksi: ")
			b.WriteString(in.Instruction)
		}
		if in.Text != "" {
			b.WriteString("\nPertanyaan: ")
			b.WriteString(in.Text)
		}
		return b.String()
	}
	if in.Instruction != "" {
		return "Instruksi: " + in.Instruction + "\n" + in.Text
	}
	return in.Text
}

// SessionTitle derives a listing title from the first user message:
// at most 50 characters, truncated to 47 plus "..." when longer.
func SessionTitle(firstMessage string) string {
	runes := []rune(firstMessage)
	if len(runes) <= 50 {
		return firstMessage
	}
	return string(runes[:47]) + "..."
}

// FileTurnMessage synthesizes the user_message stored for a file turn.
func FileTurnMessage(fileName, fileText string) string {
	runes := []rune(fileText)
	if len(runes) > 100 {
		fileText = string(runes[:100])
	}
	return "[File Upload: " + fileName + "] " + fileText + "..."
}
