package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"genai-chat/internal/app"
)

func TestBuildPromptPlainText(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{Text: "halo"})
	assert.Equal(t, "halo", got)
}

func TestBuildPromptTextWithInstruction(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{
		Text:        "jelaskan dokumen ini",
		Instruction: "Ringkas dalam tiga kalimat.",
	})
	assert.Equal(t, "Instruksi: Ringkas dalam tiga kalimat.\njelaskan dokumen ini", got)
}

func TestBuildPromptFileBlockOrdering(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{
		Text:        "apa intinya?",
		FileText:    "isi dokumen",
		Instruction: "Ringkas.",
	})
	assert.Equal(t, "isi dokumen\nInstruksi: Ringkas.\nPertanyaan: apa intinya?", got)
}

func TestBuildPromptFileWithoutQuestion(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{FileText: "isi dokumen"})
	assert.Equal(t, "isi dokumen", got)
}

func TestBuildPromptSessionReplay(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{
		Text: "u3",
		History: []app.PromptTurn{
			{UserMessage: "u1", AIResponse: "a1"},
			{UserMessage: "u2", AIResponse: "a2"},
		},
	})
	assert.Equal(t, "User: u1\nAI: a1\nUser: u2\nAI: a2\nUser: u3\nAI:", got)
}

func TestBuildPromptSessionReplayWithInstruction(t *testing.T) {
	got := app.BuildPrompt(app.PromptInput{
		Text:        "u2",
		Instruction: "Jawab singkat.",
		History: []app.PromptTurn{
			{UserMessage: "u1", AIResponse: "a1"},
		},
	})
	assert.Equal(t, "User: u1\nAI: a1\nUser: Instruksi: Jawab singkat.\nu2\nAI:", got)
}

func TestSessionTitleShortMessageKeptVerbatim(t *testing.T) {
	assert.Equal(t, "halo dunia", app.SessionTitle("halo dunia"))
}

func TestSessionTitleExactly50Kept(t *testing.T) {
	msg := strings.Repeat("a", 50)
	assert.Equal(t, msg, app.SessionTitle(msg))
}

func TestSessionTitleTruncated(t *testing.T) {
	msg := strings.Repeat("a", 60)
	got := app.SessionTitle(msg)
	assert.Len(t, got, 50)
	assert.Equal(t, strings.Repeat("a", 47)+"...", got)
}

func TestSessionTitleTruncatesOnRunes(t *testing.T) {
	msg := strings.Repeat("é", 60)
	got := app.SessionTitle(msg)
	assert.Equal(t, strings.Repeat("é", 47)+"...", got)
}

func TestFileTurnMessage(t *testing.T) {
	got := app.FileTurnMessage("report.pdf", "short excerpt")
	assert.Equal(t, "[File Upload: report.pdf] short excerpt...", got)
}

func TestFileTurnMessageCapsExcerptAt100Runes(t *testing.T) {
	got := app.FileTurnMessage("big.pdf", strings.Repeat("x", 250))
	assert.Equal(t, "[File Upload: big.pdf] "+strings.Repeat("x", 100)+"...", got)
}
