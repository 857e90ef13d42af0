package prompt

import "strings"

// Builder assembles answer prompts from tagged sections.
type Builder struct {
	sb strings.Builder
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Section writes body inside <tag> markers. Blank bodies are skipped.
func (b *Builder) Section(tag, body string) *Builder {
	if strings.TrimSpace(body) == "" {
		return b
	}
	b.sb.WriteString("<" + tag + ">\n")
	b.sb.WriteString(strings.TrimSpace(body))
	b.sb.WriteString("\n</" + tag + ">\n\n")
	return b
}

func (b *Builder) Task(lines ...string) *Builder {
	return b.Section("task", strings.Join(lines, "\n"))
}

func (b *Builder) Question(q string) *Builder {
	b.sb.WriteString("Question: ")
	b.sb.WriteString(q)
	b.sb.WriteString("\n")
	return b
}

func (b *Builder) String() string {
	return b.sb.String()
}

// FollowUp frames an answer that continues the conversation.
func FollowUp(query, summary, history string) string {
	return NewBuilder().
		Section("reference_material", summary).
		Section("conversation_history", history).
		Task(
			"The user is following up on the conversation above.",
			"Answer using the reference material and what was already said.",
			"Keep it short and consistent with earlier answers.",
		).
		Question(query).
		String()
}

// DirectAnswer frames a standalone answer from the document.
func DirectAnswer(query, summary, history string) string {
	return NewBuilder().
		Section("reference_material", summary).
		Section("conversation_history", history).
		Task(
			"Answer the user's question directly from the reference material.",
			"Be precise and complete. Use the conversation only to match tone.",
		).
		Question(query).
		String()
}

// Combined frames an answer that merges web information with the document.
func Combined(query, webAnswer, summary, history string) string {
	return NewBuilder().
		Section("web_information", webAnswer).
		Section("reference_material", summary).
		Section("conversation_history", history).
		Task("Answer the user's question using all the information above.").
		Question(query).
		String()
}
