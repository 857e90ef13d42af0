package constant

const (
	// ClassifyQueryPromptV1 args: document context, history, query.
	ClassifyQueryPromptV1 = `You label a user's question for an FAQ assistant that answers from one document.

<document>
%s
</document>

<conversation_history>
%s
</conversation_history>

Choose exactly one label:
- greeting: the user greets, thanks, or makes small talk.
- unrelated: the question has nothing to do with the document.
- needs_web_search: the question is about the document's topic but the document alone cannot answer it.
- follow_up: the question continues or refers back to the conversation history.
- direct_answer: the document answers the question directly.

Question: %s

Reply with the label only.`

	// RelatednessCheckPromptV1 args: document summary, query.
	RelatednessCheckPromptV1 = `Decide whether a question could reasonably be asked about the subject of this document, even if the document does not answer it.

<document_summary>
%s
</document_summary>

Question: %s

Answer YES or NO only.`

	// GreetingPromptV1 args: history, query.
	GreetingPromptV1 = `You are a friendly FAQ assistant. Reply briefly and warmly to the user's message, taking the conversation so far into account. Do not answer questions about any document here.

<conversation_history>
%s
</conversation_history>

User: %s`

	// WebQueryRewritePromptV1 args: document summary, query.
	WebQueryRewritePromptV1 = `Rewrite the user's question as a short, self-contained web search query. Use the document summary to add missing subject names or context.

<document_summary>
%s
</document_summary>

Question: %s

Reply with the search query only.`

	CombinedAnswerSystemInstruction = `You answer questions for users of an FAQ assistant.
Never mention where information came from. Do not say "according to the web", "based on the document", "search results" or similar.
Never comment on missing or insufficient information. If you cannot answer, reply with an empty message.`

	// QualityCheckPromptV1 args: candidate answer.
	QualityCheckPromptV1 = `Judge whether an assistant's answer actually answers a user. Reply "satisfactory" or "unsatisfactory".

Answer: "The refund window is 30 days from delivery; refunds go back to the original payment method."
Judgment: satisfactory

Answer: "I'm sorry, I don't have enough information to answer that."
Judgment: unsatisfactory

Answer: "The provided context does not mention opening hours."
Judgment: unsatisfactory

Answer: "You can reset your password from Settings > Security > Reset password."
Judgment: satisfactory

Answer: "I could not find any relevant results."
Judgment: unsatisfactory

Answer: "%s"
Judgment:`

	// SummarizeDocumentPromptV1 args: document context.
	SummarizeDocumentPromptV1 = `Summarize the following document. Keep every fact, number, policy, name and procedure a customer might ask about. Drop formatting and repetition.

<document>
%s
</document>

Summary:`

	// NormalizeQueryPromptV1 args: abbreviation table, history, raw query.
	NormalizeQueryPromptV1 = `Rewrite the user's latest message into a clear, standalone question.
- Expand these abbreviations:
%s
- Replace pronouns and vague references ("it", "that one", "there") with what they refer to in the conversation history.
- Keep the meaning and language. Do not answer the question.

Examples:
History: "user: What is the refund policy?\nassistant: Refunds are accepted within 30 days."
Message: "how do i request it asap"
Rewritten: How do I request a refund as soon as possible?

History: ""
Message: "pls tell me abt shipping"
Rewritten: Please tell me about shipping.

History: "user: Do you ship to Canada?\nassistant: Yes, shipping to Canada takes 5-7 days."
Message: "how much does it cost"
Rewritten: How much does shipping to Canada cost?

History: "%s"
Message: "%s"
Rewritten:`
)
