package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
)

// Knowledge store namespaces used as curation queues.
const (
	NamespaceNewQueries = "New Queries"
	NamespaceWebQueries = "Web Queries"
)

const (
	PlaceholderAnswer = "Thank you for your question. An answer will be provided in future."
	RejectionAnswer   = "Sorry, your question does not seem to be related to this document. Please ask something about its content."
	GenericGreeting   = "Hello! How can I help you with this document today?"
)

// Abbreviations expanded by the query normalizer before classification.
var Abbreviations = map[string]string{
	"asap": "as soon as possible",
	"btw":  "by the way",
	"faq":  "frequently asked questions",
	"fyi":  "for your information",
	"idk":  "I don't know",
	"imo":  "in my opinion",
	"pls":  "please",
	"plz":  "please",
	"thx":  "thanks",
	"ty":   "thank you",
	"u":    "you",
	"ur":   "your",
	"r":    "are",
	"abt":  "about",
	"info": "information",
	"acc":  "account",
	"pwd":  "password",
	"amt":  "amount",
	"w/":   "with",
	"w/o":  "without",
}
