package core

// Email represents a fetched email message. It is not modified after the
// source produces it.
type Email struct {
	ID      string
	Subject string
	Sender  string
	Body    string
}

// Category is one label of the fixed classification taxonomy
type Category string

const (
	CategoryWork       Category = "Work"
	CategoryPersonal   Category = "Personal"
	CategoryPromotions Category = "Promotions"
	CategorySocial     Category = "Social"
	CategoryUpdates    Category = "Updates"
	CategorySpam       Category = "Spam"
	CategoryOther      Category = "Other"
)

// Categories lists the taxonomy in prompt order
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryPromotions,
	CategorySocial,
	CategoryUpdates,
	CategorySpam,
	CategoryOther,
}

// ParseCategory returns the category whose name matches s exactly
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return CategoryOther, false
}

// SummaryUnavailable replaces the summary when the summarizer fails
const SummaryUnavailable = "Could not generate summary."

// Payload is the message handed to a notification sink
type Payload struct {
	Content   string `json:"content"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// GenerateRequest is a single non-streaming completion request
type GenerateRequest struct {
	Prompt string
	// KeepWarm asks the backend not to unload the model after answering
	KeepWarm bool
}
