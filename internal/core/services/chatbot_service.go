package services

import (
	"strings"
)

// ChatbotService answers donor and hospital questions with keyword
// rules. There is no conversation state; every message is independent.
type ChatbotService struct {
	rules []chatRule
}

// ChatReply is the bot's answer. Navigate, when set, is a client route
// the UI should open alongside the reply.
type ChatReply struct {
	Reply    string `json:"reply"`
	Navigate string `json:"navigate,omitempty"`
}

// Suggestion is one canned question the widget can offer
type Suggestion struct {
	Question string `json:"question"`
	Category string `json:"category"`
}

// chatRule matches any of its keywords against a lowercased message
type chatRule struct {
	keywords []string
	reply    string
	navigate string
}

// defaultSuggestions is the canonical question list the widget falls
// back to: seven questions across four categories.
var defaultSuggestions = []Suggestion{
	{Question: "Am I eligible to donate blood?", Category: "eligibility"},
	{Question: "How often can I donate?", Category: "eligibility"},
	{Question: "What happens during a donation?", Category: "process"},
	{Question: "How long does donating take?", Category: "process"},
	{Question: "How do I book an appointment?", Category: "scheduling"},
	{Question: "How do I cancel my appointment?", Category: "scheduling"},
	{Question: "How do I request blood for my hospital?", Category: "requests"},
}

// NewChatbotService creates a new chatbot service
func NewChatbotService() *ChatbotService {
	return &ChatbotService{
		rules: []chatRule{
			{
				keywords: []string{"eligib", "can i donate", "who can donate"},
				reply:    "Most healthy adults aged 18-65 weighing at least 50kg can donate. You must wait at least 56 days between whole blood donations. Check your profile for your current eligibility status.",
			},
			{
				keywords: []string{"how often", "again", "frequency", "56"},
				reply:    "You can donate whole blood every 56 days. Your dashboard shows your last donation date and when you can donate next.",
			},
			{
				keywords: []string{"during a donation", "what happens", "process", "procedure", "hurt", "needle"},
				reply:    "A donation visit has four steps: registration, a short health screening, the donation itself (8-10 minutes), and refreshments. The whole visit takes about 45 minutes.",
			},
			{
				keywords: []string{"how long", "take", "duration"},
				reply:    "The donation itself takes 8-10 minutes; plan for about 45 minutes including screening and recovery.",
			},
			{
				keywords: []string{"book", "appointment", "schedule", "slot"},
				reply:    "You can book a donation appointment up to 30 days ahead. Pick a center, a date and one of the nine daily time slots.",
				navigate: "/donate",
			},
			{
				keywords: []string{"cancel"},
				reply:    "You can cancel any appointment that is still scheduled or confirmed from your appointment history.",
				navigate: "/dashboard",
			},
			{
				keywords: []string{"request blood", "request", "hospital", "need blood"},
				reply:    "Hospitals can file a blood request with blood type, number of units and priority. High and critical requests trigger immediate donor matching.",
				navigate: "/request",
			},
			{
				keywords: []string{"blood type", "compatible", "universal"},
				reply:    "There are 8 blood types: A+, A-, B+, B-, AB+, AB-, O+ and O-. O- donors are universal donors; AB+ recipients can receive from anyone.",
			},
			{
				keywords: []string{"inventory", "stock", "available"},
				reply:    "The inventory page shows available units per blood type, updated as units move through the lifecycle.",
				navigate: "/dashboard",
			},
			{
				keywords: []string{"hello", "hi", "hey"},
				reply:    "Hello! I can help with donation eligibility, booking appointments, blood requests and more. What would you like to know?",
			},
			{
				keywords: []string{"thank"},
				reply:    "You're welcome! Every donation can save up to three lives.",
			},
		},
	}
}

// Respond matches the message against the rule set. Unmatched messages
// get a fallback pointing at the suggestion list.
func (s *ChatbotService) Respond(message string) *ChatReply {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return &ChatReply{Reply: "Please type a question and I'll do my best to help."}
	}

	for _, rule := range s.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(normalized, kw) {
				return &ChatReply{Reply: rule.reply, Navigate: rule.navigate}
			}
		}
	}

	return &ChatReply{
		Reply: "I'm not sure about that one. Try asking about donation eligibility, appointments, blood requests or inventory.",
	}
}

// Suggestions returns up to limit suggested questions
func (s *ChatbotService) Suggestions(limit int) []Suggestion {
	if limit <= 0 || limit > len(defaultSuggestions) {
		limit = len(defaultSuggestions)
	}
	return defaultSuggestions[:limit]
}
