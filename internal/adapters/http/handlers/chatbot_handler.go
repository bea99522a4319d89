package handlers

import (
	"strings"

	"bloodlink/internal/core/services"
	"bloodlink/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatbotHandler handles the rule-based chat widget endpoints
type ChatbotHandler struct {
	chatbotService *services.ChatbotService
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(chatbotService *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

// ChatRequest represents a chat message body
type ChatRequest struct {
	Message string `json:"message"`
}

// Respond answers one chat message
// @Summary Chat with the bot
// @Description Rule-based reply, optionally with a client route to open
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param body body ChatRequest true "Message"
// @Success 200 {object} response.Response
// @Router /chatbot [post]
func (h *ChatbotHandler) Respond(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return response.BadRequest(c, "Message is required")
	}

	reply := h.chatbotService.Respond(req.Message)
	return response.Success(c, "Reply generated", reply)
}

// Suggestions returns suggested questions
// @Summary Suggested questions
// @Tags Chatbot
// @Produce json
// @Param limit query int false "Max questions"
// @Success 200 {object} response.Response
// @Router /chatbot/suggestions [get]
func (h *ChatbotHandler) Suggestions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	suggestions := h.chatbotService.Suggestions(limit)

	return response.Success(c, "Suggestions retrieved successfully", fiber.Map{
		"suggestions": suggestions,
	})
}
