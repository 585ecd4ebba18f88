package dto

import "github.com/noah-isme/courseconnect-api/internal/models"

// ChatRequest carries a new message for the assistant.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse returns the model reply and the updated conversation.
type ChatResponse struct {
	Reply   models.ChatMessage   `json:"reply"`
	History []models.ChatMessage `json:"history"`
}

// SyllabusDraftRequest asks the assistant for a course description and syllabus.
type SyllabusDraftRequest struct {
	Title    string                `json:"title" binding:"required"`
	Category models.CourseCategory `json:"category"`
}
