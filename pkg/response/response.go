package response

import (
	"encoding/json"
	"io"
	"log"
	"time"
)

type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Success writes a successful JSON envelope
func Success(w io.Writer, data interface{}) {
	write(w, Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// Message writes a successful JSON envelope with a message and no data
func Message(w io.Writer, message string) {
	write(w, Response{
		Success:   true,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Error writes an error JSON envelope
func Error(w io.Writer, message string, err error) {
	response := Response{
		Success:   false,
		Message:   message,
		Timestamp: time.Now(),
	}

	if err != nil {
		response.Error = err.Error()
	}

	write(w, response)
}

func write(w io.Writer, response Response) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(response); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
