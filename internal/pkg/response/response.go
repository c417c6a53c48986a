package response

import "github.com/gin-gonic/gin"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	ErrorWithDetails(c, statusCode, code, message, nil)
}

// ErrorWithDetails drops details that are nil or empty maps.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	body := &ErrorBody{Code: code, Message: message}
	switch d := details.(type) {
	case nil:
	case gin.H:
		if len(d) > 0 {
			body.Details = d
		}
	case map[string]string:
		if len(d) > 0 {
			body.Details = d
		}
	default:
		body.Details = d
	}
	c.JSON(statusCode, Envelope{Success: false, Error: body})
}
