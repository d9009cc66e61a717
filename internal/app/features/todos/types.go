// internal/app/features/todos/types.go
package todos

import (
	"github.com/dalemusser/dailyhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/dailyhub/internal/domain/models"
)

// todoRequest is the body of both create and update; update overwrites all
// three fields.
type todoRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (r *todoRequest) Normalize() {
	r.Title = htmlsanitize.PlainText(r.Title)
	r.Description = htmlsanitize.PlainText(r.Description)
}

func (r todoRequest) content() models.TodoContent {
	return models.TodoContent{Title: r.Title, Description: r.Description, Completed: r.Completed}
}

type createResponse struct {
	Message string      `json:"message"`
	Todo    models.Todo `json:"todo"`
}

const (
	msgCreated = "Todo created successfully"
	msgUpdated = "Todo updated successfully"
	msgDeleted = "Todo deleted successfully"
)
