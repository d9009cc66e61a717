// internal/domain/models/todo.go
package models

import "time"

// Todo is a checklist item owned by exactly one user.
type Todo struct {
	TodoID      string    `bson:"todo_id" json:"todo_id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Completed   bool      `bson:"completed" json:"completed"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// TodoContent is the replaceable part of a Todo. Updates overwrite all
// three fields.
type TodoContent struct {
	Title       string
	Description string
	Completed   bool
}
