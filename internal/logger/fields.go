package logger

import "go.uber.org/zap"

// Standard structured fields used across services and repositories.

// Operation names the repository or service operation being performed.
func Operation(v string) zap.Field {
	return zap.String("operation", v)
}

// Actor is the id of the user (or system identity) performing the operation.
func Actor(v string) zap.Field {
	return zap.String("actor", v)
}

// UserID is the id of the user an entity belongs to.
func UserID(v string) zap.Field {
	return zap.String("user_id", v)
}

// TodoID is the id of the todo being operated on.
func TodoID(v string) zap.Field {
	return zap.String("todo_id", v)
}

// Entity names the entity type involved in an operation.
func Entity(v string) zap.Field {
	return zap.String("entity", v)
}

// Err wraps an underlying error.
func Err(err error) zap.Field {
	return zap.Error(err)
}
