package repository

import (
	"go.uber.org/zap"

	"taskhub/internal/logger"
)

// SystemOperatorID is the reserved acting identity for writes not performed
// by a real authenticated user (seeding, background jobs). It is the zero
// UUID so it can never collide with a generated user id.
const SystemOperatorID = "00000000-0000-0000-0000-000000000000"

// Operator identifies who performs a mutating repository call, for audit
// attribution. Threaded explicitly through every write.
type Operator struct {
	ID string
}

// System is the well-known system operator.
var System = Operator{ID: SystemOperatorID}

// resolve returns the operator id, falling back to the system identity when
// none was supplied. The fallback is logged, never silent.
func (o Operator) resolve(log *zap.Logger, operation string) string {
	if o.ID == "" {
		log.Warn("mutation without operator, attributing to system identity",
			logger.Operation(operation))
		return SystemOperatorID
	}
	return o.ID
}
