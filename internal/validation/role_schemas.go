package validation

import "strings"

// RoleCreate is the payload RoleRepository.Create accepts.
type RoleCreate struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Description *string `json:"description" validate:"omitnil,max=255"`
}

// ParseRoleCreate trims and validates a role create payload.
func ParseRoleCreate(in RoleCreate) (RoleCreate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = trimPtr(in.Description)
	return parse(in)
}

// RoleDescriptionUpdate narrows a role mutation to its description.
type RoleDescriptionUpdate struct {
	Description *string `json:"description" validate:"omitnil,max=255"`
}

// ParseRoleDescriptionUpdate trims and validates a description update.
func ParseRoleDescriptionUpdate(in RoleDescriptionUpdate) (RoleDescriptionUpdate, error) {
	in.Description = trimPtr(in.Description)
	return parse(in)
}
