package handler

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"taskhub/internal/apperr"
)

// respondError maps a typed error to its protocol status and safe body.
// Everything worth logging was already logged where the error was first
// caught; nothing is logged again here.
func respondError(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), apperr.ToResponse(err))
}

// actorID extracts the authenticated user's id from the verified JWT.
func actorID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", apperr.Unauthorized("missing identity")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.Unauthorized("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", apperr.Unauthorized("missing user identity")
	}
	return userID, nil
}

func splitNonEmpty(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
