package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/quantlake/stockbuzz/backend/internal/models"
	"github.com/quantlake/stockbuzz/backend/internal/repositories"
)

// currentUser resolves the authenticated user row for the Firebase UID set by
// the auth middleware. Fails with 401 before any other validation runs.
func currentUser(c echo.Context, userRepo repositories.UserRepository) (*models.User, error) {
	firebaseUID, ok := c.Get("firebaseUID").(string)
	if !ok || firebaseUID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	user, err := userRepo.GetUserByFirebaseUID(firebaseUID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return user, nil
}

// optionalUser resolves the user when authenticated and returns nil for
// anonymous requests without error
func optionalUser(c echo.Context, userRepo repositories.UserRepository) *models.User {
	firebaseUID, ok := c.Get("firebaseUID").(string)
	if !ok || firebaseUID == "" {
		return nil
	}
	user, err := userRepo.GetUserByFirebaseUID(firebaseUID)
	if err != nil {
		return nil
	}
	return user
}

// intQueryParam parses a numeric query param; unknown or missing values fall
// back to the default, never an error
func intQueryParam(c echo.Context, name string, defaultValue int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// boolQueryParam parses an optional boolean query param; nil means absent
func boolQueryParam(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
