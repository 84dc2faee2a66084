package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"consultancy-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func doGet(t *testing.T, app *fiber.App) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"fiber error", fiber.NewError(fiber.StatusConflict, "busy"), fiber.StatusConflict, ""},
		{"not found", &services.NotFoundError{Entity: "invoice", ID: "x"}, fiber.StatusNotFound, "not_found"},
		{"wrapped not found", fmt.Errorf("load: %w", &services.NotFoundError{Entity: "project", ID: "y"}), fiber.StatusNotFound, "not_found"},
		{"validation", &services.ValidationError{Field: "status", Message: "unknown"}, fiber.StatusUnprocessableEntity, "validation"},
		{"parser down", &services.ExternalServiceError{Service: "plan parser", Err: errors.New("timeout")}, fiber.StatusBadGateway, "external_service"},
		{"no parser", &services.ExternalServiceError{Service: "plan parser", Err: services.ErrNoParser}, fiber.StatusServiceUnavailable, "external_service"},
		{"unknown", errors.New("pq: connection refused"), fiber.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doGet(t, errorApp(tc.err))
			assert.Equal(t, tc.status, status)
			if tc.kind != "" {
				assert.Equal(t, tc.kind, body["kind"])
			}
		})
	}
}

func TestErrorHandler_SanitizesInternalErrors(t *testing.T) {
	_, body := doGet(t, errorApp(errors.New("pq: password authentication failed")))
	assert.Equal(t, "internal server error", body["message"])
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	_, body := doGet(t, errorApp(&services.ValidationError{Field: "client_id", Message: "is required"}))
	assert.Equal(t, map[string]any{"client_id": "is required"}, body["errors"])
}

type statusBody struct {
	Status string `json:"status" validate:"required,enum"`
}

func TestErrorHandler_ValidatorErrors(t *testing.T) {
	err := ValidateStruct(&statusBody{})
	require.Error(t, err)

	status, body := doGet(t, errorApp(err))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]any{"Status": "required"}, body["errors"])
}
