package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hattournament/src/core/domain"
)

func TestFromDomainError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
		field  string
	}{
		{"not found", domain.NewNotFoundError("round"), http.StatusNotFound, domain.KindNotFound, ""},
		{"already exists", domain.NewAlreadyExistsError("game result"), http.StatusConflict, domain.KindAlreadyExists, ""},
		{"conflict", domain.NewConflictError("subround is split"), http.StatusConflict, domain.KindConflict, ""},
		{"game size", domain.NewInvalidGameSizeError(3, 2), http.StatusUnprocessableEntity, domain.KindInvalidGameSize, ""},
		{"mismatch", domain.NewParticipantMismatchError(), http.StatusUnprocessableEntity, domain.KindParticipantMismatch, ""},
		{"words", domain.NewInsufficientWordsError(1, 5, 2), http.StatusUnprocessableEntity, domain.KindInsufficientWords, ""},
		{"validation", domain.NewValidationError("name", "must not be empty"), http.StatusBadRequest, domain.KindValidation, "name"},
		{"unauthorized", domain.NewUnauthorizedError("bad token"), http.StatusUnauthorized, domain.KindUnauthorized, ""},
		{"forbidden", domain.NewForbiddenError("wrong secret"), http.StatusForbidden, domain.KindForbidden, ""},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, domain.KindInternal, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromDomainError(c, tt.err, "req-1")

			assert.Equal(t, tt.status, w.Code)
			var body Error
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, tt.field, body.Error.Field)
			assert.Equal(t, "req-1", body.Error.RequestID)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Error.Message, "connection reset")
			}
		})
	}
}
