package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"orderdesk/internal/domain"
	"orderdesk/internal/wizard"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to status codes and writes {"error": msg}.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err), errors.Is(err, domain.ErrInvalidOrder):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNoAgencyAvailable),
		errors.Is(err, wizard.ErrWrongStage):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// bindPatch reads a JSON object body. The id is taken from the body when idFrom is empty.
func bindPatch(c *gin.Context, idFrom string) (string, map[string]json.RawMessage, bool) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil || patch == nil {
		badRequest(c, "invalid json body")
		return "", nil, false
	}
	id := idFrom
	if id == "" {
		if raw, ok := patch["id"]; ok {
			_ = json.Unmarshal(raw, &id)
		}
	}
	if strings.TrimSpace(id) == "" {
		badRequest(c, "id required")
		return "", nil, false
	}
	delete(patch, "id")
	return id, patch, true
}

func queryID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("id"))
	if id == "" {
		badRequest(c, "id required")
		return "", false
	}
	return id, true
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
