package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/upadhyay-sonu/Task-Manager/internal/validation"
	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

// decodeValidated reads the request body once, runs the rule set against the
// raw JSON object (so absent fields are distinguishable from wrong-typed
// ones), and only then decodes into the typed request.
func decodeValidated(r *http.Request, rules []validation.Rule, dst any) error {
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return apierror.BadRequest("Invalid JSON in request body", nil)
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return apierror.BadRequest("Invalid JSON in request body", nil)
	}

	if err := validation.Validate(body, rules); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return apierror.BadRequest("Invalid JSON in request body", nil)
	}

	return nil
}
