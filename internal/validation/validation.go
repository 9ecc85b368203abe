// Package validation runs declarative field rules against a decoded JSON
// body. A rule set is evaluated in full: every failing field lands in one
// BadRequest error with a field→message map, instead of failing on the first.
package validation

import (
	"regexp"

	"github.com/upadhyay-sonu/Task-Manager/internal/model"
	"github.com/upadhyay-sonu/Task-Manager/pkg/apierror"
)

type Rule struct {
	Field   string
	Check   func(value any, present bool) bool
	Message string
}

// Validate applies every rule to body and returns a single BadRequest
// carrying all failing fields, or nil when the body passes. Rules see
// whether the key exists, so an explicit JSON null is distinguishable from
// an absent field.
func Validate(body map[string]any, rules []Rule) error {
	errs := map[string]string{}
	for _, rule := range rules {
		value, present := body[rule.Field]
		if !rule.Check(value, present) {
			errs[rule.Field] = rule.Message
		}
	}

	if len(errs) > 0 {
		return apierror.BadRequest("Validation failed", errs)
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmail(value any, _ bool) bool {
	s, ok := value.(string)
	return ok && emailPattern.MatchString(s)
}

func IsPassword(value any, _ bool) bool {
	s, ok := value.(string)
	return ok && len(s) >= 6
}

func IsNonEmptyString(value any, _ bool) bool {
	s, ok := value.(string)
	return ok && len(s) > 0
}

// IsOptionalString accepts an absent field or a non-empty string. An
// explicit null is present and rejected.
func IsOptionalString(value any, present bool) bool {
	if !present {
		return true
	}
	return IsNonEmptyString(value, present)
}

func IsTaskStatus(value any, _ bool) bool {
	s, ok := value.(string)
	return ok && (model.TaskStatus(s) == model.TaskStatusPending || model.TaskStatus(s) == model.TaskStatusCompleted)
}

func IsOptionalTaskStatus(value any, present bool) bool {
	if !present {
		return true
	}
	return IsTaskStatus(value, present)
}

var RegisterRules = []Rule{
	{Field: "email", Check: IsEmail, Message: "Invalid email format"},
	{Field: "password", Check: IsPassword, Message: "Password must be at least 6 characters"},
	{Field: "name", Check: IsNonEmptyString, Message: "Name is required and must be a non-empty string"},
}

var LoginRules = []Rule{
	{Field: "email", Check: IsEmail, Message: "Invalid email format"},
	{Field: "password", Check: IsNonEmptyString, Message: "Password is required"},
}

var CreateTaskRules = []Rule{
	{Field: "title", Check: IsNonEmptyString, Message: "Title is required and must be a non-empty string"},
	{Field: "description", Check: IsOptionalString, Message: "Description must be a string if provided"},
}

var UpdateTaskRules = []Rule{
	{Field: "title", Check: IsOptionalString, Message: "Title must be a string if provided"},
	{Field: "description", Check: IsOptionalString, Message: "Description must be a string if provided"},
	{Field: "status", Check: IsOptionalTaskStatus, Message: "Status must be PENDING or COMPLETED"},
}
