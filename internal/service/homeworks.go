package service

import (
	"errors"
	"fmt"
)

// NoNewStatus is reported when the API returns an empty homeworks list.
const NoNewStatus = "У домашки не появился новый статус"

const (
	keyHomeworks    = "homeworks"
	keyStatus       = "status"
	keyHomeworkName = "homework_name"
)

var (
	// ErrInvalidType indicates a response value of an unexpected JSON type.
	ErrInvalidType = errors.New("invalid type")

	// ErrMissingHomeworks indicates the response has no homeworks key.
	ErrMissingHomeworks = errors.New("homeworks key is missing")

	// ErrKey indicates a homework record with a missing or invalid key.
	ErrKey = errors.New("invalid key")

	// ErrUnknownStatus indicates a status missing from the verdict table. Always wrapped in ErrKey.
	ErrUnknownStatus = errors.New("unknown homework status")
)

var verdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the human readable verdict for a homework status.
func Verdict(status string) (string, bool) {
	v, ok := verdicts[status]
	return v, ok
}

// CheckResult is either the most recent homework record or an empty marker.
type CheckResult struct {
	Homework map[string]any
	Empty    bool
}

// Message returns NoNewStatus for an empty result. It is meaningful only when Empty
// is set; a homework record is rendered by ParseStatus.
func (r CheckResult) Message() string {
	if r.Empty {
		return NoNewStatus
	}
	return ""
}

// CheckResponse validates a decoded homework statuses response and
// returns the first (most recent) homework.
func CheckResponse(resp any) (CheckResult, error) {
	obj, ok := resp.(map[string]any)
	if !ok {
		return CheckResult{}, fmt.Errorf("%w: response is %s instead of object", ErrInvalidType, jsonType(resp))
	}

	raw, ok := obj[keyHomeworks]
	if !ok || raw == nil {
		return CheckResult{}, ErrMissingHomeworks
	}

	homeworks, ok := raw.([]any)
	if !ok {
		return CheckResult{}, fmt.Errorf("%w: homeworks is %s instead of list", ErrInvalidType, jsonType(raw))
	}

	if len(homeworks) == 0 {
		return CheckResult{Empty: true}, nil
	}

	hw, ok := homeworks[0].(map[string]any)
	if !ok {
		return CheckResult{}, fmt.Errorf("%w: homework is %s instead of object", ErrInvalidType, jsonType(homeworks[0]))
	}

	return CheckResult{Homework: hw}, nil
}

// ParseStatus renders the status change message for a homework record.
func ParseStatus(hw map[string]any) (string, error) {
	rawStatus, ok := hw[keyStatus]
	if !ok {
		return "", fmt.Errorf("%w: %q is missing", ErrKey, keyStatus)
	}

	status, _ := rawStatus.(string)
	verdict, ok := Verdict(status)
	if !ok {
		return "", fmt.Errorf("%w: %w: %v", ErrKey, ErrUnknownStatus, rawStatus)
	}

	name, ok := hw[keyHomeworkName]
	if !ok {
		return "", fmt.Errorf("%w: %q is missing", ErrKey, keyHomeworkName)
	}

	return fmt.Sprintf("Изменился статус проверки работы \"%v\". %s", name, verdict), nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
