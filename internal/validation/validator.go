package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"conductor/internal/api"
)

// Resolver is what the validator needs from the capability directory.
type Resolver interface {
	Resolve(id string) (*api.Capability, bool)
}

// Options control how intent validation treats deferred parameters.
type Options struct {
	// AllowDeferred excuses absent required on-demand parameters. This is
	// used when validating a plan before the pause/resume collection flow
	// has had a chance to run; at dispatch time validation is strict.
	AllowDeferred bool
}

// ValidateParameter checks one provided value against one parameter
// declaration and returns every problem found, in check order.
//
// Absence (missing key or nil value) fails only for required parameters.
// Constraint checks run only when the type check passed, so a single wrong
// value does not cascade into several messages.
func ValidateParameter(param api.Parameter, value interface{}) []string {
	if value == nil {
		if param.Required {
			return []string{fmt.Sprintf("parameter '%s' is required", param.Name)}
		}
		return nil
	}

	if !typeMatches(param.Type, value) {
		return []string{fmt.Sprintf("parameter '%s' must be of type %s", param.Name, param.Type)}
	}

	if param.Constraints == nil {
		return nil
	}
	return checkConstraints(param, value)
}

// ValidateAllParameters validates every declared parameter independently
// against the provided values and concatenates all error messages. It never
// short-circuits at the parameter level: a caller fixing its intent sees
// every problem at once.
func ValidateAllParameters(params []api.Parameter, provided map[string]interface{}, opts Options) []string {
	var errs []string
	for _, param := range params {
		value := provided[param.Name]
		if value == nil && opts.AllowDeferred && param.OnDemand() {
			continue
		}
		errs = append(errs, ValidateParameter(param, value)...)
	}
	return errs
}

// ValidateIntent performs the structural checks of a single intent and, when
// the capability resolves, full parameter validation against its contract.
func ValidateIntent(intent api.Intent, dir Resolver, opts Options) []string {
	if intent.CapabilityID == "" {
		return []string{"intent is missing a capability id"}
	}

	capability, ok := dir.Resolve(intent.CapabilityID)
	if !ok {
		return []string{fmt.Sprintf("unknown capability '%s'", intent.CapabilityID)}
	}

	provided := intent.Parameters
	if provided == nil {
		provided = map[string]interface{}{}
	}
	return ValidateAllParameters(capability.Parameters, provided, opts)
}

// ValidatePlan validates an ordered strategy, tagging each problem with its
// step index. The plan itself must be a non-empty sequence. Required
// on-demand parameters are excused here: they are collected later through
// the pause/resume flow and re-checked at dispatch.
func ValidatePlan(strategy api.Strategy, dir Resolver) []string {
	if len(strategy) == 0 {
		return []string{"strategy must contain at least one step"}
	}

	var errs []string
	for i, intent := range strategy {
		for _, msg := range ValidateIntent(intent, dir, Options{AllowDeferred: true}) {
			errs = append(errs, fmt.Sprintf("step %d: %s", i, msg))
		}
	}
	return errs
}

// Date layouts accepted per declared type. A native time.Time always
// passes.
var (
	dateLayouts     = []string{"2006-01-02", time.RFC3339}
	timeLayouts     = []string{"15:04:05", "15:04"}
	dateTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"}
)

func typeMatches(declared api.ParameterType, value interface{}) bool {
	switch declared {
	case api.TypeString, api.TypeFile:
		_, ok := value.(string)
		return ok
	case api.TypeNumber:
		return isNumeric(value)
	case api.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case api.TypeEnum, api.TypeAny:
		// Enum membership is a constraint check, not a type check.
		return true
	case api.TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case api.TypeArray:
		switch value.(type) {
		case []interface{}, []string, []int, []float64:
			return true
		default:
			return false
		}
	case api.TypeDate:
		return isParseableDate(value, dateLayouts)
	case api.TypeTime:
		return isParseableDate(value, timeLayouts)
	case api.TypeDateTime:
		return isParseableDate(value, dateTimeLayouts)
	default:
		// Unknown declared types pass validation.
		return true
	}
}

func isNumeric(value interface{}) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}

func isParseableDate(value interface{}, layouts []string) bool {
	if _, ok := value.(time.Time); ok {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func checkConstraints(param api.Parameter, value interface{}) []string {
	var errs []string
	c := param.Constraints

	if s, ok := value.(string); ok {
		if c.Min != nil && float64(len(s)) < *c.Min {
			errs = append(errs, fmt.Sprintf("parameter '%s' must be at least %v characters", param.Name, *c.Min))
		}
		if c.Max != nil && float64(len(s)) > *c.Max {
			errs = append(errs, fmt.Sprintf("parameter '%s' must be at most %v characters", param.Name, *c.Max))
		}
		if c.Pattern != "" {
			re, err := regexp.Compile(c.Pattern)
			if err != nil {
				errs = append(errs, fmt.Sprintf("parameter '%s' has an invalid pattern constraint: %v", param.Name, err))
			} else if !re.MatchString(s) {
				errs = append(errs, fmt.Sprintf("parameter '%s' does not match pattern '%s'", param.Name, c.Pattern))
			}
		}
	}

	if n, ok := numericValue(value); ok {
		if c.Min != nil && n < *c.Min {
			errs = append(errs, fmt.Sprintf("parameter '%s' must be at least %v", param.Name, *c.Min))
		}
		if c.Max != nil && n > *c.Max {
			errs = append(errs, fmt.Sprintf("parameter '%s' must be at most %v", param.Name, *c.Max))
		}
	}

	if len(c.Enum) > 0 && !enumContains(c.Enum, value) {
		errs = append(errs, fmt.Sprintf("parameter '%s' must be one of [%s]", param.Name, formatEnum(c.Enum)))
	}

	return errs
}

func numericValue(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// enumContains compares loosely across numeric representations: YAML gives
// ints where JSON gives float64 for the same literal.
func enumContains(allowed []interface{}, value interface{}) bool {
	for _, candidate := range allowed {
		if candidate == value {
			return true
		}
		cn, cok := numericValue(candidate)
		vn, vok := numericValue(value)
		if cok && vok && cn == vn {
			return true
		}
	}
	return false
}

func formatEnum(allowed []interface{}) string {
	parts := make([]string, len(allowed))
	for i, v := range allowed {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, ", ")
}
