package routeconfig

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dialogchain-go/dialogchain/internal/dcerrors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	routeNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

	processorTypes = map[string]struct{}{
		"transform": {}, "filter": {}, "external": {}, "aggregate": {}, "debug": {},
	}
	handlerTypes = map[string]struct{}{"log": {}, "retry": {}, "fallback": {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("route_name", func(fl validator.FieldLevel) bool {
			return routeNamePattern.MatchString(fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// ValidateEngineConfig performs struct-tag and cross-field validation on a
// fully decoded EngineConfig, grounded on the teacher's ValidateConfig
// (single pass of struct validation, then route-name duplicate detection,
// then per-route/per-processor validation).
func ValidateEngineConfig(cfg *EngineConfig) error {
	if cfg == nil {
		return dcerrors.Validation("config", "configuration is nil")
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(cfg.Routes))
	for i, route := range cfg.Routes {
		if _, exists := seen[route.Name]; exists {
			return dcerrors.Validation(fmt.Sprintf("routes[%d].name", i), fmt.Sprintf("duplicate route name %q", route.Name))
		}
		seen[route.Name] = i

		if err := ValidateRoute(route); err != nil {
			return err
		}
	}

	return nil
}

// ValidateRoute validates a single route independent of the others,
// including every processor and error handler it declares.
func ValidateRoute(route RouteConfig) error {
	v := validatorInstance()
	if err := v.Struct(route); err != nil {
		return convertValidationError(err)
	}

	if route.Source.IsZero() {
		return dcerrors.Validation(fmt.Sprintf("routes[%s].source", route.Name), "route requires a source")
	}
	if route.Destination.IsZero() {
		return dcerrors.Validation(fmt.Sprintf("routes[%s].destination", route.Name), "route requires a destination")
	}

	for i, proc := range route.Processors {
		if err := ValidateProcessor(proc); err != nil {
			return fmt.Errorf("route %q processors[%d]: %w", route.Name, i, err)
		}
	}

	for i, handler := range route.ErrorHandlers {
		if err := ValidateErrorHandler(handler); err != nil {
			return fmt.Errorf("route %q error_handlers[%d]: %w", route.Name, i, err)
		}
	}

	return nil
}

// ValidateProcessor validates a single processor config, including the
// "at least one of min_confidence/condition" filter invariant from
// spec.md §4.3.2 that struct tags alone can't express.
func ValidateProcessor(proc ProcessorConfig) error {
	v := validatorInstance()
	normalized := strings.ToLower(proc.Type)

	if _, ok := processorTypes[normalized]; !ok {
		return dcerrors.Configuration(fmt.Sprintf("unknown processor type %s", processorTypeDisplay(proc.Type)), nil)
	}

	switch normalized {
	case "transform":
		if proc.Transform == nil {
			return dcerrors.Configuration("transform processor requires options", nil)
		}
		if err := v.Struct(proc.Transform); err != nil {
			return convertValidationError(err)
		}
	case "filter":
		if proc.Filter == nil {
			return dcerrors.Configuration("filter processor requires options", nil)
		}
		if err := v.Struct(proc.Filter); err != nil {
			return convertValidationError(err)
		}
		if proc.Filter.MinConfidence == nil && strings.TrimSpace(proc.Filter.Condition) == "" {
			return dcerrors.Configuration("filter processor requires min_confidence or condition", nil)
		}
	case "external":
		if proc.External == nil {
			return dcerrors.Configuration("external processor requires options", nil)
		}
		if err := v.Struct(proc.External); err != nil {
			return convertValidationError(err)
		}
		if !strings.Contains(proc.External.Command, "{input_file}") {
			return dcerrors.Configuration("external processor command must contain {input_file}", nil)
		}
	case "aggregate":
		if proc.Aggregate == nil {
			return dcerrors.Configuration("aggregate processor requires options", nil)
		}
		if err := v.Struct(proc.Aggregate); err != nil {
			return convertValidationError(err)
		}
	case "debug":
		if proc.Debug == nil {
			return dcerrors.Configuration("debug processor requires options", nil)
		}
	}

	return nil
}

// ValidateErrorHandler validates a single error handler config.
func ValidateErrorHandler(h ErrorHandler) error {
	v := validatorInstance()
	normalized := strings.ToLower(h.Type)

	if _, ok := handlerTypes[normalized]; !ok {
		return dcerrors.Configuration(fmt.Sprintf("unknown error handler type %s", processorTypeDisplay(h.Type)), nil)
	}

	switch normalized {
	case "retry":
		if h.Retry == nil {
			return dcerrors.Configuration("retry handler requires options", nil)
		}
		if err := v.Struct(h.Retry); err != nil {
			return convertValidationError(err)
		}
	case "fallback":
		if h.Fallback == nil || h.Fallback.Destination.IsZero() {
			return dcerrors.Configuration("fallback handler requires a destination", nil)
		}
	case "log":
		// LogHandlerOptions has no required fields; an absent message is
		// filled in by the route supervisor at handling time.
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		fe := ves[0]
		field := strings.ToLower(fe.StructNamespace())
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())
		return dcerrors.Validation(field, msg)
	}
	return dcerrors.Validation("config", err.Error())
}
