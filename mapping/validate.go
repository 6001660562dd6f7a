package mapping

import (
	"errors"
	"fmt"
)

// Validate reports mappings whose effect is not well defined or is lost:
// sources with wildcards, which only ever use their first match, and
// root targets combined with other mappings. Mappings sharing a target
// are redundant except for the last one.
//
// The engine does not call Validate.
func Validate(mappings []Mapping) error {
	if len(mappings) == 0 {
		return errNoMappings
	}
	var errs []error
	last := make(map[string]int, len(mappings))
	for i := range mappings {
		m := &mappings[i]
		if m.source == nil {
			errs = append(errs, fmt.Errorf("%w: mapping %d has no source query", ErrInvalidArgument, i))
			continue
		}
		if m.source.HasWildcard() {
			errs = append(errs, fmt.Errorf("%w: mapping %d: source %s contains a wildcard", ErrProhibitedExpression, i, m.source))
		}
		if m.target.IsRoot() && len(mappings) > 1 {
			errs = append(errs, fmt.Errorf("%w: mapping %d: root target combined with %d other mappings", ErrRedundantMapping, i, len(mappings)-1))
		}
		k := m.target.Key()
		if j, ok := last[k]; ok {
			errs = append(errs, fmt.Errorf("%w: mapping %d: target %s is overwritten by mapping %d", ErrRedundantMapping, j, m.target, i))
		}
		last[k] = i
	}
	return errors.Join(errs...)
}
