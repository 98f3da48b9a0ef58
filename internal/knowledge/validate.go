package knowledge

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a record
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidRecord, strings.Join(e.Problems, "; "))
}

// Unwrap lets errors.Is match ErrInvalidRecord
func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// Validate checks the minimum the resolver relies on: a well formed FAQ
// list with unique ids and an unknown refusal for the last-resort path.
func Validate(r *Record) error {
	if r == nil {
		return &ValidationError{Problems: []string{"record is nil"}}
	}

	var problems []string

	seen := make(map[string]int, len(r.FAQ))
	for i, item := range r.FAQ {
		if strings.TrimSpace(item.ID) == "" {
			problems = append(problems, fmt.Sprintf("faq[%d]: missing id", i))
		} else if first, dup := seen[item.ID]; dup {
			problems = append(problems, fmt.Sprintf("faq[%d]: duplicate id %q (first at faq[%d])", i, item.ID, first))
		} else {
			seen[item.ID] = i
		}
		if strings.TrimSpace(item.Q) == "" {
			problems = append(problems, fmt.Sprintf("faq[%d]: missing q", i))
		}
		if strings.TrimSpace(item.A) == "" {
			problems = append(problems, fmt.Sprintf("faq[%d]: missing a", i))
		}
	}

	if strings.TrimSpace(r.Safety.Refusals.Unknown) == "" {
		problems = append(problems, "safety.refusals.unknown is required")
	}

	for i, p := range r.Projects {
		if strings.TrimSpace(p.Name) == "" {
			problems = append(problems, fmt.Sprintf("projects[%d]: missing name", i))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
