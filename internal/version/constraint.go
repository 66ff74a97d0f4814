package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckConstraint reports whether version satisfies the semver constraint
// declared by a job file (e.g. ">= 1.2, < 2").
//
// An empty constraint always passes. A development build ("main") passes
// any valid constraint.
func CheckConstraint(version, constraint string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint '%s': %w", constraint, err)
	}

	version = strings.TrimPrefix(version, "v")
	if version == "main" {
		return nil
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version '%s': %w", version, err)
	}

	if ok, errs := c.Validate(v); !ok {
		reasons := make([]string, 0, len(errs))
		for _, e := range errs {
			reasons = append(reasons, e.Error())
		}

		return fmt.Errorf("multiout %s does not satisfy '%s': %s", v, constraint, strings.Join(reasons, "; "))
	}

	return nil
}
