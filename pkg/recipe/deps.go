package recipe

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// ErrInvalidSpecifier is returned for version specifiers that are empty or
// consist only of their comparison operator.
var ErrInvalidSpecifier = eris.New("invalid version specifier")

// FormatDependency converts a dependency entry from pixi.toml into the
// constraint string used in the recipe's run requirements. A specifier
// without a leading operator is pinned with ==.
func FormatDependency(name, version string) (string, error) {
	if version == "" {
		return "", eris.Wrapf(ErrInvalidSpecifier, "dependency %s has an empty specifier", name)
	}

	start := 0
	operator := "=="
	if version[0] == '<' || version[0] == '>' {
		if len(version) > 1 && version[1] == '=' {
			operator = version[:2]
			start = 2
		} else {
			operator = version[:1]
			start = 1
		}
	}

	if start >= len(version) {
		return "", eris.Wrapf(ErrInvalidSpecifier, "dependency %s has operator %s but no version", name, operator)
	}

	return fmt.Sprintf("%s %s %s", name, operator, version[start:]), nil
}
