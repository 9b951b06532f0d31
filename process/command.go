package process

import (
	"fmt"
	"slices"
	"strings"
)

// Command is an immutable ordered argument vector: the executable path
// followed by its arguments. Built once per call, never mutated.
type Command struct {
	args []string
}

// NewCommand builds a command from an executable path and its arguments.
// The executable and every argument must be non-blank.
func NewCommand(executable string, args ...string) (Command, error) {
	if strings.TrimSpace(executable) == "" {
		return Command{}, fmt.Errorf("command executable must not be blank")
	}

	all := make([]string, 0, len(args)+1)
	all = append(all, executable)
	for i, arg := range args {
		if strings.TrimSpace(arg) == "" {
			return Command{}, fmt.Errorf("command argument %d must not be blank", i)
		}
		all = append(all, arg)
	}

	return Command{args: all}, nil
}

// Executable returns the executable path.
func (c Command) Executable() string {
	return c.args[0]
}

// Arguments returns a copy of the full argument vector, executable included.
func (c Command) Arguments() []string {
	return slices.Clone(c.args)
}

func (c Command) String() string {
	return strings.Join(c.args, " ")
}
