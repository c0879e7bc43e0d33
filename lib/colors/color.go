package colors

import (
	"hash/fnv"

	"github.com/fatih/color"
)

// DeterministicColorFunc picks a color for id that stays the same across
// runs, so a resource is printed in one color throughout the output.
func DeterministicColorFunc(id string) func(format string, a ...interface{}) string {
	options := []func(format string, a ...interface{}) string{
		color.CyanString,
		color.GreenString,
		color.BlueString,
		color.MagentaString,
		color.HiBlueString,
		color.HiCyanString,
		color.HiGreenString,
		color.HiMagentaString,
	}

	h := fnv.New32a()
	h.Write([]byte(id))
	hashedValue := h.Sum32()

	return options[hashedValue%uint32(len(options))]
}

// Status colors an operation label: green creates, yellow updates, red
// failures.
func Status(label string) string {
	switch label {
	case "create":
		return color.New(color.FgGreen).Sprint(label)
	case "update":
		return color.New(color.FgYellow).Sprint(label)
	case "failed":
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}
