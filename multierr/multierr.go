package multierr

import "strings"

// Err collects errors so they can be reported together.
type Err []error

func (me Err) Error() string {
	var builder strings.Builder
	for i, err := range me {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(err.Error())
	}
	return builder.String()
}

func (me Err) Len() int {
	return len(me)
}

func (me *Err) Add(err error) {
	if err == nil {
		return
	}
	*me = append(*me, err)
}

func (me Err) Unwrap() []error {
	return me
}

// Err returns nil if nothing was collected.
func (me Err) Err() error {
	if len(me) == 0 {
		return nil
	}
	return me
}
