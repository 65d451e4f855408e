package interp

import (
	"fmt"
	"strings"
)

// printf implements the C like printf builtin. It supports the verbs %d, %f,
// %s, %v and %% and returns the number of bytes written. Ints print with %f
// as floats.
func printf(m *Machine, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: printf requires a format", ErrBadArgs)
	}
	format, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: printf format must be a string, got %T", ErrBadArgs, args[0])
	}
	args = args[1:]

	var b strings.Builder
	next := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		i++
		if i == len(format) {
			return nil, fmt.Errorf("%w: printf format ends with %%", ErrBadArgs)
		}
		verb := format[i]
		if verb == '%' {
			b.WriteByte('%')
			continue
		}
		if next == len(args) {
			return nil, fmt.Errorf("%w: printf missing argument for %%%c", ErrBadArgs, verb)
		}
		arg := args[next]
		next++

		switch verb {
		case 'd':
			switch v := arg.(type) {
			case int64:
				fmt.Fprintf(&b, "%d", v)
			case bool:
				if v {
					b.WriteString("1")
				} else {
					b.WriteString("0")
				}
			default:
				return nil, fmt.Errorf("%w: printf %%d with %T", ErrBadArgs, arg)
			}
		case 'f':
			switch v := arg.(type) {
			case float64:
				fmt.Fprintf(&b, "%f", v)
			case int64:
				fmt.Fprintf(&b, "%f", float64(v))
			default:
				return nil, fmt.Errorf("%w: printf %%f with %T", ErrBadArgs, arg)
			}
		case 's':
			v, ok := arg.(string)
			if !ok {
				return nil, fmt.Errorf("%w: printf %%s with %T", ErrBadArgs, arg)
			}
			b.WriteString(v)
		case 'v':
			fmt.Fprintf(&b, "%v", arg)
		default:
			return nil, fmt.Errorf("%w: printf verb %%%c", ErrBadArgs, verb)
		}
	}

	n, err := m.out.Write([]byte(b.String()))
	if err != nil {
		return nil, err
	}
	return int64(n), nil
}
