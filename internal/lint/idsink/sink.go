package idsink

import (
	"fmt"
	"strconv"
	"strings"
)

// Sink is a package-level function whose argument Arg must be an allocated
// id. When KeyArg is not negative the call is a sink only if that argument is
// the constant "id" (as in view.Attr("id", v)).
type Sink struct {
	Pkg    string
	Func   string
	Arg    int
	KeyArg int
}

func (s Sink) String() string {
	out := s.Pkg + "." + s.Func
	if s.Arg != 0 {
		out += ":" + strconv.Itoa(s.Arg)
	}
	return out
}

// DefaultSinks are the id attribute entry points of the host framework.
var DefaultSinks = []Sink{
	{Pkg: ViewPath, Func: "ID", Arg: 0, KeyArg: -1},
	{Pkg: ViewPath, Func: "Attr", Arg: 1, KeyArg: 0},
}

// ParseSink parses "import/path.Func" or "import/path.Func:argIndex".
func ParseSink(spec string) (Sink, error) {
	spec = strings.TrimSpace(spec)
	s := Sink{KeyArg: -1}
	if i := strings.LastIndex(spec, ":"); i >= 0 {
		n, err := strconv.Atoi(spec[i+1:])
		if err != nil || n < 0 {
			return Sink{}, fmt.Errorf("sink %q: invalid argument index", spec)
		}
		s.Arg = n
		spec = spec[:i]
	}
	slash := strings.LastIndex(spec, "/")
	dot := strings.LastIndex(spec, ".")
	if dot <= slash || dot == len(spec)-1 || dot == 0 {
		return Sink{}, fmt.Errorf("sink %q: want import/path.Func", spec)
	}
	s.Pkg, s.Func = spec[:dot], spec[dot+1:]
	return s, nil
}

// SinkList is a flag.Value holding the default sinks plus any added with
// -sinks=a/b.F,c/d.G:1.
type SinkList struct {
	extra []Sink
}

func (l *SinkList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(l.extra))
	for _, s := range l.extra {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ",")
}

// Set replaces the extra sinks with the comma-separated list in value.
func (l *SinkList) Set(value string) error {
	var extra []Sink
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := ParseSink(part)
		if err != nil {
			return err
		}
		extra = append(extra, s)
	}
	l.extra = extra
	return nil
}

// All returns DefaultSinks followed by the extra sinks.
func (l *SinkList) All() []Sink {
	out := make([]Sink, 0, len(DefaultSinks)+len(l.extra))
	out = append(out, DefaultSinks...)
	return append(out, l.extra...)
}
