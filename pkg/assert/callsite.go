package assert

import (
	"runtime"
	"strings"
)

const unknownSource = "<unknown>"

// caller locates the call site skip frames above its own caller. The
// condition text is filled later by resolve, only for failing sites.
func caller(skip int) Site {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return unknownSite()
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.PC == 0 {
		return unknownSite()
	}
	return Site{
		PC:       frame.PC,
		File:     frame.File,
		Line:     frame.Line,
		Function: shortFunctionName(frame.Function),
	}
}

func unknownSite() Site {
	return Site{File: unknownSource, Function: unknownSource, Expression: unavailableExpression}
}

// resolve fills the condition text of a site found by caller. entry is the
// name the user called, e.g. "Warningf".
func (s Site) resolve(entry string) Site {
	if s.PC == 0 {
		return s
	}
	s.Expression = sourceExpression(s.File, s.Line, entry)
	return s
}

// shortFunctionName drops the import path, leaving e.g.
// "server.(*Handler).ServeHTTP".
func shortFunctionName(name string) string {
	if name == "" {
		return unknownSource
	}
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
