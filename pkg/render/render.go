// Package render turns a traced thread's shadow stack into the
// library's textual trace format, annotating each frame with a
// file:line obtained from an external address-to-line resolver.
package render

import (
	"fmt"
	"io"

	"github.com/fabic/libcsdbg/pkg/namespace"
	"github.com/fabic/libcsdbg/pkg/shadowstack"
)

const lineEnding = "\r\n"

// Trace renders the current shadow stack of th, the thread record for
// the calling (possibly currently unwinding) thread, and calls Unwind
// on th once rendering completes so the shadow stack is reconciled for
// the next exception.
func Trace(w io.Writer, ns *namespace.Namespace, th *shadowstack.ThreadRecord) error {
	defer th.Unwind()
	return renderFrom(w, ns, th)
}

// TraceThread renders th's shadow stack for an arbitrary registered
// thread, reached from outside that thread, and does not call Unwind.
func TraceThread(w io.Writer, ns *namespace.Namespace, th *shadowstack.ThreadRecord) error {
	return renderFrom(w, ns, th)
}

// renderFrom walks every frame currently on th's shadow stack, oldest
// (the bottom of the call chain) first, newest (the top) last.
func renderFrom(w io.Writer, ns *namespace.Namespace, th *shadowstack.ThreadRecord) error {
	name := th.Name
	if name == "" {
		name = "anonymous"
	}
	if _, err := fmt.Fprintf(w, "at %s thread (%#x) {%s", name, th.Handle, lineEnding); err != nil {
		return err
	}

	depth := th.CallDepth()
	for offset := depth - 1; offset >= 0; offset-- {
		frame, err := th.Backtrace(offset)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("  at %s", frame.Name)
		if offset+1 < depth {
			caller, err := th.Backtrace(offset + 1)
			if err == nil {
				if annotation := annotate(ns, caller.CalleeAddr, frame.CallSiteAddr); annotation != "" {
					line += fmt.Sprintf(" (%s)", annotation)
				}
			}
		}
		if _, err := fmt.Fprintf(w, "%s%s", line, lineEnding); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "}%s", lineEnding)
	return err
}

// annotate resolves the module that owns ownerAddr (the caller frame's
// function address) and asks Addr2Line for a file:line string for
// siteAddr relative to that module's base, suppressing the unresolved
// "??:0" sentinel.
// addr2line failures are non-fatal: the frame is simply left
// unannotated.
func annotate(ns *namespace.Namespace, ownerAddr, siteAddr uintptr) string {
	path, base, ok := ns.ILookup(ownerAddr)
	if !ok {
		return ""
	}
	text, err := Addr2Line(path, siteAddr-base)
	if err != nil || text == "" {
		return ""
	}
	return text
}

// Dump renders every registered thread's current trace, via
// TraceThread, separated by a blank line.
func Dump(w io.Writer, ns *namespace.Namespace) error {
	for i := 0; i < ns.ThreadCount(); i++ {
		th, err := ns.ThreadAt(i)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := fmt.Fprint(w, lineEnding); err != nil {
				return err
			}
		}
		if err := TraceThread(w, ns, th); err != nil {
			return err
		}
	}
	return nil
}
