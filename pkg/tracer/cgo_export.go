package tracer

// #include <stddef.h>
import "C"
import "unsafe"

// goCsdbgEnter is the C-linkage entry hook a target built with
// -finstrument-functions (or an equivalent compiler convention) calls
// on every instrumented function entry, via a small C shim that
// forwards __cyg_profile_func_enter's arguments here.
//
//export goCsdbgEnter
func goCsdbgEnter(thisFn, callSite unsafe.Pointer) {
	enterImpl(uintptr(thisFn), uintptr(callSite))
}

// goCsdbgExit is the C-linkage exit hook, the __cyg_profile_func_exit
// counterpart of goCsdbgEnter.
//
//export goCsdbgExit
func goCsdbgExit(thisFn, callSite unsafe.Pointer) {
	exitImpl(uintptr(thisFn), uintptr(callSite))
}
