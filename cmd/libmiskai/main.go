// Command libmiskai builds the C ABI of the pipeline:
//
//	go build -buildmode=c-shared -o libmiskai.so ./cmd/libmiskai
//
// Every string returned to the caller must be released exactly once with
// miskai_free_string. Strings passed in are copied and stay owned by the
// caller.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"os"
	"unsafe"

	"github.com/heartmarshall/miskai-core/internal/dictionary"
)

func main() {}

//export miskai_initialize
func miskai_initialize() {
	lib.boundary.Initialize()
}

//export miskai_shutdown
func miskai_shutdown() {
	lib.boundary.Shutdown()
}

//export miskai_process_text
func miskai_process_text(text, lang *C.char) *C.char {
	h := lib.boundary.ProcessText(goString(text), goString(lang))
	return export(h)
}

//export miskai_platform_version
func miskai_platform_version() *C.char {
	return export(lib.boundary.Export(lib.boundary.PlatformVersion()))
}

//export miskai_load_dictionary
func miskai_load_dictionary(lang, source *C.char) C.int {
	return C.int(lib.boundary.LoadDictionary(goString(lang), goString(source)))
}

//export miskai_load_dictionary_file
func miskai_load_dictionary_file(lang, path *C.char) C.int {
	p := goString(path)
	src, err := os.ReadFile(p)
	if err != nil {
		return 0
	}
	format, ok := dictionary.FormatFromPath(p)
	if !ok {
		format = dictionary.FormatAuto
	}
	if err := lib.boundary.LoadDictionaryBytes(goString(lang), src, format); err != nil {
		return 0
	}
	return 1
}

//export miskai_free_string
func miskai_free_string(s *C.char) C.int {
	if s == nil {
		return 0
	}
	if !lib.release(uintptr(unsafe.Pointer(s))) {
		return 0
	}
	C.free(unsafe.Pointer(s))
	return 1
}

// export copies the string behind h into C memory and tracks the pointer.
func export(h handle) *C.char {
	s, _ := lib.boundary.Read(h)
	p := C.CString(s)
	lib.track(uintptr(unsafe.Pointer(p)), h)
	return p
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}
