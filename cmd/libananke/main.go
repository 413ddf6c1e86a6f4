// Command libananke is the FFI boundary of the Ananke pipeline: a stable
// C ABI a process-external consumer links against directly. Built as a C
// archive or C shared library (`go build -buildmode=c-archive` /
// `c-shared`), never as an ordinary Go binary — main() exists only
// because cgo's c-archive/c-shared build modes require a package main
// with one, and is otherwise unused.
//
// Every exported symbol is prefixed ananke_ to avoid C namespace
// collisions with whatever else the host process links in.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct ananke_token_masks {
    uint32_t* allowed_ptr;
    size_t    allowed_len;
    uint32_t* forbidden_ptr;
    size_t    forbidden_len;
} ananke_token_masks;

typedef struct ananke_ir_handle {
    char*               json_schema;
    char*               grammar;
    char**              regex_patterns;
    size_t              regex_patterns_len;
    ananke_token_masks* token_masks;
    uint32_t            priority;
    char*               name;
} ananke_ir_handle;
*/
import "C"

import (
	"context"
	"encoding/json"
	"sync"
	"time"
	"unsafe"

	"ananke/internal/braid"
	"ananke/internal/clew"
	"ananke/internal/constraint"
	"ananke/internal/ir"
	"ananke/internal/mangle"
	"ananke/pkg/ananke"
)

// Status codes returned by every exported ananke_* entry point.
const (
	statusSuccess           = C.int(0)
	statusNullPointer       = C.int(1)
	statusAllocationFailure = C.int(2)
	statusInvalidInput      = C.int(3)
	statusExtractionFailed  = C.int(4)
	statusCompilationFailed = C.int(5)
)

const libraryVersion = "1.0.0"

var (
	initOnce sync.Once
	client   *ananke.Client
	mu       sync.Mutex
)

//export ananke_init
func ananke_init() C.int {
	mu.Lock()
	defer mu.Unlock()
	initOnce.Do(func() {
		oracle, err := mangle.New()
		var resolver braid.ConflictResolver = braid.NopResolver{}
		var semantic clew.SemanticOracle = clew.NopOracle{}
		if err == nil {
			resolver = oracle
			semantic = oracle
		}
		client = ananke.NewClient(
			ananke.WithConflictResolver(resolver),
			ananke.WithSemanticOracle(semantic),
		)
	})
	return statusSuccess
}

//export ananke_deinit
func ananke_deinit() {
	mu.Lock()
	defer mu.Unlock()
	client = nil
	initOnce = sync.Once{}
}

//export ananke_version
func ananke_version() *C.char {
	return C.CString(libraryVersion)
}

//export ananke_extract_constraints
func ananke_extract_constraints(sourceCstr, languageCstr *C.char, outHandle **C.ananke_ir_handle) C.int {
	if sourceCstr == nil || languageCstr == nil || outHandle == nil {
		return statusNullPointer
	}
	mu.Lock()
	c := client
	mu.Unlock()
	if c == nil {
		return statusExtractionFailed
	}

	src := C.GoString(sourceCstr)
	lang := C.GoString(languageCstr)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := c.ExtractAndCompile(ctx, src, lang)
	if err != nil {
		return statusExtractionFailed
	}

	handle, ok := exportHandle(result)
	if !ok {
		return statusAllocationFailure
	}
	*outHandle = handle
	return statusSuccess
}

// wireConstraint mirrors the JSON shape a compile_constraints caller
// sends: either a bare array of these, or {"constraints": [...]}.
type wireConstraint struct {
	ID          uint64   `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Priority    string   `json:"priority"`
	Confidence  *float64 `json:"confidence"`
}

type wireConstraintEnvelope struct {
	Constraints []wireConstraint `json:"constraints"`
}

//export ananke_compile_constraints
func ananke_compile_constraints(constraintsJSONCstr *C.char, outHandle **C.ananke_ir_handle) C.int {
	if constraintsJSONCstr == nil || outHandle == nil {
		return statusNullPointer
	}
	mu.Lock()
	c := client
	mu.Unlock()
	if c == nil {
		return statusCompilationFailed
	}

	raw := []byte(C.GoString(constraintsJSONCstr))

	var wire []wireConstraint
	if err := json.Unmarshal(raw, &wire); err != nil {
		var envelope wireConstraintEnvelope
		if err2 := json.Unmarshal(raw, &envelope); err2 != nil {
			return statusInvalidInput
		}
		wire = envelope.Constraints
	}

	set := constraint.NewConstraintSet("ffi")
	for _, w := range wire {
		cc, ok := toConstraint(w)
		if !ok {
			return statusInvalidInput
		}
		set.Add(cc)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := c.Compile(ctx, set)
	if err != nil {
		return statusCompilationFailed
	}

	handle, ok := exportHandle(result)
	if !ok {
		return statusAllocationFailure
	}
	*outHandle = handle
	return statusSuccess
}

// toConstraint validates and converts one wire entry, defaulting
// confidence to 1.0 and deriving enforcement from kind via the
// kind/enforcement compatibility table (first compatible entry wins).
func toConstraint(w wireConstraint) (constraint.Constraint, bool) {
	if w.Name == "" || w.Description == "" {
		return constraint.Constraint{}, false
	}
	kind := constraint.Kind(w.Kind)
	compatible := constraint.CompatibleEnforcements(kind)
	if len(compatible) == 0 {
		return constraint.Constraint{}, false
	}

	confidence := 1.0
	if w.Confidence != nil {
		confidence = *w.Confidence
	}
	priority, ok := constraint.ParsePriority(w.Priority)
	if !ok {
		priority = constraint.PriorityMedium
	}

	return constraint.Constraint{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Kind:        kind,
		Source:      constraint.UserDefined{},
		Enforcement: compatible[0],
		Priority:    priority,
		Severity:    constraint.Severity(w.Severity),
		Confidence:  confidence,
		CreatedAt:   time.Time{},
	}, true
}

//export ananke_free_constraint_ir
func ananke_free_constraint_ir(handle *C.ananke_ir_handle) {
	if handle == nil {
		return
	}
	if handle.json_schema != nil {
		C.free(unsafe.Pointer(handle.json_schema))
	}
	if handle.grammar != nil {
		C.free(unsafe.Pointer(handle.grammar))
	}
	if handle.regex_patterns != nil {
		n := int(handle.regex_patterns_len)
		base := unsafe.Slice(handle.regex_patterns, n)
		for i := 0; i < n; i++ {
			if base[i] != nil {
				C.free(unsafe.Pointer(base[i]))
			}
		}
		C.free(unsafe.Pointer(handle.regex_patterns))
	}
	if handle.token_masks != nil {
		if handle.token_masks.allowed_ptr != nil {
			C.free(unsafe.Pointer(handle.token_masks.allowed_ptr))
		}
		if handle.token_masks.forbidden_ptr != nil {
			C.free(unsafe.Pointer(handle.token_masks.forbidden_ptr))
		}
		C.free(unsafe.Pointer(handle.token_masks))
	}
	if handle.name != nil {
		C.free(unsafe.Pointer(handle.name))
	}
	C.free(unsafe.Pointer(handle))
}

// exportHandle deep-copies result into a freshly C-allocated handle:
// every non-null pointer inside the handle is allocated by this library,
// and ananke_free_constraint_ir is the only correct way to release it.
func exportHandle(result *ir.ConstraintIR) (*C.ananke_ir_handle, bool) {
	handle := (*C.ananke_ir_handle)(C.malloc(C.size_t(unsafe.Sizeof(C.ananke_ir_handle{}))))
	if handle == nil {
		return nil, false
	}
	*handle = C.ananke_ir_handle{}

	handle.name = C.CString(result.Name)
	handle.priority = C.uint32_t(result.Priority)

	if result.JSONSchema != nil {
		raw, err := json.Marshal(result.JSONSchema)
		if err != nil {
			return nil, false
		}
		handle.json_schema = C.CString(string(raw))
	}

	if result.Grammar != nil {
		raw, err := json.Marshal(result.Grammar)
		if err != nil {
			return nil, false
		}
		handle.grammar = C.CString(string(raw))
	}

	if len(result.RegexPatterns) > 0 {
		encoded := ir.EncodeRegexPatterns(result.RegexPatterns)
		arr := (*C.char)(C.malloc(C.size_t(len(encoded)) * C.size_t(unsafe.Sizeof(uintptr(0)))))
		if arr == nil {
			return nil, false
		}
		slicePtr := (**C.char)(unsafe.Pointer(arr))
		dst := unsafe.Slice(slicePtr, len(encoded))
		for i, s := range encoded {
			dst[i] = C.CString(s)
		}
		handle.regex_patterns = slicePtr
		handle.regex_patterns_len = C.size_t(len(encoded))
	}

	if result.TokenMasks != nil && (len(result.TokenMasks.Allowed) > 0 || len(result.TokenMasks.Forbidden) > 0) {
		masks := (*C.ananke_token_masks)(C.malloc(C.size_t(unsafe.Sizeof(C.ananke_token_masks{}))))
		if masks == nil {
			return nil, false
		}
		*masks = C.ananke_token_masks{}
		if len(result.TokenMasks.Allowed) > 0 {
			masks.allowed_ptr = copyUint32s(result.TokenMasks.Allowed)
			masks.allowed_len = C.size_t(len(result.TokenMasks.Allowed))
		}
		if len(result.TokenMasks.Forbidden) > 0 {
			masks.forbidden_ptr = copyUint32s(result.TokenMasks.Forbidden)
			masks.forbidden_len = C.size_t(len(result.TokenMasks.Forbidden))
		}
		handle.token_masks = masks
	}

	return handle, true
}

func copyUint32s(ids []uint32) *C.uint32_t {
	ptr := (*C.uint32_t)(C.malloc(C.size_t(len(ids)) * C.size_t(unsafe.Sizeof(C.uint32_t(0)))))
	dst := unsafe.Slice(ptr, len(ids))
	for i, id := range ids {
		dst[i] = C.uint32_t(id)
	}
	return ptr
}

func main() {}
