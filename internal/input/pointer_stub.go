//go:build !windows

package input

import (
	"fmt"
)

// NewPointer reports that pointer output is unsupported on this platform
func NewPointer() (Pointer, error) {
	return nil, fmt.Errorf("pointer output not supported on this platform")
}
