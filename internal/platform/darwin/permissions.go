//go:build darwin && cgo

package darwin

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}
*/
import "C"

// IsAccessibilityTrusted reports whether the process may read other
// processes' accessibility attributes, which badge lookups need.
func IsAccessibilityTrusted() bool {
	return C.is_trusted() != 0
}
