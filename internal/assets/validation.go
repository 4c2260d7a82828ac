package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName rejects empty names and names with path separators or
// dots, so a name can only select a file directly under styles/ or templates/.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
