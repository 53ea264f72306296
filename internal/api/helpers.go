package api

import (
	"strconv"

	domainerrors "github.com/inkwell/inkwell-server/internal/errors"
)

// parseID parses a decimal path id. Anything else fails with msg as a
// validation error.
func parseID(raw, msg string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domainerrors.Validation(msg).WithDetails(map[string]string{"id": raw})
	}
	return id, nil
}
