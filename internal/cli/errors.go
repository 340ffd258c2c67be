package cli

import (
	"errors"

	"github.com/alexanderramin/habitquest/internal/contract"
)

// ErrorMessage returns the text shown after "Error: ". Engine errors show
// their message without the code prefix.
func ErrorMessage(err error) string {
	var ee *contract.EngineError
	if errors.As(err, &ee) && ee.Message != "" {
		return ee.Message
	}
	return err.Error()
}
