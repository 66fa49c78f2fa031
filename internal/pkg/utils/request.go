package utils

import (
	"io"

	"github.com/goccy/go-json"
)

// DecodeStrictJSON decodes body into target and rejects fields target does not declare.
func DecodeStrictJSON(body io.Reader, target interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
