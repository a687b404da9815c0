package errors

import (
	"github.com/golly-go/messageplugin/utils"
	"github.com/sirupsen/logrus"
)

// Error is a keyed error that keeps the wrapped cause and where it was raised
type Error struct {
	Key         string                 `json:"key"`
	Err         error                  `json:"-"`
	Caller      string                 `json:"-"`
	ErrorString string                 `json:"error,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

func (ae Error) Error() string {
	if ae.ErrorString == "" {
		return ae.Key
	}
	return ae.Key + ": " + ae.ErrorString
}

func (ae Error) Unwrap() error {
	return ae.Err
}

// Is matches any Error carrying the same key, so errors.Is(err, ErrorPluginNotFound) works
// on wrapped instances
func (ae Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Key == ae.Key
}

func (ae Error) ToLogFields() logrus.Fields {
	fields := logrus.Fields{
		"key":    ae.Key,
		"caller": ae.Caller,
	}

	if ae.Err != nil {
		fields["error"] = ae.Err.Error()
	}

	for k, v := range ae.Data {
		fields[k] = v
	}

	return fields
}

// NewError returns a copy of the keyed error wrapping err
func (ae Error) NewError(err error) Error {
	source := utils.FileWithLineNum()
	if e, ok := err.(Error); ok && e.Caller != "" {
		source = e.Caller
	}

	e := Error{Key: ae.Key, Err: err, Caller: source}
	if err != nil {
		e.ErrorString = err.Error()
	}

	return e
}
