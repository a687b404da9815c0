package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrorGeneric = Error{Key: "ERROR.UNKNOWN"}

	ErrorPluginNotFound = Error{Key: "ERROR.PLUGIN_NOT_FOUND"}

	ErrorPluginDuplicate = Error{Key: "ERROR.PLUGIN_DUPLICATE"}

	ErrorInvalidPlugin = Error{Key: "ERROR.INVALID_PLUGIN"}

	ErrorPluginInitialize = Error{Key: "ERROR.PLUGIN_INITIALIZE"}

	// ErrorInvalidOutput is returned for unknown or misconfigured output sinks
	ErrorInvalidOutput = Error{Key: "ERROR.INVALID_OUTPUT"}

	ErrorConfig = Error{Key: "ERROR.CONFIG"}
)

// Wrap wraps err under the given key; nil stays nil
func Wrap(ae Error, err error) error {
	if err == nil {
		return nil
	}
	return ae.NewError(err)
}

// Errorf builds a keyed error from a format string
func Errorf(ae Error, format string, args ...interface{}) error {
	return ae.NewError(fmt.Errorf(format, args...))
}

func SetData(err error, key string, value interface{}) error {
	if err == nil {
		return nil
	}

	ae, ok := err.(Error)
	if !ok {
		return err
	}

	data := make(map[string]interface{}, len(ae.Data)+1)
	for k, v := range ae.Data {
		data[k] = v
	}
	data[key] = value
	ae.Data = data

	return ae
}

// Unwrap attempts to unwind the error back to the innermost keyed error
func Unwrap(err error) Error {
	var ae Error
	if !stderrors.As(err, &ae) {
		return ErrorGeneric.NewError(err)
	}

	if inner, ok := ae.Err.(Error); ok {
		return Unwrap(inner)
	}
	return ae
}

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }

func Join(errs ...error) error { return stderrors.Join(errs...) }
