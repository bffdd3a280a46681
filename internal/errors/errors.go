package errors

import (
	"errors"
	"runtime"

	errorsGo "github.com/go-errors/errors"
)

var ErrUnsupported = errors.ErrUnsupported

func As(err error, target any) bool { return errorsGo.As(err, target) }

func Is(err, target error) bool { return errorsGo.Is(err, target) }

func Join(errs ...error) error {
	if err := errorsGo.Join(errs...); err != nil {
		if errGo, okErrGo := err.(*errorsGo.Error); okErrGo {
			return errGo
		}
		return errorsGo.Wrap(err, 1)
	}
	return nil
}

// New wraps obj with a stack trace. A nil obj yields nil
// and an already wrapped error keeps its original origin.
func New(obj any) *Error {
	if obj == nil {
		return nil
	}
	if errGo, okErrGo := obj.(*errorsGo.Error); okErrGo {
		return errGo
	}
	return errorsGo.Wrap(obj, 1)
}

func Unwrap(err error) error { return errorsGo.Unwrap(err) }

type Error = errorsGo.Error

func Errorf(format string, a ...any) *Error { return errorsGo.Errorf(format, a...) }

func Wrap(e any, skip int) *Error { return errorsGo.Wrap(e, skip+1) }

func WrapPrefix(e any, prefix string, skip int) *Error {
	return errorsGo.WrapPrefix(e, prefix, skip+1)
}

// NilReceiver returns an error naming the calling function if any of the arguments are nil
func NilReceiver(args ...any) error {
	return errMsgNilTester(`nil receiver or struct field`, 3, args...)
}

// NilParam returns an error naming the calling function if any of the arguments are nil
func NilParam(args ...any) error {
	return errMsgNilTester(`nil parameter`, 3, args...)
}

// NotImplemented returns an error naming the calling function
func NotImplemented() error {
	return errMsgNilTester(`not implemented`, 3)
}

func errMsgNilTester(msg string, skip int, args ...any) error {
	if len(args) > 0 && !anyNil(args...) {
		return nil
	}
	return errMsg(msg, skip)
}

func anyNil(args ...any) bool {
	for _, arg := range args {
		if arg == nil {
			return true
		}
	}
	return false
}

func errMsg(msg string, skip int) error {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return Wrap(msg, skip)
	}
	return Wrap(msg+`: `+runtime.FuncForPC(pc).Name()+`()`, skip)
}
