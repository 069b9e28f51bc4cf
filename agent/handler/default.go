package handler

import (
	"fmt"
	"reflect"

	contractx "github.com/tanpawarit/statlingua/agent/contract"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// DefaultHandler summarizes objects with no registered handler.
// It calls a zero-argument Summary method when one exists, otherwise it prints the object.
func DefaultHandler(obj any) (contractx.ModelKind, string, error) {
	if obj == nil {
		return contractx.KindDefault, fmt.Sprint(obj), nil
	}

	method := reflect.ValueOf(obj).MethodByName("Summary")
	if !method.IsValid() {
		return contractx.KindDefault, fmt.Sprint(obj), nil
	}

	mt := method.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 {
		return contractx.KindDefault, fmt.Sprint(obj), nil
	}
	if mt.NumOut() == 2 && !mt.Out(1).Implements(errorType) {
		return contractx.KindDefault, fmt.Sprint(obj), nil
	}

	out := method.Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return "", "", fmt.Errorf("%w: %T.Summary: %w", contractx.ErrHandler, obj, out[1].Interface().(error))
	}
	return contractx.KindDefault, fmt.Sprint(out[0].Interface()), nil
}
