package node

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrCasterRejected       = errors.New("caster rejected the value")
)

// Caster is a user supplied scalar conversion function.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src Type) (dst Type)
//   - func(src Type) (dst Type, bool)
//   - func(src Type) (dst Type, error)
//   - func(src Type) (dst Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src, dst := fnType.In(0), fnType.Out(0)
	if isDoublePointer(src) || isDoublePointer(dst) {
		return Caster{}, ErrDoublePointer
	}

	caster := Caster{Src: src, Dst: dst, fn: fnVal}
	caster.PackageAlias, caster.Name = funcName(fnVal)

	switch fnType.NumOut() {
	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		default:
			return Caster{}, ErrIsNotACaster
		}

		return caster, nil

	case 3:
		if fnType.Out(1).Kind() != reflect.Bool || !isError(fnType.Out(2)) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true

		return caster, nil

	default:
		return Caster{}, ErrIsNotACaster
	}
}

// Call invokes the caster. A false bool result is reported as ErrCasterRejected.
func (c Caster) Call(v reflect.Value) (reflect.Value, error) {
	out := c.fn.Call([]reflect.Value{v})

	if c.HasErr {
		if errV := out[len(out)-1]; !errV.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", c, errV.Interface().(error))
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%s: %w", c, ErrCasterRejected)
	}

	return out[0], nil
}

// String returns the qualified function name, e.g. "strconv.Itoa".
func (c Caster) String() string {
	if c.PackageAlias == "" {
		return c.Name
	}

	return c.PackageAlias + "." + c.Name
}

func funcName(fnVal reflect.Value) (alias, name string) {
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	if fnPC == nil {
		return "", "func"
	}

	full := fnPC.Name()
	_, file := path.Split(full)

	pkg, rest, found := strings.Cut(file, ".")
	if !found {
		return "", full
	}

	return pkg, rest
}
