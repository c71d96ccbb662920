package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TaskOptionKey is the settings key holding the per-task override array.
const TaskOptionKey = "task_option"

// ErrKeyNotFound reports an absent (or null) settings key. Callers decide
// the severity: mandatory fields turn it into a hard failure, optional
// fields leave their defaults in place and continue.
var ErrKeyNotFound = errors.New("key not found")

// IndexOutOfRangeError reports a task index beyond the task_option array.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

// Error implements the error interface.
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("task index %d out of range (task_option has %d elements)", e.Index, e.Len)
}

// Document is one level of the settings hierarchy: either the top-level
// settings object or a single task_option element. Values stay in cty form
// until a typed accessor coerces them.
type Document struct {
	attrs map[string]cty.Value
}

// lookup returns the value for key, treating both absence and an explicit
// JSON null as not found.
func (d *Document) lookup(key string) (cty.Value, error) {
	val, ok := d.attrs[key]
	if !ok || val.IsNull() {
		return cty.NilVal, fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
	}
	return val, nil
}

// Has reports whether key is present with a non-null value.
func (d *Document) Has(key string) bool {
	_, err := d.lookup(key)
	return err == nil
}

// Int reads key and coerces the value to an integer. JSON numbers and
// numeric strings both convert; no range validation happens here, that is
// the job of downstream validators.
func (d *Document) Int(key string) (int, error) {
	val, err := d.lookup(key)
	if err != nil {
		return 0, err
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("key %q is not numeric: %w", key, err)
	}

	var n int
	if err := gocty.FromCtyValue(num, &n); err != nil {
		return 0, fmt.Errorf("key %q is not an integer: %w", key, err)
	}
	return n, nil
}

// Str reads key and coerces the value to a string. Stray double quotes left
// over from upstream JSON string handling are stripped from both ends.
func (d *Document) Str(key string) (string, error) {
	val, err := d.lookup(key)
	if err != nil {
		return "", err
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("key %q is not textual: %w", key, err)
	}
	return strings.Trim(str.AsString(), `"`), nil
}

// TaskCount returns the length of the task_option array. A settings
// document without the array reports ErrKeyNotFound.
func (d *Document) TaskCount() (int, error) {
	val, err := d.taskArray()
	if err != nil {
		return 0, err
	}
	return val.LengthInt(), nil
}

// Task returns the task_option element at index as its own Document, so the
// per-task pass can re-read the same keys it read globally. Failures are
// distinguishable: ErrKeyNotFound when the array is missing entirely, an
// *IndexOutOfRangeError when the index has no element.
func (d *Document) Task(index int) (*Document, error) {
	val, err := d.taskArray()
	if err != nil {
		return nil, err
	}

	length := val.LengthInt()
	if index < 0 || index >= length {
		return nil, &IndexOutOfRangeError{Index: index, Len: length}
	}

	elem := val.Index(cty.NumberIntVal(int64(index)))
	if !elem.Type().IsObjectType() && !elem.Type().IsMapType() {
		return nil, fmt.Errorf("task_option[%d] is not an object", index)
	}
	if elem.LengthInt() == 0 {
		return &Document{attrs: map[string]cty.Value{}}, nil
	}
	return &Document{attrs: elem.AsValueMap()}, nil
}

// taskArray looks up the task_option value and checks its shape.
func (d *Document) taskArray() (cty.Value, error) {
	val, err := d.lookup(TaskOptionKey)
	if err != nil {
		return cty.NilVal, err
	}
	typ := val.Type()
	if !typ.IsTupleType() && !typ.IsListType() {
		return cty.NilVal, fmt.Errorf("%s is not an array", TaskOptionKey)
	}
	return val, nil
}
