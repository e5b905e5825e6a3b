package firestore

import (
	"strconv"
	"time"
)

// Document mirrors the Firestore REST representation: a resource name plus a
// map of typed field values.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// Value holds at most one of the Firestore value types. Integers travel as
// decimal strings on the wire.
type Value struct {
	StringValue    *string  `json:"stringValue,omitempty"`
	IntegerValue   *string  `json:"integerValue,omitempty"`
	DoubleValue    *float64 `json:"doubleValue,omitempty"`
	BooleanValue   *bool    `json:"booleanValue,omitempty"`
	TimestampValue *string  `json:"timestampValue,omitempty"`
}

func String(s string) Value {
	return Value{StringValue: &s}
}

func Integer(n int64) Value {
	s := strconv.FormatInt(n, 10)
	return Value{IntegerValue: &s}
}

func Timestamp(t time.Time) Value {
	s := t.UTC().Format(time.RFC3339Nano)
	return Value{TimestampValue: &s}
}

// Int returns the integer value, or false when the value holds another type.
func (v Value) Int() (int64, bool) {
	if v.IntegerValue == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(*v.IntegerValue, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (d *Document) SetField(name string, v Value) {
	if d.Fields == nil {
		d.Fields = make(map[string]Value)
	}
	d.Fields[name] = v
}

// AddInt adds delta to an integer field. A field that is absent or holds a
// non-integer value is left untouched.
func (d *Document) AddInt(name string, delta int64) {
	v, ok := d.Fields[name]
	if !ok {
		return
	}
	n, isInt := v.Int()
	if !isInt {
		return
	}
	d.Fields[name] = Integer(n + delta)
}
