package ir

import (
	"strconv"
	"strings"
)

// BoolLit represents a boolean constant.
type BoolLit struct {
	value bool

	Node
}

// NewBoolLit creates a new boolean constant.
func NewBoolLit(value bool) *BoolLit {
	e := new(BoolLit)
	e.value = value

	return e
}

// Value returns the constant value.
func (e *BoolLit) Value() bool {
	return e.value
}

func (e *BoolLit) String() string {
	return strconv.FormatBool(e.value)
}

func (e *BoolLit) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// IntLit represents an integer constant.
type IntLit struct {
	value int64

	Node
}

// NewIntLit creates a new integer constant.
func NewIntLit(value int64) *IntLit {
	e := new(IntLit)
	e.value = value

	return e
}

// Value returns the constant value.
func (e *IntLit) Value() int64 {
	return e.value
}

func (e *IntLit) String() string {
	return strconv.FormatInt(e.value, 10)
}

func (e *IntLit) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// FloatLit represents a floating point constant.
type FloatLit struct {
	value float64

	Node
}

// NewFloatLit creates a new floating point constant.
func NewFloatLit(value float64) *FloatLit {
	e := new(FloatLit)
	e.value = value

	return e
}

// Value returns the constant value.
func (e *FloatLit) Value() float64 {
	return e.value
}

func (e *FloatLit) String() string {
	s := strconv.FormatFloat(e.value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

func (e *FloatLit) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}

// StringLit represents a string constant, used for format strings of
// external functions.
type StringLit struct {
	value string

	Node
}

// NewStringLit creates a new string constant.
func NewStringLit(value string) *StringLit {
	e := new(StringLit)
	e.value = value

	return e
}

// Value returns the constant value.
func (e *StringLit) Value() string {
	return e.value
}

func (e *StringLit) String() string {
	return strconv.Quote(e.value)
}

func (e *StringLit) tree(b *strings.Builder, indent int) {
	writeExprStmt(b, e)
}
