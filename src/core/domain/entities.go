package domain

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// Field names of a user record when rendered as a Value.
const (
	FieldName       = "name"
	FieldDeleteDate = "deleteDate"
)

var (
	namePattern  = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// User is a stored user record. A non-nil DeleteDate marks it soft-deleted.
type User struct {
	Name       string     `json:"name" yaml:"name"`
	DeleteDate *time.Time `json:"deleteDate,omitempty" yaml:"deleteDate,omitempty"`
}

// IsDeleted reports whether the record has been soft-deleted.
func (u User) IsDeleted() bool {
	return u.DeleteDate != nil
}

// Clone returns a copy that shares no memory with u.
func (u User) Clone() User {
	cp := User{Name: u.Name}
	if u.DeleteDate != nil {
		t := *u.DeleteDate
		cp.DeleteDate = &t
	}
	return cp
}

// Value renders the record as an object.
func (u User) Value() Value {
	fields := map[string]Value{FieldName: String(u.Name)}
	if u.DeleteDate != nil {
		fields[FieldDeleteDate] = Date(*u.DeleteDate)
	}
	return Value{kind: KindObject, fields: fields}
}

// UserFromValue reads an object back into a record. Fields of the wrong type
// are dropped; shape checks belong to the caller.
func UserFromValue(v Value) User {
	var u User
	if name, ok := v.Field(FieldName).Str(); ok {
		u.Name = name
	}
	if at, ok := v.Field(FieldDeleteDate).Time(); ok {
		u.DeleteDate = &at
	}
	return u
}

// ValidName reports whether name is two capitalized words, e.g. "Petrov Igor".
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// HasValidName reports whether v is an object whose name field passes ValidName.
func HasValidName(v Value) bool {
	name, ok := v.Field(FieldName).Str()
	return ok && ValidName(name)
}

// ParseID resolves an identifier. Numbers must be positive integers; strings
// must be all digits.
func ParseID(v Value) (int64, bool) {
	switch v.Kind() {
	case KindNumber:
		n, _ := v.Num()
		if n < 1 || n >= math.MaxInt64 || n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case KindString:
		s, _ := v.Str()
		if !digitPattern.MatchString(s) {
			return 0, false
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 1 {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// IsNumericID reports whether v is a number usable as an identifier.
func IsNumericID(v Value) bool {
	if !v.IsNumber() {
		return false
	}
	_, ok := ParseID(v)
	return ok
}
