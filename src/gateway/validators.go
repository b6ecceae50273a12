package main

import (
	"reflect"
	"strings"
	"time"

	"shareit/src/types"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var now = time.Now

func stringValue(fl validator.FieldLevel) (string, bool) {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return "", false
		}
		field = field.Elem()
	}
	if field.Kind() != reflect.String {
		return "", false
	}
	return field.String(), true
}

var notBlank validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	return ok && strings.TrimSpace(s) != ""
}

// bookabledate rejects date-times in the past.
var bookableDate validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok {
		return false
	}
	datetime, err := types.ParseLocalDateTime(s)
	if err != nil {
		return false
	}
	return !now().After(datetime)
}

// gtdate requires the date-time to be strictly after the one in the named sibling field.
var gtDate validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := stringValue(fl)
	if !ok {
		return false
	}
	datetime, err := types.ParseLocalDateTime(s)
	if err != nil {
		return false
	}
	other := fl.Parent().FieldByName(fl.Param())
	if other.Kind() != reflect.String {
		return false
	}
	otherDatetime, err := types.ParseLocalDateTime(other.String())
	if err != nil {
		return false
	}
	return datetime.After(otherDatetime)
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("notblank", notBlank)
		v.RegisterValidation("bookabledate", bookableDate)
		v.RegisterValidation("gtdate", gtDate)
	}
}
