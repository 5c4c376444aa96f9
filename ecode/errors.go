package ecode

import (
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	notExistMsg = "does not exist"
	mismatchMsg = "mismatch"
	exceededMsg = "exceeded"
)

// FieldIsEmpty returns field empty message
func FieldIsEmpty(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return requiredMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldMismatch returns field mismatch message
func FieldMismatch(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], mismatchMsg)
	}
	return mismatchMsg
}

// LimitExceeded returns limit exceeded message
func LimitExceeded(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], exceededMsg)
	}
	return exceededMsg
}

// NotExist returns not exist message
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}
