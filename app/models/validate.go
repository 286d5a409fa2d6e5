package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks that every required field was present in the payload.
func (r *NewPostRequest) Validate() error {
	return validatePayload(r)
}

// Validate checks that every required field was present in the payload.
func (r *CommentRequest) Validate() error {
	return validatePayload(r)
}

func validatePayload(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
