package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FormState represents the state of an in-progress admin article form
type FormState string

const (
	FormStateEditing    FormState = "editing"
	FormStateSubmitting FormState = "submitting"
	FormStateSuccess    FormState = "success"
	FormStateFailure    FormState = "failure"
)

// ImageUpload is an image attached to an article submission
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        []byte
}

// SubmissionResponse is the API response for an article submission
type SubmissionResponse struct {
	State   FormState         `json:"state"`
	Article *Article          `json:"article,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
	Next    string            `json:"next,omitempty"`
}

// Checkbox is a boolean form field. Besides the strconv forms it accepts
// what an HTML checkbox sends: "on" when ticked, nothing when not.
type Checkbox bool

// UnmarshalParam implements gin's form binding hook
func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "yes":
		*c = true
		return nil
	case "", "off", "no":
		*c = false
		return nil
	}
	v, err := strconv.ParseBool(param)
	if err != nil {
		return fmt.Errorf("invalid checkbox value %q", param)
	}
	*c = Checkbox(v)
	return nil
}
