package validate

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if _, err := mail.ParseAddress(value); err != nil {
		return &ErrField{Field: field, Msg: "must be a valid email address"}
	}
	return nil
}

func URL(field, value string) *ErrField {
	u, err := url.ParseRequestURI(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ErrField{Field: field, Msg: "must be a valid URL"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if len(value) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}
