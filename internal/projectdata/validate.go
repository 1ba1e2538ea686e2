package projectdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

var validate = validator.New()

func init() {
	// Report JSON names, not Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateSpecifications checks that raw is a JSON object describing a
// specification document and returns it decoded.
func ValidateSpecifications(raw []byte) (*Specifications, error) {
	return validateDocument[Specifications](raw, "specifications")
}

func ValidateImages(raw []byte) (*Images, error) {
	return validateDocument[Images](raw, "images")
}

// ValidateDocuments also checks each document type against its category.
func ValidateDocuments(raw []byte) (*Documents, error) {
	docs, err := validateDocument[Documents](raw, "documents")
	if err != nil {
		return nil, err
	}
	for c := range documentTypes {
		for _, d := range *docs.list(c) {
			if !c.AcceptsType(d.Type) {
				return nil, appErr.Newf(appErr.CodeInvalid, "invalid documents format: %s.%s: unknown type %q", c, d.ID, d.Type)
			}
		}
	}
	return docs, nil
}

func ValidateNotes(raw []byte) (*Notes, error) {
	return validateDocument[Notes](raw, "notes")
}

func ValidateContactNotes(raw []byte) (*ContactNotes, error) {
	return validateDocument[ContactNotes](raw, "contact notes")
}

// ValidateStruct runs the document rules on a single sub-entity built by a
// caller, for example a milestone assembled from a request.
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, describe(err))
	}
	return nil
}

func validateDocument[T any](raw []byte, what string) (*T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, appErr.Newf(appErr.CodeInvalid, "invalid %s format: expected a JSON object", what)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var v T
	if err := dec.Decode(&v); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("invalid %s format: %v", what, err))
	}
	if err := validate.Struct(&v); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInvalid, fmt.Sprintf("invalid %s format: %s", what, describe(err)))
	}
	return &v, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", ns, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", ns, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
