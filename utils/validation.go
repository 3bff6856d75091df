package utils

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/go-playground/validator/v10"
)

// AllowedImageContentTypes is the set of allowed content types for product
// image uploads.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MaxUploadSize is the maximum allowed file size for uploads (5MB).
const MaxUploadSize = 5 << 20

// ValidateImageUpload checks that the uploaded file has an allowed image
// content type and does not exceed the maximum file size.
func ValidateImageUpload(fh *multipart.FileHeader) error {
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 5MB", fh.Size)
	}

	contentType := fh.Header.Get("Content-Type")
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp", contentType)
	}

	return nil
}

// ValidationErrorMap converts a gin binding error into the field-level error
// map the API envelope carries on 422 responses, without leaking Go struct
// names or internal error text.
func ValidationErrorMap(err error) map[string][]string {
	errs := map[string][]string{}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["body"] = []string{"Invalid request body"}
		return errs
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "The " + field + " field is required."
		case "email":
			msg = "The " + field + " must be a valid email address."
		case "min":
			msg = "The " + field + " must be at least " + fe.Param() + "."
		case "max":
			msg = "The " + field + " may not be greater than " + fe.Param() + "."
		case "oneof":
			msg = "The selected " + field + " is invalid."
		case "eqfield":
			msg = "The " + field + " confirmation does not match."
		default:
			msg = "The " + field + " field is invalid."
		}
		errs[field] = append(errs[field], msg)
	}
	return errs
}
