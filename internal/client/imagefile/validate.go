package imagefile

import (
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
)

// MaxUploadSize is the largest file accepted for upload (10 MiB).
const MaxUploadSize int64 = 10 << 20

// AcceptedTypes are the declared MIME types accepted for upload.
var AcceptedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

var (
	ErrInvalidType = errors.New("only image files are allowed (JPEG, PNG, GIF, WebP)")
	ErrTooLarge    = errors.New("file must not exceed 10MB")
)

type candidate struct {
	Type string `validate:"supported_image"`
	Size int64  `validate:"lte=10485760"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("supported_image", validateImageType); err != nil {
		panic(err)
	}
	return v
}

func validateImageType(fl validator.FieldLevel) bool {
	return slices.Contains(AcceptedTypes, fl.Field().String())
}

// IsValidImageFile reports whether the declared type of f is accepted.
// The size is not considered.
func IsValidImageFile(f File) bool {
	return slices.Contains(AcceptedTypes, f.Type())
}

// Validate checks the declared type first and the size second, returning
// ErrInvalidType or ErrTooLarge.
func Validate(f File) error {
	err := validate.Struct(candidate{Type: f.Type(), Size: f.Size()})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Type":
				return ErrInvalidType
			case "Size":
				return ErrTooLarge
			}
		}
	}
	return err
}
