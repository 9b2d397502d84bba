package services

import (
	"context"
	"strings"

	"shopapi/internal/models"
	"shopapi/internal/validation"

	"github.com/gabriel-vasile/mimetype"
)

// allowedImageExtensions lists the image types a product may carry.
var allowedImageExtensions = map[string]bool{
	"jpeg": true,
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"svg":  true,
}

func registerRules(exists func(ctx context.Context, email string) (bool, error)) validation.Rules {
	return validation.Rules{
		{Name: "name", Constraints: []validation.Constraint{validation.Required(), validation.Max(255)}},
		{Name: "email", Constraints: []validation.Constraint{
			validation.Required(),
			validation.Email(),
			validation.Unique(exists),
		}},
		{Name: "password", Constraints: []validation.Constraint{validation.Required(), validation.Confirmed()}},
	}
}

func loginRules() validation.Rules {
	return validation.Rules{
		{Name: "email", Constraints: []validation.Constraint{validation.Required(), validation.Email()}},
		{Name: "password", Constraints: []validation.Constraint{validation.Required()}},
	}
}

func productRules(imageRequired bool) validation.Rules {
	image := []validation.Constraint{imageConstraint(), mimesConstraint()}
	if imageRequired {
		image = append([]validation.Constraint{validation.Required()}, image...)
	}
	return validation.Rules{
		{Name: "name", Constraints: []validation.Constraint{validation.Required()}},
		{Name: "description", Constraints: []validation.Constraint{validation.Required()}},
		{Name: "qty", Constraints: []validation.Constraint{validation.Required(), validation.Integer()}},
		{Name: "price", Constraints: []validation.Constraint{validation.Required(), validation.Numeric()}},
		{Name: "image", Constraints: image},
	}
}

// imageConstraint requires an upload whose content sniffs as an image.
func imageConstraint() validation.Constraint {
	return validation.Func("image", "The %s must be an image.",
		func(_ context.Context, _ string, value interface{}, _ validation.Input) (bool, error) {
			upload, ok := value.(*models.Upload)
			if !ok || len(upload.Data) == 0 {
				return false, nil
			}
			return strings.HasPrefix(mimetype.Detect(upload.Data).String(), "image/"), nil
		})
}

// mimesConstraint requires both the sniffed content type and the filename
// extension to be one of the allowed image types.
func mimesConstraint() validation.Constraint {
	return validation.Func("mimes", "The %s must be a file of type: jpeg, png, jpg, gif, svg.",
		func(_ context.Context, _ string, value interface{}, _ validation.Input) (bool, error) {
			upload, ok := value.(*models.Upload)
			if !ok {
				return false, nil
			}
			detected := strings.TrimPrefix(mimetype.Detect(upload.Data).Extension(), ".")
			return allowedImageExtensions[detected] && allowedImageExtensions[upload.Ext()], nil
		})
}
