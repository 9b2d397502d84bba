package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"shopapi/internal/models"

	"github.com/gofiber/fiber/v2"
)

// untrimmedFields keep surrounding whitespace, which is part of a password.
var untrimmedFields = map[string]bool{
	"password":              true,
	"password_confirmation": true,
}

func trimField(name, value string) string {
	if untrimmedFields[name] {
		return value
	}
	return strings.TrimSpace(value)
}

// readFields collects the named fields from a JSON, urlencoded or multipart
// body. Values other than passwords are trimmed; absent fields are empty strings.
func readFields(c *fiber.Ctx, names ...string) (map[string]string, error) {
	fields := make(map[string]string, len(names))

	if c.Is("json") && len(c.Body()) > 0 {
		var body map[string]interface{}
		dec := json.NewDecoder(bytes.NewReader(c.Body()))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		for _, name := range names {
			switch v := body[name].(type) {
			case nil:
				fields[name] = ""
			case string:
				fields[name] = trimField(name, v)
			case json.Number:
				fields[name] = v.String()
			default:
				fields[name] = fmt.Sprint(v)
			}
		}
		return fields, nil
	}

	for _, name := range names {
		fields[name] = trimField(name, c.FormValue(name))
	}
	return fields, nil
}

// readUpload returns the named multipart file, or nil when none was sent.
func readUpload(c *fiber.Ctx, name string) (*models.Upload, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart body")
	}
	files := form.File[name]
	if len(files) == 0 {
		return nil, nil
	}

	f, err := files[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", name, err)
	}
	return &models.Upload{Filename: files[0].Filename, Data: data}, nil
}
