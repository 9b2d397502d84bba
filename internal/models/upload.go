package models

import (
	"path/filepath"
	"strings"
)

// Upload is a file received from a client, held in memory.
type Upload struct {
	Filename string
	Data     []byte
}

// Ext returns the lower-cased extension of the original filename without the dot.
func (u *Upload) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(u.Filename), "."))
}
