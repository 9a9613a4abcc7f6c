package directory

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"daleel/internal/domain"
)

// dataFile is the on-disk layout:
//
//	[[doctor]]
//	id = 101
//	name = "..."
//	...
type dataFile struct {
	Doctors []domain.DoctorRecord `toml:"doctor" validate:"required,min=1,dive"`
}

// Load returns the directory in path, or the built-in one when path is empty.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a TOML directory shipped alongside the binary.
func LoadFile(path string) (*Store, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates TOML directory data.
func Parse(b []byte) (*Store, error) {
	var df dataFile
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&df); err != nil {
		return nil, fmt.Errorf("decode directory file: %w", err)
	}
	if err := validator.New().Struct(df); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("invalid directory file: %s: failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, fmt.Errorf("invalid directory file: %w", err)
	}
	return New(df.Doctors)
}
