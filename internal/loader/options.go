package loader

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Options configures snapshot ingestion.
type Options struct {
	// DatePattern extracts the observation date token from a file name.
	// Its first capture group is parsed with DateLayout. Ignored when
	// Date is set.
	DatePattern string `validate:"required_without=Date"`

	// DateLayout is the Go reference layout for the date token.
	DateLayout string `validate:"required_without=Date,omitempty,dateformat"`

	// Date fixes the observation date explicitly instead of extracting
	// it from the file name.
	Date time.Time `validate:"-"`

	// Sheet names the workbook sheet to read. Empty means the first
	// sheet.
	Sheet string `validate:"-"`

	// Workers bounds concurrent file parsing in LoadDirectory. Zero
	// falls back to DefaultWorkers.
	Workers int `validate:"omitempty,min=1,max=64"`

	// Tag identifies the store LoadDirectory assembles.
	Tag string `validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("dateformat", validDateLayout); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the options against their constraints.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid loader options: %w", err)
	}
	return nil
}

// validDateLayout accepts layouts that render the Go reference date and
// parse it back unchanged. Layouts missing the year, month or day fail.
func validDateLayout(fl validator.FieldLevel) bool {
	layout := fl.Field().String()
	if layout == "" {
		return false
	}
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, ref.Format(layout))
	if err != nil {
		return false
	}
	y, m, d := parsed.Date()
	return y == 2006 && m == time.January && d == 2
}
