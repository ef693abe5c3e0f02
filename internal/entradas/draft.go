package entradas

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/almoxarifado/almox/internal/api"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidDraft is wrapped by every draft validation failure.
var ErrInvalidDraft = errors.New("invalid entrada draft")

// Field names a draft field. Values match the JSON keys of the create payload.
type Field string

const (
	FieldProductID   Field = "produtoId"
	FieldQuantity    Field = "quantidadeAdicionada"
	FieldResponsible Field = "responsavel"
	FieldDestination Field = "destino"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldProductID, FieldQuantity, FieldResponsible, FieldDestination}

// Label returns the pt-BR form label.
func (f Field) Label() string {
	switch f {
	case FieldProductID:
		return "Produto"
	case FieldQuantity:
		return "Quantidade"
	case FieldResponsible:
		return "Responsável"
	case FieldDestination:
		return "Destino"
	}
	return string(f)
}

// Draft is the in-progress entrada. Every field is raw user input.
type Draft struct {
	ProductID     string `validate:"required"`
	QuantityAdded string `validate:"required"`
	Responsible   string `validate:"required"`
	Destination   string `validate:"required"`
}

// EmptyDraft returns a draft with every field empty.
func EmptyDraft() Draft {
	return Draft{}
}

// Get returns the value of field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldProductID:
		return d.ProductID
	case FieldQuantity:
		return d.QuantityAdded
	case FieldResponsible:
		return d.Responsible
	case FieldDestination:
		return d.Destination
	}
	return ""
}

// Set returns a copy of d with field f replaced by value. Unknown fields
// leave the draft unchanged.
func (d Draft) Set(f Field, value string) Draft {
	switch f {
	case FieldProductID:
		d.ProductID = value
	case FieldQuantity:
		d.QuantityAdded = value
	case FieldResponsible:
		d.Responsible = value
	case FieldDestination:
		d.Destination = value
	}
	return d
}

// IsEmpty reports whether no field has been filled in.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// typedDraft is the draft after numeric coercion.
type typedDraft struct {
	ProductID     int64 `validate:"gt=0"`
	QuantityAdded int   `validate:"min=1"`
}

var validate = validator.New()

// FieldError reports which field failed and why.
type FieldError struct {
	Field  Field
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidDraft, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidDraft
}

// Validate applies the form's input constraints: all four fields required and
// the quantity a whole number of at least 1. Fields are checked in form order.
func (d Draft) Validate() error {
	_, err := d.typed()
	return err
}

// Payload converts a valid draft to the create request body.
func (d Draft) Payload() (api.CreateEntradaRequest, error) {
	t, err := d.typed()
	if err != nil {
		return api.CreateEntradaRequest{}, err
	}
	return api.CreateEntradaRequest{
		Product:       api.ProductKey{ID: t.ProductID},
		QuantityAdded: t.QuantityAdded,
		Responsible:   d.Responsible,
		Destination:   d.Destination,
	}, nil
}

func (d Draft) typed() (typedDraft, error) {
	if err := validate.Struct(d); err != nil {
		return typedDraft{}, firstFieldError(err)
	}

	var t typedDraft
	var err error
	if t.ProductID, err = strconv.ParseInt(strings.TrimSpace(d.ProductID), 10, 64); err != nil {
		return typedDraft{}, &FieldError{Field: FieldProductID, Reason: "not a number"}
	}
	if t.QuantityAdded, err = strconv.Atoi(strings.TrimSpace(d.QuantityAdded)); err != nil {
		return typedDraft{}, &FieldError{Field: FieldQuantity, Reason: "not a whole number"}
	}
	if err := validate.Struct(t); err != nil {
		return typedDraft{}, firstFieldError(err)
	}
	return t, nil
}

var structFieldToField = map[string]Field{
	"ProductID":     FieldProductID,
	"QuantityAdded": FieldQuantity,
	"Responsible":   FieldResponsible,
	"Destination":   FieldDestination,
}

func firstFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}
	fe := verrs[0]
	reason := "required"
	switch fe.Tag() {
	case "min", "gt":
		reason = "must be at least 1"
	}
	return &FieldError{Field: structFieldToField[fe.StructField()], Reason: reason}
}
