package shop

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// maxPrice is the first value that no longer fits NUMERIC(12,2).
var maxPrice = decimal.New(1, 10)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// check runs the struct rules and reports the first failing field.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required", "notblank":
		return invalid(fe.Field(), fe.Field()+" is required")
	case "email":
		return invalid(fe.Field(), "enter a valid email address")
	case "eqfield":
		return invalid(fe.Field(), "passwords do not match")
	default:
		return invalid(fe.Field(), "is invalid")
	}
}

type SignupForm struct {
	Name            string `form:"name" validate:"notblank"`
	Email           string `form:"email" validate:"notblank,email"`
	Password        string `form:"password" validate:"notblank"`
	ConfirmPassword string `form:"confirm_password" validate:"notblank,eqfield=Password"`
	Address         string `form:"address"`
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (f *SignupForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = normalizeEmail(f.Email)
	f.Address = strings.TrimSpace(f.Address)
}

type CheckoutForm struct {
	Name    string `form:"name" validate:"notblank"`
	Email   string `form:"email" validate:"notblank,email"`
	Address string `form:"address"`
}

func (f *CheckoutForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = normalizeEmail(f.Email)
	f.Address = strings.TrimSpace(f.Address)
}

// ProductForm is the raw admin input; Parse turns it into a Product.
type ProductForm struct {
	Name        string `form:"name" validate:"notblank"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"notblank"`
	Category    string `form:"category"`
	ImageURL    string `form:"image_url"`
}

func (f ProductForm) Parse() (Product, error) {
	if err := check(f); err != nil {
		return Product{}, err
	}
	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil || price.IsNegative() {
		return Product{}, invalid("price", "price must be a non-negative number")
	}
	// prices are stored as NUMERIC(12,2)
	if price.Exponent() < -2 && !price.Equal(price.Truncate(2)) {
		return Product{}, invalid("price", "price can have at most 2 decimal places")
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return Product{}, invalid("price", "price is too large")
	}
	return Product{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Price:       price,
		Category:    strings.TrimSpace(f.Category),
		ImageURL:    strings.TrimSpace(f.ImageURL),
	}, nil
}

// ParseRating accepts any finite number.
func ParseRating(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("rating", "rating must be a number")
	}
	return v, nil
}

// ParseID reads a path id; anything that is not a positive integer is reported as not found.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound
	}
	return id, nil
}
