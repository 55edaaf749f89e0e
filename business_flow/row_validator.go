package businessflow

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/telshop/phone-catalog/repository"
	"github.com/telshop/phone-catalog/utils"
)

// RequiredColumns lists the column names every import source must
// declare in its header, in reporting order.
var RequiredColumns = []string{"name", "price", "image", "release_date", "lte_exists"}

// Rejection reason strings, kept stable because operators grep for them
const (
	ReasonMissingData        = "missing essential data"
	ReasonInvalidPrice       = "invalid price format"
	ReasonInvalidReleaseDate = "invalid release_date format"
	ReasonInvalidImageURL    = "invalid image URL"
)

// PhoneCandidate is a fully typed, validated row ready for upsert
type PhoneCandidate struct {
	Name   string
	Fields repository.PhoneFields
}

// RowRejection explains why a row was refused. It is a value, not a
// fault: rejected rows are skipped and the import continues.
type RowRejection struct {
	Reason string
	Field  string
	Value  string
}

func (r *RowRejection) String() string {
	if r.Value != "" {
		return r.Reason + ": '" + r.Value + "'"
	}
	return r.Reason
}

// RowValidator turns one raw row into a typed candidate or a rejection.
// It is a pure check with no side effects; the same row always yields
// the same outcome.
type RowValidator struct {
	validate *validator.Validate
}

// NewRowValidator creates a row validator
func NewRowValidator() *RowValidator {
	return &RowValidator{validate: validator.New()}
}

// ValidateRow checks one raw row field by field, short-circuiting at
// the first failure:
//  1. all five required fields present and non-empty
//  2. price parses as a non-negative decimal
//  3. release_date matches YYYY-MM-DD
//  4. image is a syntactically valid URL
//  5. lte_exists coerces to bool (never rejects; unknown words mean false)
func (v *RowValidator) ValidateRow(row map[string]string) (*PhoneCandidate, *RowRejection) {
	name := row["name"]
	priceStr := row["price"]
	imageURL := row["image"]
	releaseDateStr := row["release_date"]
	lteExistsStr := row["lte_exists"]

	if name == "" || priceStr == "" || imageURL == "" || releaseDateStr == "" || lteExistsStr == "" {
		return nil, &RowRejection{Reason: ReasonMissingData}
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		return nil, &RowRejection{Reason: ReasonInvalidPrice, Field: "price", Value: priceStr}
	}

	releaseDate, err := time.Parse(utils.DateLayout, releaseDateStr)
	if err != nil {
		return nil, &RowRejection{Reason: ReasonInvalidReleaseDate, Field: "release_date", Value: releaseDateStr}
	}

	if err := v.validate.Var(imageURL, "url"); err != nil {
		return nil, &RowRejection{Reason: ReasonInvalidImageURL, Field: "image", Value: imageURL}
	}

	return &PhoneCandidate{
		Name: name,
		Fields: repository.PhoneFields{
			Price:       price.Round(2),
			Image:       imageURL,
			ReleaseDate: releaseDate,
			LTEExists:   CoerceBool(lteExistsStr),
		},
	}, nil
}

// CoerceBool lowercases a free-form boolean column and matches it
// against the accepted truthy set; everything else is false.
func CoerceBool(s string) bool {
	lowered := strings.ToLower(strings.TrimSpace(s))
	for _, truthy := range utils.TruthyValues {
		if lowered == truthy {
			return true
		}
	}
	return false
}
