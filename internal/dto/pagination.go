package dto

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultLimit applies when a list request omits the limit parameter.
const DefaultLimit = 50

type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit/offset query parameters, applying defaults and
// the per-entity upper bound on limit. The range checks are explicit
// because ozzo's threshold rules skip zero values, and limit=0 must be
// rejected, not skipped.
func ParsePage(query url.Values, maxLimit int) (Page, error) {
	page := Page{Limit: DefaultLimit}
	errs := validation.Errors{}

	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["limit"] = errors.New("must be an integer")
		} else {
			page.Limit = n
		}
	}
	if raw := query.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs["offset"] = errors.New("must be an integer")
		} else {
			page.Offset = n
		}
	}
	if len(errs) > 0 {
		return page, errs
	}

	if page.Limit < 1 || page.Limit > maxLimit {
		errs["limit"] = fmt.Errorf("must be between 1 and %d", maxLimit)
	}
	if page.Offset < 0 {
		errs["offset"] = errors.New("must not be negative")
	}
	return page, errs.Filter()
}
