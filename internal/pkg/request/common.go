package request

import "strconv"

// ListParams binds page/page_size query parameters for list endpoints that
// report totals.
type ListParams struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ByIDRequest binds endpoints that take an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// WindowQuery binds the optional from/size pagination query parameters.
// Values are kept as raw strings so that "absent" and "zero" stay
// distinguishable for the paging validation rules.
type WindowQuery struct {
	From *string `form:"from"`
	Size *string `form:"size"`
}

// FromSize converts the raw query values into optional ints. A value that is
// present but not an integer is reported as (ok == false).
func (q WindowQuery) FromSize() (from, size *int, ok bool) {
	if q.From != nil {
		v, err := strconv.Atoi(*q.From)
		if err != nil {
			return nil, nil, false
		}
		from = &v
	}
	if q.Size != nil {
		v, err := strconv.Atoi(*q.Size)
		if err != nil {
			return nil, nil, false
		}
		size = &v
	}
	return from, size, true
}
