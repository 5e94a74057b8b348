package product

import "fmt"

// Reason explains why a spreadsheet row or marketplace item was not applied.
type Reason string

const (
	ReasonEmptyKey        Reason = "empty_key"
	ReasonEmptyValue      Reason = "empty_value"
	ReasonInvalidNumber   Reason = "invalid_number"
	ReasonNotFound        Reason = "not_found"
	ReasonMissingRequired Reason = "missing_required_field"
	ReasonNoImages        Reason = "no_images"
	ReasonDuplicate       Reason = "duplicate"
)

// Rejection is one row that was skipped. Row is the 1-based spreadsheet row.
type Rejection struct {
	Row    int    `json:"row"`
	Key    string `json:"key,omitempty"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (r Rejection) String() string {
	s := fmt.Sprintf("row %d: %s", r.Row, r.Reason)
	if r.Key != "" {
		s += fmt.Sprintf(" (%s)", r.Key)
	}
	if r.Detail != "" {
		s += ": " + r.Detail
	}
	return s
}

// Outcome summarizes a bulk run.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated" // every row applied
	OutcomePartial Outcome = "partial" // some rows applied, some rejected
	OutcomeNone    Outcome = "none"    // nothing matched or nothing to import
)

// Result holds counters and per-row rejections from a bulk run.
type Result struct {
	TotalRows  int         `json:"total_rows"`
	Updated    int         `json:"updated"`
	Created    int         `json:"created"`
	NewImages  int         `json:"new_images,omitempty"`
	CreatedIDs []int       `json:"created_ids,omitempty"`
	Rejections []Rejection `json:"rejections"`
}

func newResult() *Result {
	return &Result{Rejections: []Rejection{}}
}

func (r *Result) reject(row int, key string, reason Reason, detail string) {
	r.Rejections = append(r.Rejections, Rejection{Row: row, Key: key, Reason: reason, Detail: detail})
}

// Applied is the number of rows that changed the catalog.
func (r *Result) Applied() int {
	return r.Updated + r.Created
}

// Skipped is the number of rejected rows.
func (r *Result) Skipped() int {
	return len(r.Rejections)
}

func (r *Result) Outcome() Outcome {
	switch {
	case r.Applied() == 0:
		return OutcomeNone
	case len(r.Rejections) == 0:
		return OutcomeUpdated
	default:
		return OutcomePartial
	}
}
