package tree

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"wikitree/internal/domain"
)

// OrderField is a sortable node attribute.
type OrderField string

const (
	OrderByTitle     OrderField = "title"
	OrderByFileName  OrderField = "fileName"
	OrderByCreatedAt OrderField = "createdAt"
	OrderByUpdatedAt OrderField = "updatedAt"
)

// OrderDirection is the sort direction of a tree query.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// Default and maximum values of tree queries
const (
	DefaultTreeLimit     = 100
	MaxTreeLimit         = 100
	MaxTreeDepth         = 10
	DefaultTreeOrderBy   = OrderByTitle
	DefaultTreeDirection = OrderAsc
)

// Query describes a bounded-depth listing of the tree below a parent.
type Query struct {
	SiteID string

	// Pagination
	Offset int
	Limit  *int // nil = DefaultTreeLimit; an explicit 0 is rejected

	// Depth bounds how many labels below the parent a node's own path may have.
	// 0 and 1 both list immediate children only.
	Depth int

	OrderBy          OrderField
	OrderByDirection OrderDirection

	// Parent selection; ParentID wins over ParentPath. Neither = root.
	ParentID   string
	ParentPath string

	// Types restricts results to these node types. Empty = all types.
	Types []NodeType

	// IncludeAncestors adds the row of every folder along the parent path.
	IncludeAncestors bool
}

// ApplyDefaults fills in default values for unset fields
func (q *Query) ApplyDefaults() {
	if q.Limit == nil {
		limit := DefaultTreeLimit
		q.Limit = &limit
	}
	if q.OrderBy == "" {
		q.OrderBy = DefaultTreeOrderBy
	}
	if q.OrderByDirection == "" {
		q.OrderByDirection = DefaultTreeDirection
	}
}

// LimitValue returns the effective limit.
func (q *Query) LimitValue() int {
	if q.Limit == nil {
		return DefaultTreeLimit
	}
	return *q.Limit
}

// MaxExtraLabels returns how many labels a matching node's folder path may have
// beyond the parent path.
func (q *Query) MaxExtraLabels() int {
	if q.Depth <= 1 {
		return 0
	}
	return q.Depth - 1
}

// Validate checks the query before any storage access. It returns a
// *domain.ValidationError carrying the code of the first failing field.
func (q *Query) Validate() error {
	if err := validation.Validate(q.SiteID, validation.Required); err != nil {
		return domain.NewValidationError(domain.CodeInvalidSite, "site id is required")
	}
	if q.Offset < 0 {
		return domain.NewValidationError(domain.CodeInvalidOffset, fmt.Sprintf("invalid offset %d: must be >= 0", q.Offset))
	}
	if limit := q.LimitValue(); limit < 1 || limit > MaxTreeLimit {
		return domain.NewValidationError(domain.CodeInvalidLimit, fmt.Sprintf("invalid limit %d: must be between 1 and %d", limit, MaxTreeLimit))
	}
	if q.Depth < 0 || q.Depth > MaxTreeDepth {
		return domain.NewValidationError(domain.CodeInvalidDepth, fmt.Sprintf("invalid depth %d: must be between 0 and %d", q.Depth, MaxTreeDepth))
	}

	err := validation.ValidateStruct(q,
		validation.Field(&q.OrderBy, validation.In(OrderByTitle, OrderByFileName, OrderByCreatedAt, OrderByUpdatedAt)),
		validation.Field(&q.OrderByDirection, validation.In(OrderAsc, OrderDesc)),
	)
	if err != nil {
		return domain.NewValidationError(domain.CodeInvalidOrder, fmt.Sprintf("invalid order: %v", err))
	}

	for _, t := range q.Types {
		if !t.Valid() {
			return domain.NewValidationError(domain.CodeInvalidType, fmt.Sprintf("invalid node type %q", t))
		}
	}

	return nil
}
