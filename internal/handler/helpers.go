package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"wikitree/internal/domain"
	"wikitree/internal/domain/models/tree"
)

// parseTreeQuery reads tree query parameters. Only syntax is checked here;
// ranges are validated by the service.
func parseTreeQuery(siteID string, values url.Values) (*tree.Query, error) {
	query := &tree.Query{
		SiteID:           siteID,
		ParentID:         values.Get("parentId"),
		ParentPath:       values.Get("parentPath"),
		OrderBy:          tree.OrderField(values.Get("orderBy")),
		OrderByDirection: tree.OrderDirection(values.Get("orderByDirection")),
	}

	var err error
	if query.Offset, err = intParam(values, "offset", 0, domain.CodeInvalidOffset); err != nil {
		return nil, err
	}
	if query.Depth, err = intParam(values, "depth", 0, domain.CodeInvalidDepth); err != nil {
		return nil, err
	}
	if values.Has("limit") {
		limit, err := intParam(values, "limit", 0, domain.CodeInvalidLimit)
		if err != nil {
			return nil, err
		}
		query.Limit = &limit
	}

	// types=folder,page and types=folder&types=page are both accepted
	for _, raw := range values["types"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				query.Types = append(query.Types, tree.NodeType(t))
			}
		}
	}

	// Anything but a true value leaves ancestors out
	query.IncludeAncestors, _ = strconv.ParseBool(values.Get("includeAncestors"))

	return query, nil
}

func intParam(values url.Values, key string, fallback int, code string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(code, fmt.Sprintf("invalid %s %q: must be an integer", key, raw))
	}
	return n, nil
}
