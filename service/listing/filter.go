package listingsvc

import (
	"net/url"
	"strconv"
	"strings"

	listingrepo "github.com/Kashh99/closet-backend/repository/listing"
	"github.com/Kashh99/closet-backend/util/fault"
)

// reserved query keys that never become filter clauses.
var reservedKeys = map[string]bool{"page": true, "limit": true, "sort": true, "fields": true}

const maxLimit = 100

// ParseQuery turns browse query parameters into a typed filter. Supported
// shapes: `field=v` (equality), `field[op]=v` with op in gt|gte|lt|lte, and
// `field[in]=a,b,c`. Unknown fields are rejected by the repository's
// allow-list.
func ParseQuery(q url.Values) (listingrepo.Filter, error) {
	f := listingrepo.Filter{Page: 1, Limit: 10}

	for key, vals := range q {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		field, op, err := splitKey(key)
		if err != nil {
			return f, err
		}
		if op == listingrepo.OpIn {
			f.Clauses = append(f.Clauses, listingrepo.Clause{
				Field:  field,
				Op:     op,
				Values: splitList(vals[0]),
			})
			continue
		}
		f.Clauses = append(f.Clauses, listingrepo.Clause{Field: field, Op: op, Value: vals[0]})
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return f, fault.New(fault.Validation, "page must be a positive integer")
		}
		f.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			return f, fault.New(fault.Validation, "limit must be between 1 and 100")
		}
		f.Limit = n
	}
	for _, s := range splitList(q.Get("sort")) {
		desc := strings.HasPrefix(s, "-")
		f.Sort = append(f.Sort, listingrepo.SortKey{Field: strings.TrimPrefix(s, "-"), Desc: desc})
	}

	return f, nil
}

func splitKey(key string) (string, listingrepo.Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, listingrepo.OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", fault.New(fault.Validation, "malformed filter key: "+key)
	}
	field := key[:open]
	op := listingrepo.Op(key[open+1 : len(key)-1])
	switch op {
	case listingrepo.OpGt, listingrepo.OpGte, listingrepo.OpLt, listingrepo.OpLte, listingrepo.OpIn:
		return field, op, nil
	}
	return "", "", fault.New(fault.Validation, "unsupported filter operator: "+string(op))
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
