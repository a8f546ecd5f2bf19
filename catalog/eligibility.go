package catalog

import (
	"github.com/google/uuid"
)

// FilterEligible runs the O(n) mode pass over the candidate pool, keeping
// entries whose effective mode matches the requested pool type. Input order
// is preserved; this is the only place candidate order turns into eligible
// order.
func FilterEligible(candidates []uuid.UUID, resolver *Resolver, pool PoolType) []uuid.UUID {
	eligible := make([]uuid.UUID, 0, len(candidates))
	seen := make(map[uuid.UUID]bool, len(candidates))

	for _, id := range candidates {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true

		mode := resolver.Resolve(id)
		if pool == PoolCatalog {
			if mode == ModeCatalogOnly {
				eligible = append(eligible, id)
			}
		} else if mode != ModeCatalogOnly {
			eligible = append(eligible, id)
		}
	}

	return eligible
}

// PageResult is one slice of the eligible set.
type PageResult struct {
	IDs        []uuid.UUID
	Page       int
	TotalPages int
	Total      int
}

// Paginate slices the eligible set for the requested page. TotalPages is
// ceil(total/perPage) and never less than 1; the requested page is clamped
// to [1, TotalPages], so out-of-range pages are never an error.
func Paginate(eligible []uuid.UUID, page, perPage int) PageResult {
	if perPage < 1 {
		perPage = 1
	}

	total := len(eligible)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * perPage
	end := offset + perPage
	if offset > total {
		offset = total
	}
	if end > total {
		end = total
	}

	return PageResult{
		IDs:        eligible[offset:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}
