package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// TermsForEntries returns the chip rows for one axis: every term of the
// taxonomy that at least one of the given entries carries, with the count
// of carriers inside that set. Counts are pool-relative, not global.
func (s *Store) TermsForEntries(ctx context.Context, taxonomy string, entryIDs []uuid.UUID) ([]models.TermCount, error) {
	if len(entryIDs) == 0 {
		return nil, nil
	}

	var rows []models.TermCount
	err := s.DB.WithContext(ctx).Raw(`
		SELECT t.id, t.name, t.slug, COUNT(DISTINCT et.entry_id) AS count
		FROM terms t
		JOIN entry_terms et ON et.term_id = t.id
		WHERE t.taxonomy = ? AND et.entry_id IN ?
		GROUP BY t.id, t.name, t.slug
		ORDER BY t.id ASC
	`, taxonomy, entryIDs).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("terms query (%s): %w", taxonomy, err)
	}
	return rows, nil
}

// ResolveTermRefs maps mixed term references (ids or slugs, as widget
// attributes allow either) to term ids within one axis. Unknown refs are
// dropped silently so a stale widget config degrades instead of failing.
func (s *Store) ResolveTermRefs(ctx context.Context, taxonomy string, refs []string) ([]uuid.UUID, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	var asIDs []uuid.UUID
	var asSlugs []string
	for _, ref := range refs {
		if id, err := uuid.Parse(ref); err == nil {
			asIDs = append(asIDs, id)
		} else if ref != "" {
			asSlugs = append(asSlugs, ref)
		}
	}

	query := `SELECT t.id FROM terms t WHERE t.taxonomy = ? AND (`
	args := []interface{}{taxonomy}
	switch {
	case len(asIDs) > 0 && len(asSlugs) > 0:
		query += "t.id IN ? OR t.slug IN ?"
		args = append(args, asIDs, asSlugs)
	case len(asIDs) > 0:
		query += "t.id IN ?"
		args = append(args, asIDs)
	case len(asSlugs) > 0:
		query += "t.slug IN ?"
		args = append(args, asSlugs)
	default:
		return nil, nil
	}
	query += ") ORDER BY t.id ASC"

	var rows []idRow
	if err := s.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("term ref query (%s): %w", taxonomy, err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}
