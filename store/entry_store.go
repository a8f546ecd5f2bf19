package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Technizer/ModeFilter-Pro/catalog"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// ErrPoolTooLarge means a scope matched more candidates than the configured
// pool cap. The handler reports it as backend trouble rather than scanning
// an unbounded set.
var ErrPoolTooLarge = errors.New("candidate pool exceeds configured cap")

// Store is the read-only entry store adapter. Mode is never expressed as a
// predicate here: the storage layer does not index it, so candidate queries
// stay mode-blind and the eligibility pass happens in-process.
type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

type idRow struct {
	ID uuid.UUID `gorm:"column:id"`
}

// CandidateIDs translates a Scope into a conjunction of membership and
// numeric constraints and returns all matching published entry ids in a
// stable order. No mode filtering, no pagination.
func (s *Store) CandidateIDs(ctx context.Context, sc catalog.Scope) ([]uuid.UUID, error) {
	conditions := []string{"e.status = 'Published'"}
	args := []interface{}{}

	if sc.BaseCategorySlug != "" {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM entry_terms et
			JOIN terms t ON t.id = et.term_id
			WHERE et.entry_id = e.id AND t.taxonomy = 'category' AND t.slug = ?
		)`)
		args = append(args, sc.BaseCategorySlug)
	}

	for _, axis := range models.Axes() {
		if ids := sc.Include[axis]; len(ids) > 0 {
			conditions = append(conditions, memberOf)
			args = append(args, ids)
		}
		if ids := sc.Select[axis]; len(ids) > 0 {
			conditions = append(conditions, memberOf)
			args = append(args, ids)
		}
		if ids := sc.Exclude[axis]; len(ids) > 0 {
			conditions = append(conditions, "NOT "+memberOf)
			args = append(args, ids)
		}
	}

	if sc.PriceMin != nil {
		conditions = append(conditions, "e.price >= ?")
		args = append(args, *sc.PriceMin)
	}
	if sc.PriceMax != nil {
		conditions = append(conditions, "e.price <= ?")
		args = append(args, *sc.PriceMax)
	}
	if sc.RatingMin > 0 {
		conditions = append(conditions, "e.rating_average >= ?")
		args = append(args, float64(sc.RatingMin))
	}
	if sc.StockStatus != "" {
		conditions = append(conditions, "e.stock_status = ?")
		args = append(args, sc.StockStatus)
	}

	query := fmt.Sprintf(`
		SELECT e.id
		FROM entries e
		WHERE %s
		ORDER BY %s
	`, strings.Join(conditions, " AND "), orderClause(sc.Sort))

	if sc.MaxPool > 0 {
		query += " LIMIT ?"
		args = append(args, sc.MaxPool+1)
	}

	var rows []idRow
	if err := s.DB.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("candidate query: %w", err)
	}

	if sc.MaxPool > 0 && len(rows) > sc.MaxPool {
		return nil, ErrPoolTooLarge
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// memberOf matches entries carrying at least one of the given term ids.
// Term ids are globally unique across axes, so no taxonomy join is needed.
const memberOf = `EXISTS (
	SELECT 1 FROM entry_terms et
	WHERE et.entry_id = e.id AND et.term_id IN ?
)`

// orderClause keeps candidate order stable across the two pool builds of a
// single request: every non-random sort carries the id as a tiebreak.
// Random order is explicitly unstable across pages and accepted as such.
func orderClause(sortKey string) string {
	switch sortKey {
	case catalog.SortPriceAsc:
		return "e.price ASC, e.id ASC"
	case catalog.SortPriceDesc:
		return "e.price DESC, e.id ASC"
	case catalog.SortRandom:
		return "random()"
	default:
		return "e.created_at DESC, e.id DESC"
	}
}

// ModeInputs loads the tier-1 and tier-2 resolution inputs for a candidate
// set: each entry's own override and its memberships grouped per axis.
// Memberships come back ordered by term id, the stable within-axis order.
func (s *Store) ModeInputs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.ModeInput, error) {
	inputs := make(map[uuid.UUID]catalog.ModeInput, len(ids))
	if len(ids) == 0 {
		return inputs, nil
	}

	var overrides []struct {
		ID       uuid.UUID `gorm:"column:id"`
		Override string    `gorm:"column:override"`
	}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT e.id, COALESCE(e.meta->>?, '') AS override
		FROM entries e
		WHERE e.id IN ?
	`, catalog.EntryOverrideKey, ids).Scan(&overrides).Error
	if err != nil {
		return nil, fmt.Errorf("override query: %w", err)
	}

	for _, row := range overrides {
		inputs[row.ID] = catalog.ModeInput{
			Override:    row.Override,
			Memberships: map[string][]uuid.UUID{},
		}
	}

	var memberships []struct {
		EntryID  uuid.UUID `gorm:"column:entry_id"`
		TermID   uuid.UUID `gorm:"column:term_id"`
		Taxonomy string    `gorm:"column:taxonomy"`
	}
	err = s.DB.WithContext(ctx).Raw(`
		SELECT et.entry_id, et.term_id, t.taxonomy
		FROM entry_terms et
		JOIN terms t ON t.id = et.term_id
		WHERE et.entry_id IN ?
		ORDER BY et.term_id ASC
	`, ids).Scan(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("membership query: %w", err)
	}

	for _, row := range memberships {
		in, ok := inputs[row.EntryID]
		if !ok {
			continue
		}
		in.Memberships[row.Taxonomy] = append(in.Memberships[row.Taxonomy], row.TermID)
		inputs[row.EntryID] = in
	}

	return inputs, nil
}

// TermDefaults returns every group-level mode default in one map. The
// whole set is small (terms carrying a default are rare) and one query
// beats a per-membership lookup during the eligibility pass.
func (s *Store) TermDefaults(ctx context.Context) (map[uuid.UUID]string, error) {
	var rows []struct {
		ID   uuid.UUID `gorm:"column:id"`
		Mode string    `gorm:"column:mode"`
	}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT t.id, t.meta->>? AS mode
		FROM terms t
		WHERE COALESCE(t.meta->>?, '') <> ''
	`, catalog.TermDefaultKey, catalog.TermDefaultKey).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("term defaults query: %w", err)
	}

	defaults := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		defaults[r.ID] = r.Mode
	}
	return defaults, nil
}

// Sample loads the price/rating fields for facet detection. Callers pass
// at most the first DetectionSample pool ids. A zero price reads as
// unpriced.
func (s *Store) Sample(ctx context.Context, ids []uuid.UUID) ([]catalog.SampleEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []struct {
		Price         float64 `gorm:"column:price"`
		RatingAverage float64 `gorm:"column:rating_average"`
		RatingCount   int     `gorm:"column:rating_count"`
	}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT e.price, e.rating_average, e.rating_count
		FROM entries e
		WHERE e.id IN ?
	`, ids).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("sample query: %w", err)
	}

	sample := make([]catalog.SampleEntry, 0, len(rows))
	for _, r := range rows {
		entry := catalog.SampleEntry{
			RatingAverage: r.RatingAverage,
			RatingCount:   r.RatingCount,
		}
		if r.Price > 0 {
			price := r.Price
			entry.Price = &price
		}
		sample = append(sample, entry)
	}
	return sample, nil
}

// EntriesByIDs hydrates full entries for one page, preserving the eligible
// ordering of the input ids.
func (s *Store) EntriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Entry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var entries []models.Entry
	err := s.DB.WithContext(ctx).
		Where("id IN ? AND status = ?", ids, models.EntryPublished).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("entries query: %w", err)
	}

	byID := make(map[uuid.UUID]models.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}

	ordered := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
		}
	}
	return ordered, nil
}
