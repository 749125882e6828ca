package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shashiranjanraj/merchdesk/pkg/cache"
	"github.com/shashiranjanraj/merchdesk/pkg/metrics"
	"gorm.io/gorm"
)

// Page size bounds for the table editor. A request outside the range is
// clamped, never rejected.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// primaryKeys declares the editable tables and each table's primary-key
// column. Being listed here is what makes a table editable: everything
// else, including sqlite internals and the auth tables, is unreachable
// through the editor.
var primaryKeys = map[string]string{
	"users":       "user_id",
	"products":    "product_id",
	"orders":      "order_id",
	"order_items": "order_item_id",
	"reviews":     "review_id",
	"events":      "event_id",
}

// TableService is the generic allow-listed editor over the commerce
// tables. Table and column names are validated against the declared
// allow-list and the live schema before they are ever interpolated into
// SQL; values always travel as bind parameters.
type TableService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewTableService(db *gorm.DB, c *cache.Cache) *TableService {
	return &TableService{db: db, cache: c}
}

// Tables returns the editable table names, alphabetically.
func (s *TableService) Tables() []string {
	names := make([]string, 0, len(primaryKeys))
	for name := range primaryKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Column struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"is_primary"`
}

type TableSchema struct {
	Table      string   `json:"table"`
	PrimaryKey string   `json:"primary_key"`
	Columns    []Column `json:"columns"`
}

// Schema returns a table's live column list. The primary key comes from
// the declaration above, not from the store's flags, so the editor keys
// rows the same way the rest of the service does.
func (s *TableService) Schema(table string) (*TableSchema, error) {
	pk, ok := primaryKeys[table]
	if !ok {
		return nil, ErrInvalidTable
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var raw []struct {
		Name string
		Type string
	}
	if err := s.db.Raw(`SELECT name, type FROM pragma_table_info(?)`, table).Scan(&raw).Error; err != nil {
		return nil, err
	}

	columns := make([]Column, 0, len(raw))
	for _, c := range raw {
		columns = append(columns, Column{Name: c.Name, Type: c.Type, IsPrimary: c.Name == pk})
	}
	return &TableSchema{Table: table, PrimaryKey: pk, Columns: columns}, nil
}

// columnSet returns the table's live column names for validation.
func (s *TableService) columnSet(table string) (map[string]bool, error) {
	schema, err := s.Schema(table)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(schema.Columns))
	for _, c := range schema.Columns {
		set[c.Name] = true
	}
	return set, nil
}

// ClampLimit folds a requested page size into [1, MaxPageSize]; zero or
// negative means the default.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// List returns one page of rows ordered by primary key, plus the table's
// total row count. Pages are 1-based.
func (s *TableService) List(table string, page, limit int) ([]map[string]any, int64, error) {
	pk, ok := primaryKeys[table]
	if !ok {
		return nil, 0, ErrInvalidTable
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	limit = ClampLimit(limit)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int64
	if err := s.db.Raw(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]map[string]any, 0, limit)
	err := s.db.Raw(
		fmt.Sprintf(`SELECT * FROM %s ORDER BY %s ASC LIMIT ? OFFSET ?`, table, pk),
		limit, offset,
	).Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Get returns a single row by primary key, or nil when absent.
func (s *TableService) Get(table, id string) (map[string]any, error) {
	pk, ok := primaryKeys[table]
	if !ok {
		return nil, ErrInvalidTable
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	row := map[string]any{}
	res := s.db.Raw(
		fmt.Sprintf(`SELECT * FROM %s WHERE %s = ?`, table, pk), id,
	).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return row, nil
}

// Create inserts a row built from the record's columns. Unknown columns
// are rejected up front; constraint failures from the store come back as
// ErrConstraint.
func (s *TableService) Create(table string, record map[string]any) error {
	if _, ok := primaryKeys[table]; !ok {
		return ErrInvalidTable
	}
	if len(record) == 0 {
		return ErrEmptyRecord
	}
	columns, err := s.columnSet(table)
	if err != nil {
		return err
	}
	for col := range record {
		if !columns[col] {
			return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, table, col)
		}
	}
	applyItemTotal(table, record)

	defer metrics.ObserveDBQuery("insert", time.Now())
	if err := s.db.Table(table).Create(record).Error; err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("%w: %v", ErrConstraint, err)
		}
		return err
	}
	s.invalidateAggregates()
	return nil
}

// Update applies the record's columns to the row with the given primary
// key. A key that matches no row is a no-op, not an error.
func (s *TableService) Update(table, id string, record map[string]any) error {
	pk, ok := primaryKeys[table]
	if !ok {
		return ErrInvalidTable
	}
	delete(record, pk) // the key is addressed by the URL, never rewritten
	if len(record) == 0 {
		return ErrEmptyRecord
	}
	columns, err := s.columnSet(table)
	if err != nil {
		return err
	}
	for col := range record {
		if !columns[col] {
			return fmt.Errorf("%w: %s.%s", ErrInvalidColumn, table, col)
		}
	}
	if table == "order_items" {
		if err := s.completeItemTotal(table, id, record); err != nil {
			return err
		}
	}

	defer metrics.ObserveDBQuery("update", time.Now())
	res := s.db.Table(table).Where(fmt.Sprintf("%s = ?", pk), id).Updates(record)
	if res.Error != nil {
		if isConstraintErr(res.Error) {
			return fmt.Errorf("%w: %v", ErrConstraint, res.Error)
		}
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.invalidateAggregates()
	}
	return nil
}

// Delete removes the row with the given primary key. A key that matches
// no row is a no-op; ErrConstraint means child rows still reference it.
func (s *TableService) Delete(table, id string) error {
	pk, ok := primaryKeys[table]
	if !ok {
		return ErrInvalidTable
	}

	defer metrics.ObserveDBQuery("delete", time.Now())
	res := s.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, pk), id)
	if res.Error != nil {
		if isConstraintErr(res.Error) {
			return fmt.Errorf("%w: %v", ErrConstraint, res.Error)
		}
		return res.Error
	}
	if res.RowsAffected > 0 {
		s.invalidateAggregates()
	}
	return nil
}

// applyItemTotal recomputes item_total on an order_items write when both
// factors are present. A stored total that disagrees with quantity times
// price corrupts every revenue aggregate downstream.
func applyItemTotal(table string, record map[string]any) {
	if table != "order_items" {
		return
	}
	qty, qok := toFloat(record["quantity"])
	price, pok := toFloat(record["item_price"])
	if qok && pok {
		record["item_total"] = qty * price
	}
}

// completeItemTotal handles the partial-update case: when only one of
// quantity/item_price changes, the missing factor is read from the
// existing row so the recomputed total stays consistent.
func (s *TableService) completeItemTotal(table, id string, record map[string]any) error {
	_, hasQty := record["quantity"]
	_, hasPrice := record["item_price"]
	if !hasQty && !hasPrice {
		return nil
	}
	if hasQty && hasPrice {
		applyItemTotal(table, record)
		return nil
	}

	current, err := s.Get(table, id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil // nothing to update, the write will be a no-op
	}
	// The borrowed factor is written back unchanged, which is harmless.
	if !hasQty {
		record["quantity"] = current["quantity"]
	}
	if !hasPrice {
		record["item_price"] = current["item_price"]
	}
	applyItemTotal(table, record)
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// invalidateAggregates drops every cached aggregate after a mutation. The
// editor cannot tell which numbers a row change moves, so it drops all.
func (s *TableService) invalidateAggregates() {
	_ = s.cache.Del(keyDashboardStats, keyGraphData, keyAdvancedStats)
}
