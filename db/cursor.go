package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// sort keys accepted by the API, mapped to database columns
var (
	listingSortColumns = map[string]string{
		"createdAt":     "created_at",
		"updatedAt":     "updated_at",
		"view":          "view",
		"reviewsCount":  "reviews_count",
		"reviewsRating": "reviews_rating",
		"name":          "name",
	}
	reviewSortColumns = map[string]string{
		"createdAt": "created_at",
	}
	faqSortColumns = map[string]string{
		"createdAt": "created_at",
		"position":  "position",
	}
)

// Page describes a keyset page request. Take is the page size, the query fetches
// Take+1 rows so that the paginator can tell whether another page exists.
type Page struct {
	Take   int
	Cursor string
	Sort   string
	Desc   bool
}

func sortColumn(sort string, columns map[string]string) (string, error) {
	if sort == "" {
		return "created_at", nil
	}
	column, ok := columns[sort]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, sort)
	}
	return column, nil
}

// applyCursor orders tx by (column, id) and restricts it to the rows strictly
// after the cursor row. table and column never come from user input.
func applyCursor(ctx context.Context, tx *gorm.DB, table string, page Page, columns map[string]string) (*gorm.DB, error) {
	column, err := sortColumn(page.Sort, columns)
	if err != nil {
		return nil, err
	}

	direction, comparison := "ASC", ">"
	if page.Desc {
		direction, comparison = "DESC", "<"
	}

	if page.Cursor != "" {
		var count int64
		result := tx.Session(&gorm.Session{NewDB: true}).WithContext(ctx).Table(table).Where("id = ?", page.Cursor).Count(&count)
		if result.Error != nil {
			return nil, result.Error
		}
		if count == 0 {
			return nil, ErrInvalidCursor
		}

		cursorValue := fmt.Sprintf("(SELECT c.%s FROM %s c WHERE c.id = ?)", column, table)
		tx = tx.Where(fmt.Sprintf("(%[1]s.%[2]s %[3]s %[4]s OR (%[1]s.%[2]s = %[4]s AND %[1]s.id %[3]s ?))", table, column, comparison, cursorValue),
			page.Cursor, page.Cursor, page.Cursor)
	}

	return tx.Order(fmt.Sprintf("%[1]s.%[2]s %[3]s, %[1]s.id %[3]s", table, column, direction)).Limit(page.Take + 1), nil
}
