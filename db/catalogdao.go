package db

import (
	"context"

	"escapenote-server/model"
	"gorm.io/gorm"
)

// CatalogDAO reads the static catalog data: genres and faq
type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{db: db}
}

func (catalogDAO *CatalogDAO) ListGenres(ctx context.Context) ([]model.Genre, error) {
	genres := []model.Genre{}
	result := catalogDAO.db.WithContext(ctx).Order("id asc").Find(&genres)
	if result.Error != nil {
		return nil, result.Error
	}
	return genres, nil
}

// ListFaq returns the published questions, sort defaults to position ascending
func (catalogDAO *CatalogDAO) ListFaq(ctx context.Context, term string, sort string, desc bool) ([]model.Faq, error) {
	if sort == "" {
		sort = "position"
	}
	column, err := sortColumn(sort, faqSortColumns)
	if err != nil {
		return nil, err
	}

	query := catalogDAO.db.WithContext(ctx).Where("status = ?", model.StatusPublished)
	if term != "" {
		query = query.Where("question LIKE ?", "%"+term+"%")
	}
	direction := "asc"
	if desc {
		direction = "desc"
	}

	faqList := []model.Faq{}
	result := query.Order(column + " " + direction).Find(&faqList)
	if result.Error != nil {
		return nil, result.Error
	}
	return faqList, nil
}
