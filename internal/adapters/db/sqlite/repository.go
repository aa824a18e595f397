package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RomanRosson/Byteful/internal/apperr"
	"github.com/RomanRosson/Byteful/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type Repository struct {
	db *gorm.DB
}

func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows := make([]ItemModel, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return itemsFromModels(rows), nil
}

func (r *Repository) GetItemByID(ctx context.Context, id int64) (domain.Item, error) {
	var m ItemModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, apperr.New(apperr.CodeNotFound, "item not found")
		}
		return domain.Item{}, err
	}
	return itemFromModel(m), nil
}

func (r *Repository) CreateItem(ctx context.Context, value domain.Item) (domain.Item, error) {
	m := ItemModel{
		Type:        value.Type,
		Title:       value.Title,
		Content:     value.Content,
		Description: value.Description,
		Category:    value.Category,
		Tags:        value.Tags,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Item{}, err
	}
	return itemFromModel(m), nil
}

func (r *Repository) UpdateItem(ctx context.Context, value domain.Item) (domain.Item, error) {
	res := r.db.WithContext(ctx).Model(&ItemModel{}).Where("id = ?", value.ID).Updates(map[string]any{
		"type":        value.Type,
		"title":       value.Title,
		"content":     value.Content,
		"description": value.Description,
		"category":    value.Category,
		"tags":        value.Tags,
		"updated_at":  time.Now().UTC(),
	})
	if res.Error != nil {
		return domain.Item{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Item{}, apperr.New(apperr.CodeNotFound, "item not found")
	}

	return r.GetItemByID(ctx, value.ID)
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ItemModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "item not found")
	}
	return nil
}

// SearchItems matches the query as a substring of any text column.
// SQLite LIKE is case-insensitive for ASCII.
func (r *Repository) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	like := "%" + strings.TrimSpace(query) + "%"
	rows := make([]ItemModel, 0)
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR content LIKE ? OR description LIKE ? OR category LIKE ? OR tags LIKE ?",
			like, like, like, like, like).
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsFromModels(rows), nil
}

func (r *Repository) ListItemsByType(ctx context.Context, itemType string) ([]domain.Item, error) {
	rows := make([]ItemModel, 0)
	err := r.db.WithContext(ctx).
		Where("type = ?", itemType).
		Order("created_at DESC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsFromModels(rows), nil
}

func (r *Repository) ListTypesWithCounts(ctx context.Context) ([]domain.ItemType, error) {
	type row struct {
		ID        int64
		Name      string
		ItemCount int64
		CreatedAt time.Time
	}
	rows := make([]row, 0)
	err := r.db.WithContext(ctx).Raw(`
SELECT t.id,
       t.name,
       COUNT(i.id) AS item_count,
       t.created_at
FROM item_types t
LEFT JOIN items i ON i.type = t.name
GROUP BY t.id, t.name, t.created_at
ORDER BY t.name ASC
`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]domain.ItemType, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.ItemType{ID: m.ID, Name: m.Name, ItemCount: m.ItemCount, CreatedAt: m.CreatedAt})
	}
	return result, nil
}

func (r *Repository) ListTypeNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&ItemTypeModel{}).
		Order("name ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Repository) GetTypeByID(ctx context.Context, id int64) (domain.ItemType, error) {
	var m ItemTypeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemType{}, apperr.New(apperr.CodeNotFound, "type not found")
		}
		return domain.ItemType{}, err
	}
	return r.typeWithCount(ctx, m)
}

func (r *Repository) GetTypeByNameFold(ctx context.Context, name string) (domain.ItemType, error) {
	var m ItemTypeModel
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemType{}, apperr.New(apperr.CodeNotFound, "type not found")
		}
		return domain.ItemType{}, err
	}
	return r.typeWithCount(ctx, m)
}

func (r *Repository) CreateType(ctx context.Context, name string) (domain.ItemType, error) {
	m := ItemTypeModel{Name: name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		// The NOCASE unique index is the last word; a concurrent insert
		// can slip past the service's lookup.
		if isUniqueViolation(err) {
			return domain.ItemType{}, apperr.Newf(apperr.CodeConflict, "type %q already exists", name)
		}
		return domain.ItemType{}, err
	}
	return domain.ItemType{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

// RenameTypeCascade renames the registry row and reassigns every item
// still carrying oldName inside one transaction. A partial rename would
// leave items referencing a name absent from the registry.
func (r *Repository) RenameTypeCascade(ctx context.Context, id int64, oldName, newName string) (domain.ItemType, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&ItemTypeModel{}).Where("id = ?", id).Update("name", newName)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return apperr.Newf(apperr.CodeConflict, "type %q already exists", newName)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.CodeNotFound, "type not found")
		}
		return tx.Model(&ItemModel{}).Where("type = ?", oldName).Updates(map[string]any{
			"type":       newName,
			"updated_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return domain.ItemType{}, err
	}
	return r.GetTypeByID(ctx, id)
}

func (r *Repository) DeleteType(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&ItemTypeModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.CodeNotFound, "type not found")
	}
	return nil
}

func (r *Repository) CountItemsByType(ctx context.Context, name string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ItemModel{}).Where("type = ?", name).Count(&count).Error
	return count, err
}

func (r *Repository) GetAdminByUsername(ctx context.Context, username string) (domain.AdminCredential, error) {
	var m AdminModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AdminCredential{}, apperr.New(apperr.CodeNotFound, "admin not found")
		}
		return domain.AdminCredential{}, err
	}
	return domain.AdminCredential{ID: m.ID, Username: m.Username, PIN: m.PIN, CreatedAt: m.CreatedAt}, nil
}

func (r *Repository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AdminModel{}).Count(&count).Error
	return count, err
}

func (r *Repository) CreateAdmin(ctx context.Context, value domain.AdminCredential) (domain.AdminCredential, error) {
	m := AdminModel{Username: value.Username, PIN: value.PIN}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.AdminCredential{}, err
	}
	return domain.AdminCredential{ID: m.ID, Username: m.Username, PIN: m.PIN, CreatedAt: m.CreatedAt}, nil
}

func (r *Repository) typeWithCount(ctx context.Context, m ItemTypeModel) (domain.ItemType, error) {
	count, err := r.CountItemsByType(ctx, m.Name)
	if err != nil {
		return domain.ItemType{}, err
	}
	return domain.ItemType{ID: m.ID, Name: m.Name, ItemCount: count, CreatedAt: m.CreatedAt}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func itemFromModel(m ItemModel) domain.Item {
	return domain.Item{
		ID:          m.ID,
		Type:        m.Type,
		Title:       m.Title,
		Content:     m.Content,
		Description: m.Description,
		Category:    m.Category,
		Tags:        m.Tags,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func itemsFromModels(rows []ItemModel) []domain.Item {
	result := make([]domain.Item, 0, len(rows))
	for _, m := range rows {
		result = append(result, itemFromModel(m))
	}
	return result
}
