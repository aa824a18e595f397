package domain

import "context"

type Repository interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItemByID(ctx context.Context, id int64) (Item, error)
	CreateItem(ctx context.Context, value Item) (Item, error)
	UpdateItem(ctx context.Context, value Item) (Item, error)
	DeleteItem(ctx context.Context, id int64) error
	SearchItems(ctx context.Context, query string) ([]Item, error)
	ListItemsByType(ctx context.Context, itemType string) ([]Item, error)

	ListTypesWithCounts(ctx context.Context) ([]ItemType, error)
	ListTypeNames(ctx context.Context) ([]string, error)
	GetTypeByID(ctx context.Context, id int64) (ItemType, error)
	GetTypeByNameFold(ctx context.Context, name string) (ItemType, error)
	CreateType(ctx context.Context, name string) (ItemType, error)
	RenameTypeCascade(ctx context.Context, id int64, oldName, newName string) (ItemType, error)
	DeleteType(ctx context.Context, id int64) error
	CountItemsByType(ctx context.Context, name string) (int64, error)

	GetAdminByUsername(ctx context.Context, username string) (AdminCredential, error)
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, value AdminCredential) (AdminCredential, error)
}
