package application

import (
	"context"
	"errors"
	"strings"

	"github.com/RomanRosson/Byteful/internal/apperr"
	"github.com/RomanRosson/Byteful/internal/domain"
)

type ItemInput struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
}

type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) GetItem(ctx context.Context, id int64) (domain.Item, error) {
	if id <= 0 {
		return domain.Item{}, apperr.New(apperr.CodeInvalidInput, "invalid item id")
	}
	return s.repo.GetItemByID(ctx, id)
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (domain.Item, error) {
	value, err := itemFromInput(in)
	if err != nil {
		return domain.Item{}, err
	}
	return s.repo.CreateItem(ctx, value)
}

// UpdateItem is a full replace of every mutable field.
func (s *Service) UpdateItem(ctx context.Context, id int64, in ItemInput) (domain.Item, error) {
	if id <= 0 {
		return domain.Item{}, apperr.New(apperr.CodeInvalidInput, "invalid item id")
	}
	value, err := itemFromInput(in)
	if err != nil {
		return domain.Item{}, err
	}
	value.ID = id
	return s.repo.UpdateItem(ctx, value)
}

func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.New(apperr.CodeInvalidInput, "invalid item id")
	}
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.ListItems(ctx)
	}
	return s.repo.SearchItems(ctx, query)
}

func (s *Service) ListItemsByType(ctx context.Context, itemType string) ([]domain.Item, error) {
	return s.repo.ListItemsByType(ctx, itemType)
}

func (s *Service) ListTypes(ctx context.Context) ([]domain.ItemType, error) {
	return s.repo.ListTypesWithCounts(ctx)
}

func (s *Service) ListTypeNames(ctx context.Context) ([]string, error) {
	return s.repo.ListTypeNames(ctx)
}

func (s *Service) CreateType(ctx context.Context, name string) (domain.ItemType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ItemType{}, apperr.New(apperr.CodeInvalidInput, "type name is required")
	}

	if _, err := s.repo.GetTypeByNameFold(ctx, name); err == nil {
		return domain.ItemType{}, apperr.Newf(apperr.CodeConflict, "type %q already exists", name)
	} else if !apperr.IsCode(err, apperr.CodeNotFound) {
		return domain.ItemType{}, err
	}

	return s.repo.CreateType(ctx, name)
}

// RenameType renames the registry row and reassigns every item carrying
// the old name in one transaction.
func (s *Service) RenameType(ctx context.Context, id int64, newName string) (domain.ItemType, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ItemType{}, apperr.New(apperr.CodeInvalidInput, "type name is required")
	}

	current, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		return domain.ItemType{}, err
	}

	existing, err := s.repo.GetTypeByNameFold(ctx, newName)
	if err == nil && existing.ID != current.ID {
		return domain.ItemType{}, apperr.Newf(apperr.CodeConflict, "type %q already exists", newName)
	}
	if err != nil && !apperr.IsCode(err, apperr.CodeNotFound) {
		return domain.ItemType{}, err
	}

	return s.repo.RenameTypeCascade(ctx, id, current.Name, newName)
}

func (s *Service) DeleteType(ctx context.Context, id int64) error {
	current, err := s.repo.GetTypeByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountItemsByType(ctx, current.Name)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Newf(apperr.CodeConflict, "type %q is used by %d item(s)", current.Name, count)
	}

	return s.repo.DeleteType(ctx, id)
}

// Authenticate compares the stored PIN by exact string equality. There
// is intentionally no hashing, lockout or rate limiting.
func (s *Service) Authenticate(ctx context.Context, username, pin string) (bool, error) {
	admin, err := s.repo.GetAdminByUsername(ctx, username)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return admin.PIN == pin, nil
}

// BootstrapAdmin provisions the default credential row when the admin
// table is empty at boot.
func (s *Service) BootstrapAdmin(ctx context.Context, username, pin string) (bool, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(pin) == "" {
		return false, errors.New("bootstrap admin username and pin are required")
	}

	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	_, err = s.repo.CreateAdmin(ctx, domain.AdminCredential{Username: username, PIN: pin})
	if err != nil {
		return false, err
	}
	return true, nil
}

func itemFromInput(in ItemInput) (domain.Item, error) {
	itemType := strings.TrimSpace(in.Type)
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if itemType == "" || title == "" || content == "" {
		return domain.Item{}, apperr.New(apperr.CodeInvalidInput, "type, title and content are required")
	}

	return domain.Item{
		Type:        itemType,
		Title:       title,
		Content:     content,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Tags:        strings.TrimSpace(in.Tags),
	}, nil
}
