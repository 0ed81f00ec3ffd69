package service

import (
	"fmt"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/Sadeghizad/Form-creator/internal/repository"
)

type CategoryService interface {
	Create(userID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	// List returns the public categories plus the user's own.
	List(userID uint) ([]dto.CategoryResponse, error)
	Update(userID, categoryID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(userID, categoryID uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository, userRepo repository.UserRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, userRepo: userRepo}
}

// Create stores a category. Admin-created categories are public (no owner)
// and selectable by every builder; everyone else gets a private one.
func (s *categoryService) Create(userID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := model.Category{Name: req.Name, Description: req.Description}
	admin, err := s.isAdmin(userID)
	if err != nil {
		return nil, err
	}
	if !admin {
		owner := userID
		category.UserID = &owner
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	return categoryResponse(&category), nil
}

func (s *categoryService) List(userID uint) ([]dto.CategoryResponse, error) {
	public, err := s.categoryRepo.FindPublic()
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	mine, err := s.categoryRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	resp := make([]dto.CategoryResponse, 0, len(public)+len(mine))
	for i := range public {
		resp = append(resp, *categoryResponse(&public[i]))
	}
	for i := range mine {
		resp = append(resp, *categoryResponse(&mine[i]))
	}
	return resp, nil
}

func (s *categoryService) Update(userID, categoryID uint, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := s.findEditable(userID, categoryID)
	if err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, fmt.Errorf("error updating category %d: %w", categoryID, err)
	}
	return categoryResponse(category), nil
}

func (s *categoryService) Delete(userID, categoryID uint) error {
	if _, err := s.findEditable(userID, categoryID); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(categoryID); err != nil {
		return fmt.Errorf("error deleting category %d: %w", categoryID, err)
	}
	return nil
}

// findEditable loads the category and checks mutation rights: owners edit
// their own, admins edit the public ones.
func (s *categoryService) findEditable(userID, categoryID uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindNotFound, "Category not found", err)
	}
	if category.Public() {
		admin, err := s.isAdmin(userID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, apperr.New(apperr.KindPermissionDenied, "Only admins can modify public categories.")
		}
		return category, nil
	}
	if *category.UserID != userID {
		return nil, apperr.New(apperr.KindPermissionDenied, "You are not the owner of this category.")
	}
	return category, nil
}

func (s *categoryService) isAdmin(userID uint) (bool, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return false, apperr.Wrap(apperr.KindNotFound, "User not found", err)
	}
	return user.IsAdmin, nil
}

func categoryResponse(category *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          category.ID,
		UserID:      category.UserID,
		Name:        category.Name,
		Description: category.Description,
	}
}
