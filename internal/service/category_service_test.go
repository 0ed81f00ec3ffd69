package service

import (
	"testing"

	"github.com/Sadeghizad/Form-creator/internal/apperr"
	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/Sadeghizad/Form-creator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryEnv() (*fakeCategoryRepo, CategoryService) {
	categories := newFakeCategoryRepo()
	users := newFakeUserRepo()
	users.add(model.User{ID: 1, Username: "root", IsAdmin: true})
	users.add(model.User{ID: 2, Username: "alice"})
	users.add(model.User{ID: 3, Username: "bob"})
	return categories, NewCategoryService(categories, users)
}

func TestCreateCategoryAdminGetsPublic(t *testing.T) {
	_, svc := newCategoryEnv()

	public, err := svc.Create(1, dto.CreateCategoryRequest{Name: "General"})
	require.NoError(t, err)
	assert.Nil(t, public.UserID)

	private, err := svc.Create(2, dto.CreateCategoryRequest{Name: "Mine"})
	require.NoError(t, err)
	require.NotNil(t, private.UserID)
	assert.Equal(t, uint(2), *private.UserID)
}

func TestListCategoriesPublicPlusOwn(t *testing.T) {
	_, svc := newCategoryEnv()
	_, err := svc.Create(1, dto.CreateCategoryRequest{Name: "General"})
	require.NoError(t, err)
	_, err = svc.Create(2, dto.CreateCategoryRequest{Name: "Alice's"})
	require.NoError(t, err)
	_, err = svc.Create(3, dto.CreateCategoryRequest{Name: "Bob's"})
	require.NoError(t, err)

	listed, err := svc.List(2)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	names := []string{listed[0].Name, listed[1].Name}
	assert.ElementsMatch(t, []string{"General", "Alice's"}, names)
}

func TestMutateCategoryPermissions(t *testing.T) {
	_, svc := newCategoryEnv()
	public, err := svc.Create(1, dto.CreateCategoryRequest{Name: "General"})
	require.NoError(t, err)
	mine, err := svc.Create(2, dto.CreateCategoryRequest{Name: "Mine"})
	require.NoError(t, err)

	_, err = svc.Update(2, public.ID, dto.CreateCategoryRequest{Name: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, "Only admins can modify public categories.", apperr.MessageOf(err))

	_, err = svc.Update(3, mine.ID, dto.CreateCategoryRequest{Name: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, "You are not the owner of this category.", apperr.MessageOf(err))

	_, err = svc.Update(1, public.ID, dto.CreateCategoryRequest{Name: "Renamed"})
	assert.NoError(t, err)
	_, err = svc.Update(2, mine.ID, dto.CreateCategoryRequest{Name: "Renamed"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(2, mine.ID))
	err = svc.Delete(2, 42)
	assert.True(t, apperr.IsNotFound(err))
}
