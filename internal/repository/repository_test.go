package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"back_yamdb/internal/database"
	"back_yamdb/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@test.local", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year}
	require.NoError(t, db.Create(title).Error)
	return title
}

func TestUserUniqueness(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.CreateUser(&models.User{Username: "alice", Email: "alice@test.local"}))

	err := repo.CreateUser(&models.User{Username: "alice", Email: "other@test.local"})
	assert.ErrorIs(t, err, ErrUserExists)

	err = repo.CreateUser(&models.User{Username: "bob", Email: "alice@test.local"})
	assert.ErrorIs(t, err, ErrUserExists)

	// The failed inserts must not leave extra rows behind.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestReviewUniquePerTitleAndAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReviewRepository(db)
	user := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)

	require.NoError(t, repo.CreateReview(&models.Review{TitleID: title.ID, AuthorID: user.ID, Text: "good", Score: 8}))

	err := repo.CreateReview(&models.Review{TitleID: title.ID, AuthorID: user.ID, Text: "again", Score: 5})
	assert.ErrorIs(t, err, ErrReviewExists)

	// A different author may still review the same title.
	other := seedUser(t, db, "bob")
	require.NoError(t, repo.CreateReview(&models.Review{TitleID: title.ID, AuthorID: other.ID, Text: "meh", Score: 4}))
}

func TestTitleRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTitleRepository(db)
	title := seedTitle(t, db, "Dune", 1965)
	rated := seedTitle(t, db, "Solaris", 1972)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Review{TitleID: rated.ID, AuthorID: alice.ID, Text: "a", Score: 6}).Error)
	require.NoError(t, db.Create(&models.Review{TitleID: rated.ID, AuthorID: bob.ID, Text: "b", Score: 7}).Error)

	got, err := repo.GetTitleByID(rated.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Rating)
	assert.InDelta(t, 6.5, *got.Rating, 1e-9)

	// No reviews -> no rating, not zero.
	got, err = repo.GetTitleByID(title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)
}

func TestCategoryDeleteSetsTitleCategoryNull(t *testing.T) {
	db := setupTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	titleRepo := NewTitleRepository(db)

	category := &models.Category{Name: "Books", Slug: "books"}
	require.NoError(t, categoryRepo.CreateCategory(category))
	title := &models.Title{Name: "Dune", Year: 1965, CategoryID: &category.ID}
	require.NoError(t, db.Create(title).Error)

	require.NoError(t, categoryRepo.DeleteCategory(category))

	got, err := titleRepo.GetTitleByID(title.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestGenreDeleteRemovesOnlyJoinRows(t *testing.T) {
	db := setupTestDB(t)
	genreRepo := NewGenreRepository(db)
	titleRepo := NewTitleRepository(db)

	genre := &models.Genre{Name: "Sci-Fi", Slug: "sci-fi"}
	require.NoError(t, genreRepo.CreateGenre(genre))
	title := &models.Title{Name: "Dune", Year: 1965}
	require.NoError(t, titleRepo.CreateTitle(title, []models.Genre{*genre}))

	var joinCount int64
	require.NoError(t, db.Model(&models.GenreTitle{}).Count(&joinCount).Error)
	require.EqualValues(t, 1, joinCount)

	require.NoError(t, genreRepo.DeleteGenre(genre))

	require.NoError(t, db.Model(&models.GenreTitle{}).Count(&joinCount).Error)
	assert.EqualValues(t, 0, joinCount)

	got, err := titleRepo.GetTitleByID(title.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Genres)
}

func TestTitleDeleteCascadesReviewsAndComments(t *testing.T) {
	db := setupTestDB(t)
	titleRepo := NewTitleRepository(db)

	user := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)
	review := &models.Review{TitleID: title.ID, AuthorID: user.ID, Text: "good", Score: 8}
	require.NoError(t, db.Create(review).Error)
	require.NoError(t, db.Create(&models.Comment{ReviewID: review.ID, AuthorID: user.ID, Text: "agree"}).Error)

	require.NoError(t, titleRepo.DeleteTitle(title))

	var reviews, comments int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.EqualValues(t, 0, reviews)
	assert.EqualValues(t, 0, comments)
}

func TestUserDeleteCascadesReviewsAndComments(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)

	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")
	title := seedTitle(t, db, "Dune", 1965)
	review := &models.Review{TitleID: title.ID, AuthorID: user.ID, Text: "good", Score: 8}
	require.NoError(t, db.Create(review).Error)
	require.NoError(t, db.Create(&models.Comment{ReviewID: review.ID, AuthorID: other.ID, Text: "agree"}).Error)

	require.NoError(t, userRepo.DeleteUser(user))

	// The author's review goes, and the comment under it goes with the review.
	var reviews, comments, titles int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Title{}).Count(&titles).Error)
	assert.EqualValues(t, 0, reviews)
	assert.EqualValues(t, 0, comments)
	assert.EqualValues(t, 1, titles)
}

func TestListTitlesFilters(t *testing.T) {
	db := setupTestDB(t)
	titleRepo := NewTitleRepository(db)
	categoryRepo := NewCategoryRepository(db)
	genreRepo := NewGenreRepository(db)

	books := &models.Category{Name: "Books", Slug: "books"}
	require.NoError(t, categoryRepo.CreateCategory(books))
	scifi := &models.Genre{Name: "Sci-Fi", Slug: "sci-fi"}
	require.NoError(t, genreRepo.CreateGenre(scifi))

	dune := &models.Title{Name: "Dune", Year: 1965, CategoryID: &books.ID}
	require.NoError(t, titleRepo.CreateTitle(dune, []models.Genre{*scifi}))
	require.NoError(t, titleRepo.CreateTitle(&models.Title{Name: "Hamlet", Year: 1603}, nil))

	titles, total, err := titleRepo.ListTitles(TitleFilter{Category: "books"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune", titles[0].Name)

	titles, total, err = titleRepo.ListTitles(TitleFilter{Genre: "sci-fi"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, titles, 1)
	assert.Equal(t, "Dune", titles[0].Name)

	year := 1603
	_, total, err = titleRepo.ListTitles(TitleFilter{Year: &year}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = titleRepo.ListTitles(TitleFilter{Name: "ham"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = titleRepo.ListTitles(TitleFilter{}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)
	genreRepo := NewGenreRepository(db)

	require.NoError(t, genreRepo.CreateGenre(&models.Genre{Name: "Zeta", Slug: "zeta"}))
	require.NoError(t, genreRepo.CreateGenre(&models.Genre{Name: "Alpha", Slug: "alpha"}))

	genres, _, err := genreRepo.ListGenres("", 1, 10)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "alpha", genres[0].Slug)
	assert.Equal(t, "zeta", genres[1].Slug)
}

func TestCommentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	commentRepo := NewCommentRepository(db)

	user := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 1965)
	review := &models.Review{TitleID: title.ID, AuthorID: user.ID, Text: "good", Score: 8}
	require.NoError(t, db.Create(review).Error)

	first := &models.Comment{ReviewID: review.ID, AuthorID: user.ID, Text: "first"}
	require.NoError(t, db.Create(first).Error)
	second := &models.Comment{ReviewID: review.ID, AuthorID: user.ID, Text: "second"}
	require.NoError(t, db.Create(second).Error)
	// autoCreateTime has second precision in sqlite; force distinct stamps.
	require.NoError(t, db.Model(second).Update("pub_date", first.PubDate.Add(1e9)).Error)

	comments, total, err := commentRepo.ListComments(review.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
}
