package repositories

import (
	"time"

	"auditionhub_backend/internal/models"

	"gorm.io/gorm"
)

// ExpenseFilter bounds are inclusive. An empty category means every category.
type ExpenseFilter struct {
	Category  models.ExpenseCategory
	StartDate *time.Time
	EndDate   *time.Time
}

type ExpenseRepository interface {
	Create(db *gorm.DB, expense *models.Expense) error
	FindByID(db *gorm.DB, userID, id string) (*models.Expense, error)
	List(db *gorm.DB, userID string, filter ExpenseFilter) ([]models.Expense, error)
	Recent(db *gorm.DB, userID string, limit int) ([]models.Expense, error)
	Update(db *gorm.DB, expense *models.Expense) error
	Delete(db *gorm.DB, userID, id string) error
}

type expenseRepository struct{}

func NewExpenseRepository() ExpenseRepository {
	return &expenseRepository{}
}

func (r *expenseRepository) Create(db *gorm.DB, expense *models.Expense) error {
	return db.Create(expense).Error
}

func (r *expenseRepository) FindByID(db *gorm.DB, userID, id string) (*models.Expense, error) {
	var expense models.Expense
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		return nil, notFound(err, ErrExpenseNotFound)
	}
	return &expense, nil
}

func (r *expenseRepository) List(db *gorm.DB, userID string, filter ExpenseFilter) ([]models.Expense, error) {
	query := db.Where("user_id = ?", userID)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}

	var expenses []models.Expense
	err := query.Order("date DESC").Order("created_at DESC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Recent(db *gorm.DB, userID string, limit int) ([]models.Expense, error) {
	var expenses []models.Expense
	err := db.Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Update(db *gorm.DB, expense *models.Expense) error {
	return db.Save(expense).Error
}

func (r *expenseRepository) Delete(db *gorm.DB, userID, id string) error {
	return mustAffect(db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{}), ErrExpenseNotFound)
}
