package services

import (
	"context"
	"strings"
	"time"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ExpenseService interface {
	CreateExpense(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateExpenseRequest) (*models.Expense, error)
	GetExpense(db *gorm.DB, userID, id string) (*models.Expense, error)
	ListExpenses(db *gorm.DB, userID string, query *dto.ExpenseListQuery) ([]models.Expense, error)
	UpdateExpense(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateExpenseRequest) (*models.Expense, error)
	DeleteExpense(ctx context.Context, db *gorm.DB, userID, id string) error
	Summary(db *gorm.DB, userID string, query *dto.ExpenseListQuery) (*dto.ExpenseSummary, error)
}

type ExpenseServiceImpl struct {
	expenseRepo  repositories.ExpenseRepository
	auditionRepo repositories.AuditionRepository
	cache        cache.Cache
}

func NewExpenseService(expenseRepo repositories.ExpenseRepository, auditionRepo repositories.AuditionRepository, c cache.Cache) ExpenseService {
	return &ExpenseServiceImpl{
		expenseRepo:  expenseRepo,
		auditionRepo: auditionRepo,
		cache:        c,
	}
}

func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:       userID,
		Amount:       req.Amount,
		Description:  strings.TrimSpace(req.Description),
		Category:     req.Category,
		Date:         date,
		ReceiptURL:   req.ReceiptURL,
		Reimbursable: req.Reimbursable,
		Reimbursed:   req.Reimbursed,
	}
	if req.AuditionID != nil && *req.AuditionID != "" {
		if _, err := s.auditionRepo.FindByID(db, userID, *req.AuditionID); err != nil {
			return nil, repoErr(err)
		}
		expense.AuditionID = req.AuditionID
	}

	if err := s.expenseRepo.Create(db, expense); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return expense, nil
}

func (s *ExpenseServiceImpl) GetExpense(db *gorm.DB, userID, id string) (*models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) ListExpenses(db *gorm.DB, userID string, query *dto.ExpenseListQuery) ([]models.Expense, error) {
	filter, err := expenseFilter(query)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.List(db, userID, filter)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return expenses, nil
}

func (s *ExpenseServiceImpl) UpdateExpense(ctx context.Context, db *gorm.DB, userID, id string, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	expense, err := s.expenseRepo.FindByID(db, userID, id)
	if err != nil {
		return nil, repoErr(err)
	}

	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if req.AuditionID != nil {
		if *req.AuditionID == "" {
			expense.AuditionID = nil
		} else {
			if _, err := s.auditionRepo.FindByID(db, userID, *req.AuditionID); err != nil {
				return nil, repoErr(err)
			}
			expense.AuditionID = req.AuditionID
		}
	}
	setIf(&expense.Amount, req.Amount)
	setIf(&expense.Description, req.Description)
	setIf(&expense.Category, req.Category)
	setIf(&expense.ReceiptURL, req.ReceiptURL)
	setIf(&expense.Reimbursable, req.Reimbursable)
	setIf(&expense.Reimbursed, req.Reimbursed)

	if err := s.expenseRepo.Update(db, expense); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return expense, nil
}

func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, db *gorm.DB, userID, id string) error {
	if err := s.expenseRepo.Delete(db, userID, id); err != nil {
		return repoErr(err)
	}
	invalidateDashboard(ctx, s.cache, userID)
	return nil
}

func (s *ExpenseServiceImpl) Summary(db *gorm.DB, userID string, query *dto.ExpenseListQuery) (*dto.ExpenseSummary, error) {
	expenses, err := s.ListExpenses(db, userID, query)
	if err != nil {
		return nil, err
	}
	return SummarizeExpenses(expenses), nil
}

// SummarizeExpenses totals expenses overall, by category and by outstanding reimbursement.
// Every category is present in ByCategory, zero when unused.
func SummarizeExpenses(expenses []models.Expense) *dto.ExpenseSummary {
	out := &dto.ExpenseSummary{
		Count:      len(expenses),
		ByCategory: make(map[models.ExpenseCategory]float64, len(models.ExpenseCategories)),
	}
	for _, c := range models.ExpenseCategories {
		out.ByCategory[c] = 0
	}
	for i := range expenses {
		e := &expenses[i]
		out.Total += e.Amount
		out.ByCategory[e.Category] += e.Amount
		if e.Outstanding() {
			out.ReimbursableOutstanding += e.Amount
		}
	}
	return out
}

func expenseFilter(query *dto.ExpenseListQuery) (repositories.ExpenseFilter, error) {
	var filter repositories.ExpenseFilter
	if query == nil {
		return filter, nil
	}

	if c := strings.ToUpper(strings.TrimSpace(query.Category)); c != "" && c != algorithms.FilterAll {
		cat := models.ExpenseCategory(c)
		if !cat.Valid() {
			return filter, apperrors.NewBadRequestError("Unknown expense category: " + query.Category)
		}
		filter.Category = cat
	}
	if query.StartDate != "" {
		start, err := time.Parse(time.DateOnly, query.StartDate)
		if err != nil {
			return filter, apperrors.NewBadRequestError("start_date must be YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse(time.DateOnly, query.EndDate)
		if err != nil {
			return filter, apperrors.NewBadRequestError("end_date must be YYYY-MM-DD")
		}
		// inclusive of the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, apperrors.NewBadRequestError("start_date cannot be after end_date")
	}
	return filter, nil
}

func parseExpenseDate(value string) (time.Time, error) {
	d := algorithms.ParseFlexibleDate(value)
	if d == nil {
		return time.Time{}, apperrors.ValidationError(map[string]string{"date": "Must be a date such as 2006-01-02"})
	}
	return *d, nil
}
