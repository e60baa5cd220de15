package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"exercise-tracker/internal/domain"
	"exercise-tracker/internal/repository"
)

var (
	// ErrInvalidDate indicates a date string that does not parse as a calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidLimit indicates a limit that is not a non-negative integer.
	ErrInvalidLimit = errors.New("invalid limit")
)

// dateLayouts are the accepted input formats for exercise and filter dates.
var dateLayouts = []string{
	"2006-01-02",
	domain.DateDisplayLayout,
	time.RFC3339,
}

// UserLog pairs a user with a possibly filtered view of their log. The user's
// Count stays the stored unfiltered total regardless of filters.
type UserLog struct {
	User    domain.User
	Entries []domain.LogEntry
}

// ExerciseService covers appending to and querying a user's exercise log.
type ExerciseService interface {
	AddExercise(ctx context.Context, userID, description string, duration float64, date string) (*domain.User, *domain.LogEntry, error)
	GetLogs(ctx context.Context, userID, from, to, limit string) (*UserLog, error)
}

type exerciseService struct {
	users repository.UserRepository
	logs  repository.ExerciseLogRepository
}

func NewExerciseService(users repository.UserRepository, logs repository.ExerciseLogRepository) ExerciseService {
	return &exerciseService{
		users: users,
		logs:  logs,
	}
}

// AddExercise appends one entry to the user's log. An empty date means the
// current date. Date validation happens before any repository access so an
// invalid date never reaches the database.
func (s *exerciseService) AddExercise(ctx context.Context, userID, description string, duration float64, date string) (*domain.User, *domain.LogEntry, error) {
	var (
		day time.Time
		err error
	)
	if date == "" {
		day = dateOnly(time.Now())
	} else {
		day, err = parseDate(date)
		if err != nil {
			return nil, nil, err
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	entry := &domain.LogEntry{
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        day,
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}
	user.Count++

	return user, entry, nil
}

// GetLogs returns the user's log narrowed by the optional from/to/limit
// filters. Empty filter strings mean no restriction.
func (s *exerciseService) GetLogs(ctx context.Context, userID, from, to, limit string) (*UserLog, error) {
	var filter repository.LogFilter

	if from != "" {
		day, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		filter.From = &day
	}
	if to != "" {
		day, err := parseDate(to)
		if err != nil {
			return nil, err
		}
		filter.To = &day
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return nil, ErrInvalidLimit
		}
		filter.Limit = &n
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entries, err := s.logs.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}

	return &UserLog{User: *user, Entries: entries}, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return dateOnly(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// dateOnly strips any time-of-day component, keeping the calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
