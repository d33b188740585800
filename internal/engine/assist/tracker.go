package assist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_recruiter/internal/engine"
)

// ApplicationStatus represents the state of a tracked application.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// ErrNotFound is returned for operations on an unknown application id.
var ErrNotFound = errors.New("application not found")

// FollowUp is one dated follow-up note on an application.
type FollowUp struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// Application is a single tracked job application, persisted as one entry
// in the JSON array file.
type Application struct {
	ID          int64             `json:"id"`
	Company     string            `json:"company"`
	Position    string            `json:"position"`
	Status      ApplicationStatus `json:"status"`
	AppliedDate string            `json:"applied_date"`
	LastUpdated string            `json:"last_updated"`
	Notes       string            `json:"notes"`
	URL         string            `json:"url,omitempty"`
	SalaryRange string            `json:"salary_range,omitempty"`
	Location    string            `json:"location,omitempty"`
	ContactInfo string            `json:"contact_info,omitempty"`
	FollowUps   []FollowUp        `json:"follow_ups"`
}

var (
	trackerStore *applicationStore
	trackerOnce  sync.Once
	trackerErr   error
)

// applicationStore is a mutex-guarded JSON-array file. Every mutation
// rewrites the whole file; the dataset is a personal application history,
// not a database.
type applicationStore struct {
	mu   sync.Mutex
	path string
	apps []Application
}

// openTracker loads (or creates) the application store under DataDir.
func openTracker() (*applicationStore, error) {
	trackerOnce.Do(func() {
		dir := engine.Cfg.DataDir
		if dir == "" {
			dir = filepath.Join(os.Getenv("HOME"), ".go_recruiter")
		}
		if err := os.MkdirAll(dir, 0750); err != nil {
			trackerErr = fmt.Errorf("tracker: mkdir %s: %w", dir, err)
			return
		}
		s := &applicationStore{path: filepath.Join(dir, "applications.json")}
		if err := s.load(); err != nil {
			trackerErr = fmt.Errorf("tracker: load: %w", err)
			return
		}
		trackerStore = s
	})
	return trackerStore, trackerErr
}

func (s *applicationStore) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.apps = []Application{}
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.apps); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	return nil
}

// save writes the full array. Called with s.mu held.
func (s *applicationStore) save() error {
	data, err := json.MarshalIndent(s.apps, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0640)
}

// nextID returns one past the highest id in use. Called with s.mu held.
func (s *applicationStore) nextID() int64 {
	var max int64
	for _, a := range s.apps {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

func validStatus(s string) bool {
	switch ApplicationStatus(s) {
	case StatusApplied, StatusInterview, StatusOffer, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// AddApplication records a new application. Status defaults to "applied".
func AddApplication(_ context.Context, input engine.ApplicationAddInput) (*Application, error) {
	if input.Company == "" || input.Position == "" {
		return nil, errors.New("application_add: company and position are required")
	}
	status := strings.ToLower(input.Status)
	if status == "" {
		status = string(StatusApplied)
	}
	if !validStatus(status) {
		return nil, fmt.Errorf("application_add: invalid status %q (valid: applied, interview, offer, accepted, rejected)", status)
	}

	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	engine.IncrTrackerOps()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	app := Application{
		ID:          s.nextID(),
		Company:     input.Company,
		Position:    input.Position,
		Status:      ApplicationStatus(status),
		AppliedDate: now,
		LastUpdated: now,
		Notes:       input.Notes,
		URL:         input.URL,
		SalaryRange: input.SalaryRange,
		Location:    input.Location,
		ContactInfo: input.ContactInfo,
		FollowUps:   []FollowUp{},
	}
	s.apps = append(s.apps, app)
	if err := s.save(); err != nil {
		s.apps = s.apps[:len(s.apps)-1]
		return nil, fmt.Errorf("application_add: save: %w", err)
	}
	return &app, nil
}

// UpdateApplication changes status and/or notes of an application by id.
func UpdateApplication(_ context.Context, input engine.ApplicationUpdateInput) (*Application, error) {
	if input.ID <= 0 {
		return nil, errors.New("application_update: id is required")
	}
	if input.Status == "" && input.Notes == "" {
		return nil, errors.New("application_update: at least one of status or notes must be provided")
	}
	if input.Status != "" && !validStatus(strings.ToLower(input.Status)) {
		return nil, fmt.Errorf("application_update: invalid status %q", input.Status)
	}

	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	engine.IncrTrackerOps()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.apps {
		if s.apps[i].ID != input.ID {
			continue
		}
		if input.Status != "" {
			s.apps[i].Status = ApplicationStatus(strings.ToLower(input.Status))
		}
		if input.Notes != "" {
			s.apps[i].Notes = input.Notes
		}
		s.apps[i].LastUpdated = time.Now().UTC().Format(time.RFC3339)
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("application_update: save: %w", err)
		}
		app := s.apps[i]
		return &app, nil
	}
	return nil, fmt.Errorf("application_update: id %d: %w", input.ID, ErrNotFound)
}

// GetApplication returns one application by id.
func GetApplication(_ context.Context, id int64) (*Application, error) {
	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			app := s.apps[i]
			return &app, nil
		}
	}
	return nil, fmt.Errorf("application_get: id %d: %w", id, ErrNotFound)
}

// ListApplications returns applications matching the optional filters,
// newest first.
func ListApplications(_ context.Context, input engine.ApplicationListInput) ([]Application, error) {
	if input.Status != "" && !validStatus(strings.ToLower(input.Status)) {
		return nil, fmt.Errorf("application_list: invalid status %q", input.Status)
	}
	var from, to time.Time
	var err error
	if input.From != "" {
		if from, err = time.Parse(time.RFC3339, input.From); err != nil {
			return nil, fmt.Errorf("application_list: bad from date: %w", err)
		}
	}
	if input.To != "" {
		if to, err = time.Parse(time.RFC3339, input.To); err != nil {
			return nil, fmt.Errorf("application_list: bad to date: %w", err)
		}
	}

	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Application{}
	for i := len(s.apps) - 1; i >= 0; i-- {
		a := s.apps[i]
		if input.Status != "" && a.Status != ApplicationStatus(strings.ToLower(input.Status)) {
			continue
		}
		if input.Company != "" && !strings.Contains(strings.ToLower(a.Company), strings.ToLower(input.Company)) {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			applied, err := time.Parse(time.RFC3339, a.AppliedDate)
			if err != nil {
				slog.Warn("tracker: bad applied_date", slog.Int64("id", a.ID), slog.Any("error", err))
				continue
			}
			if !from.IsZero() && applied.Before(from) {
				continue
			}
			if !to.IsZero() && applied.After(to) {
				continue
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// DeleteApplication removes an application by id.
func DeleteApplication(_ context.Context, id int64) error {
	s, err := openTracker()
	if err != nil {
		return err
	}
	engine.IncrTrackerOps()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			if err := s.save(); err != nil {
				return fmt.Errorf("application_delete: save: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("application_delete: id %d: %w", id, ErrNotFound)
}

// AddFollowUp appends a dated follow-up note to an application.
func AddFollowUp(_ context.Context, id int64, note string) (*Application, error) {
	if note == "" {
		return nil, errors.New("application_followup: note is required")
	}
	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	engine.IncrTrackerOps()

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apps {
		if s.apps[i].ID != id {
			continue
		}
		s.apps[i].FollowUps = append(s.apps[i].FollowUps, FollowUp{
			Date: time.Now().UTC().Format(time.RFC3339),
			Note: note,
		})
		s.apps[i].LastUpdated = time.Now().UTC().Format(time.RFC3339)
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("application_followup: save: %w", err)
		}
		app := s.apps[i]
		return &app, nil
	}
	return nil, fmt.Errorf("application_followup: id %d: %w", id, ErrNotFound)
}

// ApplicationStatistics summarises the tracker: total count, per-status
// breakdown, and success rate (accepted / total, 0 when empty).
func ApplicationStatistics(_ context.Context) (*engine.ApplicationStats, error) {
	s, err := openTracker()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &engine.ApplicationStats{
		Total:           len(s.apps),
		StatusBreakdown: map[string]int{},
	}
	for _, a := range s.apps {
		stats.StatusBreakdown[string(a.Status)]++
	}
	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.StatusBreakdown[string(StatusAccepted)]) / float64(stats.Total)
	}
	return stats, nil
}
