package timeentry_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/timeentry"
)

func TestTimeEntryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TimeEntry Service Suite")
}

// Mock repository for testing
type mockEntryRepository struct {
	entries     map[int64]*timeentry.TimeEntry
	nextID      int64
	createError error
	searchError error
}

func newMockEntryRepository() *mockEntryRepository {
	return &mockEntryRepository{
		entries: make(map[int64]*timeentry.TimeEntry),
		nextID:  1,
	}
}

func (m *mockEntryRepository) add(e *timeentry.TimeEntry) *timeentry.TimeEntry {
	e.ID = m.nextID
	m.nextID++
	m.entries[e.ID] = e
	return e
}

func (m *mockEntryRepository) CreateChecked(entry *timeentry.TimeEntry) error {
	if m.createError != nil {
		return m.createError
	}
	if timeentry.HasOverlap(entry, m.onDate(entry.UserID, entry.Date)) {
		return timeentry.ErrEntryOverlap
	}
	m.add(entry)
	return nil
}

func (m *mockEntryRepository) UpdateChecked(entry *timeentry.TimeEntry) error {
	if entry.HasBothTimes() && timeentry.HasOverlap(entry, m.onDate(entry.UserID, entry.Date)) {
		return timeentry.ErrEntryOverlap
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockEntryRepository) GetByID(id int64) (*timeentry.TimeEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, timeentry.ErrEntryNotFound
	}
	return e, nil
}

func (m *mockEntryRepository) GetForUserOnDate(userID int64, date time.Time) ([]*timeentry.TimeEntry, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.onDate(userID, date), nil
}

func (m *mockEntryRepository) onDate(userID int64, date time.Time) []*timeentry.TimeEntry {
	var result []*timeentry.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.Date.Equal(date) {
			result = append(result, e)
		}
	}
	return result
}

func (m *mockEntryRepository) Search(query timeentry.ListQuery) ([]*timeentry.TimeEntry, error) {
	if m.searchError != nil {
		return nil, m.searchError
	}
	var result []*timeentry.TimeEntry
	for _, e := range m.entries {
		if query.UserID != nil && e.UserID != *query.UserID {
			continue
		}
		if query.StartDate != nil && e.Date.Before(*query.StartDate) {
			continue
		}
		if query.EndDate != nil && e.Date.After(*query.EndDate) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (m *mockEntryRepository) GetRunning(userID int64) (*timeentry.TimeEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.IsRunning {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEntryRepository) StartTimer(entry *timeentry.TimeEntry, now time.Time) (*timeentry.TimeEntry, *timeentry.TimeEntry, error) {
	var stopped *timeentry.TimeEntry
	for _, e := range m.entries {
		if e.UserID == entry.UserID && e.IsRunning {
			end := now
			e.EndTime = &end
			e.IsRunning = false
			stopped = e
		}
	}
	m.add(entry)
	return entry, stopped, nil
}

func (m *mockEntryRepository) StopRunning(userID int64, now time.Time) (*timeentry.TimeEntry, error) {
	for _, e := range m.entries {
		if e.UserID == userID && e.IsRunning {
			end := now
			e.EndTime = &end
			e.IsRunning = false
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEntryRepository) Delete(id int64) error {
	delete(m.entries, id)
	return nil
}

var _ = Describe("TimeEntryService", func() {
	var (
		repo     *mockEntryRepository
		service  *timeentry.Service
		employee *auth.User
		admin    *auth.User
		clock    time.Time
	)

	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	at := func(hour, min int) time.Time {
		return time.Date(2024, 1, 15, hour, min, 0, 0, time.UTC)
	}

	createDTO := func(start time.Time, end time.Time, breakMinutes int) timeentry.CreateTimeEntryDTO {
		return timeentry.CreateTimeEntryDTO{
			Date:         date,
			StartTime:    start,
			EndTime:      &end,
			BreakMinutes: breakMinutes,
			Description:  "work",
		}
	}

	BeforeEach(func() {
		repo = newMockEntryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		clock = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		service = timeentry.NewService(repo, logger).WithClock(func() time.Time { return clock })
		employee = &auth.User{ID: 1, Role: auth.RoleEmployee}
		admin = &auth.User{ID: 2, Role: auth.RoleAdmin}
	})

	Describe("Create", func() {
		It("should create a closed entry", func() {
			entry, err := service.Create(employee, createDTO(at(9, 0), at(17, 0), 30))
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.ID).To(BeNumerically(">", 0))
			Expect(entry.UserID).To(Equal(employee.ID))
			Expect(entry.NetHours()).To(BeNumerically("~", 7.5, 1e-9))
		})

		It("should reject an overlapping range", func() {
			_, err := service.Create(employee, createDTO(at(9, 0), at(12, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(employee, createDTO(at(11, 0), at(13, 0), 0))
			Expect(err).To(Equal(timeentry.ErrEntryOverlap))
		})

		It("should allow touching ranges", func() {
			_, err := service.Create(employee, createDTO(at(9, 0), at(12, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(employee, createDTO(at(12, 0), at(14, 0), 0))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a missing end time", func() {
			dto := timeentry.CreateTimeEntryDTO{
				Date:      date,
				StartTime: at(9, 0),
			}
			_, err := service.Create(employee, dto)
			Expect(err).To(HaveOccurred())
		})

		It("should reject creating for another user as employee", func() {
			otherID := int64(99)
			dto := createDTO(at(9, 0), at(10, 0), 0)
			dto.UserID = &otherID

			_, err := service.Create(employee, dto)
			Expect(err).To(Equal(timeentry.ErrNotEntryOwner))
		})

		It("should allow creating for another user as admin", func() {
			otherID := int64(99)
			dto := createDTO(at(9, 0), at(10, 0), 0)
			dto.UserID = &otherID

			entry, err := service.Create(admin, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UserID).To(Equal(otherID))
		})
	})

	Describe("StartTimer", func() {
		It("should open a running entry", func() {
			entry, err := service.StartTimer(employee, timeentry.StartTimerDTO{Description: "focus"})
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.IsRunning).To(BeTrue())
			Expect(entry.EndTime).To(BeNil())
			Expect(entry.StartTime).To(Equal(clock))
		})

		It("should stop the previous timer at the new start instant", func() {
			first, err := service.StartTimer(employee, timeentry.StartTimerDTO{})
			Expect(err).NotTo(HaveOccurred())

			clock = clock.Add(30 * time.Minute)
			second, err := service.StartTimer(employee, timeentry.StartTimerDTO{})
			Expect(err).NotTo(HaveOccurred())

			stopped, err := repo.GetByID(first.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stopped.IsRunning).To(BeFalse())
			Expect(stopped.EndTime).NotTo(BeNil())
			Expect(*stopped.EndTime).To(Equal(second.StartTime))

			running, err := service.GetRunning(employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(running.ID).To(Equal(second.ID))
		})
	})

	Describe("StopTimer", func() {
		It("should close the running entry", func() {
			started, err := service.StartTimer(employee, timeentry.StartTimerDTO{})
			Expect(err).NotTo(HaveOccurred())

			clock = clock.Add(2 * time.Hour)
			stopped, err := service.StopTimer(employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(stopped.ID).To(Equal(started.ID))
			Expect(stopped.IsRunning).To(BeFalse())
			Expect(stopped.EndTime).NotTo(BeNil())
			Expect(stopped.NetHours()).To(BeNumerically("~", 2.0, 1e-9))
		})

		It("should error when nothing is running", func() {
			_, err := service.StopTimer(employee)
			Expect(err).To(Equal(timeentry.ErrNoRunningTimer))
		})
	})

	Describe("Update", func() {
		It("should stop a running entry when given an end time", func() {
			started, err := service.StartTimer(employee, timeentry.StartTimerDTO{})
			Expect(err).NotTo(HaveOccurred())

			end := at(12, 0)
			updated, err := service.Update(employee, started.ID, timeentry.UpdateTimeEntryDTO{
				Date:      date,
				StartTime: started.StartTime,
				EndTime:   &end,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsRunning).To(BeFalse())
		})

		It("should reject edits by non-owners", func() {
			entry, err := service.Create(employee, createDTO(at(9, 0), at(10, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			other := &auth.User{ID: 42, Role: auth.RoleEmployee}
			end := at(11, 0)
			_, err = service.Update(other, entry.ID, timeentry.UpdateTimeEntryDTO{
				Date:      date,
				StartTime: at(9, 0),
				EndTime:   &end,
			})
			Expect(err).To(Equal(timeentry.ErrNotEntryOwner))
		})

		It("should allow shrinking an entry within its own old range", func() {
			entry, err := service.Create(employee, createDTO(at(9, 0), at(12, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			end := at(11, 0)
			updated, err := service.Update(employee, entry.ID, timeentry.UpdateTimeEntryDTO{
				Date:      date,
				StartTime: at(9, 30),
				EndTime:   &end,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.StartTime).To(Equal(at(9, 30)))
		})
	})

	Describe("Delete", func() {
		It("should remove the entry", func() {
			entry, err := service.Create(employee, createDTO(at(9, 0), at(10, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(employee, entry.ID)).To(Succeed())

			_, err = repo.GetByID(entry.ID)
			Expect(err).To(Equal(timeentry.ErrEntryNotFound))
		})

		It("should reject deletes by non-owners", func() {
			entry, err := service.Create(employee, createDTO(at(9, 0), at(10, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			other := &auth.User{ID: 42, Role: auth.RoleEmployee}
			Expect(service.Delete(other, entry.ID)).To(Equal(timeentry.ErrNotEntryOwner))
		})
	})

	Describe("List", func() {
		It("should narrow employees to their own entries", func() {
			_, err := service.Create(employee, createDTO(at(9, 0), at(10, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			otherID := int64(99)
			dto := createDTO(at(9, 0), at(10, 0), 0)
			dto.UserID = &otherID
			_, err = service.Create(admin, dto)
			Expect(err).NotTo(HaveOccurred())

			entries, err := service.List(employee, timeentry.ListQuery{ShowAll: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].UserID).To(Equal(employee.ID))
		})

		It("should let admins see everything with showAll", func() {
			_, err := service.Create(employee, createDTO(at(9, 0), at(10, 0), 0))
			Expect(err).NotTo(HaveOccurred())

			otherID := int64(99)
			dto := createDTO(at(11, 0), at(12, 0), 0)
			dto.UserID = &otherID
			_, err = service.Create(admin, dto)
			Expect(err).NotTo(HaveOccurred())

			entries, err := service.List(admin, timeentry.ListQuery{ShowAll: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
		})
	})
})
