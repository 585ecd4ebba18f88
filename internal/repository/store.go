package repository

import (
	"sync"
	"sync/atomic"

	"github.com/noah-isme/courseconnect-api/internal/models"
)

// Snapshot is an immutable view of every collection at one store version.
type Snapshot struct {
	Version       uint64
	Users         []models.User
	Courses       []models.Course
	Announcements []models.Announcement
}

// Store owns the in-memory collections. Readers load the current snapshot
// without locking; writers serialise on mu and install a whole new collection,
// so a reader sees either the old or the new collection, never a mix.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewStore builds a store initialised with seed.
func NewStore(seed Seed) *Store {
	s := &Store{}
	s.current.Store(seed.snapshot(0))
	return s
}

// Snapshot returns the current snapshot. Callers must treat it as read-only.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// Version returns the current store version.
func (s *Store) Version() uint64 {
	return s.current.Load().Version
}

// Users returns a copy of the users collection.
func (s *Store) Users() []models.User {
	return append([]models.User(nil), s.current.Load().Users...)
}

// Courses returns a deep copy of the courses collection.
func (s *Store) Courses() []models.Course {
	return cloneCourses(s.current.Load().Courses)
}

// Announcements returns a copy of the announcements collection, newest first.
func (s *Store) Announcements() []models.Announcement {
	return cloneAnnouncements(s.current.Load().Announcements)
}

// ReplaceCourses installs courses as the new courses collection.
func (s *Store) ReplaceCourses(courses []models.Course) {
	s.UpdateCourses(func([]models.Course) []models.Course { return courses })
}

// ReplaceAnnouncements installs announcements as the new announcements collection.
func (s *Store) ReplaceAnnouncements(announcements []models.Announcement) {
	s.UpdateAnnouncements(func([]models.Announcement) []models.Announcement { return announcements })
}

// UpdateCourses computes a new courses collection from the current one and installs it
// in one step. fn must not modify its argument. Returning the argument unchanged
// leaves the version untouched.
func (s *Store) UpdateCourses(fn func([]models.Course) []models.Course) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current.Load()
	next := fn(prev.Courses)
	if sameCourses(prev.Courses, next) {
		return prev
	}
	snap := &Snapshot{
		Version:       prev.Version + 1,
		Users:         prev.Users,
		Courses:       cloneCourses(next),
		Announcements: prev.Announcements,
	}
	s.current.Store(snap)
	return snap
}

// UpdateAnnouncements is the announcements counterpart of UpdateCourses.
func (s *Store) UpdateAnnouncements(fn func([]models.Announcement) []models.Announcement) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current.Load()
	next := fn(prev.Announcements)
	if sameAnnouncements(prev.Announcements, next) {
		return prev
	}
	snap := &Snapshot{
		Version:       prev.Version + 1,
		Users:         prev.Users,
		Courses:       prev.Courses,
		Announcements: cloneAnnouncements(next),
	}
	s.current.Store(snap)
	return snap
}

// Reset reinstalls seed. The version keeps increasing so cached projections of
// earlier states are never reused.
func (s *Store) Reset(seed Seed) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := seed.snapshot(s.current.Load().Version + 1)
	s.current.Store(snap)
	return snap
}

func sameCourses(a, b []models.Course) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func sameAnnouncements(a, b []models.Announcement) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func cloneCourses(in []models.Course) []models.Course {
	out := make([]models.Course, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

func cloneAnnouncements(in []models.Announcement) []models.Announcement {
	out := make([]models.Announcement, len(in))
	for i, a := range in {
		out[i] = a
		if a.CourseID != nil {
			id := *a.CourseID
			out[i].CourseID = &id
		}
	}
	return out
}
