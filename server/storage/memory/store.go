// Package memory is an in-memory implementation of storage.Storage, useful
// for tests and small single-process deployments.
package memory

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nimbuscal/caldav/server/storage"
)

// Store implements storage.Storage using in-memory maps guarded by a
// single RWMutex. It is not meant to survive a restart.
type Store struct {
	mu sync.RWMutex

	users     map[string]*storage.User             // key: userID
	passwords map[string]string                    // key: username, value: password (plaintext, tests only)
	usernames map[string]string                    // key: username, value: userID
	calendars map[string]*storage.Calendar          // key: userID/calendarID
	objects   map[string][]*storage.CalendarObject  // key: userID/calendarID, value: that calendar's objects
	nextCalID int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:     make(map[string]*storage.User),
		passwords: make(map[string]string),
		usernames: make(map[string]string),
		calendars: make(map[string]*storage.Calendar),
		objects:   make(map[string][]*storage.CalendarObject),
	}
}

func calendarKey(userID, calendarID string) string {
	return userID + "/" + calendarID
}

func generateETag(data []byte) string {
	hash := sha1.Sum(data)
	return `"` + hex.EncodeToString(hash[:]) + `"`
}

// AddUser registers a user and credentials directly, bypassing AuthUser.
// Exists for test setup; a real backend would populate this from a
// database migration or admin API instead.
func (s *Store) AddUser(userID, username, password string, user *storage.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID] = user
	s.passwords[username] = password
	s.usernames[username] = userID
}

func (s *Store) GetUser(userID string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *Store) AuthUser(username, password string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	want, ok := s.passwords[username]
	if !ok || want != password {
		return "", storage.ErrPermissionDenied
	}
	return s.usernames[username], nil
}

func (s *Store) GetUserCalendars(userID string) ([]storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.Calendar
	for key, cal := range s.calendars {
		if strings.HasPrefix(key, userID+"/") {
			out = append(out, *cal)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *Store) GetCalendar(userID, calendarID string) (*storage.Calendar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cal, ok := s.calendars[calendarKey(userID, calendarID)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cal, nil
}

// CreateCalendar assigns a new calendar ID and path under userID and stores
// calendar there, mutating calendar.Path, calendar.ETag and calendar.CTag
// in place per the Storage interface's contract.
func (s *Store) CreateCalendar(userID string, calendar *storage.Calendar) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCalID++
	calendarID := "cal" + strconv.Itoa(s.nextCalID)
	calendar.Path = "/" + userID + "/cal/" + calendarID

	key := calendarKey(userID, calendarID)
	calendar.ETag = generateETag([]byte(calendar.Path + time.Now().String()))
	calendar.CTag = calendar.ETag

	s.calendars[key] = calendar
	return nil
}

func (s *Store) GetObjectsInCollection(calendarID string) ([]storage.CalendarObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []storage.CalendarObject
	for key, objs := range s.objects {
		if strings.HasSuffix(key, "/"+calendarID) {
			for _, obj := range objs {
				out = append(out, *obj)
			}
		}
	}
	return out, nil
}

func (s *Store) GetObjectPathsInCollection(calendarID string) ([]string, error) {
	objs, err := s.GetObjectsInCollection(calendarID)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(objs))
	for i, obj := range objs {
		paths[i] = obj.Path
	}
	return paths, nil
}

func (s *Store) GetObject(userID, calendarID, objectID string) (*storage.CalendarObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := calendarKey(userID, calendarID)
	for _, obj := range s.objects[key] {
		if obj.Path == objectID {
			return obj, nil
		}
	}
	return nil, storage.ErrNotFound
}

// GetObjectByFilter returns every object in the collection whose components
// satisfy filter, per RFC 4791's calendar-query semantics (including
// recurrence expansion for time-range filters on recurring masters, via
// Filter.Validate).
func (s *Store) GetObjectByFilter(userID, calendarID string, filter *storage.Filter) ([]storage.CalendarObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := calendarKey(userID, calendarID)
	var out []storage.CalendarObject
	for _, obj := range s.objects[key] {
		if filter == nil || filter.Validate(obj) {
			out = append(out, *obj)
		}
	}
	return out, nil
}

func (s *Store) UpdateObject(userID, calendarID string, object *storage.CalendarObject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	calKey := calendarKey(userID, calendarID)
	if _, ok := s.calendars[calKey]; !ok {
		return "", storage.ErrNotFound
	}

	var data []byte
	for _, c := range object.Component {
		data = append(data, []byte(c.Name)...)
	}
	object.ETag = generateETag(append(data, []byte(time.Now().String())...))
	object.LastModified = time.Now()

	objs := s.objects[calKey]
	for i, existing := range objs {
		if existing.Path == object.Path {
			objs[i] = object
			s.objects[calKey] = objs
			s.touchCTag(calKey)
			return object.ETag, nil
		}
	}
	s.objects[calKey] = append(objs, object)
	s.touchCTag(calKey)
	return object.ETag, nil
}

func (s *Store) DeleteObject(userID, calendarID, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	calKey := calendarKey(userID, calendarID)
	objs := s.objects[calKey]
	for i, obj := range objs {
		if obj.Path == objectID {
			s.objects[calKey] = append(objs[:i], objs[i+1:]...)
			s.touchCTag(calKey)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) touchCTag(calKey string) {
	if cal, ok := s.calendars[calKey]; ok {
		cal.CTag = generateETag([]byte(fmt.Sprintf("%s-%d-%s", calKey, len(s.objects[calKey]), time.Now().String())))
	}
}
