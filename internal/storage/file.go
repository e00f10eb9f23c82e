package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/UK-Mindset/mind-set/internal"
)

// FileStorage keeps users and moods in memory, backed by JSON files. Mood writes are
// flushed by a debounced background worker; the users file is seed data and only read.
type FileStorage struct {
	users         map[int64]*internal.User
	usersByToken  map[string]*internal.User
	moods         map[int64]*internal.Mood   // id -> Mood
	userMoodIndex map[int64][]*internal.Mood // userID -> moods sorted descending by Date
	nextMoodID    int64
	mu            sync.RWMutex
	txMu          sync.Mutex
	usersFile     string
	moodsFile     string
	saveChan      chan struct{}
	shutdownChan  chan struct{}
	saveDelay     time.Duration
	logger        internal.Logger
}

func NewFileStorage(usersFile, moodsFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:         make(map[int64]*internal.User),
		usersByToken:  make(map[string]*internal.User),
		moods:         make(map[int64]*internal.Mood),
		userMoodIndex: make(map[int64][]*internal.Mood),
		nextMoodID:    1,
		usersFile:     usersFile,
		moodsFile:     moodsFile,
		saveChan:      make(chan struct{}, 1),
		shutdownChan:  make(chan struct{}),
		saveDelay:     500 * time.Millisecond,
		logger:        logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadMoods(); err != nil {
		logger.Errorf("storage: failed to load moods: %v", err)
		return nil, err
	}

	go s.saveWorker()

	return s, nil
}

func (s *FileStorage) loadUsers() error {
	file, err := os.Open(s.usersFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var users []*internal.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.users[u.ID] = u
		s.usersByToken[u.Token] = u
	}
	return nil
}

func (s *FileStorage) loadMoods() error {
	file, err := os.Open(s.moodsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var moods []*internal.Mood
	if err := json.NewDecoder(file).Decode(&moods); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range moods {
		s.moods[m.ID] = m
		s.userMoodIndex[m.UserID] = append(s.userMoodIndex[m.UserID], m)
		if m.ID >= s.nextMoodID {
			s.nextMoodID = m.ID + 1
		}
	}
	for userID := range s.userMoodIndex {
		sort.Slice(s.userMoodIndex[userID], func(i, j int) bool {
			return s.userMoodIndex[userID][i].Date.After(s.userMoodIndex[userID][j].Date)
		})
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveMoods() error {
	s.mu.RLock()
	moods := make([]*internal.Mood, 0, len(s.moods))
	for _, m := range s.moods {
		moods = append(moods, m)
	}
	s.mu.RUnlock()

	sort.Slice(moods, func(i, j int) bool { return moods[i].ID < moods[j].ID })
	return atomicWriteFileJSON(s.moodsFile, moods)
}

func (s *FileStorage) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveMoods(); err != nil {
				s.logger.Errorf("storage: error saving moods: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

// Close stops the background worker and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	return s.saveMoods()
}

type fileSnapshot struct {
	moods      map[int64]*internal.Mood
	index      map[int64][]*internal.Mood
	nextMoodID int64
}

func (s *FileStorage) snapshot() fileSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := fileSnapshot{
		moods:      make(map[int64]*internal.Mood, len(s.moods)),
		index:      make(map[int64][]*internal.Mood, len(s.userMoodIndex)),
		nextMoodID: s.nextMoodID,
	}
	for id, m := range s.moods {
		clone := *m
		snap.moods[id] = &clone
	}
	for userID, moods := range s.userMoodIndex {
		idx := make([]*internal.Mood, len(moods))
		for i, m := range moods {
			idx[i] = snap.moods[m.ID]
		}
		snap.index[userID] = idx
	}
	return snap
}

func (s *FileStorage) restore(snap fileSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moods = snap.moods
	s.userMoodIndex = snap.index
	s.nextMoodID = snap.nextMoodID
}

// InTx serializes the whole operation and rolls the in-memory state back to a
// snapshot when fn fails, so a failed operation leaves nothing behind.
func (s *FileStorage) InTx(ctx context.Context, fn func(Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	s.signalSave()
	return nil
}

// --- UserRepository ---
func (s *FileStorage) FindUser(ctx context.Context, userID int64) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user does not exist", internal.ErrNotFound)
	}
	out := *u
	return &out, nil
}

func (s *FileStorage) FindUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usersByToken[token]
	if !ok {
		return nil, fmt.Errorf("%w: user does not exist", internal.ErrNotFound)
	}
	out := *u
	return &out, nil
}

// --- MoodRepository ---
func (s *FileStorage) FindMood(ctx context.Context, moodID int64) (*internal.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.moods[moodID]
	if !ok {
		return nil, fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
	}
	out := *m
	return &out, nil
}

func (s *FileStorage) SaveMood(ctx context.Context, mood *internal.Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mood.ID = s.nextMoodID
	s.nextMoodID++

	stored := *mood
	s.moods[stored.ID] = &stored

	// Insert into the user index maintaining descending Date order.
	moods := s.userMoodIndex[stored.UserID]
	inserted := false
	for i, existing := range moods {
		if existing.Date.Before(stored.Date) {
			moods = append(moods[:i], append([]*internal.Mood{&stored}, moods[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		moods = append(moods, &stored)
	}
	s.userMoodIndex[stored.UserID] = moods

	s.signalSave()
	return nil
}

func (s *FileStorage) UpdateMood(ctx context.Context, mood *internal.Mood) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.moods[mood.ID]
	if !ok {
		return fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
	}
	// Only title and reason are mutable.
	existing.Title = mood.Title
	existing.Reason = mood.Reason

	s.signalSave()
	return nil
}

func (s *FileStorage) DeleteMood(ctx context.Context, moodID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.moods[moodID]
	if !ok {
		return fmt.Errorf("%w: mood does not exist", internal.ErrNotFound)
	}
	delete(s.moods, moodID)

	moods := s.userMoodIndex[m.UserID]
	for i, existing := range moods {
		if existing.ID == moodID {
			s.userMoodIndex[m.UserID] = append(moods[:i], moods[i+1:]...)
			break
		}
	}

	s.signalSave()
	return nil
}

func (s *FileStorage) ListMoods(ctx context.Context, userID int64) ([]internal.Mood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	moodsPtr, ok := s.userMoodIndex[userID]
	if !ok {
		return []internal.Mood{}, nil
	}
	moods := make([]internal.Mood, len(moodsPtr))
	for i, m := range moodsPtr {
		moods[i] = *m
	}
	return moods, nil
}

// --- Compile-time assertions ---
var _ Store = (*FileStorage)(nil)
