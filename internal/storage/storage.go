package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Attachment slots. The slot names the question the file answers and
// becomes part of the stored filename.
const (
	SlotMainColor  = "main_color"
	SlotAdditional = "additional"
)

var (
	// ErrNotFound is returned when a user has no saved submission.
	ErrNotFound = errors.New("submission not found")
	// ErrCorrupt is returned when a stored submission cannot be decoded.
	ErrCorrupt = errors.New("corrupt submission record")
)

type UserInfo struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	Timestamp time.Time `json:"timestamp"`
}

type Answers struct {
	CapaType           string `json:"capa_type"`
	MainColor          string `json:"main_color"`
	TextColor          string `json:"text_color"`
	Text               string `json:"text"`
	AdditionalElements string `json:"additional_elements"`
	ElementsPosition   string `json:"elements_position"`
	Age                string `json:"age"`
	Height             string `json:"height"`
	Font               string `json:"font"`
}

type FilesInfo struct {
	HasFiles   bool   `json:"has_files"`
	FilesCount int    `json:"files_count"`
	PhotosDir  string `json:"photos_dir"`
}

// Submission is the durable record of one completed design flow.
type Submission struct {
	UserInfo  UserInfo  `json:"user_info"`
	Answers   Answers   `json:"answers"`
	FilesInfo FilesInfo `json:"files_info"`
}

// Attachment describes one stored file in a user's attachment area.
type Attachment struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Storage keeps one JSON record per user plus a sibling attachment
// directory, both under a single data directory.
type Storage struct {
	dir    string
	logger *zap.Logger
}

func New(dir string, logger *zap.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Storage{dir: dir, logger: logger}, nil
}

func (s *Storage) submissionPath(userID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("user_%d.json", userID))
}

func (s *Storage) photosDirName(userID int64) string {
	return fmt.Sprintf("user_%d_photos", userID)
}

// PhotosDir returns the user's attachment directory path. The directory
// may not exist yet.
func (s *Storage) PhotosDir(userID int64) string {
	return filepath.Join(s.dir, s.photosDirName(userID))
}

// SaveSubmission writes the completed answers as the user's submission
// record, overwriting any previous one. The files block is recomputed
// by scanning the attachment area at save time.
func (s *Storage) SaveSubmission(user UserInfo, answers Answers) (*Submission, error) {
	sub := &Submission{
		UserInfo: user,
		Answers:  answers,
		FilesInfo: FilesInfo{
			PhotosDir: s.photosDirName(user.UserID),
		},
	}

	count, err := s.countAttachments(user.UserID)
	if err != nil {
		return nil, fmt.Errorf("count attachments: %w", err)
	}
	sub.FilesInfo.FilesCount = count
	sub.FilesInfo.HasFiles = count > 0

	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}

	if err := os.WriteFile(s.submissionPath(user.UserID), data, 0o644); err != nil {
		return nil, fmt.Errorf("write submission: %w", err)
	}

	s.logger.Info("Submission saved",
		zap.Int64("user_id", user.UserID),
		zap.Int("files_count", count))

	return sub, nil
}

// LoadSubmission reads the user's saved submission. ErrNotFound is
// returned when no record exists, ErrCorrupt when the record cannot be
// decoded.
func (s *Storage) LoadSubmission(userID int64) (*Submission, error) {
	data, err := os.ReadFile(s.submissionPath(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read submission: %w", err)
	}

	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &sub, nil
}

// SaveAttachment stores an uploaded file in the user's attachment area,
// creating the area on first use. The name is derived from the slot and
// the current timestamp; ext falls back to a generic binary marker.
func (s *Storage) SaveAttachment(userID int64, slot, ext string, payload []byte) (string, error) {
	dir := s.PhotosDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create attachment dir: %w", err)
	}

	if ext == "" {
		ext = "bin"
	}
	name := fmt.Sprintf("%s_%s.%s", slot, time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}

	s.logger.Info("Attachment saved",
		zap.Int64("user_id", userID),
		zap.String("slot", slot),
		zap.String("path", path))

	return path, nil
}

// ListAttachments collects every file in the user's attachment area,
// regardless of subfolder depth, newest first. A missing area yields an
// empty list.
func (s *Storage) ListAttachments(userID int64) ([]Attachment, error) {
	dir := s.PhotosDir(userID)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []Attachment
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, Attachment{
			Path:    path,
			Name:    d.Name(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk attachment dir: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}

// countAttachments counts regular files directly inside the attachment
// area, matching what the submission record reports.
func (s *Storage) countAttachments(userID int64) (int, error) {
	entries, err := os.ReadDir(s.PhotosDir(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			count++
		}
	}
	return count, nil
}
