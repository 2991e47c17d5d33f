package messagefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"pushcron/internal/domain/model"
	"pushcron/internal/domain/ports"
)

var (
	// ErrNotFound is returned when the message file does not exist.
	ErrNotFound = errors.New("message file not found")
	// ErrInvalid wraps every structural problem with a message file.
	ErrInvalid = errors.New("invalid message file")
)

var requiredFields = []string{"name", "heading", "message", "url", "segment", "big_picture", "show_rate_button"}

type document struct {
	Name           string         `json:"name"`
	Heading        string         `json:"heading"`
	Message        string         `json:"message"`
	URL            string         `json:"url"`
	Segment        string         `json:"segment"`
	BigPicture     string         `json:"big_picture"`
	ShowRateButton bool           `json:"show_rate_button"`
	Data           map[string]any `json:"data,omitempty"`
	Platforms      []string       `json:"platforms,omitempty"`
}

// File loads notification definitions from JSON files on disk.
type File struct{}

var _ ports.MessageSource = (*File)(nil)

// New returns a file backed message source.
func New() *File {
	return &File{}
}

// Load reads and validates the message file at path.
func (f *File) Load(_ context.Context, path string) (*model.Notification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read message file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates raw message JSON and converts it into a notification.
func Parse(data []byte) (*model.Notification, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: character encoding error, save the file as UTF-8", ErrInvalid)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON format: %v", ErrInvalid, err)
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrInvalid, strings.Join(missing, ", "))
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	notification := &model.Notification{
		Name:           strings.TrimSpace(doc.Name),
		Heading:        cleanText(doc.Heading),
		Message:        cleanText(doc.Message),
		URL:            strings.TrimSpace(doc.URL),
		Segment:        strings.TrimSpace(doc.Segment),
		BigPicture:     strings.TrimSpace(doc.BigPicture),
		ShowRateButton: doc.ShowRateButton,
		Data:           doc.Data,
	}
	if notification.Message == "" {
		return nil, fmt.Errorf("%w: message field cannot be empty", ErrInvalid)
	}
	if notification.Segment == "" {
		notification.Segment = model.DefaultSegment
	}

	var platformErrs []error
	for _, name := range doc.Platforms {
		p, err := model.ParsePlatform(name)
		if err != nil {
			platformErrs = append(platformErrs, err)
			continue
		}
		notification.Platforms = append(notification.Platforms, p)
	}
	if err := errors.Join(platformErrs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return notification, nil
}

// Save writes n as indented UTF-8 JSON, keeping non-ASCII characters readable.
func Save(path string, n model.Notification) error {
	doc := document{
		Name:           n.Name,
		Heading:        n.Heading,
		Message:        n.Message,
		URL:            n.URL,
		Segment:        n.Segment,
		BigPicture:     n.BigPicture,
		ShowRateButton: n.ShowRateButton,
		Data:           n.Data,
	}
	for _, p := range n.Platforms {
		doc.Platforms = append(doc.Platforms, string(p))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode message file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save message file %s: %w", path, err)
	}
	return nil
}

// Template returns a starter message for the given app prefix.
func Template(app string) model.Notification {
	display := model.DisplayName(app)
	if display == "" {
		display = "App"
	}
	return model.Notification{
		Name:      strings.ToLower(strings.ReplaceAll(app, "_", "-")) + "-daily",
		Heading:   display + " Notification",
		Message:   "🔭 Tonight's sky is worth a look.",
		Segment:   model.DefaultSegment,
		Platforms: []model.Platform{model.PlatformAndroid},
	}
}
