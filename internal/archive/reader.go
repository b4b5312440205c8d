package archive

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"transcript/internal/models"
	"transcript/internal/providers"

	json "github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

var dayFilePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.json$`)

type ReaderInterface interface {
	DiscoverChannels() ([]string, error)
	ReadChannel(channel string) ([]models.DayBatch, error)
	LoadUsers() ([]models.User, error)
}

// Reader decodes an export archive laid out as <inputDir>/<channel>/<date>.json
// next to a users file.
type Reader struct {
	inputDir  string
	usersFile string
	logger    providers.Logger
}

func NewReader(inputDir, usersFile string, logger providers.Logger) *Reader {
	return &Reader{
		inputDir:  inputDir,
		usersFile: usersFile,
		logger:    logger,
	}
}

// IsDayFile reports whether name looks like YYYY-MM-DD.json.
func IsDayFile(name string) bool {
	return dayFilePattern.MatchString(name)
}

// ListDayFiles returns the date-named files of a channel directory, sorted by
// name, which is also chronological order.
func ListDayFiles(channelDir string) ([]string, error) {
	entries, err := os.ReadDir(channelDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrMissingInput, "channel directory not found", goerr.V("dir", channelDir))
		}
		return nil, goerr.Wrap(err, "failed to list channel directory", goerr.V("dir", channelDir))
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsDayFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DiscoverChannels lists every sub-directory of the input directory holding
// at least one day file.
func (r *Reader) DiscoverChannels() ([]string, error) {
	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrMissingInput, "input directory not found", goerr.V("dir", r.inputDir))
		}
		return nil, goerr.Wrap(err, "failed to list input directory", goerr.V("dir", r.inputDir))
	}

	channels := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := ListDayFiles(filepath.Join(r.inputDir, e.Name()))
		if err != nil {
			r.logger.Warnf(providers.TypeArchive, "Skipping directory %s: %v", e.Name(), err)
			continue
		}
		if len(files) > 0 {
			channels = append(channels, e.Name())
		}
	}
	sort.Strings(channels)
	return channels, nil
}

// ReadChannel decodes the day files of one channel in order. A file that
// cannot be read or decoded is logged and left out.
func (r *Reader) ReadChannel(channel string) ([]models.DayBatch, error) {
	dir := filepath.Join(r.inputDir, channel)
	files, err := ListDayFiles(dir)
	if err != nil {
		return nil, err
	}

	batches := make([]models.DayBatch, 0, len(files))
	for _, name := range files {
		messages, err := ReadDayFile(filepath.Join(dir, name))
		if err != nil {
			r.logger.Warnf(providers.TypeArchive, "Skipping day file %s/%s: %v", channel, name, err)
			continue
		}
		batches = append(batches, models.DayBatch{Name: name, Messages: messages})
	}
	r.logger.Debugf(providers.TypeArchive, "Read %d of %d day files for %s", len(batches), len(files), channel)
	return batches, nil
}

func ReadDayFile(path string) ([]models.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read day file", goerr.V("path", path))
	}
	var messages []models.RawMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, goerr.Wrap(ErrMalformedRecord, "failed to decode day file", goerr.V("path", path), goerr.V("cause", err.Error()))
	}
	return messages, nil
}

// LoadUsers decodes the users file. A missing file is not fatal: it is
// reported and every id then resolves to itself.
func (r *Reader) LoadUsers() ([]models.User, error) {
	data, err := os.ReadFile(r.usersFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Warnf(providers.TypeArchive, "Users file %s not found, continuing without names", r.usersFile)
			return []models.User{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read users file", goerr.V("path", r.usersFile))
	}

	var records []slack.User
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, goerr.Wrap(ErrMalformedRecord, "failed to decode users file", goerr.V("path", r.usersFile), goerr.V("cause", err.Error()))
	}

	users := make([]models.User, 0, len(records))
	for _, u := range records {
		if u.ID == "" {
			continue
		}
		users = append(users, models.User{ID: u.ID, Name: u.Name})
	}
	r.logger.Debugf(providers.TypeArchive, "Loaded %d users", len(users))
	return users, nil
}
