package statistic

import (
	"os"
	"path/filepath"
	"transcript/internal/archive"
	"transcript/internal/models"
	"transcript/internal/providers"
	"transcript/internal/statistic/interfaces"

	json "github.com/goccy/go-json"
	"github.com/m-mizutani/goerr/v2"
)

type FileManagerInterface interface {
	WriteFile(fileName string, data []byte) error
	SaveReport(fileName string, report *models.ChannelReport) (string, error)
	LoadReport(fileName string) (*models.ChannelReport, error)
	Close()
}

// FileManager writes output artifacts atomically: data goes to a temporary
// sibling first and is renamed over the target once synced.
type FileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

// NewFileManager takes a nil compressor when reports are written as plain JSON.
func NewFileManager(compressor interfaces.CompressorInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileManager) WriteFile(fileName string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return goerr.Wrap(archive.ErrWriteFailure, "failed to create output directory", goerr.V("path", fileName), goerr.V("cause", err.Error()))
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return goerr.Wrap(archive.ErrWriteFailure, "failed to create temporary file", goerr.V("path", tmpFile), goerr.V("cause", err.Error()))
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return goerr.Wrap(archive.ErrWriteFailure, "failed to write temporary file", goerr.V("path", tmpFile), goerr.V("cause", err.Error()))
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return goerr.Wrap(archive.ErrWriteFailure, "failed to sync temporary file", goerr.V("path", tmpFile), goerr.V("cause", err.Error()))
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return goerr.Wrap(archive.ErrWriteFailure, "failed to close temporary file", goerr.V("path", tmpFile), goerr.V("cause", err.Error()))
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return goerr.Wrap(archive.ErrWriteFailure, "failed to move file into place", goerr.V("path", fileName), goerr.V("cause", err.Error()))
	}
	return nil
}

// SaveReport encodes the report and returns the path actually written, which
// carries the compressed extension when a compressor is set.
func (f *FileManager) SaveReport(fileName string, report *models.ChannelReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode report", goerr.V("channel", report.Channel))
	}

	if f.compressor != nil {
		data, err = f.compressor.Compress(data)
		if err != nil {
			return "", goerr.Wrap(err, "failed to compress report", goerr.V("channel", report.Channel))
		}
		fileName += CompressedExt
	}

	if err := f.WriteFile(fileName, data); err != nil {
		return "", err
	}
	f.logger.Debugf(providers.TypeStats, "Saved report for %s to %s (%d bytes)", report.Channel, fileName, len(data))
	return fileName, nil
}

// LoadReport reads a report back, decompressing it when the name ends with
// the compressed extension.
func (f *FileManager) LoadReport(fileName string) (*models.ChannelReport, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report", goerr.V("path", fileName))
	}

	if filepath.Ext(fileName) == CompressedExt {
		if f.compressor == nil {
			return nil, goerr.New("compressed report needs a compressor", goerr.V("path", fileName))
		}
		data, err = f.compressor.Decompress(data)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to decompress report", goerr.V("path", fileName))
		}
	}

	var report models.ChannelReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, goerr.Wrap(archive.ErrMalformedRecord, "failed to decode report", goerr.V("path", fileName), goerr.V("cause", err.Error()))
	}
	return &report, nil
}

func (f *FileManager) Close() {
	if f.compressor != nil {
		f.compressor.Close()
	}
}
