package mocks

import (
	"fmt"

	"github.com/user/vidsink/pkg/ports"
)

// ListenerError records one error reported through the mock listener.
type ListenerError struct {
	Err         error
	TimestampUs int64
}

// SinkListener is a mock implementation of ports.SinkListener.
type SinkListener struct {
	SizeChanges   []ports.Size
	DroppedFrames int
	FirstFrames   int
	Errors        []ListenerError
	EndOfStreams  int
}

func (m *SinkListener) OnVideoSizeChanged(size ports.Size) {
	m.SizeChanges = append(m.SizeChanges, size)
}

func (m *SinkListener) OnFrameDropped() {
	m.DroppedFrames++
}

func (m *SinkListener) OnFirstFrameRendered() {
	m.FirstFrames++
}

func (m *SinkListener) OnError(err error, timestampUs int64) {
	m.Errors = append(m.Errors, ListenerError{Err: err, TimestampUs: timestampUs})
}

func (m *SinkListener) OnEndOfStream() {
	m.EndOfStreams++
}

var _ ports.SinkListener = (*SinkListener)(nil)

// FileSystem is an in-memory mock implementation of ports.FileSystem.
type FileSystem struct {
	Files map[string][]byte
	Dirs  []string

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
}

func NewFileSystem() *FileSystem {
	return &FileSystem{Files: map[string][]byte{}}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("mocks: no such file %s", path)
	}
	return data, nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.Files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	m.Dirs = append(m.Dirs, path)
	return nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
