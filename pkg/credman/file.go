package credman

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

var osUserHomeDir = os.UserHomeDir

// DefaultCredentialsPath returns the path of the credentials file the
// Claude Code CLI maintains when no secret store is available.
func DefaultCredentialsPath() (string, error) {
	home, err := osUserHomeDir()
	if err != nil {
		return "", &AuthError{Reason: "cannot resolve home directory", Err: err}
	}
	return filepath.Join(home, ".claude", ".credentials.json"), nil
}

// FileSource reads the credential blob from a JSON file on fs.
type FileSource struct {
	fs   afero.Fs
	path string

	now func() time.Time
}

// NewFileSource creates a source reading the credential file at path.
func NewFileSource(fs afero.Fs, path string) *FileSource {
	return &FileSource{
		fs:   fs,
		path: path,
		now:  time.Now,
	}
}

// Token reads and parses the credentials file.
func (s *FileSource) Token(ctx context.Context) (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return "", &AuthError{Reason: "cannot read " + s.path, Err: err}
	}
	nowFn := s.now
	if nowFn == nil {
		nowFn = time.Now
	}
	return parseCredentials(data, nowFn())
}

var _ Provider = (*FileSource)(nil)
