package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileStore は1つの JSON ファイルにキーと値を保存する Store 実装です。
// ブラウザの localStorage に相当するローカル永続化を担います。
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore はファイルパスを指定して FileStore を作成します。ファイルは初回保存時に作られます。
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.readAll()
	if err != nil {
		return err
	}
	data[key] = value

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("ストアのエンコードに失敗しました: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました: %w", err)
	}

	// 途中で落ちても既存ファイルを壊さないよう一時ファイル経由で置き換える
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o600); err != nil {
		return fmt.Errorf("ストアの書き込みに失敗しました: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) readAll() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ストアの読み込みに失敗しました: %w", err)
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		// 次の Set で上書きされる
		log.Warn().Err(err).Str("path", s.path).Msg("ストアの形式が不正なため空として扱います")
		return make(map[string]string), nil
	}
	return data, nil
}
