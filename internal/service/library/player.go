package library

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// InstallPlayer copies the player bundle at playerDir into sessionDir,
// overwriting existing files. Used to lay a 2.3 player over sessions
// recorded with the older 2.0 player, whose bundled playback page no
// longer works in current browsers.
func InstallPlayer(playerDir, sessionDir string) error {
	return filepath.Walk(playerDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(playerDir, path)
		if err != nil {
			return err
		}
		target := filepath.Join(sessionDir, rel)

		if info.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

// EnsurePlayers walks all sessions under root and installs the player
// bundle into any session lacking a modern player. A copy failure for one
// session is logged and does not stop the others.
func EnsurePlayers(root, playerDir string, logger *zap.Logger) error {
	if playerDir == "" {
		return nil
	}
	if info, err := os.Stat(playerDir); err != nil || !info.IsDir() {
		return fmt.Errorf("player dir %q is not a directory", playerDir)
	}

	sessions, err := List(root)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		dir := filepath.Join(root, s.Name)
		if HasModernPlayer(dir) {
			continue
		}
		logger.Info("installing player into session",
			zap.String("session", s.Name))
		if err := InstallPlayer(playerDir, dir); err != nil {
			logger.Warn("player install failed",
				zap.String("session", s.Name), zap.Error(err))
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}
