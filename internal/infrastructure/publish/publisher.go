// Package publish writes snapshots to their well-known path without ever
// exposing a partially written file to readers.
//
// The protocol is: encode, write a uniquely named temporary file in the
// target's directory, flush and close it, then rename it over the target.
// Keeping the temporary file in the same directory keeps the rename on one
// filesystem, which is what makes it atomic on POSIX systems.
package publish

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"modlist.dev/cli/internal/core/component"
	"modlist.dev/cli/internal/core/snapshot"
)

// TempSuffix is the extension of temporary files created next to the target
const TempSuffix = ".json"

// Publisher implements the temp-file-plus-rename protocol
type Publisher struct {
	newToken func() string
	rename   func(oldpath, newpath string) error
	perm     fs.FileMode
}

// NewPublisher creates a publisher backed by the local filesystem
func NewPublisher() *Publisher {
	return &Publisher{
		newToken: newTempToken,
		rename:   os.Rename,
		perm:     0o644,
	}
}

// newTempToken returns 32 lowercase hex characters
func newTempToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Publish encodes snap and moves it to targetPath. With atomicMove set,
// readers of targetPath observe either the previous content or the new
// content, never a mix; a move that cannot be atomic fails with
// ErrAtomicMoveUnsupported instead of degrading. Without it, a cross-device
// move deletes the target and copies the new content in.
func (p *Publisher) Publish(ctx context.Context, snap component.Snapshot, targetPath string, atomicMove bool) error {
	data, err := snapshot.Encode(snap)
	if err != nil {
		return &WriteError{Op: "encode", Path: targetPath, Err: err}
	}

	return p.PublishBytes(ctx, data, targetPath, atomicMove)
}

// PublishBytes runs the protocol for already serialized content. The
// context is only consulted before anything touches the disk; once the
// temporary file exists the run is completed or fails on its own.
func (p *Publisher) PublishBytes(ctx context.Context, data []byte, targetPath string, atomicMove bool) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Op: "start", Path: targetPath, Err: err}
	}

	tmp, err := p.writeTemp(targetPath, data)
	if err != nil {
		return err
	}

	if atomicMove {
		err = p.moveAtomic(tmp, targetPath)
	} else {
		err = p.moveReplace(tmp, targetPath)
	}
	if err != nil {
		// Leftovers are harmless, but do not leave them when we can help it
		os.Remove(tmp)
		return err
	}

	return nil
}

// TempPath returns the temporary path a publish of targetPath would use
// with the given token
func TempPath(targetPath, token string) string {
	return filepath.Join(filepath.Dir(targetPath), token+TempSuffix)
}

func (p *Publisher) writeTemp(targetPath string, data []byte) (string, error) {
	tmp := TempPath(targetPath, p.newToken())

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, p.perm)
	if err != nil {
		return "", &WriteError{Op: "create", Path: tmp, Err: err}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &WriteError{Op: "write", Path: tmp, Err: err}
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &WriteError{Op: "sync", Path: tmp, Err: err}
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", &WriteError{Op: "close", Path: tmp, Err: err}
	}

	return tmp, nil
}

func (p *Publisher) moveAtomic(tmp, targetPath string) error {
	if err := p.rename(tmp, targetPath); err != nil {
		if isCrossDevice(err) {
			err = fmt.Errorf("%w: %w", ErrAtomicMoveUnsupported, err)
		}
		return &PublishError{Op: "rename", Source: tmp, Path: targetPath, Err: err}
	}

	syncDir(filepath.Dir(targetPath))
	return nil
}

// moveReplace renames over the target like moveAtomic. Only a cross-device
// rename falls back to deleting the target and copying, where readers may
// briefly see no file.
func (p *Publisher) moveReplace(tmp, targetPath string) error {
	err := p.rename(tmp, targetPath)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return &PublishError{Op: "rename", Source: tmp, Path: targetPath, Err: err}
	}

	if err := os.Remove(targetPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PublishError{Op: "remove", Source: tmp, Path: targetPath, Err: err}
	}
	if err := copyFile(tmp, targetPath, p.perm); err != nil {
		return &PublishError{Op: "copy", Source: tmp, Path: targetPath, Err: err}
	}
	os.Remove(tmp)
	return nil
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// syncDir flushes the directory entry after a rename. Not every platform
// allows syncing a directory handle, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	d.Sync()
	d.Close()
}
