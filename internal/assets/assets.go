// Package assets serves the static files of the auth page, from the embedded
// bundle or from an on-disk directory that is watched for changes.
package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"

	"github.com/nfrund/authpanel/web"
)

// Assets is a static file tree plus a version that changes whenever an
// on-disk file changes.
type Assets struct {
	fs      afero.Fs
	dir     string
	version atomic.Uint64
}

// New returns the embedded assets when dir is empty, else the files under dir.
func New(dir string) (*Assets, error) {
	if dir == "" {
		sub, err := fs.Sub(web.FS, "static")
		if err != nil {
			return nil, fmt.Errorf("embedded assets: %w", err)
		}
		return NewFromFs(afero.FromIOFS{FS: sub}), nil
	}

	osFs := afero.NewOsFs()
	ok, err := afero.DirExists(osFs, dir)
	if err != nil {
		return nil, fmt.Errorf("static dir %q: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("static dir %q: %w", dir, os.ErrNotExist)
	}
	a := NewFromFs(afero.NewBasePathFs(osFs, dir))
	a.dir = dir
	return a, nil
}

// NewFromFs wraps an existing filesystem. It is never watched.
func NewFromFs(fsys afero.Fs) *Assets {
	a := &Assets{fs: fsys}
	a.version.Store(1)
	return a
}

// FS exposes the tree as an io/fs filesystem for echo.
func (a *Assets) FS() fs.FS {
	return afero.NewIOFS(a.fs)
}

// Version identifies the current revision of the tree.
func (a *Assets) Version() string {
	return "v" + strconv.FormatUint(a.version.Load(), 10)
}

func (a *Assets) bump() {
	a.version.Add(1)
}

// Watch bumps the version on every change under the on-disk directory until
// ctx is done. Embedded assets never change, so it returns at once for them.
func (a *Assets) Watch(ctx context.Context) error {
	if a.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}

	err = afero.Walk(afero.NewOsFs(), a.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to add directories to watcher: %w", err)
	}

	go a.watchLoop(ctx, watcher)
	slog.Info("Watching static assets", "dir", a.dir)
	return nil
}

func (a *Assets) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			a.bump()
			slog.Debug("Static asset changed", "path", event.Name, "op", event.Op.String(), "version", a.Version())
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Static asset watcher error", "error", err)
		}
	}
}

// Middleware makes browsers revalidate assets against the current version.
// Paths that are not files pass through untagged so they still 404.
func (a *Assets) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.isFile(c.Param("*")) {
				return next(c)
			}
			etag := `"` + a.Version() + `"`
			h := c.Response().Header()
			h.Set("Cache-Control", "no-cache")
			h.Set("ETag", etag)
			if c.Request().Header.Get("If-None-Match") == etag {
				return c.NoContent(http.StatusNotModified)
			}
			return next(c)
		}
	}
}

func (a *Assets) isFile(name string) bool {
	name, err := url.PathUnescape(name)
	if err != nil {
		return false
	}
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		return false
	}
	info, err := a.fs.Stat(name)
	return err == nil && !info.IsDir()
}

// Register mounts the assets under prefix.
func (a *Assets) Register(e *echo.Echo, prefix string) {
	g := e.Group(prefix, a.Middleware())
	g.StaticFS("/", a.FS())
}
