// Package upload pushes finished feed files to the marketplace FTP drops.
package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

// Target is one marketplace FTP destination.
type Target struct {
	Host     string
	User     string
	Password string
	Dir      string
}

// Result records the outcome of one upload attempt.
type Result struct {
	Target   string
	File     string
	Error    string
	Duration time.Duration
}

// OK reports whether the upload succeeded.
func (r Result) OK() bool { return r.Error == "" }

const dialTimeout = 30 * time.Second

// Push uploads the file at path to the target, storing it under its base
// name. The connection is closed before returning.
func Push(t Target, path string) Result {
	start := time.Now()
	res := Result{Target: t.Host, File: filepath.Base(path)}

	err := push(t, path)
	if err != nil {
		res.Error = err.Error()
	}
	res.Duration = time.Since(start)
	return res
}

func push(t Target, path string) error {
	if t.Host == "" {
		return fmt.Errorf("no ftp host configured")
	}

	addr := t.Host
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	defer conn.Quit()

	if err := conn.Login(t.User, t.Password); err != nil {
		return fmt.Errorf("login as %s: %w", t.User, err)
	}

	if t.Dir != "" && t.Dir != "/" {
		if err := conn.ChangeDir(t.Dir); err != nil {
			return fmt.Errorf("change dir %s: %w", t.Dir, err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := conn.Stor(filepath.Base(path), f); err != nil {
		return fmt.Errorf("store %s: %w", filepath.Base(path), err)
	}
	return nil
}
