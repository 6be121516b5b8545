package gateway

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/jlaffaye/ftp"
)

const ftpTimeout = 30 * time.Second

// FTPGateway talks to an hdfs-over-ftp bridge. Same contract as HttpFS,
// useful on clusters where the REST gateway is not exposed.
type FTPGateway struct {
	host     string
	port     int
	user     string
	password string
	conn     *ftp.ServerConn
}

func NewFTP(host string, port int, user, password string) *FTPGateway {
	return &FTPGateway{
		host:     host,
		port:     port,
		user:     user,
		password: password,
	}
}

func (f *FTPGateway) Connect() error {
	addr := fmt.Sprintf("%s:%d", f.host, f.port)

	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(ftpTimeout))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	if err := conn.Login(f.user, f.password); err != nil {
		conn.Quit()
		return fmt.Errorf("login failed: %w", err)
	}

	f.conn = conn
	return nil
}

func (f *FTPGateway) Close() error {
	if f.conn != nil {
		if err := f.conn.Quit(); err != nil {
			return fmt.Errorf("failed to close connection: %w", err)
		}
		f.conn = nil
	}
	return nil
}

func (f *FTPGateway) ReadFile(path string) ([]byte, error) {
	if f.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	if err := f.conn.Type(ftp.TransferTypeBinary); err != nil {
		return nil, fmt.Errorf("failed to set binary mode: %w", err)
	}

	reader, err := f.conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	return buf.Bytes(), nil
}

func (f *FTPGateway) WriteFile(path string, content []byte, overwrite bool) error {
	if f.conn == nil {
		return fmt.Errorf("not connected")
	}

	if !overwrite {
		// STOR always replaces, so probe first
		if _, err := f.conn.FileSize(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if err := f.conn.Type(ftp.TransferTypeBinary); err != nil {
		return fmt.Errorf("failed to set binary mode: %w", err)
	}

	if err := f.conn.Stor(path, bytes.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (f *FTPGateway) List(dir string) ([]FileStatus, error) {
	if f.conn == nil {
		return nil, fmt.Errorf("not connected")
	}

	entries, err := f.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	statuses := make([]FileStatus, 0, len(entries))
	for _, e := range entries {
		statuses = append(statuses, entryToStatus(e))
	}
	return statuses, nil
}

func entryToStatus(e *ftp.Entry) FileStatus {
	s := FileStatus{
		Name:     e.Name,
		Type:     "FILE",
		Length:   int64(e.Size),
		Modified: e.Time.UnixMilli(),
	}
	if e.Type == ftp.EntryTypeFolder {
		s.Type = "DIRECTORY"
		s.Length = 0
	}
	return s
}

var _ Gateway = (*FTPGateway)(nil)
