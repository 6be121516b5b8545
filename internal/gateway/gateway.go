package gateway

// FileStatus describes one entry of a remote directory listing.
type FileStatus struct {
	Name       string
	Type       string // FILE or DIRECTORY
	Length     int64
	Owner      string
	Group      string
	Permission string
	Modified   int64 // epoch millis
}

// Gateway is implemented by all file-gateway transports (HttpFS, FTP).
// It gives create/read/list access to the cluster filesystem without
// speaking the datanode protocol directly.
type Gateway interface {
	Connect() error
	Close() error

	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, overwrite bool) error
	List(dir string) ([]FileStatus, error)
}
