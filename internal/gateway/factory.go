package gateway

import "fmt"

func New(protocol, host string, port int, user, password string) (Gateway, error) {
	switch protocol {
	case "httpfs", "webhdfs":
		return NewHTTPFS(host, port, user), nil
	case "ftp":
		return NewFTP(host, port, user, password), nil
	default:
		return nil, fmt.Errorf("unsupported gateway protocol: %s", protocol)
	}
}
