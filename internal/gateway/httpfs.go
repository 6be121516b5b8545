package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const webhdfsBase = "/webhdfs/v1"

type HTTPFSGateway struct {
	host      string
	port      int
	user      string
	client    *http.Client
	transport *http.Transport
	baseURL   string
}

func NewHTTPFS(host string, port int, user string) *HTTPFSGateway {
	return &HTTPFSGateway{
		host: host,
		port: port,
		user: user,
	}
}

func (g *HTTPFSGateway) Connect() error {
	g.baseURL = fmt.Sprintf("http://%s:%d", g.host, g.port)
	g.transport = &http.Transport{
		MaxIdleConns:    10,
		IdleConnTimeout: 90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
	}
	g.client = &http.Client{
		Timeout:   60 * time.Second,
		Transport: g.transport,
	}
	return nil
}

func (g *HTTPFSGateway) Close() error {
	if g.transport != nil {
		g.transport.CloseIdleConnections()
	}
	g.client = nil
	g.transport = nil
	return nil
}

func (g *HTTPFSGateway) doRequest(method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	if g.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	if g.user != "" {
		query.Set("user.name", g.user)
	}
	u := g.baseURL + webhdfsBase + path + "?" + query.Encode()

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	return g.client.Do(req)
}

// httpfsError decodes the RemoteException body HttpFS returns on failure.
func httpfsError(action string, resp *http.Response) error {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var errResp struct {
		RemoteException struct {
			Exception string `json:"exception"`
			Message   string `json:"message"`
		} `json:"RemoteException"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.RemoteException.Message != "" {
		return fmt.Errorf("%s: %s: %s (status %d)", action,
			errResp.RemoteException.Exception, errResp.RemoteException.Message, resp.StatusCode)
	}

	if len(body) > 0 {
		return fmt.Errorf("%s: %s (status %d)", action, string(body), resp.StatusCode)
	}
	return fmt.Errorf("%s (status %d)", action, resp.StatusCode)
}

func (g *HTTPFSGateway) ReadFile(path string) ([]byte, error) {
	query := url.Values{"op": {"OPEN"}}
	resp, err := g.doRequest("GET", path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpfsError(fmt.Sprintf("failed to read %s", path), resp)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (g *HTTPFSGateway) WriteFile(path string, content []byte, overwrite bool) error {
	query := url.Values{
		"op":        {"CREATE"},
		"overwrite": {fmt.Sprintf("%t", overwrite)},
		// data=true tells HttpFS the payload rides on this request,
		// skipping the two-step datanode redirect of plain WebHDFS.
		"data": {"true"},
	}
	resp, err := g.doRequest("PUT", path, query, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return httpfsError(fmt.Sprintf("failed to write %s", path), resp)
	}
	resp.Body.Close()

	return nil
}

type listStatusResponse struct {
	FileStatuses struct {
		FileStatus []struct {
			PathSuffix       string `json:"pathSuffix"`
			Type             string `json:"type"`
			Length           int64  `json:"length"`
			Owner            string `json:"owner"`
			Group            string `json:"group"`
			Permission       string `json:"permission"`
			ModificationTime int64  `json:"modificationTime"`
		} `json:"FileStatus"`
	} `json:"FileStatuses"`
}

func (g *HTTPFSGateway) List(dir string) ([]FileStatus, error) {
	query := url.Values{"op": {"LISTSTATUS"}}
	resp, err := g.doRequest("GET", dir, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, httpfsError(fmt.Sprintf("failed to list %s", dir), resp)
	}
	defer resp.Body.Close()

	var result listStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse listing of %s: %w", dir, err)
	}

	entries := make([]FileStatus, 0, len(result.FileStatuses.FileStatus))
	for _, item := range result.FileStatuses.FileStatus {
		entries = append(entries, FileStatus{
			Name:       item.PathSuffix,
			Type:       item.Type,
			Length:     item.Length,
			Owner:      item.Owner,
			Group:      item.Group,
			Permission: item.Permission,
			Modified:   item.ModificationTime,
		})
	}
	return entries, nil
}

var _ Gateway = (*HTTPFSGateway)(nil)
