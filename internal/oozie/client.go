package oozie

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"ooz/internal/gateway"
	"ooz/internal/logging"
)

const (
	jobPath        = "/oozie/v1/job/"
	jobsPath       = "/oozie/v1/jobs"
	contentTypeXML = "application/xml;charset=UTF-8"
)

var (
	ErrMissingJobID = errors.New("job id is required")
	ErrEmptyBody    = errors.New("request body is empty")
	ErrNoProperties = errors.New("no job properties configured")
	ErrNoGateway    = errors.New("no file gateway configured")
)

// Client submits, starts, and polls workflow jobs on an Oozie server and
// stages attached local files through a file gateway first. It holds no
// job identity itself; every Submit produces a new server-side job whose
// id the caller keeps.
type Client struct {
	host string
	port int

	gw          gateway.Gateway
	props       PropertiesSource
	projectRoot string
	files       []string

	// built on first REST call, then reused
	client  *http.Client
	baseURL string
}

func NewClient(host string, port int) *Client {
	return &Client{host: host, port: port}
}

func (c *Client) SetGateway(gw gateway.Gateway) {
	c.gw = gw
}

func (c *Client) SetProperties(src PropertiesSource) {
	c.props = src
}

// SetProjectRoot sets the staging directory explicitly. A later mapping
// serialization carrying an oozieProjectRoot property overwrites it.
func (c *Client) SetProjectRoot(root string) {
	c.projectRoot = root
}

func (c *Client) ProjectRoot() string {
	return c.projectRoot
}

// AddFiles appends local files to stage before submission. Candidates
// that are not regular files are dropped with a warning, not an error.
func (c *Client) AddFiles(paths ...string) {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			logging.L().Warn("skipping attachment: not a regular file",
				zap.String("path", p))
			continue
		}
		c.files = append(c.files, p)
	}
}

func (c *Client) Files() []string {
	return append([]string(nil), c.files...)
}

func (c *Client) rest() *http.Client {
	if c.client == nil {
		c.baseURL = fmt.Sprintf("http://%s:%d", c.host, c.port)
		c.client = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 90 * time.Second,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
			},
		}
	}
	return c.client
}

func (c *Client) do(method, u, body string) ([]byte, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, u, reader)
	if err != nil {
		return nil, err
	}
	if method != http.MethodGet {
		req.Header.Set("Content-Type", contentTypeXML)
	}

	resp, err := c.rest().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, oozieError(method+" "+u, resp, data)
	}
	return data, nil
}

// oozieError surfaces the oozie-error-code/message headers the server
// sets on failed requests, falling back to the body.
func oozieError(action string, resp *http.Response, body []byte) error {
	code := resp.Header.Get("oozie-error-code")
	msg := resp.Header.Get("oozie-error-message")
	if code != "" || msg != "" {
		return fmt.Errorf("%s: %s %s (status %d)", action, code, msg, resp.StatusCode)
	}
	if len(body) > 0 {
		if len(body) > 512 {
			body = body[:512]
		}
		return fmt.Errorf("%s: %s (status %d)", action, strings.TrimSpace(string(body)), resp.StatusCode)
	}
	return fmt.Errorf("%s (status %d)", action, resp.StatusCode)
}

func (c *Client) get(jobID string, query url.Values) ([]byte, error) {
	if jobID == "" {
		return nil, ErrMissingJobID
	}
	c.rest()
	u := c.baseURL + jobPath + url.PathEscape(jobID)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return c.do(http.MethodGet, u, "")
}

func (c *Client) post(body string) ([]byte, error) {
	if body == "" {
		return nil, ErrEmptyBody
	}
	c.rest()
	return c.do(http.MethodPost, c.baseURL+jobsPath, body)
}

func (c *Client) put(jobID, action string) ([]byte, error) {
	if jobID == "" {
		return nil, ErrMissingJobID
	}
	c.rest()
	u := c.baseURL + jobPath + url.PathEscape(jobID) + "?action=" + url.QueryEscape(action)
	return c.do(http.MethodPut, u, "")
}

func (c *Client) serializeProperties() (string, error) {
	if c.props == nil {
		return "", ErrNoProperties
	}
	doc, err := c.props.XML()
	if err != nil {
		return "", err
	}
	if root := c.props.ProjectRoot(); root != "" {
		c.projectRoot = root
	}
	return doc, nil
}

// Submit serializes the job properties, stages attached files, and posts
// the configuration. Staging is best effort and never blocks submission;
// failures are logged per file.
func (c *Client) Submit() (string, error) {
	doc, err := c.serializeProperties()
	if err != nil {
		return "", err
	}

	if len(c.files) > 0 {
		if err := c.StageFiles().Err(); err != nil {
			logging.L().Warn("staging completed with failures", zap.Error(err))
		}
	}

	body, err := c.post(doc)
	if err != nil {
		return "", err
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse submit response: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("submit response carries no job id")
	}
	return resp.ID, nil
}

// Start asks the server to move a submitted job from PREP to RUNNING.
func (c *Client) Start(jobID string) error {
	_, err := c.put(jobID, "start")
	return err
}

// Run is Submit followed by Start.
func (c *Client) Run() (string, error) {
	jobID, err := c.Submit()
	if err != nil {
		return "", err
	}
	if err := c.Start(jobID); err != nil {
		return jobID, err
	}
	return jobID, nil
}

func (c *Client) Kill(jobID string) error {
	_, err := c.put(jobID, "kill")
	return err
}

func (c *Client) Suspend(jobID string) error {
	_, err := c.put(jobID, "suspend")
	return err
}

func (c *Client) Resume(jobID string) error {
	_, err := c.put(jobID, "resume")
	return err
}

// JobInfo is the subset of the job document this client reads. Status is
// whatever word the server reports (PREP, RUNNING, SUSPENDED, SUCCEEDED,
// KILLED, FAILED, ...); the set is server-owned and not validated here.
type JobInfo struct {
	ID          string `json:"id"`
	AppName     string `json:"appName"`
	AppPath     string `json:"appPath"`
	User        string `json:"user"`
	Status      string `json:"status"`
	CreatedTime string `json:"createdTime"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Run         int    `json:"run"`
}

// Status returns the server's status word for the job.
func (c *Client) Status(jobID string) (string, error) {
	info, err := c.Info(jobID)
	if err != nil {
		return "", err
	}
	return info.Status, nil
}

func (c *Client) Info(jobID string) (*JobInfo, error) {
	body, err := c.get(jobID, url.Values{"show": {"info"}})
	if err != nil {
		return nil, err
	}

	var info JobInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse job info: %w", err)
	}
	if info.Status == "" {
		return nil, fmt.Errorf("job info carries no status")
	}
	return &info, nil
}

// Log fetches the job's log as plain text.
func (c *Client) Log(jobID string) ([]byte, error) {
	return c.get(jobID, url.Values{"show": {"log"}})
}

// Definition fetches the job's workflow definition XML.
func (c *Client) Definition(jobID string) ([]byte, error) {
	return c.get(jobID, url.Values{"show": {"definition"}})
}

// List returns up to max workflow jobs matching filter (Oozie filter
// syntax, e.g. "status=RUNNING"; empty means all).
func (c *Client) List(filter string, max int) ([]JobInfo, error) {
	c.rest()

	query := url.Values{"jobtype": {"wf"}}
	if filter != "" {
		query.Set("filter", filter)
	}
	if max > 0 {
		query.Set("len", fmt.Sprintf("%d", max))
	}

	body, err := c.do(http.MethodGet, c.baseURL+jobsPath+"?"+query.Encode(), "")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workflows []JobInfo `json:"workflows"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse jobs list: %w", err)
	}
	return resp.Workflows, nil
}
