package oozie

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        string
}

type mockOozie struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  http.HandlerFunc
	server   *httptest.Server
}

func newMockOozie(t *testing.T, handler http.HandlerFunc) *mockOozie {
	t.Helper()
	m := &mockOozie{handler: handler}
	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		m.mu.Lock()
		m.requests = append(m.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		})
		m.mu.Unlock()
		m.handler(w, r)
	}))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockOozie) client(t *testing.T) *Client {
	t.Helper()
	u, err := url.Parse(m.server.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return NewClient(host, port)
}

func (m *mockOozie) recorded() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedRequest(nil), m.requests...)
}

func submitHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/oozie/v1/jobs":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"0001-oozie-C"}`))
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"id":"0001-oozie-C","status":"RUNNING","appName":"demo","user":"hadoop"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

func TestSubmit(t *testing.T) {
	mock := newMockOozie(t, submitHandler(t))
	client := mock.client(t)
	client.SetProperties(MappingProperties{"queueName": "default"})

	jobID, err := client.Submit()
	require.NoError(t, err)
	assert.Equal(t, "0001-oozie-C", jobID)

	reqs := mock.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/oozie/v1/jobs", reqs[0].Path)
	assert.Equal(t, "application/xml;charset=UTF-8", reqs[0].ContentType)
	assert.Contains(t, reqs[0].Body, "<configuration>")
	assert.Contains(t, reqs[0].Body, "queueName")
}

func TestSubmitWithFailedStaging(t *testing.T) {
	dir := t.TempDir()
	bad := writeTestFile(t, dir, "bad.jar", "xx")
	good := writeTestFile(t, dir, "good.jar", "yy")

	gw := newFakeGateway()
	gw.failOn["/user/hadoop/app/bad.jar"] = true

	mock := newMockOozie(t, submitHandler(t))
	client := mock.client(t)
	client.SetGateway(gw)
	client.SetProperties(MappingProperties{ProjectRootProperty: "/user/hadoop/app"})
	client.AddFiles(bad, good)

	// a failed upload must not block submission
	jobID, err := client.Submit()
	require.NoError(t, err)
	assert.Equal(t, "0001-oozie-C", jobID)

	require.Len(t, gw.writes, 2, "both uploads attempted before the POST")
	reqs := mock.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/oozie/v1/jobs", reqs[0].Path)
}

func TestFilesReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "workflow.xml", "<workflow-app/>")

	c := NewClient("localhost", 11000)
	c.AddFiles(path)

	files := c.Files()
	files[0] = "/etc/shadow"

	require.Equal(t, []string{path}, c.Files(),
		"mutating the returned slice must not alter the attachment list")
}

func TestRun(t *testing.T) {
	mock := newMockOozie(t, submitHandler(t))
	client := mock.client(t)
	client.SetProperties(RawXMLProperties("<configuration/>"))

	jobID, err := client.Run()
	require.NoError(t, err)
	assert.Equal(t, "0001-oozie-C", jobID)

	reqs := mock.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	assert.Equal(t, "/oozie/v1/job/0001-oozie-C", reqs[1].Path)
	assert.Equal(t, "start", reqs[1].Query.Get("action"))
}

func TestStatus(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"RUNNING"}`))
	})

	status, err := mock.client(t).Status("0001-oozie-C")
	require.NoError(t, err)
	assert.Equal(t, "RUNNING", status)

	reqs := mock.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/oozie/v1/job/0001-oozie-C", reqs[0].Path)
	assert.Equal(t, "info", reqs[0].Query.Get("show"))
}

func TestStatusMalformedJSON(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := mock.client(t).Status("0001-oozie-C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse job info")
}

func TestStatusMissingField(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"0001-oozie-C"}`))
	})

	_, err := mock.client(t).Status("0001-oozie-C")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no status")
}

func TestSubmitResponseWithoutID(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})
	client := mock.client(t)
	client.SetProperties(RawXMLProperties("<configuration/>"))

	_, err := client.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job id")
}

func TestSubmitMalformedResponse(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`<html>oops</html>`))
	})
	client := mock.client(t)
	client.SetProperties(RawXMLProperties("<configuration/>"))

	_, err := client.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse submit response")
}

func TestSubmitWithoutProperties(t *testing.T) {
	mock := newMockOozie(t, submitHandler(t))

	_, err := mock.client(t).Submit()
	require.ErrorIs(t, err, ErrNoProperties)
	assert.Empty(t, mock.recorded(), "no request should reach the server")
}

func TestGuards(t *testing.T) {
	mock := newMockOozie(t, submitHandler(t))
	client := mock.client(t)

	require.ErrorIs(t, client.Start(""), ErrMissingJobID)
	require.ErrorIs(t, client.Kill(""), ErrMissingJobID)
	_, err := client.Status("")
	require.ErrorIs(t, err, ErrMissingJobID)
	_, err = client.post("")
	require.ErrorIs(t, err, ErrEmptyBody)

	assert.Empty(t, mock.recorded(), "guarded calls must not touch the network")
}

func TestServerErrorHeaders(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("oozie-error-code", "E0504")
		w.Header().Set("oozie-error-message", "App directory doesn't exist")
		w.WriteHeader(http.StatusBadRequest)
	})
	client := mock.client(t)
	client.SetProperties(RawXMLProperties("<configuration/>"))

	_, err := client.Submit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E0504")
	assert.Contains(t, err.Error(), "App directory doesn't exist")
}

func TestList(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total":2,"workflows":[
			{"id":"0001-oozie-W","appName":"wc","user":"hadoop","status":"RUNNING"},
			{"id":"0002-oozie-W","appName":"etl","user":"hadoop","status":"SUCCEEDED"}
		]}`))
	})

	jobs, err := mock.client(t).List("status=RUNNING", 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "0001-oozie-W", jobs[0].ID)
	assert.Equal(t, "SUCCEEDED", jobs[1].Status)

	reqs := mock.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/oozie/v1/jobs", reqs[0].Path)
	assert.Equal(t, "wf", reqs[0].Query.Get("jobtype"))
	assert.Equal(t, "status=RUNNING", reqs[0].Query.Get("filter"))
	assert.Equal(t, "10", reqs[0].Query.Get("len"))
}

func TestLog(t *testing.T) {
	mock := newMockOozie(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2026-01-01 log line\n"))
	})

	log, err := mock.client(t).Log("0001-oozie-W")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01 log line\n", string(log))

	reqs := mock.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, "log", reqs[0].Query.Get("show"))
}

func TestRestClientReused(t *testing.T) {
	mock := newMockOozie(t, submitHandler(t))
	client := mock.client(t)

	first := client.rest()
	second := client.rest()
	assert.Same(t, first, second)
}
