package exchange

import (
	"encoding/base64"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/blitz-io/blitz-go/input"
	"github.com/blitz-io/blitz-go/sprint"
	"github.com/blitz-io/blitz-go/version"
	"github.com/pkg/errors"
)

const sprintHeader = "X-Blitz-Sprint"

func BuildHTTPRequest(step *input.Step, options *Options) (*http.Request, error) {
	r, _, err := buildRequest(step, "", options)
	return r, err
}

// buildRequest returns the request to send along with a snapshot of it
// whose headers are in the order they were given.
func buildRequest(step *input.Step, sprintID string, options *Options) (*http.Request, *sprint.Transaction, error) {
	body, err := buildHTTPBody(step)
	if err != nil {
		return nil, nil, err
	}

	headers, err := buildHeaders(step, body, sprintID, options)
	if err != nil {
		return nil, nil, err
	}

	header := make(http.Header)
	for _, field := range headers {
		header.Add(field.Name, field.Value)
	}

	var bodyReader io.ReadCloser = http.NoBody
	if body != "" {
		bodyReader = ioutil.NopCloser(strings.NewReader(body))
	}

	u := *step.URL
	r := http.Request{
		Method:        string(step.Method),
		URL:           &u,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Host:          headers.Get("Host"),
		Body:          bodyReader,
		ContentLength: int64(len(body)),
	}

	snapshot := &sprint.Transaction{
		Line:    fmt.Sprintf("%s %s HTTP/1.1", step.Method, u.RequestURI()),
		Method:  string(step.Method),
		URL:     u.String(),
		Content: body,
		Headers: headers,
	}
	return &r, snapshot, nil
}

func buildHeaders(step *input.Step, body string, sprintID string, options *Options) (sprint.Headers, error) {
	var headers sprint.Headers
	for _, field := range step.Header.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		headers.Add(field.Name, value)
	}

	if headers.Get("Host") == "" {
		headers = append(sprint.Headers{{Name: "Host", Value: step.URL.Host}}, headers...)
	}
	if headers.Get("User-Agent") == "" {
		headers.Add("User-Agent", fmt.Sprintf("blitz-go/%s", version.Current()))
	}
	if body != "" {
		if headers.Get("Content-Type") == "" {
			headers.Add("Content-Type", "application/x-www-form-urlencoded")
		}
		headers.Add("Content-Length", strconv.Itoa(len(body)))
	}
	if options.Auth.Enabled {
		credentials := options.Auth.UserName + ":" + options.Auth.Password
		headers.Add("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))
	}
	if sprintID != "" {
		headers.Add(sprintHeader, sprintID)
	}
	return headers, nil
}

func buildHTTPBody(step *input.Step) (string, error) {
	switch step.Body.BodyType {
	case input.EmptyBody:
		return "", nil
	case input.RawBody:
		return resolveFieldValue(step.Body.Field)
	default:
		return "", errors.Errorf("unknown body type: %v", step.Body.BodyType)
	}
}

func resolveFieldValue(field input.Field) (string, error) {
	if field.IsFile {
		data, err := ioutil.ReadFile(field.Value)
		if err != nil {
			return "", errors.Wrapf(err, "reading field value of '%s'", field.Name)
		}
		return string(data), nil
	} else {
		return field.Value, nil
	}
}
