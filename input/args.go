package input

import (
	"io"
	"io/ioutil"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	reMethod          = regexp.MustCompile(`^[a-zA-Z]+$`)
	reHeaderFieldName = regexp.MustCompile("^[-!#$%&'*+.^_|~a-zA-Z0-9]+$")
	reScheme          = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
	emptyMethod       = Method("")
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseArgs builds a plan with one step per URL in args. Method, headers
// and body given in options apply to every step.
func ParseArgs(args []string, stdin io.Reader, options *Options) (*Plan, error) {
	if len(args) == 0 {
		return nil, newUsageError("URL is required")
	}

	method := emptyMethod
	if options.Method != "" {
		m, err := parseMethod(options.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}

	var fields []Field
	for _, h := range options.Headers {
		field, err := parseHeader(h)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if options.UserAgent != "" {
		fields = append(fields, Field{Name: "User-Agent", Value: options.UserAgent})
	}

	body, err := parseBody(options, stdin)
	if err != nil {
		return nil, err
	}

	plan := Plan{Region: options.Region}
	for _, arg := range args {
		u, err := parseURL(arg)
		if err != nil {
			return nil, err
		}
		step := Step{
			Method: method,
			URL:    u,
			Header: Header{Fields: append([]Field(nil), fields...)},
			Body:   body,
		}
		if step.Method == emptyMethod {
			step.Method = guessMethod(&step)
		}
		plan.Steps = append(plan.Steps, step)
	}
	return &plan, nil
}

func parseMethod(s string) (Method, error) {
	if !reMethod.MatchString(s) {
		return emptyMethod, errors.Errorf("METHOD must consist of alphabets: %s", s)
	}

	method := Method(strings.ToUpper(s))
	return method, nil
}

func guessMethod(step *Step) Method {
	if step.Body.BodyType == EmptyBody {
		return Method("GET")
	} else {
		return Method("POST")
	}
}

func parseURL(s string) (*url.URL, error) {
	defaultScheme := "http"
	defaultHost := "localhost"

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !reScheme.MatchString(s) {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

// parseHeader splits a curl-style "Name: value" header.
func parseHeader(s string) (Field, error) {
	colon := strings.Index(s, ":")
	if colon == -1 {
		return Field{}, errors.Errorf("header must look like 'Name: value': %s", s)
	}
	name := strings.TrimSpace(s[:colon])
	if !isValidHeaderFieldName(name) {
		return Field{}, errors.Errorf("invalid header field name: %s", name)
	}
	return Field{Name: name, Value: strings.TrimSpace(s[colon+1:])}, nil
}

func isValidHeaderFieldName(s string) bool {
	return reHeaderFieldName.MatchString(s)
}

func parseBody(options *Options, stdin io.Reader) (Body, error) {
	if options.Data != "" {
		field, err := parseField("data", options.Data, stdin)
		if err != nil {
			return Body{}, err
		}
		return Body{BodyType: RawBody, Field: field}, nil
	}
	if options.ReadStdin {
		b, err := ioutil.ReadAll(stdin)
		if err != nil {
			return Body{}, errors.Wrap(err, "failed to read stdin")
		}
		if len(b) > 0 {
			return Body{BodyType: RawBody, Field: Field{Name: "data", Value: string(b)}}, nil
		}
	}
	return Body{BodyType: EmptyBody}, nil
}

func parseField(name, value string, stdin io.Reader) (Field, error) {
	// TODO: handle escaped "@"
	if strings.HasPrefix(value, "@") {
		if value[1:] == "-" {
			b, err := ioutil.ReadAll(stdin)
			if err != nil {
				return Field{}, errors.Wrapf(err, "reading stdin for '%s'", name)
			}
			return Field{Name: name, Value: string(b), IsFile: false}, nil
		} else {
			return Field{Name: name, Value: value[1:], IsFile: true}, nil
		}
	} else {
		return Field{Name: name, Value: value, IsFile: false}, nil
	}
}
